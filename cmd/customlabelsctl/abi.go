package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kolkov/customlabels/labels"
)

// ABICmd prints the version information a reader attaching to this
// process out-of-process needs to interpret CurrentSet correctly.
type ABICmd struct{}

func (c *ABICmd) Run(logger *zap.Logger) error {
	info := labels.GetInfo()
	fmt.Printf("customlabels runtime %s, ABI version %d\n", info.Version, info.ABIVersion)
	fmt.Printf("MaxLabels=%d MaxKeyLen=%d MaxValueLen=%d\n", labels.MaxLabels, labels.MaxKeyLen, labels.MaxValueLen)
	return nil
}
