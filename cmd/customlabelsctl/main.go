// Command customlabelsctl drives the custom labels runtime the way a host
// runtime would: spawning synthetic async tasks, propagating their label
// sets, scoping additional labels around a body of work, and destroying
// them on completion. Each invocation runs one subcommand; serve exposes
// the maintenance metrics of its own process, so it does not report the
// counters of a separate simulate run.
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

var cli struct {
	Simulate SimulateCmd `cmd:"" help:"Simulate host-runtime async task lifecycles against the label store."`
	Serve    ServeCmd    `cmd:"" help:"Expose Prometheus metrics for the label store's maintenance counters."`
	ABI      ABICmd      `cmd:"" help:"Print the ABI version and the WithLabels bounds a reader depends on."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("customlabelsctl"),
		kong.Description("Drives and inspects the custom labels runtime."),
		kong.UsageOnError(),
	)

	logger, err := zap.NewProduction()
	if err != nil {
		ctx.FatalIfErrorf(err)
	}
	defer logger.Sync()

	if err := ctx.Run(logger); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
