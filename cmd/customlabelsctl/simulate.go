package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kolkov/customlabels/labels"
)

// SimulateCmd drives the label store the way a request-handling host
// runtime would: each worker goroutine owns a chain of synthetic async
// tasks, propagating labels from parent to child and scoping request-local
// labels with WithLabels.
type SimulateCmd struct {
	Workers  int           `default:"4" help:"Number of concurrent goroutines, each with its own async id space."`
	Tasks    int           `default:"100" help:"Number of child async tasks spawned per worker."`
	Interval time.Duration `default:"0" help:"Pause between tasks."`
}

func (c *SimulateCmd) Run(logger *zap.Logger) error {
	if c.Workers <= 0 || c.Tasks <= 0 {
		return fmt.Errorf("simulate: workers and tasks must both be positive")
	}

	var wg sync.WaitGroup
	wg.Add(c.Workers)
	for w := 0; w < c.Workers; w++ {
		go func(worker int) {
			defer wg.Done()
			c.runWorker(worker, logger)
		}(w)
	}
	wg.Wait()

	logger.Info("simulation complete",
		zap.Int("workers", c.Workers),
		zap.Int("tasks_per_worker", c.Tasks),
	)
	return nil
}

func (c *SimulateCmd) runWorker(worker int, logger *zap.Logger) {
	rootID := uint64(worker)*1_000_000 + 1
	traceID := uuid.New().String()

	_, err := labels.WithLabels(rootID, []labels.Label{
		{Key: "worker", Value: fmt.Sprintf("%d", worker)},
		{Key: "trace_id", Value: traceID},
	}, func() (struct{}, error) {
		for t := 0; t < c.Tasks; t++ {
			childID := rootID + uint64(t) + 1
			if err := labels.Propagate(rootID, childID); err != nil {
				logger.Warn("propagate reported a diagnostic", zap.Error(err), zap.Uint64("child_id", childID))
			}
			_, err := labels.WithLabels(childID, []labels.Label{
				{Key: "task", Value: fmt.Sprintf("%d", t)},
			}, func() (struct{}, error) {
				if _, ok := labels.Current().Get("trace_id"); !ok {
					logger.Error("propagated label missing inside task scope", zap.Uint64("child_id", childID))
				}
				return struct{}{}, nil
			})
			if err != nil {
				logger.Warn("WithLabels failed", zap.Error(err), zap.Uint64("child_id", childID))
			}
			if err := labels.Destroy(childID); err != nil {
				logger.Warn("destroy failed", zap.Error(err), zap.Uint64("child_id", childID))
			}
			if c.Interval > 0 {
				time.Sleep(c.Interval)
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		logger.Error("root WithLabels failed", zap.Error(err), zap.Int("worker", worker))
	}
	if err := labels.Destroy(rootID); err != nil {
		logger.Warn("destroy root failed", zap.Error(err), zap.Int("worker", worker))
	}

	logger.Info("worker finished",
		zap.Int("worker", worker),
		zap.String("trace_id", traceID),
	)
}
