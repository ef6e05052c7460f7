// Package labels provides the public API for an async-id-scoped,
// signal-safe custom label store, sampled out-of-process by a profiler the
// way Go's own pprof sampling reads goroutine stacks.
//
// # Quick Start
//
// A host runtime spawning async tasks (a scheduler, a request-handling
// framework) drives the lifecycle with three calls:
//
//	labels.Propagate(parentID, childID)          // on task spawn
//	_, err := labels.WithLabels(taskID, pairs, func() (R, error) {
//		// body runs with pairs applied on top of taskID's inherited set
//	})
//	labels.Destroy(taskID)                       // on task completion
//
// A profiler running out-of-process finds a program's goroutines'
// CurrentSet pointers and walks each LabelSet's storage the way it already
// walks goroutine stacks. This package's job is only to make sure that
// walk always observes a consistent, well-formed set, no matter which
// instruction the writer goroutine is paused at when the sample is taken.
//
// # API Overview
//
//   - Lifecycle: [Propagate], [Destroy], [WithLabels]
//   - Direct access to the calling goroutine's label set: [Install], [Clear], [Current]
//   - Version information: [GetInfo], [Version]
//
// # Compatibility
//
// Go version: 1.24 or later, as declared in go.mod. No CGO requirement.
package labels
