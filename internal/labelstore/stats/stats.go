// Package stats exposes Prometheus counters for the label store's internal
// maintenance operations: grows, rehashes, swap-deletes, and the size of
// the most recently changed async map. None of this sits on LabelSet's or
// AsyncMap's hot path: counters are incremented once per maintenance event,
// not per label access, the same separation a race detector's promotion
// counters draw between bookkeeping and hot-path epoch checks.
package stats

import "github.com/prometheus/client_golang/prometheus"

const namespace = "customlabels"

var (
	// LabelSetGrows counts LabelSet storage reallocations.
	LabelSetGrows = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "labelset_grows_total",
		Help:      "total number of LabelSet storage growths",
	})

	// LabelSetSwapDeletes counts careful (reader-visible) swap-deletes.
	LabelSetSwapDeletes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "labelset_swap_deletes_total",
		Help:      "total number of LabelSet swap-delete operations on installed sets",
	})

	// AsyncMapRehashes counts AsyncMap capacity doublings.
	AsyncMapRehashes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asyncmap_rehashes_total",
		Help:      "total number of AsyncMap rehash operations",
	})

	// AsyncMapSize is the last-observed occupied bucket count. Every
	// AsyncMap Insert of a new key and every Delete sets it to that map's
	// size, so with several goroutines' maps it holds whichever map changed
	// last.
	AsyncMapSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "asyncmap_size",
		Help:      "most recently observed AsyncMap occupied bucket count",
	})

	// ChildAlreadyExisted counts Propagate calls that reported
	// ErrChildAlreadyExisted.
	ChildAlreadyExisted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "propagate_child_already_existed_total",
		Help:      "total number of Propagate calls whose child id already had an entry",
	})
)

func init() {
	prometheus.MustRegister(LabelSetGrows, LabelSetSwapDeletes, AsyncMapRehashes, AsyncMapSize, ChildAlreadyExisted)
}
