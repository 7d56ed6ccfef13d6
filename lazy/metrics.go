package lazy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK   = "ok"
	resultNoop = "noop"
)

var insertsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "lazytree_inserts_total",
	Help: "Insert calls, by whether they added or revived an element",
}, []string{"result"})

var erasesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "lazytree_erases_total",
	Help: "Erase calls, by whether they tagged an element",
}, []string{"result"})

var compactionsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lazytree_compactions_total",
	Help: "Compaction passes run",
})

var nodesReclaimedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lazytree_nodes_reclaimed_total",
	Help: "Stale nodes unlinked by compaction",
})

var nodesReleasedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lazytree_nodes_released_total",
	Help: "Nodes released by clearing a tree",
})
