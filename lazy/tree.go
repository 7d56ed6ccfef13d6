package lazy

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
)

// ErrUnderflow is returned by Front and Back on a tree with no live elements.
var ErrUnderflow = errors.New("lazy tree underflow: no live elements")

var ErrInvalidTree = errors.New("invalid lazy tree structure")

// Tree owns the root node and the count of live elements. The zero value is not usable; use New or NewFunc.
type Tree[T any] struct {
	root    *Node[T]
	count   int
	nodes   int
	compare func(a, b T) int
	log     *slog.Logger
}

// New returns an empty tree ordered by cmp.Compare.
func New[T cmp.Ordered]() *Tree[T] {
	return NewFunc[T](cmp.Compare[T])
}

// NewFunc returns an empty tree ordered by compare, which must define a strict total order: negative if a < b, zero if equal, positive if a > b.
func NewFunc[T any](compare func(a, b T) int) *Tree[T] {
	if compare == nil {
		panic("lazy: nil compare function")
	}
	return &Tree[T]{
		compare: compare,
		log:     slog.Default().With("system", "lazytree"),
	}
}

func (t *Tree[T]) SetLogger(logger *slog.Logger) {
	t.log = logger
}

// Root returns the root node, nil for a tree with no nodes. Stale nodes are included.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

func (t *Tree[T]) Empty() bool {
	return t.Size() == 0
}

// Size returns the number of live elements. Stale nodes are not counted.
func (t *Tree[T]) Size() int {
	return t.count
}

// Height of the physical tree, stale nodes included. -1 for a tree with no nodes.
func (t *Tree[T]) Height() int {
	return nodeHeight(t.root)
}

func (t *Tree[T]) Member(x T) bool {
	return nodeMember(t.root, x, t.compare)
}

// Front returns the smallest live element.
func (t *Tree[T]) Front() (T, error) {
	if t.Empty() {
		var zero T
		return zero, ErrUnderflow
	}
	v, _ := nodeFront(t.root)
	return v, nil
}

// Back returns the largest live element.
func (t *Tree[T]) Back() (T, error) {
	if t.Empty() {
		var zero T
		return zero, ErrUnderflow
	}
	v, _ := nodeBack(t.root)
	return v, nil
}

// Insert adds x, or revives it if it was erased. Returns false if x is already live.
func (t *Tree[T]) Insert(x T) bool {
	if t.root == nil {
		t.root = newNode(x)
		t.count = 1
		t.nodes = 1
		insertsCounter.WithLabelValues(resultOK).Inc()
		return true
	}
	inserted, created := nodeInsert(t.root, x, t.compare)
	if !inserted {
		insertsCounter.WithLabelValues(resultNoop).Inc()
		return false
	}
	t.count++
	if created {
		t.nodes++
	}
	insertsCounter.WithLabelValues(resultOK).Inc()
	return true
}

// Erase tags x as erased. Returns false if x is absent or already erased.
func (t *Tree[T]) Erase(x T) bool {
	if t.root == nil {
		erasesCounter.WithLabelValues(resultNoop).Inc()
		return false
	}
	if !nodeErase(t.root, x, t.compare) {
		erasesCounter.WithLabelValues(resultNoop).Inc()
		return false
	}
	t.count--
	erasesCounter.WithLabelValues(resultOK).Inc()
	return true
}

// Clear releases every node, live or stale.
func (t *Tree[T]) Clear() {
	if t.root == nil {
		return
	}
	released := nodeClear(t.root)
	t.root = nil
	t.count = 0
	t.nodes = 0
	nodesReleasedCounter.Add(float64(released))
	t.log.Debug("cleared tree", "released", released)
}

// Clean reclaims stale nodes in a single pass and returns how many were reclaimed. Live elements are kept; some may move to a different node.
func (t *Tree[T]) Clean() int {
	var reclaimed int
	t.root, reclaimed = nodeClean(t.root, t.compare)
	t.nodes -= reclaimed
	compactionsCounter.Inc()
	nodesReclaimedCounter.Add(float64(reclaimed))
	if t.log.Enabled(context.Background(), slog.LevelDebug) {
		t.log.Debug("compacted tree", "reclaimed", reclaimed, "size", t.count, "nodes", t.nodes, "height", t.Height())
	}
	return reclaimed
}

// Stats is a snapshot of a tree's bookkeeping.
type Stats struct {
	// live elements
	Size int
	// physical nodes, live and stale
	Nodes int
	// nodes tagged erased and not yet reclaimed
	Stale  int
	Height int
}

// StaleRatio is Stale/Nodes, or zero for a tree with no nodes.
func (s Stats) StaleRatio() float64 {
	if s.Nodes == 0 {
		return 0
	}
	return float64(s.Stale) / float64(s.Nodes)
}

func (t *Tree[T]) Stats() Stats {
	return Stats{
		Size:   t.count,
		Nodes:  t.nodes,
		Stale:  t.nodes - t.count,
		Height: t.Height(),
	}
}
