package lazy

import (
	"fmt"
)

// Report summarizes a full walk of the tree.
type Report struct {
	Live   int
	Erased int
	Nodes  int
	Height int
}

// Verify walks every node and checks ordering and bookkeeping. Errors wrap ErrInvalidTree.
func (t *Tree[T]) Verify() error {
	_, err := t.VerifyReport()
	return err
}

// VerifyReport is Verify, also returning what the walk counted.
func (t *Tree[T]) VerifyReport() (Report, error) {
	var r Report
	r.Height = -1
	if err := t.verifyNode(t.root, nil, nil, 0, &r); err != nil {
		return r, err
	}
	if r.Live != t.count {
		return r, fmt.Errorf("%w: count is %d but %d live nodes are reachable", ErrInvalidTree, t.count, r.Live)
	}
	if r.Nodes != t.nodes {
		return r, fmt.Errorf("%w: node count is %d but %d nodes are reachable", ErrInvalidTree, t.nodes, r.Nodes)
	}
	return r, nil
}

// lo and hi are exclusive bounds inherited from ancestors; nil means unbounded.
func (t *Tree[T]) verifyNode(n *Node[T], lo, hi *T, depth int, r *Report) error {
	if n == nil {
		return nil
	}
	if lo != nil && t.compare(n.elem, *lo) <= 0 {
		return fmt.Errorf("%w: %v at depth %d not greater than ancestor %v", ErrInvalidTree, n.elem, depth, *lo)
	}
	if hi != nil && t.compare(n.elem, *hi) >= 0 {
		return fmt.Errorf("%w: %v at depth %d not less than ancestor %v", ErrInvalidTree, n.elem, depth, *hi)
	}

	r.Nodes++
	if n.erased {
		r.Erased++
	} else {
		r.Live++
	}
	r.Height = max(r.Height, depth)

	if err := t.verifyNode(n.left, lo, &n.elem, depth+1, r); err != nil {
		return err
	}
	return t.verifyNode(n.right, &n.elem, hi, depth+1, r)
}
