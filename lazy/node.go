package lazy

// Node is a single position in the tree. A nil *Node is an empty subtree.
//
// Nodes are created and destroyed by Tree; observers only read them.
type Node[T any] struct {
	elem  T
	left  *Node[T]
	right *Node[T]
	// if true, elem is logically removed but the node is still linked
	erased bool
}

func newNode[T any](x T) *Node[T] {
	return &Node[T]{elem: x}
}

// Value returns the stored element, or the zero value for a nil node.
func (n *Node[T]) Value() T {
	if n == nil {
		var zero T
		return zero
	}
	return n.elem
}

// Erased reports whether the node is tagged erased. A nil node is not.
func (n *Node[T]) Erased() bool {
	return n != nil && n.erased
}

func (n *Node[T]) Left() *Node[T] {
	if n == nil {
		return nil
	}
	return n.left
}

func (n *Node[T]) Right() *Node[T] {
	if n == nil {
		return nil
	}
	return n.right
}

// Height of the sub-tree rooted at n, counting erased nodes. -1 for an empty sub-tree.
func nodeHeight[T any](n *Node[T]) int {
	if n == nil {
		return -1
	}
	return 1 + max(nodeHeight(n.left), nodeHeight(n.right))
}

// Reports whether x is stored in the sub-tree and not erased.
//
// An erased exact match does not end the search; descent continues into the right sub-tree.
func nodeMember[T any](n *Node[T], x T, compare func(a, b T) int) bool {
	for n != nil {
		c := compare(x, n.elem)
		if c == 0 && !n.erased {
			return true
		}
		if c < 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	return false
}

// Smallest live element of the sub-tree. The bool is false if the sub-tree holds no live element.
func nodeFront[T any](n *Node[T]) (T, bool) {
	if n == nil {
		var zero T
		return zero, false
	}
	if v, ok := nodeFront(n.left); ok {
		return v, true
	}
	if !n.erased {
		return n.elem, true
	}
	return nodeFront(n.right)
}

// Largest live element of the sub-tree; mirror image of nodeFront.
func nodeBack[T any](n *Node[T]) (T, bool) {
	if n == nil {
		var zero T
		return zero, false
	}
	if v, ok := nodeBack(n.right); ok {
		return v, true
	}
	if !n.erased {
		return n.elem, true
	}
	return nodeBack(n.left)
}

// Inserts x into the sub-tree rooted at n, which must not be nil.
//
// inserted is false if x is already present and live. created is true if a new leaf was linked in (as opposed to an erased node being revived).
func nodeInsert[T any](n *Node[T], x T, compare func(a, b T) int) (inserted, created bool) {
	for {
		c := compare(x, n.elem)
		switch {
		case c == 0:
			if n.erased {
				n.erased = false
				return true, false
			}
			return false, false
		case c < 0:
			if n.left == nil {
				n.left = newNode(x)
				return true, true
			}
			n = n.left
		default:
			if n.right == nil {
				n.right = newNode(x)
				return true, true
			}
			n = n.right
		}
	}
}

// Tags x as erased. Returns false if x is not in the sub-tree or is already erased.
func nodeErase[T any](n *Node[T], x T, compare func(a, b T) int) bool {
	for n != nil {
		c := compare(x, n.elem)
		if c == 0 {
			if n.erased {
				return false
			}
			n.erased = true
			return true
		}
		if c < 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	return false
}

// Unlinks every node of the sub-tree, children before parents. Returns the number of nodes released.
func nodeClear[T any](n *Node[T]) int {
	if n == nil {
		return 0
	}
	released := nodeClear(n.left) + nodeClear(n.right) + 1
	n.left, n.right = nil, nil
	return released
}

// Compacts the sub-tree rooted at n.
//
// Returns the link the caller must store in place of n (nil if n itself was reclaimed) and the number of nodes reclaimed in the sub-tree.
func nodeClean[T any](n *Node[T], compare func(a, b T) int) (*Node[T], int) {
	if n == nil {
		return nil, 0
	}

	if n.erased {
		// pull the in-order successor up first, then the predecessor
		if v, ok := nodeFront(n.right); ok {
			n.elem, n.erased = v, false
			nodeErase(n.right, v, compare)
		} else if v, ok := nodeBack(n.left); ok {
			n.elem, n.erased = v, false
			nodeErase(n.left, v, compare)
		}
	}

	var lr, rr int
	n.left, lr = nodeClean(n.left, compare)
	n.right, rr = nodeClean(n.right, compare)
	reclaimed := lr + rr

	if n.erased {
		// no live descendant existed, so both sub-trees were reclaimed above
		return nil, reclaimed + 1
	}
	return n, reclaimed
}
