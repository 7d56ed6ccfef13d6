package lazy

import (
	"fmt"
	"iter"
	"strings"

	"github.com/xlab/treeprint"
)

// All yields live elements in ascending order.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		walkInOrder(t.root, yield)
	}
}

func walkInOrder[T any](n *Node[T], yield func(T) bool) bool {
	if n == nil {
		return true
	}
	if !walkInOrder(n.left, yield) {
		return false
	}
	if !n.erased && !yield(n.elem) {
		return false
	}
	return walkInOrder(n.right, yield)
}

// LevelOrder yields every node, stale ones included, breadth first: the root, then its children left to right, and so on. The bool is the node's erased flag.
func (t *Tree[T]) LevelOrder() iter.Seq2[T, bool] {
	return func(yield func(T, bool) bool) {
		if t.root == nil {
			return
		}
		queue := []*Node[T]{t.root}
		for len(queue) > 0 {
			n := queue[0]
			queue[0] = nil
			queue = queue[1:]
			if !yield(n.elem, n.erased) {
				return
			}
			if n.left != nil {
				queue = append(queue, n.left)
			}
			if n.right != nil {
				queue = append(queue, n.right)
			}
		}
	}
}

// FormatLevelOrder renders LevelOrder as space separated values, with an "x" after each erased value: "5 3x 8 ".
func FormatLevelOrder[T any](t *Tree[T]) string {
	var sb strings.Builder
	for v, erased := range t.LevelOrder() {
		fmt.Fprint(&sb, v)
		if erased {
			sb.WriteString("x")
		}
		sb.WriteString(" ")
	}
	return sb.String()
}

// Render draws the physical tree, stale nodes marked with "x". Empty child slots are drawn as "·" when the sibling exists, so left and right stay distinguishable.
func Render[T any](t *Tree[T]) string {
	if t.root == nil {
		return "(empty)\n"
	}
	tree := treeprint.NewWithRoot(nodeLabel(t.root))
	renderChildren(t.root, tree)
	return tree.String()
}

func renderChildren[T any](n *Node[T], branch treeprint.Tree) {
	if n.left == nil && n.right == nil {
		return
	}
	for _, child := range []*Node[T]{n.left, n.right} {
		if child == nil {
			branch.AddNode("·")
			continue
		}
		if child.left == nil && child.right == nil {
			branch.AddNode(nodeLabel(child))
			continue
		}
		renderChildren(child, branch.AddBranch(nodeLabel(child)))
	}
}

func nodeLabel[T any](n *Node[T]) string {
	if n.erased {
		return fmt.Sprintf("%vx", n.elem)
	}
	return fmt.Sprint(n.elem)
}
