package lazy

import (
	"sync"
)

// Locked serializes all access to a Tree behind one mutex.
type Locked[T any] struct {
	mu   sync.Mutex
	tree *Tree[T]
}

// NewLocked takes ownership of tree; the caller must not use tree directly afterwards.
func NewLocked[T any](tree *Tree[T]) *Locked[T] {
	return &Locked[T]{tree: tree}
}

// Do runs fn with the lock held, for batches of operations that must not interleave with other callers.
func (l *Locked[T]) Do(fn func(t *Tree[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.tree)
}

func (l *Locked[T]) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Empty()
}

func (l *Locked[T]) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Size()
}

func (l *Locked[T]) Height() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Height()
}

func (l *Locked[T]) Member(x T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Member(x)
}

func (l *Locked[T]) Front() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Front()
}

func (l *Locked[T]) Back() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Back()
}

func (l *Locked[T]) Insert(x T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Insert(x)
}

func (l *Locked[T]) Erase(x T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Erase(x)
}

func (l *Locked[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tree.Clear()
}

func (l *Locked[T]) Clean() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Clean()
}

func (l *Locked[T]) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Stats()
}
