package lazy

import (
	"bytes"
	"log/slog"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyTree(t *testing.T) {
	assert := assert.New(t)

	tree := New[int]()
	assert.True(tree.Empty())
	assert.Equal(0, tree.Size())
	assert.Equal(-1, tree.Height())
	assert.False(tree.Member(1))
	assert.False(tree.Erase(1))
	assert.Nil(tree.Root())

	_, err := tree.Front()
	assert.ErrorIs(err, ErrUnderflow)
	_, err = tree.Back()
	assert.ErrorIs(err, ErrUnderflow)

	// no-ops on an empty tree
	tree.Clear()
	assert.Equal(0, tree.Clean())
	assert.NoError(tree.Verify())
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	tree := New[int]()
	assert.True(tree.Insert(42))
	assert.True(tree.Member(42))
	assert.Equal(1, tree.Size())

	assert.True(tree.Erase(42))
	assert.False(tree.Member(42))
	assert.Equal(0, tree.Size())
	assert.True(tree.Empty())
	// the node is still there
	assert.Equal(0, tree.Height())

	assert.True(tree.Insert(42))
	assert.True(tree.Member(42))
	assert.Equal(1, tree.Size())
	assert.Equal(1, tree.Stats().Nodes)
}

func TestIdempotence(t *testing.T) {
	assert := assert.New(t)

	tree := New[int]()
	for _, v := range []int{5, 3, 8} {
		assert.True(tree.Insert(v))
	}
	before := FormatLevelOrder(tree)

	assert.False(tree.Insert(3))
	assert.Equal(3, tree.Size())
	assert.Equal(before, FormatLevelOrder(tree))

	assert.True(tree.Erase(3))
	assert.False(tree.Erase(3))
	assert.False(tree.Erase(7))
	assert.Equal(2, tree.Size())
}

func TestFrontBack(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	tree := New[int]()
	for _, v := range []int{5, 3, 8, 1, 9} {
		require.True(tree.Insert(v))
	}

	front, err := tree.Front()
	require.NoError(err)
	assert.Equal(1, front)
	back, err := tree.Back()
	require.NoError(err)
	assert.Equal(9, back)

	require.True(tree.Erase(1))
	front, err = tree.Front()
	require.NoError(err)
	assert.Equal(3, front)

	require.True(tree.Erase(9))
	back, err = tree.Back()
	require.NoError(err)
	assert.Equal(8, back)

	for _, v := range []int{3, 5, 8} {
		require.True(tree.Erase(v))
	}
	_, err = tree.Front()
	assert.ErrorIs(err, ErrUnderflow)
	_, err = tree.Back()
	assert.ErrorIs(err, ErrUnderflow)
}

func TestMemberErasedRoot(t *testing.T) {
	assert := assert.New(t)

	tree := New[int]()
	for _, v := range []int{5, 3, 8} {
		tree.Insert(v)
	}
	tree.Erase(5)
	assert.False(tree.Member(5))
	assert.True(tree.Member(3))
	assert.True(tree.Member(8))
}

func TestHeight(t *testing.T) {
	assert := assert.New(t)

	tree := New[int]()
	for _, v := range []int{5, 3, 8, 1} {
		tree.Insert(v)
	}
	assert.Equal(2, tree.Height())

	tree.Erase(1)
	assert.Equal(2, tree.Height())
	assert.Equal(1, tree.Stats().Stale)

	assert.Equal(1, tree.Clean())
	assert.Equal(1, tree.Height())
	assert.Equal(0, tree.Stats().Stale)
}

func TestCleanRoot(t *testing.T) {
	assert := assert.New(t)

	tree := New[int]()
	tree.Insert(7)
	tree.Erase(7)
	assert.Equal(1, tree.Clean())
	assert.Nil(tree.Root())
	assert.Equal(-1, tree.Height())
	assert.True(tree.Empty())
	assert.NoError(tree.Verify())

	assert.True(tree.Insert(7))
	assert.Equal(1, tree.Size())
}

func TestCleanErasedChain(t *testing.T) {
	assert := assert.New(t)

	tree := New[int]()
	for v := 1; v <= 5; v++ {
		tree.Insert(v)
	}
	for v := 1; v <= 3; v++ {
		tree.Erase(v)
	}
	assert.Equal(4, tree.Height())

	assert.Equal(3, tree.Clean())
	assert.Equal("4 5 ", FormatLevelOrder(tree))
	assert.Equal(2, tree.Size())

	r, err := tree.VerifyReport()
	assert.NoError(err)
	assert.Equal(Report{Live: 2, Erased: 0, Nodes: 2, Height: 1}, r)
}

func TestClear(t *testing.T) {
	assert := assert.New(t)

	tree := New[int]()
	for _, v := range []int{5, 3, 8, 1, 9} {
		tree.Insert(v)
	}
	tree.Erase(8)
	tree.Clear()
	assert.True(tree.Empty())
	assert.Equal(-1, tree.Height())
	assert.Equal(Stats{Height: -1}, tree.Stats())

	assert.True(tree.Insert(8))
	assert.Equal(1, tree.Size())
	assert.Equal(0, tree.Height())
	assert.NoError(tree.Verify())
}

func TestCustomCompare(t *testing.T) {
	assert := assert.New(t)

	// case-insensitive ordering: "B" and "b" are the same element
	tree := NewFunc(func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	assert.True(tree.Insert("b"))
	assert.True(tree.Insert("A"))
	assert.False(tree.Insert("B"))
	assert.True(tree.Member("a"))

	front, err := tree.Front()
	assert.NoError(err)
	assert.Equal("A", front)

	assert.Panics(func() { NewFunc[int](nil) })
}

// random operations checked against a map, with compaction mixed in
func TestRandomOps(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	rng := rand.New(rand.NewSource(1234))
	tree := New[int]()
	present := make(map[int]bool)

	for i := 0; i < 5000; i++ {
		v := rng.Intn(300)
		switch rng.Intn(10) {
		case 0:
			heightBefore := tree.Height()
			tree.Clean()
			assert.LessOrEqual(tree.Height(), heightBefore)
			require.Equal(0, tree.Stats().Stale)
		case 1, 2, 3, 4:
			assert.Equal(!present[v], tree.Insert(v))
			present[v] = true
		default:
			assert.Equal(present[v], tree.Erase(v))
			delete(present, v)
		}
		require.Equal(len(present), tree.Size())
		if i%100 == 0 {
			require.NoError(tree.Verify())
		}
	}

	expect := make([]int, 0, len(present))
	for v := range present {
		expect = append(expect, v)
	}
	slices.Sort(expect)
	assert.Equal(expect, slices.Collect(tree.All()))

	tree.Clean()
	assert.Equal(expect, slices.Collect(tree.All()))
	for v := 0; v < 300; v++ {
		assert.Equal(present[v], tree.Member(v))
	}
	r, err := tree.VerifyReport()
	require.NoError(err)
	assert.Equal(0, r.Erased)
	assert.Equal(len(present), r.Nodes)
}

func TestCleanLogsHeight(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	tree := sampleTree()
	tree.SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	tree.Erase(1)
	tree.Clean()
	assert.Contains(buf.String(), `"msg":"compacted tree"`)
	assert.Contains(buf.String(), `"reclaimed":1`)
	assert.Contains(buf.String(), `"height":2`)

	// nothing is written above the handler's level
	buf.Reset()
	tree.SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	tree.Clean()
	assert.Empty(buf.String())
}
