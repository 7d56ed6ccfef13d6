package opscript

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bluesky-social/lazytree/lazy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	script := `
# build a small tree
insert 5 3 8   # trailing comment
ERASE 3

member 3
front
bfs
`
	ops, err := Parse(strings.NewReader(script))
	assert.NoError(err)
	assert.Equal([]Op{
		{Kind: KindInsert, Args: []int64{5, 3, 8}, Line: 3},
		{Kind: KindErase, Args: []int64{3}, Line: 4},
		{Kind: KindMember, Args: []int64{3}, Line: 6},
		{Kind: KindFront, Line: 7},
		{Kind: KindBFS, Line: 8},
	}, ops)
}

func TestParseErrors(t *testing.T) {
	assert := assert.New(t)

	for _, script := range []string{
		"bogus 1",
		"insert",
		"member",
		"member 1 2",
		"front 1",
		"insert 1 x",
		"erase 99999999999999999999",
	} {
		_, err := Parse(strings.NewReader("size\n" + script))
		assert.ErrorIs(err, ErrSyntax, script)
		assert.Contains(err.Error(), "line 2", script)
	}
}

func TestRun(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	script := `
insert 5 3 8 1 9
insert 3
erase 1
erase 1
member 1
member 8
front
back
size
empty
height
bfs
stats
clean
height
verify
clear
front
back
empty
`
	ops, err := Parse(strings.NewReader(script))
	require.NoError(err)

	var out bytes.Buffer
	r := NewRunner(lazy.New[int64](), &out)
	require.NoError(r.Run(ops))

	assert.Equal(`insert 5 true
insert 3 true
insert 8 true
insert 1 true
insert 9 true
insert 3 false
erase 1 true
erase 1 false
member 1 false
member 8 true
front 3
back 9
size 4
empty false
height 2
bfs 5 3 8 1x 9
stats size=4 nodes=5 stale=1 height=2
clean reclaimed=1
height 2
verify ok live=4 erased=0 nodes=4 height=2
clear
front underflow
back underflow
empty true
`, out.String())
}

func TestRunPrint(t *testing.T) {
	assert := assert.New(t)

	ops, err := Parse(strings.NewReader("insert 2 1 3\nerase 3\nprint\n"))
	assert.NoError(err)

	var out bytes.Buffer
	assert.NoError(NewRunner(lazy.New[int64](), &out).Run(ops))
	assert.Contains(out.String(), "3x")
	assert.Contains(out.String(), "1")
}

func TestExec(t *testing.T) {
	assert := assert.New(t)

	ops, err := Parse(strings.NewReader("insert 4 2\nerase 4\nfront\nback\nverify\n"))
	assert.NoError(err)

	var out bytes.Buffer
	tree := lazy.New[int64]()
	assert.NoError(Exec(tree, ops, &out))
	assert.Equal("insert 4 true\ninsert 2 true\nerase 4 true\nfront 2\nback 2\nverify ok live=1 erased=1 nodes=2 height=1\n", out.String())
	assert.Equal(1, tree.Size())
}
