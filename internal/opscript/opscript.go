// Package opscript parses and runs line-oriented scripts of tree operations, one command per line:
//
//	# comment
//	insert 5 3 8
//	erase 3
//	member 3
//	front
//	clean
//	bfs
package opscript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Kind string

const (
	KindInsert Kind = "insert"
	KindErase  Kind = "erase"
	KindMember Kind = "member"
	KindFront  Kind = "front"
	KindBack   Kind = "back"
	KindSize   Kind = "size"
	KindEmpty  Kind = "empty"
	KindHeight Kind = "height"
	KindClean  Kind = "clean"
	KindClear  Kind = "clear"
	KindPrint  Kind = "print"
	KindBFS    Kind = "bfs"
	KindVerify Kind = "verify"
	KindStats  Kind = "stats"
)

// number of arguments each kind takes; -1 means one or more
var arity = map[Kind]int{
	KindInsert: -1,
	KindErase:  -1,
	KindMember: 1,
	KindFront:  0,
	KindBack:   0,
	KindSize:   0,
	KindEmpty:  0,
	KindHeight: 0,
	KindClean:  0,
	KindClear:  0,
	KindPrint:  0,
	KindBFS:    0,
	KindVerify: 0,
	KindStats:  0,
}

var ErrSyntax = errors.New("op script syntax error")

type Op struct {
	Kind Kind
	Args []int64
	// 1-based source line
	Line int
}

// Parse reads a whole script. Errors wrap ErrSyntax and name the offending line.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		op, err := parseOp(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, lineno, err)
		}
		op.Line = lineno
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading op script: %w", err)
	}
	return ops, nil
}

func parseOp(fields []string) (Op, error) {
	kind := Kind(strings.ToLower(fields[0]))
	n, ok := arity[kind]
	if !ok {
		return Op{}, fmt.Errorf("unknown command %q", fields[0])
	}
	args := fields[1:]
	switch {
	case n < 0 && len(args) == 0:
		return Op{}, fmt.Errorf("%s needs at least one value", kind)
	case n >= 0 && len(args) != n:
		return Op{}, fmt.Errorf("%s takes %d values, got %d", kind, n, len(args))
	}
	op := Op{Kind: kind}
	for _, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return Op{}, fmt.Errorf("invalid value %q for %s", a, kind)
		}
		op.Args = append(op.Args, v)
	}
	return op, nil
}
