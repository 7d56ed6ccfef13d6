package opscript

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bluesky-social/lazytree/lazy"
)

// Runner applies ops to a tree and writes one result line per op (print writes the whole diagram).
type Runner struct {
	Tree   *lazy.Tree[int64]
	Out    io.Writer
	Logger *slog.Logger
}

func NewRunner(tree *lazy.Tree[int64], out io.Writer) *Runner {
	return &Runner{
		Tree:   tree,
		Out:    out,
		Logger: slog.Default().With("system", "opscript"),
	}
}

// Exec runs ops against tree, writing results to w.
func Exec(tree *lazy.Tree[int64], ops []Op, w io.Writer) error {
	return NewRunner(tree, w).Run(ops)
}

// Run stops at the first failing op. Only verify can fail; every other op reports its outcome as output.
func (r *Runner) Run(ops []Op) error {
	for _, op := range ops {
		if err := r.exec(op); err != nil {
			return fmt.Errorf("line %d (%s): %w", op.Line, op.Kind, err)
		}
	}
	r.Logger.Debug("op script done", "ops", len(ops), "size", r.Tree.Size())
	return nil
}

func (r *Runner) exec(op Op) error {
	t := r.Tree
	switch op.Kind {
	case KindInsert:
		for _, v := range op.Args {
			r.printf("insert %d %t\n", v, t.Insert(v))
		}
	case KindErase:
		for _, v := range op.Args {
			r.printf("erase %d %t\n", v, t.Erase(v))
		}
	case KindMember:
		r.printf("member %d %t\n", op.Args[0], t.Member(op.Args[0]))
	case KindFront:
		r.printBound("front", t.Front)
	case KindBack:
		r.printBound("back", t.Back)
	case KindSize:
		r.printf("size %d\n", t.Size())
	case KindEmpty:
		r.printf("empty %t\n", t.Empty())
	case KindHeight:
		r.printf("height %d\n", t.Height())
	case KindClean:
		r.printf("clean reclaimed=%d\n", t.Clean())
	case KindClear:
		t.Clear()
		r.printf("clear\n")
	case KindPrint:
		r.printf("%s", lazy.Render(t))
	case KindBFS:
		r.printf("bfs %s\n", strings.TrimSpace(lazy.FormatLevelOrder(t)))
	case KindVerify:
		report, err := t.VerifyReport()
		if err != nil {
			return err
		}
		r.printf("verify ok live=%d erased=%d nodes=%d height=%d\n", report.Live, report.Erased, report.Nodes, report.Height)
	case KindStats:
		s := t.Stats()
		r.printf("stats size=%d nodes=%d stale=%d height=%d\n", s.Size, s.Nodes, s.Stale, s.Height)
	default:
		return fmt.Errorf("unknown command %q", op.Kind)
	}
	return nil
}

func (r *Runner) printBound(name string, fn func() (int64, error)) {
	v, err := fn()
	if errors.Is(err, lazy.ErrUnderflow) {
		r.printf("%s underflow\n", name)
		return
	}
	r.printf("%s %d\n", name, v)
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Out, format, args...) // nolint:errcheck
}
