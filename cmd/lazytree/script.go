package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bluesky-social/lazytree/internal/opscript"
	"github.com/bluesky-social/lazytree/lazy"
)

var cmdRun = &cli.Command{
	Name:      "run",
	Usage:     "execute an op script against an empty tree, printing each result",
	ArgsUsage: `<script-file | ->`,
	Action:    runRun,
}

var cmdPrint = &cli.Command{
	Name:      "print",
	Usage:     "execute an op script silently, then draw the resulting tree",
	ArgsUsage: `<script-file | ->`,
	Action:    runPrint,
}

func loadScript(cctx *cli.Context) ([]opscript.Op, error) {
	f, err := getFileOrStdin(cctx.Args().First())
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return opscript.Parse(f)
}

func runRun(cctx *cli.Context) error {
	ops, err := loadScript(cctx)
	if err != nil {
		return err
	}
	return opscript.Exec(lazy.New[int64](), ops, cctx.App.Writer)
}

func runPrint(cctx *cli.Context) error {
	ops, err := loadScript(cctx)
	if err != nil {
		return err
	}
	tree := lazy.New[int64]()
	if err := opscript.Exec(tree, ops, io.Discard); err != nil {
		return err
	}
	out := cctx.App.Writer
	fmt.Fprint(out, lazy.Render(tree))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "level order: %s\n", strings.TrimSpace(lazy.FormatLevelOrder(tree)))
	s := tree.Stats()
	fmt.Fprintf(out, "size=%d nodes=%d stale=%d height=%d\n", s.Size, s.Nodes, s.Stale, s.Height)
	return nil
}
