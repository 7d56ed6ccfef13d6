package main

import (
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

// run writes command output to out; logs go to stderr.
func run(args []string, out io.Writer) error {

	app := cli.App{
		Writer:  out,
		Name:    "lazytree",
		Usage:   "drive and benchmark a lazy-deletion binary search tree",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity level (eg: warn, info, debug)",
				Value:   "warn",
				EnvVars: []string{"LAZYTREE_LOG_LEVEL", "LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "log output format: text or json",
				Value:   "text",
				EnvVars: []string{"LAZYTREE_LOG_FORMAT"},
			},
		},
		Before: func(cctx *cli.Context) error {
			_, err := configLogger(cctx, os.Stderr)
			return err
		},
	}
	app.Commands = []*cli.Command{
		cmdRun,
		cmdPrint,
		cmdBench,
	}
	return app.Run(args)
}
