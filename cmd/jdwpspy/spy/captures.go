package spy

import (
	"fmt"

	"github.com/andrebq/jdwpspy/internal/commonpaths"
	"github.com/andrebq/jdwpspy/internal/flagutil"
	"github.com/andrebq/jdwpspy/internal/store"
	"github.com/andrebq/jdwpspy/spy"
	"github.com/urfave/cli/v2"
)

func CapturesCmd() *cli.Command {
	envPrefix := fmt.Sprintf("%v_%v", envPrefix, "CAPTURES")
	captureDir := commonpaths.DefaultCaptureDir()
	var st *store.Store
	return &cli.Command{
		Name:  "captures",
		Usage: "Inspect sessions recorded while relaying",
		Flags: []cli.Flag{
			flagutil.String(&captureDir, "capture-dir", nil, envPrefix, "Directory where relayed sessions are recorded", false),
		},
		Before: func(ctx *cli.Context) error {
			dir, err := commonpaths.Expand(captureDir)
			if err != nil {
				return err
			}
			st, err = store.Open(dir)
			return err
		},
		After: func(ctx *cli.Context) error {
			if st == nil {
				return nil
			}
			return st.Close()
		},
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded sessions",
				Action: func(ctx *cli.Context) error {
					return spy.ListSessions(ctx.Context, st, ctx.App.Writer)
				},
			},
			{
				Name:      "show",
				Usage:     "Print a recorded session as it was printed while relaying",
				ArgsUsage: "<session>",
				Action: func(ctx *cli.Context) error {
					if ctx.Args().Len() != 1 {
						return cli.Exit("usage: jdwpspy captures show <session>", -1)
					}
					return spy.Replay(ctx.Context, st, ctx.Args().First(), ctx.App.Writer)
				},
			},
		},
	}
}
