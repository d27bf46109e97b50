package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/andrebq/jdwpspy/cmd/jdwpspy/spy"
	"github.com/urfave/cli/v2"
)

func Instance() *cli.App {
	loglevel := "info"
	relay := spy.RelayCmd()
	return &cli.App{
		Name:      "jdwpspy",
		Usage:     "Sits between a debugger and a JVM and prints every JDWP packet they exchange",
		ArgsUsage: relay.ArgsUsage,
		Commands: []*cli.Command{
			spy.CapturesCmd(),
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Verbosity of log, valid values are: debug, info, warn, error",
				EnvVars:     []string{"JDWPSPY_LOG_LEVEL"},
				Hidden:      false,
				Destination: &loglevel,
				Value:       loglevel,
			},
		}, relay.Flags...),
		Action: relay.Action,
		Before: func(ctx *cli.Context) error {
			level := slog.LevelInfo
			switch strings.ToLower(loglevel) {
			case "debug":
				level = slog.LevelDebug
			case "warn":
				level = slog.LevelWarn
			case "error":
				level = slog.LevelError
			}
			logger := slog.New(slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
			return nil
		},
	}
}

func Run(ctx context.Context, args []string) error {
	app := Instance()
	return app.RunContext(ctx, args)
}
