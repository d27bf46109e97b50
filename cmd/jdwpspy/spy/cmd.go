package spy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/andrebq/jdwpspy/internal/commonpaths"
	"github.com/andrebq/jdwpspy/internal/flagutil"
	"github.com/andrebq/jdwpspy/internal/store"
	"github.com/andrebq/jdwpspy/spy"
	"github.com/urfave/cli/v2"
)

const (
	envPrefix = "JDWPSPY"
	argsUsage = "<client port> <server host> <server port> [<output file>]"
)

type (
	relayArgs struct {
		listen string
		target string
		output string
	}
)

func RelayCmd() *cli.Command {
	captureDir := commonpaths.DefaultCaptureDir()
	noCapture := false
	var filterFile string
	var metricsAddr string
	return &cli.Command{
		Name:      "relay",
		Usage:     "Relays one debugger connection to a JVM printing every packet",
		ArgsUsage: argsUsage,
		Flags: []cli.Flag{
			flagutil.String(&captureDir, "capture-dir", nil, envPrefix, "Directory where relayed sessions are recorded", false),
			flagutil.Bool(&noCapture, "no-capture", nil, envPrefix, "Do not record relayed packets", false),
			flagutil.String(&filterFile, "filter", []string{"f"}, envPrefix, "Tengo script deciding which packets are printed", false),
			flagutil.String(&metricsAddr, "metrics-addr", nil, envPrefix, "Serve /metrics and /health/liveness on this address", false),
		},
		Action: func(ctx *cli.Context) error {
			args, err := parseArgs(ctx.Args().Slice())
			if err != nil {
				slog.Debug("Invalid arguments", "err", err)
				return cli.Exit(fmt.Sprintf("usage: jdwpspy %v", argsUsage), -1)
			}

			out, closeOutput := openOutput(ctx.App.Writer, args.output)
			defer closeOutput()

			session := spy.NewSession()
			relay := spy.NewRelay(session, out)

			if filterFile != "" {
				filter, err := loadFilter(filterFile)
				if err != nil {
					return err
				}
				relay.Filter = filter
			}

			if !noCapture {
				dir, err := commonpaths.Expand(captureDir)
				if err != nil {
					return err
				}
				st, err := store.Open(dir)
				if err != nil {
					return err
				}
				defer st.Close()
				rec := &spy.StoreRecorder{Store: st, Session: session.ID}
				if err := rec.Begin(ctx.Context, args.listen, args.target); err != nil {
					return err
				}
				relay.Recorder = rec
				slog.Info("Recording session", "session", session.ID, "dir", dir)
			}

			var lc net.ListenConfig
			ln, err := lc.Listen(ctx.Context, "tcp", args.listen)
			if err != nil {
				return err
			}
			err = spy.Supervise(ctx.Context, ln, args.target, relay, metricsAddr)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func parseArgs(args []string) (relayArgs, error) {
	if len(args) != 3 && len(args) != 4 {
		return relayArgs{}, fmt.Errorf("expecting 3 or 4 arguments, got %d", len(args))
	}
	clientPort, err := parsePort(args[0])
	if err != nil {
		return relayArgs{}, err
	}
	serverPort, err := parsePort(args[2])
	if err != nil {
		return relayArgs{}, err
	}
	ra := relayArgs{
		listen: net.JoinHostPort("", clientPort),
		target: net.JoinHostPort(args[1], serverPort),
	}
	if len(args) == 4 {
		ra.output = args[3]
	}
	return ra, nil
}

func parsePort(s string) (string, error) {
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil || port == 0 {
		return "", fmt.Errorf("invalid port %q", s)
	}
	return strconv.FormatUint(port, 10), nil
}

// openOutput opens the trace file, falling back to stdout when it cannot be created.
func openOutput(stdout io.Writer, name string) (io.Writer, func() error) {
	noop := func() error { return nil }
	if name == "" {
		return stdout, noop
	}
	f, err := os.Create(name)
	if err != nil {
		slog.Error("Unable to open output file, writing to stdout", "file", name, "err", err)
		return stdout, noop
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		abs = name
	}
	slog.Info("Writing output to", "file", abs)
	return f, f.Close
}

func loadFilter(name string) (*spy.ScriptFilter, error) {
	name, err := commonpaths.Expand(name)
	if err != nil {
		return nil, err
	}
	code, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read filter: %w", err)
	}
	return spy.NewScriptFilter(string(code), slog.Default())
}
