package spy

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/sync/errgroup"
)

// Serve accepts one debugger on ln, connects to the VM at target and
// relays until either side disconnects. ln is closed before relaying starts.
func Serve(ctx context.Context, ln net.Listener, target string, r *Relay) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	slog.Info("Waiting for debugger", "addr", ln.Addr().String(), "session", r.Session.ID)
	debugger, err := ln.Accept()
	stop()
	ln.Close()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("spy: accepting debugger: %w", err)
	}
	slog.Info("Debugger connected", "remote", debugger.RemoteAddr().String())

	var dialer net.Dialer
	vm, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		debugger.Close()
		return fmt.Errorf("spy: connecting to %v: %w", target, err)
	}
	slog.Info("Connected to VM", "target", target)
	return r.Run(ctx, debugger, vm)
}

// Supervise runs Serve and, when metricsAddr is set, the metrics server for
// r. A failure in either stops the other, the metrics server stops once the
// relay is done.
func Supervise(ctx context.Context, ln net.Listener, target string, r *Relay, metricsAddr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)
	if metricsAddr != "" {
		if r.Metrics == nil {
			r.Metrics = NewMetrics()
		}
		group.Go(func() error {
			if err := ServeMetrics(ctx, metricsAddr, r.Metrics); err != nil {
				return fmt.Errorf("spy: metrics server: %w", err)
			}
			return nil
		})
	}
	group.Go(func() error {
		defer cancel()
		return Serve(ctx, ln, target, r)
	})
	return group.Wait()
}
