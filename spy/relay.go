package spy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/andrebq/jdwpspy/jdwp"
	"github.com/andrebq/jdwpspy/jdwp/verbose"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

type (
	// Relay forwards packets between a debugger and a VM without changing
	// them, printing each one to the trace.
	Relay struct {
		Session   *Session
		Formatter *verbose.Formatter

		// Optional
		Filter   Filter
		Recorder Recorder
		Metrics  *Metrics

		traceLock sync.Mutex
		trace     io.Writer

		stats [2]struct {
			packets atomic.Int64
			bytes   atomic.Int64
		}
	}
)

func NewRelay(session *Session, trace io.Writer) *Relay {
	return &Relay{
		Session:   session,
		Formatter: verbose.New(session),
		trace:     trace,
	}
}

// Run relays until one side closes its connection or ctx is done.
// Both connections are closed when Run returns.
func (r *Relay) Run(ctx context.Context, debugger, vm io.ReadWriteCloser) error {
	r.Metrics.sessionStarted()
	defer r.Metrics.sessionEnded()

	group, ctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(ctx, func() {
		debugger.Close()
		vm.Close()
	})
	defer stop()
	group.Go(func() error { return r.pump(ctx, vm, debugger, false) })
	group.Go(func() error { return r.pump(ctx, debugger, vm, true) })
	err := group.Wait()
	slog.Info("Session finished", "session", r.Session.ID,
		"conversations", r.Session.Tracker.Len(),
		"debuggerToVM", humanize.Bytes(uint64(r.stats[0].bytes.Load())),
		"debuggerPackets", r.stats[0].packets.Load(),
		"vmToDebugger", humanize.Bytes(uint64(r.stats[1].bytes.Load())),
		"vmPackets", r.stats[1].packets.Load())
	return err
}

func (r *Relay) pump(ctx context.Context, to io.WriteCloser, from io.ReadCloser, fromVM bool) error {
	defer to.Close()
	defer from.Close()
	log := slog.With("session", r.Session.ID, "direction", direction(fromVM))

	hs := make([]byte, len(jdwp.Handshake))
	if _, err := io.ReadFull(from, hs); err != nil {
		return r.end(log, err)
	}
	if !bytes.Equal(hs, jdwp.Handshake) {
		log.Warn("Unexpected handshake", "handshake", string(hs))
	}
	if _, err := to.Write(hs); err != nil {
		return r.end(log, err)
	}

	for {
		p, err := jdwp.ReadPacket(from)
		if err != nil {
			return r.end(log, err)
		}
		r.inspect(ctx, log, p, fromVM)
		if err := jdwp.WritePacket(to, p); err != nil {
			return r.end(log, err)
		}
		stats := &r.stats[0]
		if fromVM {
			stats = &r.stats[1]
		}
		stats.packets.Add(1)
		stats.bytes.Add(int64(p.Length()))
	}
}

func (r *Relay) inspect(ctx context.Context, log *slog.Logger, p jdwp.Packet, fromVM bool) {
	if err := r.Session.Observe(p, fromVM); err != nil {
		log.Warn("Protocol violation", "id", p.ID(), "err", err)
		r.printf("%v\n\n", err)
	}
	r.Metrics.packet(p, fromVM)

	keep := true
	if r.Filter != nil {
		cmd, _ := r.Session.CommandOf(p)
		var err error
		keep, err = r.Filter.Keep(ctx, p, cmd, fromVM)
		if err != nil {
			log.Warn("Filter failed, packet will be printed", "id", p.ID(), "err", err)
			keep = true
		}
	}
	if keep {
		r.traceLock.Lock()
		err := r.Formatter.Print(r.trace, p, fromVM)
		r.traceLock.Unlock()
		switch {
		case verbose.IsDecodeError(err):
			r.Metrics.decodeFailed(fromVM)
			log.Debug("Unable to decode packet", "id", p.ID(), "err", err)
		case err != nil:
			log.Error("Unable to write trace", "err", err)
		}
	}

	if r.Recorder != nil {
		if err := r.Recorder.Record(ctx, p, fromVM); err != nil {
			log.Error("Unable to record packet", "id", p.ID(), "err", err)
		}
	}
}

func (r *Relay) printf(format string, args ...any) {
	r.traceLock.Lock()
	defer r.traceLock.Unlock()
	fmt.Fprintf(r.trace, format, args...)
}

// end turns the error which stopped a worker into its result. A closed or
// broken connection is the normal way for a session to finish, anything else
// (a truncated packet, an invalid length) is printed to the trace.
func (r *Relay) end(log *slog.Logger, err error) error {
	if isClosed(err) {
		log.Debug("Worker finished", "reason", err)
		return nil
	}
	r.printf("Caught exception: %v\n", err)
	log.Error("Worker failed", "err", err)
	return fmt.Errorf("spy: %w", err)
}

func isClosed(err error) bool {
	if errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "read" || opErr.Op == "write"
	}
	return false
}
