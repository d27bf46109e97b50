package spy_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/andrebq/jdwpspy/jdwp"
	"github.com/andrebq/jdwpspy/spy"
)

func TestServe(t *testing.T) {
	vmLn, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer vmLn.Close()
	vmDone := make(chan error, 1)
	go func() {
		conn, err := vmLn.Accept()
		if err != nil {
			vmDone <- err
			return
		}
		defer conn.Close()
		hs := make([]byte, len(jdwp.Handshake))
		if _, err := io.ReadFull(conn, hs); err != nil {
			vmDone <- err
			return
		}
		conn.Write(hs)
		p, err := jdwp.ReadPacket(conn)
		if err != nil {
			vmDone <- err
			return
		}
		vmDone <- jdwp.WritePacket(conn, jdwp.NewReply(p.ID(), jdwp.ErrNone, []byte{0, 0, 0, 0}))
	}()

	spyLn, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	var trace bytes.Buffer
	relay := spy.NewRelay(spy.NewSession(), &trace)
	serveDone := make(chan error, 1)
	go func() { serveDone <- spy.Serve(context.Background(), spyLn, vmLn.Addr().String(), relay) }()

	dbg, err := net.Dial("tcp", spyLn.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	dbg.Write(jdwp.Handshake)
	hs := make([]byte, len(jdwp.Handshake))
	if _, err := io.ReadFull(dbg, hs); err != nil {
		t.Fatal(err)
	} else if !bytes.Equal(hs, jdwp.Handshake) {
		t.Fatal("Invalid handshake", string(hs))
	}
	jdwp.WritePacket(dbg, jdwp.NewCommandPacket(9, 0, jdwp.TRFrameCount, make([]byte, 8)))
	reply, err := jdwp.ReadPacket(dbg)
	if err != nil {
		t.Fatal(err)
	} else if reply.ID() != 9 || !reply.IsReply() {
		t.Fatal("Unexpected reply", reply)
	}
	if err := <-vmDone; err != nil {
		t.Fatal(err)
	}
	dbg.Close()

	select {
	case err := <-serveDone:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
	if !strings.Contains(trace.String(), "0x80 (REPLY to THREAD_REFERENCE - FRAME_COUNT)") {
		t.Fatal("Reply should be traced", trace.String())
	}
}

func TestServeCancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- spy.Serve(ctx, ln, "127.0.0.1:1", spy.NewRelay(spy.NewSession(), io.Discard)) }()
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatal("Expecting cancellation, got", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve ignored the context")
	}
}

// handshakeVM accepts one connection, answers the handshake and reads until
// the connection goes away.
func handshakeVM(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		hs := make([]byte, len(jdwp.Handshake))
		if _, err := io.ReadFull(conn, hs); err != nil {
			return
		}
		conn.Write(hs)
		io.Copy(io.Discard, conn)
	}()
	return ln
}

func TestConnectionResetEndsQuietly(t *testing.T) {
	vmLn := handshakeVM(t)
	spyLn, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	var trace bytes.Buffer
	relay := spy.NewRelay(spy.NewSession(), &trace)
	done := make(chan error, 1)
	go func() {
		done <- spy.Supervise(context.Background(), spyLn, vmLn.Addr().String(), relay, "127.0.0.1:0")
	}()

	dbg, err := net.Dial("tcp", spyLn.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	dbg.Write(jdwp.Handshake)
	hs := make([]byte, len(jdwp.Handshake))
	if _, err := io.ReadFull(dbg, hs); err != nil {
		t.Fatal(err)
	}
	dbg.(*net.TCPConn).SetLinger(0)
	dbg.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal("A reset connection should end the relay cleanly", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Relay did not stop after the reset")
	}
	if strings.Contains(trace.String(), "Caught exception") {
		t.Fatal("A reset connection should not be reported", trace.String())
	}
}

func TestSuperviseMetricsFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() {
		done <- spy.Supervise(context.Background(), ln, "127.0.0.1:1",
			spy.NewRelay(spy.NewSession(), io.Discard), "127.0.0.1:notaport")
	}()
	select {
	case err := <-done:
		if err == nil || errors.Is(err, context.Canceled) {
			t.Fatal("Expecting the metrics server failure, got", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("A failed metrics server should stop the relay")
	}
}
