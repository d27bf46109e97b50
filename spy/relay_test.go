package spy_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/andrebq/jdwpspy/jdwp"
	"github.com/andrebq/jdwpspy/jdwp/verbose"
	"github.com/andrebq/jdwpspy/spy"
)

type harness struct {
	debugger net.Conn
	vm       net.Conn
	session  *spy.Session
	trace    *bytes.Buffer
	done     chan error
}

func startRelay(t *testing.T, configure func(*spy.Relay)) *harness {
	t.Helper()
	dbgTest, dbgSpy := net.Pipe()
	vmTest, vmSpy := net.Pipe()
	h := &harness{
		debugger: dbgTest,
		vm:       vmTest,
		session:  spy.NewSession(),
		trace:    &bytes.Buffer{},
		done:     make(chan error, 1),
	}
	t.Cleanup(func() {
		dbgTest.Close()
		vmTest.Close()
	})
	r := spy.NewRelay(h.session, h.trace)
	if configure != nil {
		configure(r)
	}
	go func() { h.done <- r.Run(context.Background(), dbgSpy, vmSpy) }()

	h.exchange(t, h.debugger, h.vm, jdwp.Handshake)
	h.exchange(t, h.vm, h.debugger, jdwp.Handshake)
	return h
}

func (h *harness) exchange(t *testing.T, from, to net.Conn, data []byte) {
	t.Helper()
	if _, err := from.Write(data); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, len(data))
	if _, err := io.ReadFull(to, buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, data) {
		t.Fatalf("Expecting %q got %q", data, buf)
	}
}

// send writes p on from and checks that the same bytes arrive on to.
func (h *harness) send(t *testing.T, from, to net.Conn, p jdwp.Packet) {
	t.Helper()
	if err := jdwp.WritePacket(from, p); err != nil {
		t.Fatal(err)
	}
	got, err := jdwp.ReadPacket(to)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(jdwp.Marshal(got), jdwp.Marshal(p)) {
		t.Fatal("Packet changed while relayed", got, p)
	}
}

func (h *harness) finish(t *testing.T) string {
	t.Helper()
	h.debugger.Close()
	select {
	case err := <-h.done:
		if err != nil {
			t.Fatal("Relay should end cleanly", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Relay did not stop after the debugger left")
	}
	return h.trace.String()
}

func idSizesReply(id int32, width int32) *jdwp.ReplyPacket {
	data := make([]byte, 20)
	for i := 0; i < 5; i++ {
		binary.BigEndian.PutUint32(data[i*4:], uint32(width))
	}
	return jdwp.NewReply(id, jdwp.ErrNone, data)
}

func TestRelayDecodes(t *testing.T) {
	h := startRelay(t, nil)
	h.send(t, h.debugger, h.vm, jdwp.NewCommandPacket(1, 0, jdwp.VMIDSizes, nil))
	h.send(t, h.vm, h.debugger, idSizesReply(1, 8))
	h.send(t, h.debugger, h.vm, jdwp.NewCommandPacket(2, 0, jdwp.VMAllThreads, nil))
	threads := make([]byte, 12)
	binary.BigEndian.PutUint32(threads, 1)
	binary.BigEndian.PutUint64(threads[4:], 0x42)
	h.send(t, h.vm, h.debugger, jdwp.NewReply(2, jdwp.ErrNone, threads))
	trace := h.finish(t)

	if !h.session.Sizes.HasSizes() {
		t.Fatal("Sizes should be known after the ID_SIZES reply")
	}
	for _, expected := range []string{
		"From Debugger\n",
		"From VM\n",
		"0x80 (REPLY to VIRTUAL_MACHINE - ID_SIZES)",
		"Object ID size:",
		"0x0000000000000042 (66)",
	} {
		if !strings.Contains(trace, expected) {
			t.Fatalf("Missing %q in trace:\n%v", expected, trace)
		}
	}
}

func TestOrphanRepliesKeepFlowing(t *testing.T) {
	h := startRelay(t, nil)
	h.send(t, h.vm, h.debugger, jdwp.NewReply(77, jdwp.ErrNone, []byte{1}))
	h.send(t, h.vm, h.debugger, jdwp.NewReply(77, jdwp.ErrNone, []byte{2}))
	h.send(t, h.debugger, h.vm, jdwp.NewCommandPacket(1, 0, jdwp.VMVersion, nil))
	trace := h.finish(t)

	if _, ok := h.session.Command(77); ok {
		t.Fatal("Orphan reply must not resolve to a command")
	}
	if strings.Count(trace, verbose.ErrUnknownConversation.Error()) != 2 {
		t.Fatal("Both replies should be reported", trace)
	}
	if !strings.Contains(trace, jdwp.ErrReplyOverwrite.Error()) {
		t.Fatal("Second reply should be reported as a protocol violation", trace)
	}
	if !strings.Contains(trace, "0x01 (VERSION)") {
		t.Fatal("Command after the orphans should be printed", trace)
	}
}

func TestEventsDoNotClobberCommands(t *testing.T) {
	h := startRelay(t, nil)
	h.send(t, h.debugger, h.vm, jdwp.NewCommandPacket(1, 0, jdwp.VMIDSizes, nil))
	event := []byte{0, 0, 0, 0, 1, 99, 0, 0, 0, 0}
	h.send(t, h.vm, h.debugger, jdwp.NewCommandPacket(1, 0, jdwp.EComposite, event))
	h.send(t, h.vm, h.debugger, idSizesReply(1, 4))
	trace := h.finish(t)

	if sizes, ok := h.session.IDSizes(); !ok || sizes.ObjectID != 4 {
		t.Fatal("ID sizes should come from the reply", sizes, ok)
	}
	if !strings.Contains(trace, "0x63 (VM_DEATH)") {
		t.Fatal("Event should be decoded", trace)
	}
}

func TestRelayFilter(t *testing.T) {
	filter, err := spy.NewScriptFilter(`return !reply`, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	h := startRelay(t, func(r *spy.Relay) { r.Filter = filter })
	h.send(t, h.debugger, h.vm, jdwp.NewCommandPacket(1, 0, jdwp.VMIDSizes, nil))
	h.send(t, h.vm, h.debugger, idSizesReply(1, 8))
	trace := h.finish(t)

	if strings.Contains(trace, "REPLY") {
		t.Fatal("Replies should be filtered out", trace)
	}
	if !h.session.Sizes.HasSizes() {
		t.Fatal("Filtered packets must still update the session")
	}
}

func TestWorkerFailure(t *testing.T) {
	h := startRelay(t, nil)
	// a header announcing a payload which never arrives
	go func() {
		h.vm.Write([]byte{0, 0, 0, 20, 0, 0, 0, 1, 0x80, 0, 0})
		h.vm.Close()
	}()
	select {
	case err := <-h.done:
		if err == nil {
			t.Fatal("Truncated packets should end the relay with an error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Relay did not stop")
	}
	if !strings.Contains(h.trace.String(), "Caught exception: ") {
		t.Fatal("Failure should be printed to the trace", h.trace.String())
	}
}
