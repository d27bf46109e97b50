package spy_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/andrebq/jdwpspy/internal/store"
	"github.com/andrebq/jdwpspy/jdwp"
	"github.com/andrebq/jdwpspy/spy"
)

func TestRecordAndReplay(t *testing.T) {
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	ctx := context.Background()

	session := spy.NewSession()
	rec := &spy.StoreRecorder{Store: st, Session: session.ID}
	if err := rec.Begin(ctx, "127.0.0.1:5005", "vm:8000"); err != nil {
		t.Fatal(err)
	}
	frames := make([]byte, 12)
	binary.BigEndian.PutUint64(frames, 0x10)
	binary.BigEndian.PutUint32(frames[8:], 3)
	for _, pkt := range []struct {
		p      jdwp.Packet
		fromVM bool
	}{
		{jdwp.NewCommandPacket(1, 0, jdwp.VMIDSizes, nil), false},
		{idSizesReply(1, 8), true},
		{jdwp.NewCommandPacket(2, 0, jdwp.TRFrameCount, frames[:8]), false},
		{jdwp.NewReply(2, jdwp.ErrNone, frames[8:]), true},
	} {
		if err := rec.Record(ctx, pkt.p, pkt.fromVM); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	if err := spy.Replay(ctx, st, session.ID.String(), &out); err != nil {
		t.Fatal(err)
	}
	replay := out.String()
	for _, expected := range []string{
		fmt.Sprintf("%-38s%s", "Thread id:", "0x0000000000000010 (16)"),
		fmt.Sprintf("%-38s%s", "Frames count:", "0x00000003 (3)"),
	} {
		if !strings.Contains(replay, expected) {
			t.Fatalf("Missing %q in replay:\n%v", expected, replay)
		}
	}
	if strings.Count(replay, "From VM\n") != 2 || strings.Count(replay, "From Debugger\n") != 2 {
		t.Fatal("Directions should be preserved", replay)
	}

	out.Reset()
	if err := spy.ListSessions(ctx, st, &out); err != nil {
		t.Fatal(err)
	}
	if list := out.String(); !strings.Contains(list, session.ID.String()) || !strings.Contains(list, "vm:8000") {
		t.Fatal("Session should be listed with its target", list)
	}

	if err := spy.Replay(ctx, st, "missing", &out); !store.IsNotFound(err) {
		t.Fatal("Replaying an unknown session should fail", err)
	}
}
