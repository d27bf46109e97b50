package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/andrebq/jdwpspy/internal/store"
)

func TestCaptures(t *testing.T) {
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	ctx := context.Background()

	versionCmd := uint16(0x0101)
	ops := st.Ops(true)
	caps := ops.Captures()
	for i, c := range []store.Capture{
		{Session: "a", PacketID: 1, Command: &versionCmd, Packet: []byte{0, 0, 0, 11, 0, 0, 0, 1, 0, 1, 1}},
		{Session: "a", FromVM: true, PacketID: 1, Flags: 0x80, ErrorCode: new(uint16), Packet: []byte{0, 0, 0, 11, 0, 0, 0, 1, 0x80, 0, 0}},
		{Session: "b", PacketID: 9, Packet: []byte{0, 0, 0, 11, 0, 0, 0, 9, 0, 1, 7}},
	} {
		seq, err := caps.Append(ctx, c)
		if err != nil {
			t.Fatal(err)
		}
		if c.Session == "a" && seq != int64(i+1) {
			t.Fatal("Sequence should grow per session", seq)
		} else if c.Session == "b" && seq != 1 {
			t.Fatal("Each session starts at one", seq)
		}
	}
	if err := ops.Close(); err != nil {
		t.Fatal(err)
	}

	ops = st.Ops(false)
	defer ops.Close()
	caps = ops.Captures()
	list, err := caps.List(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatal("Session a should have two packets", list)
	}
	if list[0].FromVM || list[0].Command == nil || *list[0].Command != versionCmd || list[0].ErrorCode != nil {
		t.Fatalf("Unexpected command capture: %#v", list[0])
	}
	if !list[1].FromVM || list[1].Flags != 0x80 || list[1].Command != nil || list[1].ErrorCode == nil {
		t.Fatalf("Unexpected reply capture: %#v", list[1])
	}

	sessions, err := caps.Sessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatal("Expecting two sessions", sessions)
	}
	for _, s := range sessions {
		if s.Session == "a" && (s.Packets != 2 || s.Bytes != 22) {
			t.Fatal("Invalid summary", s)
		}
	}

	if _, err := caps.List(ctx, "missing"); !errors.Is(err, store.ErrUnknownSession) {
		t.Fatal("Unknown session should fail", err)
	}
}
