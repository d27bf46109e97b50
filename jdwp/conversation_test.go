package jdwp_test

import (
	"errors"
	"testing"

	"github.com/andrebq/jdwpspy/jdwp"
)

func TestCorrelation(t *testing.T) {
	tr := jdwp.NewTracker()
	cmd := jdwp.NewCommandPacket(5, 0, jdwp.VMIDSizes, nil)
	if err := tr.Store(cmd); err != nil {
		t.Fatal(err)
	}
	if err := tr.Store(jdwp.NewReply(5, jdwp.ErrNone, make([]byte, 20))); err != nil {
		t.Fatal(err)
	}
	found, ok := tr.Command(5)
	if !ok {
		t.Fatal("Command 5 should be found")
	} else if found != cmd {
		t.Fatal("Tracker returned a different command")
	}
	if conv, ok := tr.Conversation(5); !ok || conv.Reply == nil {
		t.Fatal("Conversation should have a reply")
	}
	if tr.Len() != 1 {
		t.Fatal("Command and reply share one conversation, got", tr.Len())
	}
}

func TestOrphanReply(t *testing.T) {
	tr := jdwp.NewTracker()
	if err := tr.Store(jdwp.NewReply(7, jdwp.ErrNone, nil)); err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.Command(7); ok {
		t.Fatal("Reply without a command must not resolve")
	}
	if _, ok := tr.Command(8); ok {
		t.Fatal("Unknown id must not resolve")
	}
	err := tr.Store(jdwp.NewReply(7, jdwp.ErrNone, nil))
	if !errors.Is(err, jdwp.ErrReplyOverwrite) {
		t.Fatal("Second reply should be rejected got", err)
	}
	if _, ok := tr.Command(7); ok {
		t.Fatal("Reply without a command must not resolve")
	}
}

func TestCommandOverwrite(t *testing.T) {
	tr := jdwp.NewTracker()
	first := jdwp.NewCommandPacket(1, 0, jdwp.VMVersion, nil)
	if err := tr.Store(first); err != nil {
		t.Fatal(err)
	}
	err := tr.Store(jdwp.NewCommandPacket(1, 0, jdwp.VMAllThreads, nil))
	if !errors.Is(err, jdwp.ErrCommandOverwrite) {
		t.Fatal("Expecting overwrite error got", err)
	}
	if found, _ := tr.Command(1); found != first {
		t.Fatal("Original command should be kept")
	}
}

func TestSizeRegistry(t *testing.T) {
	var reg jdwp.SizeRegistry
	if reg.HasSizes() {
		t.Fatal("Registry should start empty")
	}
	sizes, err := jdwp.ParseIDSizes([]byte{
		0, 0, 0, 8, 0, 0, 0, 8, 0, 0, 0, 8, 0, 0, 0, 8, 0, 0, 0, 8,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Set(sizes); err != nil {
		t.Fatal(err)
	}
	got, ok := reg.Get()
	if !ok {
		t.Fatal("Registry should be ready")
	}
	if got != (jdwp.IDSizes{FieldID: 8, MethodID: 8, ObjectID: 8, ReferenceTypeID: 8, FrameID: 8}) {
		t.Fatal("Unexpected sizes", got)
	}
	if err := reg.Set(jdwp.IDSizes{FieldID: 9, MethodID: 8, ObjectID: 8, ReferenceTypeID: 8, FrameID: 8}); !errors.Is(err, jdwp.ErrInvalidIDSize) {
		t.Fatal("Invalid sizes should be rejected got", err)
	}
}
