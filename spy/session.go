// Package spy relays a JDWP connection between a debugger and a VM while
// printing every packet that crosses it.
package spy

import (
	"fmt"

	"github.com/andrebq/jdwpspy/jdwp"
	"github.com/google/uuid"
)

type (
	// Session holds the protocol state of one debugger/VM connection.
	// Nothing is shared between sessions.
	Session struct {
		ID      uuid.UUID
		Tracker *jdwp.Tracker
		Sizes   *jdwp.SizeRegistry
		// IDs numbers commands originated by the spy itself.
		IDs *jdwp.IDGenerator
	}

	errMsg string
)

const (
	ErrNotBoolean = errMsg("filter output must be a bool")
)

func (e errMsg) Error() string { return string(e) }

func NewSession() *Session {
	return &Session{
		ID:      uuid.New(),
		Tracker: jdwp.NewTracker(),
		Sizes:   &jdwp.SizeRegistry{},
		IDs:     &jdwp.IDGenerator{},
	}
}

func (s *Session) IDSizes() (jdwp.IDSizes, bool) {
	return s.Sizes.Get()
}

func (s *Session) Command(id int32) (*jdwp.CommandPacket, bool) {
	return s.Tracker.Command(id)
}

// CommandOf returns the command p belongs to, for replies the command is
// resolved through the tracker.
func (s *Session) CommandOf(p jdwp.Packet) (jdwp.Command, bool) {
	switch p := p.(type) {
	case *jdwp.CommandPacket:
		return p.Command, true
	case *jdwp.ReplyPacket:
		if cmd, ok := s.Command(p.ID()); ok {
			return cmd.Command, true
		}
	}
	return 0, false
}

// Observe updates the session with a packet seen on the wire.
//
// Commands sent by the VM are events, their ids come from a different
// space and are not tracked. A successful ID_SIZES reply sets the widths
// used to decode every later packet.
func (s *Session) Observe(p jdwp.Packet, fromVM bool) error {
	if fromVM && !p.IsReply() {
		return nil
	}
	if err := s.Tracker.Store(p); err != nil {
		return fmt.Errorf("spy: %w", err)
	}
	reply, ok := p.(*jdwp.ReplyPacket)
	if !ok || reply.ErrorCode != jdwp.ErrNone {
		return nil
	}
	cmd, ok := s.Tracker.Command(reply.ID())
	if !ok || cmd.Command != jdwp.VMIDSizes {
		return nil
	}
	sizes, err := jdwp.ParseIDSizes(reply.Data())
	if err != nil {
		return fmt.Errorf("spy: %w", err)
	}
	return s.Sizes.Set(sizes)
}
