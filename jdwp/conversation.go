package jdwp

import (
	"fmt"
	"sync"
)

type (
	// Conversation pairs one command with its reply.
	Conversation struct {
		ID      int32
		Command *CommandPacket
		Reply   *ReplyPacket
	}

	// Tracker keeps every conversation seen during a session.
	// Entries are never evicted.
	Tracker struct {
		sync.Mutex
		conversations map[int32]*Conversation
	}
)

const (
	ErrCommandOverwrite = errMsg("jdwp: conversation already has a command")
	ErrReplyOverwrite   = errMsg("jdwp: conversation already has a reply")
)

func (c *Conversation) SetCommand(p *CommandPacket) error {
	if c.Command != nil {
		return fmt.Errorf("%w: id %d", ErrCommandOverwrite, c.ID)
	}
	c.Command = p
	return nil
}

func (c *Conversation) SetReply(p *ReplyPacket) error {
	if c.Reply != nil {
		return fmt.Errorf("%w: id %d", ErrReplyOverwrite, c.ID)
	}
	c.Reply = p
	return nil
}

func NewTracker() *Tracker {
	return &Tracker{conversations: make(map[int32]*Conversation)}
}

// Store places p in the conversation with the same id.
func (t *Tracker) Store(p Packet) error {
	t.Lock()
	defer t.Unlock()
	c, ok := t.conversations[p.ID()]
	if !ok {
		c = &Conversation{ID: p.ID()}
		t.conversations[p.ID()] = c
	}
	switch p := p.(type) {
	case *CommandPacket:
		return c.SetCommand(p)
	case *ReplyPacket:
		return c.SetReply(p)
	default:
		return fmt.Errorf("jdwp: unsupported packet type %T", p)
	}
}

func (t *Tracker) Command(id int32) (*CommandPacket, bool) {
	t.Lock()
	defer t.Unlock()
	c, ok := t.conversations[id]
	if !ok || c.Command == nil {
		return nil, false
	}
	return c.Command, true
}

// Conversation returns a copy of the conversation with the given id.
func (t *Tracker) Conversation(id int32) (Conversation, bool) {
	t.Lock()
	defer t.Unlock()
	c, ok := t.conversations[id]
	if !ok {
		return Conversation{}, false
	}
	return *c, true
}

// Len returns the number of conversations tracked so far.
func (t *Tracker) Len() int {
	t.Lock()
	defer t.Unlock()
	return len(t.conversations)
}
