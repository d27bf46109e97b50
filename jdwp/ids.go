package jdwp

import "sync/atomic"

// IDGenerator hands out packet ids for commands originated locally.
// The zero value is ready to use and the first id is 1.
type IDGenerator struct {
	last atomic.Int32
}

func (g *IDGenerator) Next() int32 {
	return g.last.Add(1)
}

func (g *IDGenerator) NewCommand(cmd Command, data []byte) *CommandPacket {
	return NewCommandPacket(g.Next(), 0, cmd, data)
}
