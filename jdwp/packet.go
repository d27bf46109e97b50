// Package jdwp contains the wire level model of the Java Debug Wire Protocol:
// packets, command and error names, negotiated identifier sizes and the
// correlation of commands with their replies.
package jdwp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// HeaderSize is the number of bytes shared by every packet header.
	HeaderSize = 11

	// FlagReply marks a packet as a reply.
	FlagReply = byte(0x80)
)

// Handshake is exchanged verbatim by both peers before any packet.
var Handshake = []byte("JDWP-Handshake")

type (
	Packet interface {
		ID() int32
		Flags() byte
		Data() []byte
		Length() int
		IsReply() bool
	}

	header struct {
		id    int32
		flags byte
		data  []byte
	}

	CommandPacket struct {
		header
		Command Command
	}

	ReplyPacket struct {
		header
		ErrorCode ErrorCode
	}

	errMsg string
)

const (
	ErrInvalidLength = errMsg("jdwp: packet length smaller than header")
)

func (e errMsg) Error() string { return string(e) }

func (h *header) ID() int32 { return h.id }

func (h *header) Flags() byte { return h.flags }

// Data returns the payload, it must not be modified by the caller.
func (h *header) Data() []byte { return h.data }

func (h *header) Length() int { return HeaderSize + len(h.data) }

func (h *header) IsReply() bool { return h.flags&FlagReply != 0 }

// NewCommandPacket returns a command packet using the given id.
// Locally originated commands should use IDGenerator.NewCommand instead.
func NewCommandPacket(id int32, flags byte, cmd Command, data []byte) *CommandPacket {
	return &CommandPacket{
		header:  header{id: id, flags: flags &^ FlagReply, data: data},
		Command: cmd,
	}
}

func NewReply(id int32, code ErrorCode, data []byte) *ReplyPacket {
	return &ReplyPacket{
		header:    header{id: id, flags: FlagReply, data: data},
		ErrorCode: code,
	}
}

// ReadPacket reads exactly one packet from r.
//
// It returns io.EOF when r is exhausted before the first header byte, any
// other truncation is reported as io.ErrUnexpectedEOF.
func ReadPacket(r io.Reader) (Packet, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("jdwp: reading header: %w", err)
	}
	length := int64(binary.BigEndian.Uint32(hdr[0:4]))
	if length < HeaderSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	h := header{
		id:    int32(binary.BigEndian.Uint32(hdr[4:8])),
		flags: hdr[8],
	}
	if length > HeaderSize {
		h.data = make([]byte, length-HeaderSize)
		if _, err := io.ReadFull(r, h.data); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("jdwp: reading payload of packet %d: %w", h.id, err)
		}
	}
	if h.flags&FlagReply != 0 {
		return &ReplyPacket{
			header:    h,
			ErrorCode: ErrorCode(binary.BigEndian.Uint16(hdr[9:11])),
		}, nil
	}
	return &CommandPacket{
		header:  h,
		Command: NewCommand(CommandSet(hdr[9]), hdr[10]),
	}, nil
}

// WritePacket writes p to w, the length field is always derived from the payload.
func WritePacket(w io.Writer, p Packet) error {
	buf := make([]byte, HeaderSize, p.Length())
	binary.BigEndian.PutUint32(buf[0:4], uint32(p.Length()))
	binary.BigEndian.PutUint32(buf[4:8], uint32(p.ID()))
	buf[8] = p.Flags()
	switch p := p.(type) {
	case *CommandPacket:
		buf[9] = byte(p.Command.Set())
		buf[10] = p.Command.Code()
	case *ReplyPacket:
		binary.BigEndian.PutUint16(buf[9:11], uint16(p.ErrorCode))
	default:
		return fmt.Errorf("jdwp: unsupported packet type %T", p)
	}
	buf = append(buf, p.Data()...)
	_, err := w.Write(buf)
	return err
}

// Marshal returns the wire representation of p.
func Marshal(p Packet) []byte {
	var buf bytes.Buffer
	if err := WritePacket(&buf, p); err != nil {
		return nil
	}
	return buf.Bytes()
}
