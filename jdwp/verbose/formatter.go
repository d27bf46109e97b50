// Package verbose renders JDWP packets as a human readable trace.
//
// Every field is printed as a padded label followed by the raw hex value and
// its interpretation. Payload decoding is driven by two dispatch tables, one
// for commands and one for replies, keyed by jdwp.Command.
package verbose

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andrebq/jdwpspy/jdwp"
)

type (
	// Context gives the formatter access to the session state it needs:
	// negotiated identifier sizes and the command matching a reply.
	Context interface {
		IDSizes() (jdwp.IDSizes, bool)
		Command(id int32) (*jdwp.CommandPacket, bool)
	}

	Formatter struct {
		ctx Context
	}

	// DecodeError reports a packet whose payload could not be fully decoded.
	// It is printed inline by the formatter.
	DecodeError struct {
		Err       error
		Remaining []byte
	}

	decodeFunc func(*decoder)

	errMsg string
)

const (
	ErrIDSizesUnknown      = errMsg("unable to parse remaining data")
	ErrNotManaged          = errMsg("NOT MANAGED COMMAND")
	ErrValuesNotManaged    = errMsg("List of values: NOT MANAGED")
	ErrUnknownConversation = errMsg("This packet is marked as reply, but there is no command with the same id")
	ErrTruncated           = errMsg("unexpected end of packet data")
	ErrInvalidTag          = errMsg("invalid value tag")
	ErrUnknownEventKind    = errMsg("unknown event kind")
	ErrUnknownModifierKind = errMsg("unknown event request modifier kind")
)

func (e errMsg) Error() string { return string(e) }

func (e *DecodeError) Error() string {
	return fmt.Sprintf("verbose: %v (%d bytes left)", e.Err, len(e.Remaining))
}

func (e *DecodeError) Unwrap() error { return e.Err }

func New(ctx Context) *Formatter {
	return &Formatter{ctx: ctx}
}

// Print writes one block describing p to w.
//
// A payload that cannot be decoded is reported inline and returned as a
// *DecodeError after the block has been written, any other error comes from w.
func (f *Formatter) Print(w io.Writer, p jdwp.Packet, fromVM bool) error {
	var buf bytes.Buffer
	decErr := f.Format(&buf, p, fromVM)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	if decErr != nil {
		return decErr
	}
	return nil
}

// Format is like Print but renders into buf.
func (f *Formatter) Format(buf *bytes.Buffer, p jdwp.Packet, fromVM bool) *DecodeError {
	if fromVM {
		buf.WriteString("From VM\n")
	} else {
		buf.WriteString("From Debugger\n")
	}
	d := &decoder{out: buf, data: p.Data()}
	d.sizes, d.hasSizes = f.ctx.IDSizes()

	d.println("Packet ID:", formatInt(p.ID()))
	d.println("Length:", formatInt(int32(p.Length())))

	switch p := p.(type) {
	case *jdwp.CommandPacket:
		d.println("Flags:", fmt.Sprintf("0x%02X (COMMAND)", p.Flags()))
		d.println("Command set:", fmt.Sprintf("0x%02X (%v)", uint8(p.Command.Set()), p.Command.Set()))
		d.println("Command:", fmt.Sprintf("0x%02X (%v)", p.Command.Code(), p.Command.Name()))
		f.decode(d, p.Command, commandTable)
	case *jdwp.ReplyPacket:
		cmd, found := f.ctx.Command(p.ID())
		if found {
			d.println("Flags:", fmt.Sprintf("0x%02X (REPLY to %v)", p.Flags(), cmd.Command))
		} else {
			d.println("Flags:", fmt.Sprintf("0x%02X (REPLY)", p.Flags()))
		}
		d.println("Error:", fmt.Sprintf("0x%04X (%v)", uint16(p.ErrorCode), p.ErrorCode))
		switch {
		case !found:
			d.fail(ErrUnknownConversation)
		case p.ErrorCode != jdwp.ErrNone:
			if len(d.data) > 0 {
				d.println("Data:", formatHexDump(d.data))
			}
		default:
			f.decode(d, cmd.Command, replyTable)
		}
	}

	if d.err != nil {
		remaining := append([]byte(nil), d.remaining()...)
		fmt.Fprintf(buf, "\n%v:\n", d.err)
		fmt.Fprintf(buf, "%-*s%s\n\n", descriptionWidth, "Remaining data:", formatHexDump(remaining))
		return &DecodeError{Err: d.err, Remaining: remaining}
	}
	buf.WriteByte('\n')
	return nil
}

func (f *Formatter) decode(d *decoder, cmd jdwp.Command, table map[jdwp.Command]decodeFunc) {
	fn, ok := table[cmd]
	if !ok {
		d.line(fmt.Sprintf("unknown command: set %d cmd %d", uint8(cmd.Set()), cmd.Code()))
		return
	}
	if len(d.data) == 0 {
		return
	}
	fn(d)
}

// IsDecodeError reports whether err was produced while decoding a payload.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

func noData(*decoder) {}

func notManaged(d *decoder) {
	d.fail(ErrNotManaged)
}
