package verbose

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/andrebq/jdwpspy/jdwp"
)

const (
	descriptionWidth = 38
)

var shift = strings.Repeat(" ", descriptionWidth)

type (
	// decoder walks a packet payload printing every field it reads.
	// The first failure is sticky: later reads return zero values and
	// print nothing.
	decoder struct {
		out      *bytes.Buffer
		data     []byte
		pos      int
		sizes    jdwp.IDSizes
		hasSizes bool

		err    error
		failAt int
	}

	idKind int
)

const (
	objectID idKind = iota
	referenceTypeID
	fieldID
	methodID
	frameID
)

func (k idKind) width(s jdwp.IDSizes) int {
	switch k {
	case objectID:
		return s.ObjectID
	case referenceTypeID:
		return s.ReferenceTypeID
	case fieldID:
		return s.FieldID
	case methodID:
		return s.MethodID
	default:
		return s.FrameID
	}
}

func (d *decoder) ok() bool { return d.err == nil }

func (d *decoder) fail(err error) {
	if d.err != nil {
		return
	}
	d.err = err
	d.failAt = d.pos
}

func (d *decoder) remaining() []byte {
	if d.err != nil {
		return d.data[d.failAt:]
	}
	return d.data[d.pos:]
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || len(d.data)-d.pos < n {
		d.fail(ErrTruncated)
		return nil
	}
	buf := d.data[d.pos : d.pos+n]
	d.pos += n
	return buf
}

func (d *decoder) u8() byte {
	buf := d.take(1)
	if buf == nil {
		return 0
	}
	return buf[0]
}

func (d *decoder) i32() int32 {
	buf := d.take(4)
	if buf == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(buf))
}

func (d *decoder) i64() int64 {
	buf := d.take(8)
	if buf == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(buf))
}

// unsigned reads an unsigned big endian integer of the given width.
func (d *decoder) unsigned(width int) uint64 {
	buf := d.take(width)
	var v uint64
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}
	return v
}

func (d *decoder) rawString() string {
	n := d.i32()
	buf := d.take(int(n))
	if d.err != nil {
		return ""
	}
	s, err := decodeModifiedUTF8(buf)
	if err != nil {
		d.fail(err)
		return ""
	}
	return s
}

// rawID reads an identifier, failing when the widths are not negotiated yet.
func (d *decoder) rawID(k idKind) (uint64, int) {
	if d.err != nil {
		return 0, 0
	}
	if !d.hasSizes {
		d.fail(ErrIDSizesUnknown)
		return 0, 0
	}
	w := k.width(d.sizes)
	return d.unsigned(w), w
}

func (d *decoder) println(label, value string) {
	if d.err != nil {
		return
	}
	fmt.Fprintf(d.out, "%-*s%s\n", descriptionWidth, label, value)
}

func (d *decoder) line(text string) {
	if d.err != nil {
		return
	}
	d.out.WriteString(text)
	d.out.WriteByte('\n')
}

func (d *decoder) integer(label string) int32 {
	v := d.i32()
	d.println(label, formatInt(v))
	return v
}

// count reads an int used as a loop bound, negative values count as zero.
func (d *decoder) count(label string) int {
	v := d.integer(label)
	if v < 0 {
		return 0
	}
	return int(v)
}

func (d *decoder) long(label string) int64 {
	v := d.i64()
	d.println(label, formatLong(v))
	return v
}

func (d *decoder) boolean(label string) bool {
	v := d.u8()
	d.println(label, formatBool(v))
	return v != 0
}

func (d *decoder) str(label string) string {
	s := d.rawString()
	d.println(label, formatString(s))
	return s
}

func (d *decoder) id(label string, k idKind) uint64 {
	v, w := d.rawID(k)
	d.println(label, formatID(v, w))
	return v
}

func (d *decoder) objectID(label string) uint64 {
	v, w := d.rawID(objectID)
	d.println(label, formatObjectID(v, w))
	return v
}

func (d *decoder) referenceTypeID(label string) uint64 { return d.id(label, referenceTypeID) }

func (d *decoder) fieldID(label string) uint64 { return d.id(label, fieldID) }

func (d *decoder) methodID(label string) uint64 { return d.id(label, methodID) }

func (d *decoder) frameID(label string) uint64 { return d.id(label, frameID) }

// skip consumes n bytes printing only that they were skipped.
func (d *decoder) skip(label string, n int) {
	d.take(n)
	d.println(label, "skipped")
}
