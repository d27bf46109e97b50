package verbose

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	tagArray       = byte('[')
	tagByte        = byte('B')
	tagChar        = byte('C')
	tagObject      = byte('L')
	tagFloat       = byte('F')
	tagDouble      = byte('D')
	tagInt         = byte('I')
	tagLong        = byte('J')
	tagShort       = byte('S')
	tagVoid        = byte('V')
	tagBoolean     = byte('Z')
	tagString      = byte('s')
	tagThread      = byte('t')
	tagThreadGroup = byte('g')
	tagClassLoader = byte('l')
	tagClassObject = byte('c')
)

var tagNames = map[byte]string{
	tagArray:       "array id",
	tagByte:        "byte",
	tagChar:        "char",
	tagObject:      "object id",
	tagFloat:       "float",
	tagDouble:      "double",
	tagInt:         "int",
	tagLong:        "long",
	tagShort:       "short",
	tagVoid:        "void",
	tagBoolean:     "boolean",
	tagString:      "string id",
	tagThread:      "thread id",
	tagThreadGroup: "thread group id",
	tagClassLoader: "class loader id",
	tagClassObject: "class object id",
}

func isObjectTag(tag byte) bool {
	switch tag {
	case tagArray, tagObject, tagString, tagThread, tagThreadGroup, tagClassLoader, tagClassObject:
		return true
	}
	return false
}

// primitiveWidth returns the value width for non object tags, -1 if the tag is unknown.
func primitiveWidth(tag byte) int {
	switch tag {
	case tagVoid:
		return 0
	case tagBoolean, tagByte:
		return 1
	case tagChar, tagShort:
		return 2
	case tagInt, tagFloat:
		return 4
	case tagLong, tagDouble:
		return 8
	}
	return -1
}

func tagName(tag byte) string {
	if n, ok := tagNames[tag]; ok {
		return n
	}
	return "unknown"
}

func formatHex(v uint64, width int) string {
	return fmt.Sprintf("0x%0*X", width*2, v)
}

func formatByte(v byte) string {
	return fmt.Sprintf("0x%02X (%d)", v, v)
}

func formatInt(v int32) string {
	return fmt.Sprintf("0x%08X (%d)", uint32(v), v)
}

func formatLong(v int64) string {
	return fmt.Sprintf("0x%016X (%d)", uint64(v), v)
}

func formatBool(v byte) string {
	return fmt.Sprintf("0x%02X (%v)", v, v != 0)
}

func formatID(v uint64, width int) string {
	return fmt.Sprintf("%v (%d)", formatHex(v, width), v)
}

func formatObjectID(v uint64, width int) string {
	if v == 0 {
		return formatHex(v, width) + " (NULL)"
	}
	return formatID(v, width)
}

// formatString quotes s, continuation lines are aligned with the value column.
func formatString(s string) string {
	return `"` + strings.ReplaceAll(s, "\n", "\n"+shift) + `"`
}

func formatTag(tag byte) string {
	return fmt.Sprintf("0x%02X (%d - %v)", tag, tag, tagName(tag))
}

// formatPrimitive renders the value of a primitive tag, v holds the raw bits.
func formatPrimitive(tag byte, v uint64) string {
	w := primitiveWidth(tag)
	hex := formatHex(v, w)
	switch tag {
	case tagBoolean:
		return fmt.Sprintf("%v (%v)", hex, v != 0)
	case tagByte:
		return fmt.Sprintf("%v (%d)", hex, int8(v))
	case tagChar:
		return fmt.Sprintf("%v (%q)", hex, rune(uint16(v)))
	case tagShort:
		return fmt.Sprintf("%v (%d)", hex, int16(v))
	case tagInt:
		return fmt.Sprintf("%v (%d)", hex, int32(v))
	case tagFloat:
		return fmt.Sprintf("%v (%v)", hex, strconv.FormatFloat(float64(math.Float32frombits(uint32(v))), 'g', -1, 32))
	case tagLong:
		return fmt.Sprintf("%v (%d)", hex, int64(v))
	case tagDouble:
		return fmt.Sprintf("%v (%v)", hex, strconv.FormatFloat(math.Float64frombits(v), 'g', -1, 64))
	}
	return hex
}

// value reads the value for tag, returning its rendering without the tag.
func (d *decoder) value(tag byte) string {
	if d.err != nil {
		return ""
	}
	if isObjectTag(tag) {
		v, w := d.rawID(objectID)
		return formatObjectID(v, w)
	}
	w := primitiveWidth(tag)
	switch {
	case w < 0:
		d.fail(fmt.Errorf("%w: 0x%02X", ErrInvalidTag, tag))
		return ""
	case w == 0:
		return ""
	}
	return formatPrimitive(tag, d.unsigned(w))
}

func (d *decoder) taggedValue(label string) {
	tag := d.u8()
	if d.err != nil {
		return
	}
	v := d.value(tag)
	if v == "" {
		d.println(label, formatTag(tag))
		return
	}
	d.println(label, formatTag(tag)+" "+v)
}

// untaggedValue prints an array region element whose tag is shared by the whole region.
func (d *decoder) untaggedValue(label string, tag byte) {
	v := d.value(tag)
	d.println(label, fmt.Sprintf("%v (%v)", v, tagName(tag)))
}

func (d *decoder) taggedObjectID(label string) uint64 {
	tag := d.u8()
	v, w := d.rawID(objectID)
	d.println(label, formatTag(tag)+" "+formatObjectID(v, w))
	return v
}

func (d *decoder) signatureTag(label string) byte {
	tag := d.u8()
	d.println(label, formatTag(tag))
	return tag
}

func (d *decoder) arrayRegion() {
	tag := d.signatureTag("Signature byte:")
	n := d.count("Values count:")
	for i := 0; i < n && d.ok(); i++ {
		if isObjectTag(tag) {
			d.taggedValue("Value:")
		} else {
			d.untaggedValue("Value:", tag)
		}
	}
}

func (d *decoder) location(prefix string) {
	tag := d.u8()
	class, cw := d.rawID(referenceTypeID)
	method, mw := d.rawID(methodID)
	index := d.i64()
	pad := strings.Repeat(" ", len(prefix))
	d.println(prefix+" class id:", fmt.Sprintf("%v - %v", formatTypeTag(tag), formatID(class, cw)))
	d.println(pad+" method id:", formatID(method, mw))
	d.println(pad+" index:", formatLong(index))
}

func (d *decoder) typeTag() byte {
	tag := d.u8()
	d.println("Type tag:", formatTypeTag(tag))
	return tag
}

func (d *decoder) typeTagged(label string) {
	d.typeTag()
	d.referenceTypeID(label)
}
