package verbose

import (
	"strings"
	"unicode/utf16"
)

const ErrInvalidUTF8 = errMsg("string does not match the modified UTF-8 encoding")

// decodeModifiedUTF8 decodes the string encoding used by the JVM: NUL is two
// bytes and supplementary characters are encoded as surrogate pairs.
func decodeModifiedUTF8(b []byte) (string, error) {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		a := b[i]
		switch {
		case a < 0x80:
			units = append(units, uint16(a))
			i++
		case a&0xE0 == 0xC0:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", ErrInvalidUTF8
			}
			units = append(units, uint16(a&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case a&0xF0 == 0xE0:
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return "", ErrInvalidUTF8
			}
			units = append(units, uint16(a&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			return "", ErrInvalidUTF8
		}
	}
	var sb strings.Builder
	for _, r := range utf16.Decode(units) {
		sb.WriteRune(r)
	}
	return sb.String(), nil
}
