package verbose

import (
	"fmt"
	"strings"
)

const hexBytesPerLine = 16

// formatHexDump renders b as space separated bytes, wrapping lines so that
// continuation lines start at the value column.
func formatHexDump(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			if i%hexBytesPerLine == 0 {
				sb.WriteString("\n")
				sb.WriteString(shift)
			} else {
				sb.WriteByte(' ')
			}
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}
