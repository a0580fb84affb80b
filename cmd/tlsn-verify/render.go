package main

import (
	"fmt"
	"strings"
	"unicode"

	"tlsn-verify/proofverifier"
)

// Display and formatting constants
const (
	RedactedChar              = "█"  // Glyph shown for each redacted byte
	RedactedCollapseThreshold = 100  // Number of consecutive redacted bytes before collapsing
)

// renderSegments produces the terminal representation of one direction:
// literal bytes as text (non-printables escaped) and redacted spans as a
// run of block glyphs. Long redactions collapse to a short marker with
// the byte count so a mostly-redacted transcript stays readable.
func renderSegments(segments []proofverifier.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Redacted {
			if seg.Length > RedactedCollapseThreshold {
				b.WriteString(strings.Repeat(RedactedChar, 3))
				fmt.Fprintf(&b, "(%d redacted bytes)", seg.Length)
				b.WriteString(strings.Repeat(RedactedChar, 3))
			} else {
				b.WriteString(strings.Repeat(RedactedChar, int(seg.Length)))
			}
			continue
		}
		for _, c := range seg.Data {
			if c == '\n' || c == '\r' || c == '\t' || (c < unicode.MaxASCII && unicode.IsPrint(rune(c))) {
				b.WriteByte(c)
			} else {
				fmt.Fprintf(&b, "\\x%02x", c)
			}
		}
	}
	return b.String()
}
