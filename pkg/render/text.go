package render

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

const (
	fontWidthRatio = 0.85
	fontCharWidth  = 0.55
	fontSizeMin    = 8.0
	fontSizeMax    = 18.0
)

// fontSize picks the largest size at which label fits across a spot of the
// given width.
func fontSize(width float64, label string) float64 {
	n := max(1, utf8.RuneCountInString(label))
	byWidth := (width * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, byWidth))
}

// truncateLabel shortens label with ".." when it cannot fit at the minimum
// font size.
func truncateLabel(width float64, label string) string {
	maxChars := max(3, int(width*fontWidthRatio/(fontSizeMin*fontCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
