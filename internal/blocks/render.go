package blocks

import (
	"strings"
)

// Render writes a block bounded by its marker lines, each line prefixed by
// indent. Default text is indented line by line. Text recovered from an
// existing file is written as found, so rendering a freshly scanned file
// reproduces it byte for byte.
func Render(indent string, c Content) string {
	var b strings.Builder
	b.WriteString(indent + c.Tag + "\n")

	text := c.Text
	if c.FirstUse {
		text = indentLines(indent, text)
	}
	if text != "" {
		b.WriteString(text + "\n")
	}

	b.WriteString(indent + c.Tag)
	return b.String()
}

func indentLines(indent, text string) string {
	if indent == "" || text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}
