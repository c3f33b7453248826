package files

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines around each hunk.
const diffContext = 3

// Diff returns a unified diff from the file on disk to the rendered content.
// Hunks whose changed lines are all comment lines are dropped, so template
// comment tweaks do not show up. The result is empty when nothing is left.
func Diff(f Info, onDisk string) string {
	a := splitLines(onDisk)
	b := splitLines(f.Content)

	var hunks []string
	for _, group := range difflib.NewMatcher(a, b).GetGroupedOpCodes(diffContext) {
		if f.CommentPrefix != "" && commentOnly(group, a, b, f.CommentPrefix) {
			continue
		}
		hunks = append(hunks, formatHunk(group, a, b))
	}
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", f.PrintableName)
	fmt.Fprintf(&sb, "+++ %s\n", f.PrintableName)
	for _, h := range hunks {
		sb.WriteString(h)
	}
	return sb.String()
}

func commentOnly(group []difflib.OpCode, a, b []string, prefix string) bool {
	isComment := func(line string) bool {
		return strings.HasPrefix(strings.TrimSpace(line), prefix)
	}
	for _, op := range group {
		if op.Tag == 'e' {
			continue
		}
		for _, line := range a[op.I1:op.I2] {
			if !isComment(line) {
				return false
			}
		}
		for _, line := range b[op.J1:op.J2] {
			if !isComment(line) {
				return false
			}
		}
	}
	return true
}

func formatHunk(group []difflib.OpCode, a, b []string) string {
	first, last := group[0], group[len(group)-1]

	var sb strings.Builder
	fmt.Fprintf(&sb, "@@ -%s +%s @@\n", unifiedRange(first.I1, last.I2), unifiedRange(first.J1, last.J2))
	for _, op := range group {
		if op.Tag == 'e' {
			for _, line := range a[op.I1:op.I2] {
				sb.WriteString(" " + line)
			}
			continue
		}
		for _, line := range a[op.I1:op.I2] {
			sb.WriteString("-" + line)
		}
		for _, line := range b[op.J1:op.J2] {
			sb.WriteString("+" + line)
		}
	}
	return sb.String()
}

// unifiedRange formats a zero-based half-open range the way diff -u does.
func unifiedRange(start, stop int) string {
	beginning := start + 1
	length := stop - start
	switch length {
	case 1:
		return fmt.Sprintf("%d", beginning)
	case 0:
		return fmt.Sprintf("%d,0", beginning-1)
	default:
		return fmt.Sprintf("%d,%d", beginning, length)
	}
}

// splitLines splits text into lines that all end in a newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n"
	return lines
}
