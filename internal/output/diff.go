package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	diffHeader  = lipgloss.NewStyle().Bold(true)
	diffHunk    = lipgloss.NewStyle().Foreground(ColorCyan)
	diffAdded   = lipgloss.NewStyle().Foreground(colorGreen)
	diffRemoved = lipgloss.NewStyle().Foreground(colorRed)
)

// RenderUnifiedDiff colors a unified diff line by line. Line content is
// kept as is, so a diff rendered without a color profile is unchanged.
func RenderUnifiedDiff(diff string) string {
	if diff == "" {
		return ""
	}
	lines := strings.SplitAfter(diff, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		nl := line[len(body):]
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			sb.WriteString(diffHeader.Render(body))
		case strings.HasPrefix(body, "@@"):
			sb.WriteString(diffHunk.Render(body))
		case strings.HasPrefix(body, "+"):
			sb.WriteString(diffAdded.Render(body))
		case strings.HasPrefix(body, "-"):
			sb.WriteString(diffRemoved.Render(body))
		default:
			sb.WriteString(body)
		}
		sb.WriteString(nl)
	}
	return sb.String()
}

// IndentDiff prefixes every non-empty line of diff with indent.
func IndentDiff(diff string, indent string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}
