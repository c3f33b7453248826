package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Styles below refer to these; no inline color literals.
var (
	// ColorCyan is used for identifiable nouns: module, interface and file names.
	ColorCyan = lipgloss.Color("14")

	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "updated" file status.
	ColorYellow = lipgloss.Color("220")

	colorRed     = lipgloss.Color("196")
	colorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")
)

// Semantic styles.
var (
	StyleNoun    = lipgloss.NewStyle().Foreground(ColorCyan)
	StyleAction  = lipgloss.NewStyle().Bold(true)
	StyleDim     = lipgloss.NewStyle().Faint(true)
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// File status words as printed.
const (
	StatusCreated   = "created"
	StatusUpdated   = "updated"
	StatusUnchanged = "unchanged"
	StatusSkipped   = "skipped"
	StatusDiffers   = "differs"
	StatusValid     = "valid"
	statusFailed    = "failed"
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated, StatusValid:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusUpdated:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged, StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusDiffers:
		return lipgloss.NewStyle().Foreground(colorRed)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minFileColumnWidth keeps status words aligned for typical paths.
const minFileColumnWidth = 48

// FormatFileLine renders a generated file name with a right-aligned,
// color-coded status.
//
// Format: f:<name>  <status>
func FormatFileLine(name, status string) string {
	padding := minFileColumnWidth - len(name)
	if padding < 2 {
		padding = 2
	}
	return StyleDim.Render("f:") + StyleNoun.Render(name) + strings.Repeat(" ", padding) + statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatVetCheck renders a passed check line with an optional detail.
func FormatVetCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail != "" {
		line += "  " + StyleDim.Render(detail)
	}
	return line
}
