// Package theme holds the styles used for command output.
package theme

import (
	"strings"
	"sync/atomic"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Accent)
)

// Difficulty levels, easiest first.
var levels = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(Success),
	lipgloss.NewStyle().Foreground(Secondary),
	lipgloss.NewStyle().Foreground(Accent),
	lipgloss.NewStyle().Foreground(Error).Bold(true),
}

var enabled atomic.Bool

func init() {
	enabled.Store(true)
}

// SetEnabled turns styling on or off. Output to pipes and files should
// be plain.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Render applies s to text when styling is enabled.
func Render(s lipgloss.Style, text string) string {
	if !enabled.Load() {
		return text
	}
	return s.Render(text)
}

// Level returns the style for difficulty level n (1 = easiest). Levels
// past the palette reuse the hardest style.
func Level(n int) lipgloss.Style {
	switch {
	case n < 1:
		return Dim
	case n > len(levels):
		return levels[len(levels)-1]
	default:
		return levels[n-1]
	}
}

// Rule returns a horizontal separator of the given width.
func Rule(width int) string {
	return Render(Dim, strings.Repeat("─", width))
}
