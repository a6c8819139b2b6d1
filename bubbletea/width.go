package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tabWidth is the standard terminal tab stop interval.
const tabWidth = 8

// expandTabs replaces tab characters with the spaces needed to reach
// the next tab stop, assuming the string starts at startCol. Viewports
// render raw tabs inconsistently, so picker rows expand them first.
func expandTabs(s string, startCol int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := startCol
	for _, r := range s {
		if r == '\t' {
			next := ((col / tabWidth) + 1) * tabWidth
			b.WriteString(strings.Repeat(" ", next-col))
			col = next
			continue
		}
		b.WriteRune(r)
		col += lipgloss.Width(string(r))
	}
	return b.String()
}

// truncate cuts s down to at most width display columns. Tabs must
// already be expanded.
func truncate(s string, width int) string {
	if width <= 0 || DisplayWidth(s) <= width {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if col+w > width {
			break
		}
		b.WriteRune(r)
		col += w
	}
	return b.String()
}

// DisplayWidth calculates the display width of a string, correctly
// handling tab characters which expand to the next 8-column boundary.
// lipgloss.Width alone returns 0 for tabs.
func DisplayWidth(s string) int {
	return displayWidthFrom(s, 0)
}

// displayWidthFrom calculates the display width of a string starting
// from a given column position. Tab expansion depends on the current
// column, so concatenated strings must thread the column through.
func displayWidthFrom(s string, startCol int) int {
	col := startCol
	for _, r := range s {
		if r == '\t' {
			col = ((col / tabWidth) + 1) * tabWidth
		} else {
			col += lipgloss.Width(string(r))
		}
	}
	return col
}
