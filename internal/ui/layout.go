package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which secondary columns are hidden.
	LayoutCompactWidth = 100

	// LayoutSplitWidth is the minimum width to show the detail pane beside
	// the table instead of over it.
	LayoutSplitWidth = 140
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI polls the store.
	DefaultUIInterval = 250 * time.Millisecond

	// DetailFetchTimeout bounds the single-record refresh behind the detail pane.
	DetailFetchTimeout = 5 * time.Second
)

// chromeLines is the number of rows used by header, command bar, filter bar
// and pager.
const chromeLines = 4

// renderTitledBox renders content in a box with the title embedded in the top
// border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-2, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
