package ui

import "fmt"

// renderPager renders page position, visible row range and page size. The
// date shown is the one the rows were filtered by, not a staged one.
func (m Model) renderPager() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	page := m.engine.Page()

	prevStyle, nextStyle := styles.FaintText, styles.FaintText
	if page.HasPrevious() {
		prevStyle = styles.AccentText
	}
	if page.HasNext() {
		nextStyle = styles.AccentText
	}

	parts := []string{
		bg.Render("‹ p", prevStyle),
		bg.Render(fmt.Sprintf("Page %d of %d", page.Index+1, page.Count), styles.Text),
		bg.Render("n ›", nextStyle),
	}

	if page.Filtered > 0 {
		first := page.Index*page.Size + 1
		last := first + len(page.Rows) - 1
		parts = append(parts, bg.Render(fmt.Sprintf("Rows %d-%d of %d", first, last, page.Filtered), styles.MutedText))
	}
	parts = append(parts, bg.Render(fmt.Sprintf("%d per page", page.Size), styles.MutedText))

	if page.Applied != nil {
		parts = append(parts, bg.Render("date "+page.Applied.String(), styles.AccentText))
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(parts, "  "))
}
