package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/quayside/internal/containers"
)

// renderHeader renders the status bar: logo, load state, counts and API.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("quayside", styles.Logo)}

	switch {
	case m.snapshot.Loading && !m.snapshot.Loaded():
		parts = append(parts, bg.Render("Fetching containers...", styles.WarningText.Bold(true)))
	case m.snapshot.Failed():
		parts = append(parts, bg.Render("● "+classifyError(m.snapshot.LastError), styles.DangerText))
		if !compact {
			parts = append(parts, bg.Render(truncate(m.snapshot.LastError.Error(), 60), styles.MutedText))
		}
	default:
		parts = append(parts, bg.Render("● LOADED", styles.SuccessText))
		parts = append(parts,
			bg.Render("Containers:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d/%d", m.engine.FilteredLen(), m.engine.TotalLen()), styles.Text))
	}

	if m.snapshot.Loading && m.snapshot.Loaded() {
		parts = append(parts, bg.Render("Reloading...", styles.WarningText))
	}
	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts,
			bg.Render("Updated", styles.FaintText)+bg.Space()+
				bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.MutedText))
	}
	if !compact && m.config != nil {
		parts = append(parts, bg.Render(truncate(m.config.APIURL, 40), styles.FaintText))
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.AccentText))
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(parts, "  "))
}

// classifyError turns a fetch failure into a short status label.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	var netErr *containers.NetworkError
	if errors.As(err, &netErr) && netErr.Status > 0 {
		return fmt.Sprintf("HTTP %d", netErr.Status)
	}
	if errors.Is(err, containers.ErrDecode) {
		return "BAD RESPONSE"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders key hints for the focused component.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.focus {
	case focusQuery:
		commands = []cmd{
			{"type", "Filter live"},
			{"enter/esc", "Done"},
		}
	case focusDate:
		commands = []cmd{
			{"type", "Stage date"},
			{"enter", "Search"},
			{"ctrl+x", "Clear"},
			{"esc", "Back"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"d", "Date"},
			{"n/p", "Page"},
			{"s/S", fmt.Sprintf("Size %d", m.engine.PageSize())},
			{"j/k", "Navigate"},
			{"enter", "Detail"},
			{"r", "Reload"},
			{"?", "More"},
		}
		if m.detail.open {
			commands = append(commands, cmd{"esc", "Close detail"})
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(segments, "  "))
}
