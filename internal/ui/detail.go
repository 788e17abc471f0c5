package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/quayside/internal/containers"
)

// detailState tracks the detail pane. The pane always shows the selected
// row; once FetchByID returns for that id the fetched copy replaces it.
type detailState struct {
	open      bool
	id        int64
	fetched   *containers.Record
	fetchedAt time.Time
	loading   bool
	err       error
	viewport  viewport.Model
}

type detailMsg struct {
	id     int64
	record containers.Record
	err    error
}

func newDetailState() detailState {
	return detailState{viewport: viewport.New(0, 0)}
}

// openDetail shows the selected row and refreshes it from the API.
func (m *Model) openDetail() tea.Cmd {
	rec, ok := m.selectedRecord()
	if !ok {
		return nil
	}
	m.detail.open = true
	m.detail.id = rec.ID
	m.detail.fetched = nil
	m.detail.err = nil
	m.detail.viewport.GotoTop()
	m.resizeDetail()
	if m.source == nil {
		m.detail.loading = false
		return nil
	}
	m.detail.loading = true
	return fetchDetailCmd(m.ctx, m.source, rec.ID)
}

func (m *Model) closeDetail() {
	m.detail.open = false
	m.detail.loading = false
	m.detail.fetched = nil
	m.detail.err = nil
	m.resizeDetail()
}

// handleDetail applies a FetchByID result. Results for rows no longer
// targeted are dropped.
func (m *Model) handleDetail(msg detailMsg) {
	if !m.detail.open || msg.id != m.detail.id {
		return
	}
	m.detail.loading = false
	if msg.err != nil {
		m.detail.err = msg.err
		m.logger.Warn("detail refresh failed", zap.Int64("id", msg.id), zap.Error(msg.err))
		return
	}
	rec := msg.record
	m.detail.fetched = &rec
	m.detail.fetchedAt = time.Now()
}

// detailRecord returns the record the pane should show.
func (m Model) detailRecord() (containers.Record, bool) {
	rec, ok := m.selectedRecord()
	if !ok {
		return containers.Record{}, false
	}
	if m.detail.fetched != nil && m.detail.fetched.ID == rec.ID {
		return *m.detail.fetched, true
	}
	return rec, true
}

// syncDetail refreshes the viewport content so scrolling sees current bounds.
func (m *Model) syncDetail() {
	if !m.detail.open {
		return
	}
	m.detail.viewport.SetContent(m.detailContent(m.detail.viewport.Width))
}

func (m *Model) resizeDetail() {
	width, height := m.detailPaneSize()
	m.detail.viewport.Width = max(width-4, 0)
	m.detail.viewport.Height = max(height-2, 0)
	m.syncDetail()
}

// detailPaneSize returns the outer size of the detail pane.
func (m Model) detailPaneSize() (int, int) {
	height := max(m.height-chromeLines, 0)
	if m.width >= LayoutSplitWidth {
		return m.width - m.tableWidth(), height
	}
	return m.width, height
}

func (m Model) detailContent(width int) string {
	styles := m.theme.Styles()
	rec, ok := m.detailRecord()
	if !ok {
		return styles.MutedText.Render("Select a container")
	}

	labelStyle := styles.MutedText.Width(16)
	field := func(label, value string) string {
		return labelStyle.Render(label) + styles.Text.Render(truncate(value, max(width-16, 8)))
	}

	lines := []string{
		field("ID", fmt.Sprintf("%d", rec.ID)),
		field("Agency", rec.Agency),
		field("Transhipment", orDash(rec.Transhipment)),
		field("Carrier", rec.Carrier),
		field("Booking", rec.Booking),
		field("Load port", rec.LoadPort),
		field("Deliver port", rec.DeliverPort),
		field("Discharge port", rec.DischargePort),
		field("Departure", formatDeparture(rec.Departure)),
		field("Weekday", rec.Departure.Weekday().String()),
		"",
	}

	switch {
	case m.detail.loading && rec.ID == m.detail.id:
		lines = append(lines, styles.WarningText.Render("Refreshing..."))
	case m.detail.err != nil && rec.ID == m.detail.id:
		lines = append(lines,
			styles.DangerText.Render("Refresh failed"),
			styles.MutedText.Render(truncate(m.detail.err.Error(), max(width, 8))))
	case m.detail.fetched != nil && m.detail.fetched.ID == rec.ID:
		lines = append(lines, styles.FaintText.Render("Fetched "+m.detail.fetchedAt.Format("15:04:05")))
	default:
		lines = append(lines, styles.FaintText.Render("enter to refresh"))
	}
	return strings.Join(lines, "\n")
}

// renderDetail renders the detail pane at the given outer size.
func (m Model) renderDetail(width, height int) string {
	title := "Detail"
	if rec, ok := m.detailRecord(); ok {
		title = fmt.Sprintf("Container %d", rec.ID)
	}
	body := lipgloss.NewStyle().Padding(0, 1).Render(m.detail.viewport.View())
	return m.renderTitledBox(title, body, width, height, true)
}

func fetchDetailCmd(ctx context.Context, source containers.Source, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, DetailFetchTimeout)
		defer cancel()
		rec, err := source.FetchByID(ctx, id)
		return detailMsg{id: id, record: rec, err: err}
	}
}
