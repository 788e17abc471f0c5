package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quayside/internal/containers"
)

const departureLayout = "02/01/2006 03:04 PM"

// column describes one table column. Flexible columns share the width left
// over by fixed ones.
type column struct {
	title   string
	width   int
	flex    bool
	compact bool // shown below LayoutCompactWidth
	value   func(containers.Record) string
}

var tableColumns = []column{
	{title: "ID", width: 7, compact: true, value: func(r containers.Record) string { return strconv.FormatInt(r.ID, 10) }},
	{title: "Agency", flex: true, compact: true, value: func(r containers.Record) string { return r.Agency }},
	{title: "Transhipment", flex: true, value: func(r containers.Record) string { return orDash(r.Transhipment) }},
	{title: "Carrier", flex: true, value: func(r containers.Record) string { return r.Carrier }},
	{title: "Booking", width: 12, compact: true, value: func(r containers.Record) string { return r.Booking }},
	{title: "Load port", flex: true, compact: true, value: func(r containers.Record) string { return r.LoadPort }},
	{title: "Deliver port", flex: true, value: func(r containers.Record) string { return r.DeliverPort }},
	{title: "Discharge port", flex: true, compact: true, value: func(r containers.Record) string { return r.DischargePort }},
	{title: "Departure", width: len(departureLayout), compact: true, value: func(r containers.Record) string { return formatDeparture(r.Departure) }},
}

func formatDeparture(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(departureLayout)
}

// layoutColumns picks the visible columns for width and sizes the flexible
// ones. Columns are separated by a single space.
func layoutColumns(width int) []column {
	compact := width < LayoutCompactWidth
	visible := make([]column, 0, len(tableColumns))
	fixed, flex := 0, 0
	for _, c := range tableColumns {
		if compact && !c.compact {
			continue
		}
		visible = append(visible, c)
		if c.flex {
			flex++
		} else {
			fixed += c.width
		}
	}
	if flex == 0 {
		return visible
	}

	gaps := len(visible) - 1
	remaining := max(width-fixed-gaps, 0)
	each := max(remaining/flex, 6)
	extra := max(remaining-each*flex, 0)
	for i := range visible {
		if !visible[i].flex {
			continue
		}
		visible[i].width = each
		if extra > 0 {
			visible[i].width++
			extra--
		}
	}
	return visible
}

// tableWidth is the outer width of the table pane.
func (m Model) tableWidth() int {
	if m.detail.open && m.width >= LayoutSplitWidth {
		return m.width * 62 / 100
	}
	return m.width
}

// renderContent renders the table pane and, when open, the detail pane.
func (m Model) renderContent() string {
	height := max(m.height-chromeLines, 3)
	styles := m.theme.Styles()

	if !m.snapshot.Loaded() {
		msg := styles.WarningText.Render("Fetching containers...")
		body := lipgloss.Place(max(m.width-2, 0), max(height-2, 0), lipgloss.Center, lipgloss.Center, msg)
		return m.renderTitledBox("Containers", body, m.width, height, false)
	}

	if m.detail.open && m.width < LayoutSplitWidth {
		return m.renderDetail(m.width, height)
	}

	tableWidth := m.tableWidth()
	table := m.renderTitledBox(m.tableTitle(), m.renderTable(tableWidth-2), tableWidth, height, !m.detail.open)
	if !m.detail.open {
		return table
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, table, m.renderDetail(m.width-tableWidth, height))
}

func (m Model) tableTitle() string {
	filtered, total := m.engine.FilteredLen(), m.engine.TotalLen()
	if filtered == total {
		return fmt.Sprintf("Containers (%d)", total)
	}
	return fmt.Sprintf("Containers (%d/%d)", filtered, total)
}

// renderTable renders the header row and the current page.
func (m Model) renderTable(width int) string {
	styles := m.theme.Styles()
	rows := m.engine.CurrentPageRows()

	if len(rows) == 0 {
		lines := []string{"", styles.MutedText.Render("No results.")}
		if m.snapshot.Failed() {
			lines = append(lines,
				"",
				styles.DangerText.Render(classifyError(m.snapshot.LastError)),
				styles.MutedText.Render(truncate(m.snapshot.LastError.Error(), max(width-2, 8))),
				styles.FaintText.Render("press r to retry"))
		}
		for i, line := range lines {
			lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
		}
		return strings.Join(lines, "\n")
	}

	cols := layoutColumns(width)
	lines := make([]string, 0, len(rows)+1)

	headerCells := make([]string, len(cols))
	for i, c := range cols {
		headerCells[i] = fit(c.title, c.width)
	}
	lines = append(lines, styles.MutedText.Bold(true).Render(strings.Join(headerCells, " ")))

	for i, rec := range rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = fit(c.value(rec), c.width)
		}
		line := strings.Join(cells, " ")
		if i == m.selectedRow {
			lines = append(lines, styles.Selected.Width(width).Render(line))
			continue
		}
		lines = append(lines, styles.Text.Render(line))
	}
	return strings.Join(lines, "\n")
}
