package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quayside/internal/view"
)

const (
	queryPlaceholder = "ID, agency, booking or port"
	datePlaceholder  = "dd/mm/yyyy"
)

func newQueryInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = queryPlaceholder
	ti.CharLimit = 100
	return ti
}

func newDateInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "Departure "
	ti.Placeholder = datePlaceholder
	ti.CharLimit = len("2006-01-02 ")
	return ti
}

func (m *Model) resizeInputs() {
	dateWidth := len(datePlaceholder) + 1
	m.dateInput.Width = dateWidth
	m.queryInput.Width = max(m.width/3, 10)
}

// focusInput moves key focus to the query or date input.
func (m *Model) focusInput(area focusArea) tea.Cmd {
	m.queryInput.Blur()
	m.dateInput.Blur()
	m.focus = area
	switch area {
	case focusQuery:
		return m.queryInput.Focus()
	case focusDate:
		m.dateErr = ""
		return m.dateInput.Focus()
	}
	return nil
}

func (m *Model) blurInputs() {
	m.queryInput.Blur()
	m.dateInput.Blur()
	m.focus = focusTable
}

// handleQueryKey filters live: every edit calls SetQuery.
func (m Model) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Confirm):
		m.blurInputs()
		return m, nil
	}

	before := m.queryInput.Value()
	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	if after := m.queryInput.Value(); after != before {
		m.engine.SetQuery(after)
		m.clampSelection()
	}
	return m, cmd
}

// handleDateKey stages the typed date on every edit and commits it on enter.
func (m Model) handleDateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.blurInputs()
		return m, nil

	case key.Matches(msg, m.keys.ClearDate):
		m.clearDate()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		raw := strings.TrimSpace(m.dateInput.Value())
		if raw != "" && m.engine.DateFilter() == nil {
			m.dateErr = "Invalid date, use " + datePlaceholder
			return m, nil
		}
		m.dateErr = ""
		m.engine.CommitDateSearch()
		m.selectedRow = 0
		m.blurInputs()
		return m, nil
	}

	before := m.dateInput.Value()
	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	if after := m.dateInput.Value(); after != before {
		m.dateErr = ""
		m.stageDate(after)
	}
	return m, cmd
}

// stageDate mirrors the input into the engine's staged date. Text that does
// not parse yet stages nothing.
func (m *Model) stageDate(raw string) {
	d, err := view.ParseDate(raw)
	if err != nil {
		m.engine.SetDateFilter(nil)
		return
	}
	m.engine.SetDateFilter(&d)
}

func (m *Model) clearDate() {
	m.dateInput.SetValue("")
	m.dateErr = ""
	m.engine.ClearDateFilter()
}

// renderFilterBar renders the query input, the date input and a staged date
// that has not been searched yet.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(3)

	parts := []string{
		m.renderInput(m.queryInput, m.focus == focusQuery),
		m.renderInput(m.dateInput, m.focus == focusDate),
	}

	if page := m.engine.Page(); page.DatePending() {
		parts = append(parts, bg.Render("staged "+page.Date.String(), styles.AccentText)+
			bg.Space()+bg.Render("(enter to search)", styles.FaintText))
	}
	if m.dateErr != "" {
		parts = append(parts, bg.Render(m.dateErr, styles.DangerText))
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, sep))
}

func (m Model) renderInput(input textinput.Model, focused bool) string {
	bgColor := m.theme.Surface
	if focused {
		bgColor = m.theme.FocusBg
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Render(input.View())
}
