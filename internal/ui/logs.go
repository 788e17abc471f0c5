package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"

	"github.com/five82/quayside/internal/logtail"
)

const (
	logRefreshInterval = 2 * time.Second
	logTailLines       = 500
)

// logLevels is the cycle order of the overlay's minimum level.
var logLevels = []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}

// logState holds the log overlay, which tails quayside's own log file.
type logState struct {
	open        bool
	path        string
	raw         []string
	minLevel    zapcore.Level
	follow      bool
	lastRefresh time.Time
	err         error
	viewport    viewport.Model
}

type logLinesMsg struct {
	lines []string
	err   error
}

func newLogState(path string) logState {
	return logState{
		path:     path,
		minLevel: zapcore.InfoLevel,
		follow:   true,
		viewport: viewport.New(0, 0),
	}
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, logTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// toggleLogs opens or closes the overlay. Opening reads the file at once.
func (m *Model) toggleLogs() tea.Cmd {
	m.logs.open = !m.logs.open
	if !m.logs.open || m.logs.path == "" {
		return nil
	}
	m.logs.follow = true
	m.resizeLogs()
	return readLogCmd(m.logs.path)
}

// refreshLogsCmd re-reads the file while the overlay is open.
func (m Model) refreshLogsCmd(now time.Time) tea.Cmd {
	if !m.logs.open || m.logs.path == "" || now.Sub(m.logs.lastRefresh) < logRefreshInterval {
		return nil
	}
	return readLogCmd(m.logs.path)
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logs.lastRefresh = time.Now()
	m.logs.err = msg.err
	if msg.err == nil {
		m.logs.raw = msg.lines
	}
	m.syncLogs()
}

func (m Model) handleLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Escape):
		cmd := m.toggleLogs()
		return m, cmd
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.LogFollow):
		m.logs.follow = !m.logs.follow
	case key.Matches(msg, m.keys.LogLevel):
		m.logs.minLevel = nextLogLevel(m.logs.minLevel)
	case key.Matches(msg, m.keys.Down):
		m.logs.follow = false
		m.logs.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logs.follow = false
		m.logs.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.DetailDown):
		m.logs.follow = false
		m.logs.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.DetailUp):
		m.logs.follow = false
		m.logs.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.logs.follow = false
		m.logs.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logs.follow = true
	}
	m.syncLogs()
	return m, nil
}

func nextLogLevel(current zapcore.Level) zapcore.Level {
	for i, level := range logLevels {
		if level == current {
			return logLevels[(i+1)%len(logLevels)]
		}
	}
	return logLevels[0]
}

func (m *Model) resizeLogs() {
	m.logs.viewport.Width = max(m.width-4, 0)
	m.logs.viewport.Height = max(m.height-chromeLines, 0)
}

// syncLogs re-renders the filtered lines into the viewport.
func (m *Model) syncLogs() {
	if !m.logs.open {
		return
	}
	m.logs.viewport.SetContent(m.renderLogContent())
	if m.logs.follow {
		m.logs.viewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	entries := logtail.FilterLevel(m.logs.raw, m.logs.minLevel)
	if len(entries) == 0 {
		return styles.FaintText.Render("No log entries at " + m.logs.minLevel.CapitalString() + " or above.")
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Parsed {
			lines = append(lines, styles.FaintText.Render(entry.Raw))
			continue
		}
		line := styles.FaintText.Render(shortLogTime(entry.Time)) + " " +
			m.levelStyle(entry.Level).Render(padRight(entry.Level.CapitalString(), 5)) + " " +
			styles.Text.Render(entry.Message)
		if entry.Fields != "" {
			line += " " + styles.MutedText.Render(entry.Fields)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) levelStyle(level zapcore.Level) lipgloss.Style {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	switch {
	case level >= zapcore.ErrorLevel:
		return styles.DangerText
	case level == zapcore.WarnLevel:
		return styles.WarningText
	case level == zapcore.InfoLevel:
		return styles.AccentText
	default:
		return styles.MutedText
	}
}

// shortLogTime keeps the clock part of an ISO8601 timestamp.
func shortLogTime(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 && len(ts) >= i+9 {
		return ts[i+1 : i+9]
	}
	return ts
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	title := "Log"
	if m.logs.path != "" {
		title = "Log " + truncate(m.logs.path, max(m.width-20, 10))
	}
	content := m.logs.viewport.View()
	if m.logs.err != nil {
		content = styles.DangerText.Render(m.logs.err.Error())
	}
	box := m.renderTitledBox(title, content, m.width, m.height-2, true)

	follow := "off"
	if m.logs.follow {
		follow = "on"
	}
	status := []string{
		bg.Render(fmt.Sprintf("%d lines", len(m.logs.raw)), styles.FaintText),
		bg.Render("level "+m.logs.minLevel.CapitalString(), styles.AccentText),
		bg.Render("follow "+follow, styles.MutedText),
		bg.Render("v", styles.AccentText) + bg.Sep(":") + bg.Render("Level", styles.MutedText),
		bg.Render("f", styles.AccentText) + bg.Sep(":") + bg.Render("Follow", styles.MutedText),
		bg.Render("L/esc", styles.AccentText) + bg.Sep(":") + bg.Render("Close", styles.MutedText),
	}
	bar := styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(status, "  "))
	return m.renderHeader() + "\n" + box + "\n" + bar
}
