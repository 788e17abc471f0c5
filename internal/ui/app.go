package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/quayside/internal/config"
	"github.com/five82/quayside/internal/containers"
	"github.com/five82/quayside/internal/prefs"
	"github.com/five82/quayside/internal/state"
	"github.com/five82/quayside/internal/view"
)

// focusArea is the component receiving key presses.
type focusArea int

const (
	focusTable focusArea = iota
	focusQuery
	focusDate
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Source    containers.Source
	Store     *state.Store
	Reload    func() bool // starts a new load; false when one is running
	Config    *config.Config
	Logger    *zap.Logger
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	source    containers.Source
	store     *state.Store
	reload    func() bool
	config    *config.Config
	logger    *zap.Logger
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	theme  Theme
	width  int
	height int
	ready  bool
	focus  focusArea

	snapshot   state.Snapshot
	generation uint64
	engine     *view.Engine

	queryInput textinput.Model
	dateInput  textinput.Model
	dateErr    string
	notice     string

	selectedRow int

	detail detailState
	logs   logState

	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := view.New()
	logPath := ""
	if opts.Config != nil {
		logPath = opts.Config.LogPath()
		if err := engine.SetPageSize(opts.Config.PageSize); err != nil {
			logger.Warn("configured page size ignored", zap.Error(err))
		}
	}

	return Model{
		ctx:        ctx,
		source:     opts.Source,
		store:      opts.Store,
		reload:     opts.Reload,
		config:     opts.Config,
		logger:     logger,
		prefsPath:  prefsPath,
		pollTick:   pollTick,
		keys:       DefaultKeyMap(),
		theme:      GetTheme(themeName),
		engine:     engine,
		queryInput: newQueryInput(),
		dateInput:  newDateInput(),
		detail:     newDetailState(),
		logs:       newLogState(logPath),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		if model, ok := next.(Model); ok {
			model.syncDetail()
			return model, cmd
		}
		return next, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeInputs()
		m.resizeDetail()
		m.resizeLogs()
		m.syncLogs()
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		if cmd := m.refreshLogsCmd(time.Time(msg)); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		m.syncDetail()
		return m, nil

	case detailMsg:
		m.handleDetail(msg)
		m.syncDetail()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.logs.open {
		return m.renderLogs()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderPager())
	return b.String()
}

// applySnapshot feeds a new fetch generation into the engine. Query, staged
// date and page size survive a reload; the page index resets.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if snap.Generation == m.generation {
		return
	}
	m.generation = snap.Generation
	m.engine.Load(snap.Records)
	m.selectedRow = 0
	if snap.Failed() {
		m.closeDetail()
	}
}

// handleKey routes key presses to the focused component.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.logs.open {
		return m.handleLogKey(msg)
	}

	switch m.focus {
	case focusQuery:
		return m.handleQueryKey(msg)
	case focusDate:
		return m.handleDateKey(msg)
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save preferences", zap.Error(err))
		}

	case key.Matches(msg, m.keys.Refresh):
		m.startReload()

	case key.Matches(msg, m.keys.Logs):
		cmd := m.toggleLogs()
		return m, cmd

	case key.Matches(msg, m.keys.FocusQuery):
		cmd := m.focusInput(focusQuery)
		return m, cmd

	case key.Matches(msg, m.keys.FocusDate):
		cmd := m.focusInput(focusDate)
		return m, cmd

	case key.Matches(msg, m.keys.ClearDate):
		m.clearDate()

	case key.Matches(msg, m.keys.Escape):
		m.closeDetail()

	case key.Matches(msg, m.keys.NextPage):
		m.engine.NextPage()
		m.selectedRow = 0

	case key.Matches(msg, m.keys.PrevPage):
		m.engine.PreviousPage()
		m.selectedRow = 0

	case key.Matches(msg, m.keys.PageSizeUp):
		m.cyclePageSize(1)

	case key.Matches(msg, m.keys.PageSizeDown):
		m.cyclePageSize(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0

	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(len(m.engine.CurrentPageRows())-1, 0)

	case key.Matches(msg, m.keys.Open):
		cmd := m.openDetail()
		return m, cmd

	case key.Matches(msg, m.keys.DetailDown):
		m.detail.viewport.HalfPageDown()

	case key.Matches(msg, m.keys.DetailUp):
		m.detail.viewport.HalfPageUp()
	}
	return m, nil
}

func (m *Model) startReload() {
	if m.reload == nil {
		return
	}
	if !m.reload() {
		m.notice = "Reload already running"
		return
	}
	m.notice = "Reloading..."
}

// cyclePageSize steps through view.PageSizes keeping the first visible row.
func (m *Model) cyclePageSize(step int) {
	sizes := view.PageSizes
	current := 0
	for i, size := range sizes {
		if size == m.engine.PageSize() {
			current = i
			break
		}
	}
	next := sizes[(current+step+len(sizes))%len(sizes)]
	if err := m.engine.SetPageSize(next); err != nil {
		m.logger.Warn("page size rejected", zap.Int("size", next), zap.Error(err))
		return
	}
	m.clampSelection()
}

func (m *Model) moveSelection(delta int) {
	m.selectedRow += delta
	m.clampSelection()
}

func (m *Model) clampSelection() {
	rows := len(m.engine.CurrentPageRows())
	if m.selectedRow >= rows {
		m.selectedRow = rows - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// selectedRecord returns the highlighted record on the current page.
func (m Model) selectedRecord() (containers.Record, bool) {
	rows := m.engine.CurrentPageRows()
	if m.selectedRow < 0 || m.selectedRow >= len(rows) {
		return containers.Record{}, false
	}
	return rows[m.selectedRow], true
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
