// Package wizard is the interactive guide: it shows the status phases of a
// request, makes the generation call when they run out and then pages
// through the generated steps.
package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getsavvyinc/webtoapk/client"
	"github.com/getsavvyinc/webtoapk/cmd/browser"
	"github.com/getsavvyinc/webtoapk/cmd/component/status"
	"github.com/getsavvyinc/webtoapk/cmd/component/steplist"
	"github.com/getsavvyinc/webtoapk/cmd/component/stepview"
	"github.com/getsavvyinc/webtoapk/export/markdown"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/lifecycle"
	"github.com/getsavvyinc/webtoapk/theme"
)

const (
	DefaultCopyAck = 2 * time.Second
	maxWidth       = 100
)

type mode int

const (
	modeProgress mode = iota
	modeGuide
	modeFailed
	modeList
)

type phaseTickMsg struct{ id string }

type generatedMsg struct {
	id    string
	steps []guide.Step
	err   error
}

type copiedMsg struct {
	key string
	err error
}

type clearCopiedMsg struct{ seq int }

type openedMsg struct {
	url string
	err error
}

type exportedMsg struct {
	res markdown.Result
	err error
}

var (
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	errStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Error).Foreground(theme.Error).Padding(0, 1)
	flashStyle = lipgloss.NewStyle().Foreground(theme.Subtle).Italic(true)
	hintStyle  = lipgloss.NewStyle().Foreground(theme.Muted)
)

type Model struct {
	ctx      context.Context
	ctrl     *lifecycle.Controller
	cl       client.Client
	id       string
	interval time.Duration
	copyAck  time.Duration
	logger   *slog.Logger

	clipboard func(string) error
	open      func(string) error
	exporter  markdown.Service

	status   status.Model
	nav      *guide.Navigator
	renderer *stepview.Renderer
	list     steplist.Model
	keys     keyMap
	help     help.Model
	dots     paginator.Model

	mode    mode
	focus   int
	copied  string
	copySeq int
	flash   string
	width   int
	height  int
	restart bool
	err     error
}

type Option func(*Model)

func WithPhaseInterval(d time.Duration) Option {
	return func(m *Model) {
		m.interval = d
	}
}

func WithCopyAck(d time.Duration) Option {
	return func(m *Model) {
		m.copyAck = d
	}
}

func WithClipboard(f func(string) error) Option {
	return func(m *Model) {
		m.clipboard = f
	}
}

func WithOpener(f func(string) error) Option {
	return func(m *Model) {
		m.open = f
	}
}

func WithExporter(s markdown.Service) Option {
	return func(m *Model) {
		m.exporter = s
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// New drives request id of ctrl. The request must have been submitted.
func New(ctx context.Context, ctrl *lifecycle.Controller, cl client.Client, id string, opts ...Option) Model {
	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.PerPage = 1
	dots.ActiveDot = lipgloss.NewStyle().Foreground(theme.Accent).Render("•")
	dots.InactiveDot = lipgloss.NewStyle().Foreground(theme.Muted).Render("•")

	m := Model{
		ctx:       ctx,
		ctrl:      ctrl,
		cl:        cl,
		id:        id,
		interval:  time.Second,
		copyAck:   DefaultCopyAck,
		logger:    slog.Default(),
		clipboard: clipboard.WriteAll,
		open:      browser.Open,
		exporter:  markdown.NewService(),
		status:    status.New("Processing request...", ctrl.Phases()),
		nav:       guide.NewNavigator(nil, ctrl.OS()),
		renderer:  stepview.NewRenderer(maxWidth),
		keys:      newKeyMap(),
		help:      help.New(),
		dots:      dots,
		focus:     -1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Restart reports whether the user asked to start over.
func (m Model) Restart() bool { return m.restart }

// Err is the generation error of a failed request.
func (m Model) Err() error { return m.err }

// ID is the id of the request driven by m.
func (m Model) ID() string { return m.id }

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return phaseTickMsg{id: id}
	})
}

func (m Model) generate() tea.Cmd {
	cl, id, req := m.cl, m.id, m.ctrl.Request()
	ctx := client.ContextWithLogger(m.ctx, m.logger.With("id", id))
	return func() tea.Msg {
		steps, err := cl.Generate(ctx, req)
		return generatedMsg{id: id, steps: steps, err: err}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.status.Init(), m.tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, _ := docStyle.GetFrameSize()
		m.renderer = stepview.NewRenderer(min(msg.Width-h, maxWidth))
		m.help.Width = msg.Width - h
		if m.mode == modeList {
			m.list.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case phaseTickMsg:
		switch m.ctrl.Tick(msg.id) {
		case lifecycle.TickAdvanced:
			m.status.SetPhase(m.ctrl.Phase())
			return m, m.tick()
		case lifecycle.TickDispatch:
			m.status.SetPhase(m.ctrl.Phase())
			return m, m.generate()
		}
		return m, nil

	case generatedMsg:
		return m.applyResult(msg), nil

	case copiedMsg:
		if msg.err != nil {
			m.flash = "Could not copy: " + msg.err.Error()
			return m, nil
		}
		m.copied = msg.key
		m.copySeq++
		seq := m.copySeq
		return m, tea.Tick(m.copyAck, func(time.Time) tea.Msg {
			return clearCopiedMsg{seq: seq}
		})

	case clearCopiedMsg:
		if msg.seq == m.copySeq {
			m.copied = ""
		}
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.flash = fmt.Sprintf("Could not open %s: %v", msg.url, msg.err)
		} else {
			m.flash = "Opened " + msg.url
		}
		return m, nil

	case exportedMsg:
		switch {
		case msg.err != nil:
			m.flash = "Export failed: " + msg.err.Error()
		case msg.res.Copied:
			m.flash = "Saved " + msg.res.Path + " and copied it to the clipboard"
		default:
			m.flash = "Saved " + msg.res.Path
		}
		return m, nil

	case steplist.SelectedMsg:
		m.nav.Jump(msg.Index)
		m.mode = modeGuide
		m.resetPage()
		return m, nil

	case steplist.ClosedMsg:
		m.mode = modeGuide
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeProgress:
			return m.updateProgress(msg)
		case modeFailed:
			return m.updateFailed(msg)
		case modeList:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		default:
			return m.updateGuide(msg)
		}
	}

	if m.mode == modeProgress {
		var cmd tea.Cmd
		m.status, cmd = m.status.Update(msg)
		return m, cmd
	}
	if m.mode == modeList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) applyResult(msg generatedMsg) Model {
	if msg.err != nil {
		if m.ctrl.Reject(msg.id, msg.err) {
			m.logger.Debug("generation failed", "id", msg.id, "kind", client.KindOf(msg.err))
			m.err = msg.err
			m.mode = modeFailed
		}
		return m
	}
	if !m.ctrl.Resolve(msg.id, msg.steps) {
		return m
	}
	m.nav = guide.NewNavigator(m.ctrl.Steps(), m.ctrl.OS())
	m.dots.SetTotalPages(m.nav.Len())
	m.mode = modeGuide
	m.resetPage()
	return m
}

// startOver resets the controller and leaves the program so the caller can
// collect new input.
func (m Model) startOver() (tea.Model, tea.Cmd) {
	m.ctrl.Reset()
	m.restart = true
	m.err = nil
	return m, tea.Quit
}

func (m Model) updateProgress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reset), msg.String() == "esc":
		return m.startOver()
	}
	return m, nil
}

func (m Model) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reset), msg.String() == "enter":
		return m.startOver()
	}
	return m, nil
}

func (m *Model) resetPage() {
	m.focus = -1
	m.copied = ""
	m.flash = ""
	m.dots.Page = m.nav.Index()
}

func (m Model) page() guide.Page {
	p, _ := m.nav.Page()
	return p
}

func (m Model) updateGuide(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		if m.nav.Prev() {
			m.resetPage()
		}

	case key.Matches(msg, m.keys.Next):
		if m.nav.IsLast() {
			return m.startOver()
		}
		m.nav.Next()
		m.resetPage()

	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.FocusPrev):
		n := len(m.page().Groups.Flatten())
		if n == 0 {
			return m, nil
		}
		step := 1
		if key.Matches(msg, m.keys.FocusPrev) {
			step = n - 1
		}
		if m.focus < 0 && step != 1 {
			m.focus = n - 1
		} else {
			m.focus = (m.focus + step) % n
		}

	case key.Matches(msg, m.keys.Activate):
		return m, m.activate()

	case key.Matches(msg, m.keys.Copy):
		if cmd := m.page().Command; cmd != "" {
			return m, m.copy(stepview.CopiedCommand, cmd)
		}

	case key.Matches(msg, m.keys.SwitchOS):
		os := m.nav.ToggleOS()
		m.logger.Debug("switched os", "os", os)
		m.resetPage()

	case key.Matches(msg, m.keys.List):
		m.list = steplist.New(m.nav.Steps(), m.nav.Index())
		if m.width > 0 {
			m.list.SetSize(m.width, m.height)
		}
		m.mode = modeList

	case key.Matches(msg, m.keys.Export):
		return m, m.export()

	case key.Matches(msg, m.keys.Reset):
		return m.startOver()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) copy(target, text string) tea.Cmd {
	write := m.clipboard
	return func() tea.Msg {
		return copiedMsg{key: target, err: write(text)}
	}
}

func (m Model) activate() tea.Cmd {
	actions := m.page().Groups.Flatten()
	if m.focus < 0 || m.focus >= len(actions) {
		return nil
	}
	a := actions[m.focus]
	if err := a.Validate(); err != nil {
		m.logger.Debug("invalid action", "label", a.Label, "err", err)
		return func() tea.Msg { return openedMsg{url: a.Value, err: err} }
	}

	switch a.Kind {
	case guide.ActionLink:
		open := m.open
		return func() tea.Msg {
			return openedMsg{url: a.Value, err: open(a.Value)}
		}
	default:
		return m.copy(stepview.ActionKey(m.focus), a.Value)
	}
}

func (m Model) export() tea.Cmd {
	exporter, req, steps := m.exporter, m.ctrl.Request(), m.nav.Steps()
	req.OS = m.nav.OS()
	return func() tea.Msg {
		res, err := exporter.ToMarkdownFile(req, steps)
		return exportedMsg{res: res, err: err}
	}
}

func (m Model) View() string {
	switch m.mode {
	case modeProgress:
		return docStyle.Render(m.status.View() + "\n" + hintStyle.Render("r cancel • q quit"))
	case modeFailed:
		return docStyle.Render(errStyle.Render(m.ctrl.Error()) + "\n" +
			hintStyle.Render("Request "+m.id+" • details: webtoapk logs --request "+m.id) + "\n\n" +
			hintStyle.Render("r start over • q quit"))
	case modeList:
		return m.list.View()
	}

	if m.nav.Len() == 0 {
		return docStyle.Render(errStyle.Render("No steps were generated for this repository.") + "\n\n" +
			hintStyle.Render("r start over • q quit"))
	}

	body := m.renderer.Render(m.page(), stepview.State{
		Index:  m.nav.Index(),
		Total:  m.nav.Len(),
		Focus:  m.focus,
		Copied: m.copied,
	})
	footer := m.dots.View()
	if m.nav.IsLast() {
		footer += "  " + hintStyle.Render("→ start over")
	}
	if m.flash != "" {
		footer += "\n" + flashStyle.Render(m.flash)
	}
	return docStyle.Render(body + "\n\n" + footer + "\n" + m.help.View(m.keys))
}
