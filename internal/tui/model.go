package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	mdwlog "github.com/msto63/kaleido/foundation/core/log"
	"github.com/msto63/kaleido/foundation/kscope"
	"github.com/msto63/kaleido/foundation/kscope/parser"
	mdwregistry "github.com/msto63/kaleido/foundation/kscope/registry"
	"github.com/msto63/kaleido/internal/render"
)

// Options configures the REPL model
type Options struct {
	// Registry is kept across inputs so that externs and definitions
	// from earlier lines stay known. A fresh one is created when nil.
	Registry      *mdwregistry.Registry
	Logger        *mdwlog.Logger
	Prompt        string
	HistorySize   int
	MaxInputBytes int64
}

// Model is the interactive REPL model. Every submitted input is parsed by
// its own session; a fatal lexical error ends only that input.
type Model struct {
	// State
	width  int
	height int
	ready  bool

	// Components
	textarea textarea.Model
	viewport viewport.Model

	// Transcript of rendered lines
	lines []string

	// Input history, oldest first
	history    []string
	historyPos int

	showTree bool
	stats    kscope.Stats

	registry *mdwregistry.Registry
	logger   *mdwlog.Logger
	opts     Options
}

// NewModel creates a new REPL model
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.Discard()
	}
	if opts.Prompt == "" {
		opts.Prompt = "ready> "
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = 500
	}
	if opts.Registry == nil {
		reg, err := mdwregistry.New(mdwregistry.Options{Logger: opts.Logger})
		if err != nil {
			return Model{}, err
		}
		opts.Registry = reg
	}

	ta := textarea.New()
	ta.Placeholder = "def fib(n) ...   extern sin(x)   1 + 2 * 3"
	ta.Focus()
	ta.CharLimit = 4000
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	return Model{
		textarea: ta,
		registry: opts.Registry,
		logger:   opts.Logger.WithField("component", "kscope-repl"),
		opts:     opts,
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+t":
			m.showTree = !m.showTree
			mode := "one-line"
			if m.showTree {
				mode = "tree"
			}
			m.appendLine(SystemMessageStyle.Render("output: " + mode))
			return m, nil

		case "ctrl+l":
			m.lines = nil
			m.refresh()
			return m, nil

		case "up":
			m.recall(-1)
			return m, nil

		case "down":
			m.recall(1)
			return m, nil

		case "enter":
			input := strings.TrimSpace(m.textarea.Value())
			if input != "" {
				m.textarea.Reset()
				m.Eval(input)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(msg.Height-10, 1))
			m.viewport.YPosition = 3
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(msg.Height-10, 1)
		}
		m.textarea.SetWidth(max(msg.Width-4, 10))
		m.refresh()
	}

	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// Eval parses one input against the shared registry and appends the
// results to the transcript
func (m *Model) Eval(input string) {
	m.pushHistory(input)
	m.appendLine(InputEchoStyle.Render(m.opts.Prompt + input))

	sink := parser.NewCollector()
	units, stats, err := kscope.Parse(context.Background(), strings.NewReader(input), kscope.Options{
		Logger:        m.logger,
		Registry:      m.registry,
		Sink:          sink,
		MaxInputBytes: m.opts.MaxInputBytes,
	})

	for _, u := range units {
		if m.showTree {
			m.appendLine(ResultStyle.Render(strings.TrimRight(render.UnitTree(u), "\n")))
		} else {
			m.appendLine(ResultStyle.Render(render.UnitText(u)))
		}
	}
	for _, diag := range sink.Errors() {
		m.appendLine(RenderDiagnostic(diag))
	}
	if err != nil {
		if mdwErr, ok := mdwerror.As(err); ok {
			m.appendLine(RenderDiagnostic(mdwErr))
		} else {
			m.appendLine(RenderError(err.Error()))
		}
	}

	m.stats.Definitions += stats.Definitions
	m.stats.Externs += stats.Externs
	m.stats.TopLevel += stats.TopLevel
	m.stats.SyntaxErrors += stats.SyntaxErrors
	m.stats.HandlerErrors += stats.HandlerErrors
}

// Transcript returns the rendered transcript lines
func (m Model) Transcript() []string {
	return m.lines
}

// Stats returns the counters accumulated over all inputs
func (m Model) Stats() kscope.Stats {
	return m.stats
}

// View renders the model
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(FocusedInputStyle.Render(m.textarea.View()))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m *Model) renderHeader() string {
	title := RenderTitle("Kaleidoscope")
	subtitle := SubtitleStyle.Render("parse definitions, externs and expressions")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (m *Model) renderFooter() string {
	status := StatusBarStyle.Render(fmt.Sprintf("defs %d  externs %d  exprs %d  errors %d  known %d",
		m.stats.Definitions, m.stats.Externs, m.stats.TopLevel, m.stats.SyntaxErrors, m.registry.Len()))
	help := RenderHelp("enter: parse  ↑/↓: history  ctrl+t: tree  ctrl+l: clear  esc: quit")
	return lipgloss.JoinVertical(lipgloss.Left, status, help)
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) pushHistory(input string) {
	if n := len(m.history); n == 0 || m.history[n-1] != input {
		m.history = append(m.history, input)
	}
	if over := len(m.history) - m.opts.HistorySize; over > 0 {
		m.history = m.history[over:]
	}
	m.historyPos = len(m.history)
}

// recall moves through the history; past the newest entry the input is
// cleared
func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}

	pos := m.historyPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.history) {
		m.historyPos = len(m.history)
		m.textarea.Reset()
		return
	}

	m.historyPos = pos
	m.textarea.SetValue(m.history[pos])
}
