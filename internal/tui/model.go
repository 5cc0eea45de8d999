package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// Layout constants for the TUI dashboard.
const (
	headerHeight             = 1
	inputHeight              = 3
	footerHeight             = 1
	minBodyHeight            = 6
	HistoryPanelWidthPercent = 60
	sampleInterval           = 500 * time.Millisecond
)

// errEmptyInput is reported when enter is pressed on an empty line.
var errEmptyInput = errors.New("nothing to evaluate")

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-inputHeight-footerHeight, minBodyHeight)
}

// historyWidth returns the width allocated to the history panel.
func (l LayoutManager) historyWidth() int {
	return l.width * HistoryPanelWidthPercent / 100
}

// metricsWidth returns the width allocated to the metrics panel.
func (l LayoutManager) metricsWidth() int {
	return l.width - l.historyWidth()
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header  HeaderModel
	input   textinput.Model
	history HistoryModel
	metrics MetricsModel
	help    help.Model
	keymap  KeyMap

	LayoutManager

	factory   engine.Factory
	engines   []string
	engineIdx int
	config    config.AppConfig
	parentCtx context.Context
	cancel    context.CancelFunc
	ref       *programRef

	generation   uint64
	running      bool
	progress     *ProgressMsg
	lastInput    string
	historyFocus bool
	exitCode     int
}

// NewModel creates a new TUI model. When cfg names an operation, it is
// evaluated as soon as the program starts.
func NewModel(parentCtx context.Context, factory engine.Factory, cfg config.AppConfig, version string) Model {
	engines := append(append([]string(nil), factory.List()...), "all")
	idx := 0
	for i, name := range engines {
		if name == cfg.Engine {
			idx = i
		}
	}
	if cfg.Engine == "" || cfg.Engine == config.DefaultEngine {
		for i, name := range engines {
			if name == "bigz" {
				idx = i
			}
		}
	}

	ti := textinput.New()
	ti.Prompt = "bigcalc> "
	ti.PromptStyle = promptStyle
	ti.Placeholder = "mul 12 -7, compare pow 3 100, ..."
	ti.Focus()
	if cfg.Op != "" {
		ti.SetValue(strings.TrimSpace(cfg.Op + " " + strings.Join(cfg.Operands, " ")))
	}

	return Model{
		header:    NewHeaderModel(version, engines[idx]),
		input:     ti,
		history:   NewHistoryModel(),
		metrics:   NewMetricsModel(),
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		factory:   factory,
		engines:   engines,
		engineIdx: idx,
		config:    cfg,
		parentCtx: parentCtx,
		ref:       &programRef{},
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tickCmd(), watchContextCmd(m.parentCtx)}
	if m.config.Op != "" {
		cmds = append(cmds, func() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} })
	}
	return tea.Batch(cmds...)
}

// engine returns the current engine selection.
func (m Model) engine() string {
	return m.engines[m.engineIdx]
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		m.progress = &msg
		return m, nil

	case EvalCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous submission
		}
		m.running = false
		m.progress = nil
		m.exitCode = msg.ExitCode
		m.history.Add(msg)
		m.header.Finish(msg.Final == nil)
		if msg.Final != nil {
			return m, computeIndicatorsCmd(*msg.Final, msg.Request.Normalize().OutputBase, msg.Generation)
		}
		return m, nil

	case IndicatorsMsg:
		if msg.Generation == m.generation {
			m.metrics.UpdateIndicators(msg.Indicators)
		}
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleMemStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case ContextCancelledMsg:
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	typing := !m.historyFocus

	switch {
	case msg.Type == tea.KeyCtrlC,
		key.Matches(msg, m.keymap.Quit) && !typing:
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Focus):
		m.historyFocus = !m.historyFocus
		if m.historyFocus {
			m.input.Blur()
			return m, nil
		}
		return m, m.input.Focus()

	case key.Matches(msg, m.keymap.Help) && (!typing || msg.String() != "?"):
		m.help.ShowAll = !m.help.ShowAll
		m.layoutPanels()
		return m, nil

	case key.Matches(msg, m.keymap.Submit) && typing:
		line := m.input.Value()
		m.input.Reset()
		return m.submit(line)

	case key.Matches(msg, m.keymap.Rerun):
		if m.lastInput == "" {
			return m, nil
		}
		return m.submit(m.lastInput)

	case key.Matches(msg, m.keymap.Engine):
		m.engineIdx = (m.engineIdx + 1) % len(m.engines)
		m.header.SetEngine(m.engine())
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.history.Clear()
		return m, nil

	case m.scrollKey(msg, typing):
		return m, nil
	}

	if typing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// scrollKey scrolls the history for navigation keys. While typing, only
// the arrow and page keys scroll so that j and k reach the input.
func (m *Model) scrollKey(msg tea.KeyMsg, typing bool) bool {
	if typing {
		switch msg.String() {
		case "up", "down", "pgup", "pgdown":
		default:
			return false
		}
	}
	page := max(m.bodyHeight()-2, 1)
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.history.Scroll(1)
	case key.Matches(msg, m.keymap.Down):
		m.history.Scroll(-1)
	case key.Matches(msg, m.keymap.PageUp):
		m.history.Scroll(page)
	case key.Matches(msg, m.keymap.PageDown):
		m.history.Scroll(-page)
	default:
		return false
	}
	return true
}

// parseInput turns a typed line into a request. A leading "compare" runs
// the request on every engine.
func parseInput(line string, cfg config.AppConfig, selection string) (engine.Request, string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return engine.Request{}, "", errEmptyInput
	}
	if strings.EqualFold(fields[0], "compare") {
		selection = "all"
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return engine.Request{}, "", errEmptyInput
	}
	req := engine.Request{
		Op:         fields[0],
		Operands:   fields[1:],
		InputBase:  cfg.InputBase,
		OutputBase: cfg.OutputBase,
		ForceSign:  cfg.ForceSign,
	}
	if _, err := req.Validate(); err != nil {
		return req, "", err
	}
	return req.Normalize(), selection, nil
}

// submit starts the evaluation of line, cancelling any running one.
func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	req, selection, err := parseInput(line, m.config, m.engine())
	if errors.Is(err, errEmptyInput) {
		return m, nil
	}
	m.lastInput = line
	m.generation++
	if err != nil {
		m.history.Add(EvalCompleteMsg{Request: req, Err: err, ExitCode: apperrors.ExitErrorConfig, Generation: m.generation})
		m.exitCode = apperrors.ExitErrorConfig
		return m, nil
	}
	evaluators, err := orchestration.GetEvaluatorsToRun(selection, m.factory)
	if err != nil {
		m.history.Add(EvalCompleteMsg{Request: req, Err: err, ExitCode: apperrors.ExitErrorConfig, Generation: m.generation})
		return m, nil
	}

	if m.cancel != nil {
		m.cancel()
	}
	var ctx context.Context
	if m.config.Timeout > 0 {
		ctx, m.cancel = context.WithTimeout(m.parentCtx, m.config.Timeout)
	} else {
		ctx, m.cancel = context.WithCancel(m.parentCtx)
	}
	m.running = true
	m.progress = nil
	m.header.Start()
	return m, startEvaluationCmd(m.ref, ctx, evaluators, req, m.generation)
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.history.View(), m.metrics.View())

	status := ""
	if m.running {
		status = statusRunningStyle.Render(" evaluating")
		if p := m.progress; p != nil {
			status += engineStyle.Render(" " + progressText(*p))
		}
	}
	input := panelStyle.Width(max(m.width-2, 0)).Render(m.input.View() + status)

	m.help.Width = m.width
	footer := m.help.View(m.keymap)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, input, footer)
}

func progressText(p ProgressMsg) string {
	if p.Total > 1 {
		return fmt.Sprintf("%d/%d engines done", p.Done, p.Total)
	}
	return p.Name
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.input.Width = max(m.width-len(m.input.Prompt)-24, 10)
	m.history.SetSize(m.historyWidth(), m.bodyHeight())
	m.metrics.SetSize(m.metricsWidth(), m.bodyHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code of
// the last evaluation.
func Run(ctx context.Context, factory engine.Factory, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, factory, cfg, version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		if m.cancel != nil {
			m.cancel()
		}
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startEvaluationCmd returns a tea.Cmd that runs the orchestration.
func startEvaluationCmd(ref *programRef, ctx context.Context, evaluators []engine.Evaluator, req engine.Request, gen uint64) tea.Cmd {
	return func() tea.Msg {
		results := orchestration.ExecuteEvaluations(ctx, evaluators, req, &TUIProgressReporter{ref: ref}, io.Discard)
		presenter := &TUIResultPresenter{}
		exitCode := orchestration.AnalyzeComparisonResults(results, req, orchestration.PresentationOptions{}, presenter, io.Discard)
		return EvalCompleteMsg{
			Request:    req,
			Results:    presenter.results,
			Final:      presenter.final,
			Err:        presenter.err,
			ExitCode:   exitCode,
			Generation: gen,
		}
	}
}

// tickCmd returns a command that sends a TickMsg after sampleInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(sampleInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

var memCollector = metrics.NewMemoryCollector()

// sampleMemStatsCmd reads runtime and host stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{
			MemorySnapshot: memCollector.Snapshot(),
			NumGoroutine:   runtime.NumGoroutine(),
			System:         sysmon.Sample(),
		}
	}
}

// computeIndicatorsCmd computes the result indicators off the UI goroutine.
func computeIndicatorsCmd(res orchestration.EvaluationResult, base int, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return IndicatorsMsg{Indicators: metrics.Compute(res.Result, base, res.Duration), Generation: gen}
	}
}

// watchContextCmd waits for cancellation of ctx and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
