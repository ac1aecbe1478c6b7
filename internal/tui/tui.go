// Package tui provides a Bubble Tea terminal user interface for tapmusic-cli.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/tapmusic-cli/internal/collage"
	"github.com/handiism/tapmusic-cli/internal/config"
	"github.com/handiism/tapmusic-cli/internal/http"
	ioutils "github.com/handiism/tapmusic-cli/internal/io"
	"github.com/handiism/tapmusic-cli/internal/model"
	"github.com/handiism/tapmusic-cli/internal/tapmusic"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateFetching
	StateComplete
	StateError
)

// Form fields in focus order. The first three are text inputs.
const (
	fieldUser = iota
	fieldDir
	fieldFile
	fieldSize
	fieldPeriod
	fieldCaption
	fieldPlaycount
	fieldCount
)

var sizeChoices = []string{"3", "4", "5", "10"}

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   collage.ProgressLevel
}

// eventLog collects progress events from the fetch goroutine.
type eventLog struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (l *eventLog) add(e collage.ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Message: e.Message, Level: e.Level})
}

func (l *eventLog) snapshot() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings

	sizeIdx   int
	periodIdx int
	caption   bool
	playcount bool
	verbose   bool

	formErr error
	err     error
	result  *collage.Result
	request *tapmusic.Request

	// Fetch context
	ctx    context.Context
	cancel context.CancelFunc

	fetcher *collage.Fetcher
	events  *eventLog
	logs    []LogEntry

	receivedBytes int64
	totalBytes    int64

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	inputs := make([]textinput.Model, fieldSize)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 500
		ti.Width = 50
		inputs[i] = ti
	}
	inputs[fieldUser].Placeholder = "Last.fm username"
	inputs[fieldUser].Focus()
	inputs[fieldDir].Placeholder = "output directory"
	inputs[fieldDir].SetValue(settings.DownloadsPath)
	inputs[fieldFile].Placeholder = "optional: custom file name (.jpg, .jpeg, .png)"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		inputs:    inputs,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		sizeIdx:   1, // 4x4
		periodIdx: 1, // 1m
		caption:   settings.DefaultCaption == "t",
		playcount: settings.DefaultPlaycount == "t",
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// FetchDoneMsg is sent when the collage request finishes.
	FetchDoneMsg struct {
		Result *collage.Result
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateFetching {
				m.cancel()
			}
			return m, nil

		case "tab", "down":
			if m.state == StateInput {
				m.setFocus((m.focus + 1) % fieldCount)
				return m, nil
			}

		case "shift+tab", "up":
			if m.state == StateInput {
				m.setFocus((m.focus + fieldCount - 1) % fieldCount)
				return m, nil
			}

		case "left", "right", " ":
			if m.state == StateInput && m.focus >= fieldSize {
				step := 1
				if msg.String() == "left" {
					step = -1
				}
				m.changeOption(step)
				return m, nil
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.inputs[fieldUser].Value()) != "" {
				req, err := tapmusic.NewRequest(m.input(), m.settings.ToOptions())
				if err != nil {
					m.formErr = err
					return m, nil
				}
				m.formErr = nil
				m.request = req
				m.events = &eventLog{}
				m.fetcher = collage.NewFetcher(m.settings, m.events.add)
				m.state = StateFetching
				return m, tea.Batch(m.startFetch(), m.spinner.Tick, m.tickProgress())
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new collage, keeping the form values
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.result = nil
				m.request = nil
				m.fetcher = nil
				m.events = nil
				m.receivedBytes = 0
				m.totalBytes = 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.setFocus(fieldUser)
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case FetchDoneMsg:
		m.syncProgress()
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
			m.result = msg.Result
		}

	case TickMsg:
		if m.state == StateFetching {
			m.syncProgress()

			var percent float64
			if m.totalBytes > 0 {
				percent = float64(m.receivedBytes) / float64(m.totalBytes)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update focused text input
	if m.state == StateInput && m.focus < fieldSize {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

func (m *Model) setFocus(field int) {
	m.focus = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) changeOption(step int) {
	periods := model.PeriodOptions(m.settings.AllowOverall)
	switch m.focus {
	case fieldSize:
		m.sizeIdx = (m.sizeIdx + step + len(sizeChoices)) % len(sizeChoices)
	case fieldPeriod:
		m.periodIdx = (m.periodIdx + step + len(periods)) % len(periods)
	case fieldCaption:
		m.caption = !m.caption
	case fieldPlaycount:
		m.playcount = !m.playcount
	}
}

// input collects the form values as raw collage input.
func (m Model) input() model.Input {
	periods := model.PeriodOptions(m.settings.AllowOverall)
	return model.Input{
		Username:  strings.TrimSpace(m.inputs[fieldUser].Value()),
		Size:      sizeChoices[m.sizeIdx],
		Period:    periods[m.periodIdx%len(periods)],
		Caption:   flagValue(m.caption),
		Playcount: flagValue(m.playcount),
		Dir:       strings.TrimSpace(m.inputs[fieldDir].Value()),
		File:      strings.TrimSpace(m.inputs[fieldFile].Value()),
	}
}

func flagValue(on bool) string {
	if on {
		return "t"
	}
	return "f"
}

func (m *Model) syncProgress() {
	if m.fetcher != nil {
		m.receivedBytes, m.totalBytes = m.fetcher.GetProgress()
	}
	if m.events != nil {
		m.logs = m.events.snapshot()
	}
	if !m.verbose {
		filtered := m.logs[:0:0]
		for _, l := range m.logs {
			if l.Level != collage.LevelVerbose {
				filtered = append(filtered, l)
			}
		}
		m.logs = filtered
	}
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 tapmusic collage"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Your Last.fm top albums as one image"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateFetching:
		b.WriteString(m.viewFetching())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	labels := []string{"Username", "Directory", "File"}
	for i, label := range labels {
		b.WriteString(m.label(i, label))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	in := m.input()
	size, _ := model.ParseSize(in.Size)
	b.WriteString(m.label(fieldSize, "Size"))
	b.WriteString(fmt.Sprintf("‹ %s ›", size.Token()))
	if size.Premium() {
		b.WriteString(warningStyle.Render("  premium"))
	}
	b.WriteString("\n")
	b.WriteString(m.label(fieldPeriod, "Period"))
	b.WriteString(fmt.Sprintf("‹ %s ›\n", in.Period))
	b.WriteString(m.label(fieldCaption, "Captions"))
	b.WriteString(checkbox(m.caption) + "\n")
	b.WriteString(m.label(fieldPlaycount, "Playcounts"))
	b.WriteString(checkbox(m.playcount) + "\n")
	b.WriteString(m.label(-1, "Verbose"))
	b.WriteString(checkbox(m.verbose) + dimStyle.Render(" (ctrl+v)") + "\n")

	if m.formErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.formErr.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) label(field int, text string) string {
	text = fmt.Sprintf("%-11s", text)
	if field == m.focus {
		return focusStyle.Render("› " + text)
	}
	return subtitleStyle.Render("  " + text)
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewFetching() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Rendering collage..."))
	b.WriteString("\n\n")

	if m.totalBytes > 0 {
		b.WriteString(m.progress.ViewAs(float64(m.receivedBytes) / float64(m.totalBytes)))
		b.WriteString("\n")
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("Received: %.1f KB", float64(m.receivedBytes)/1024)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	if m.result == nil {
		return ""
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Collage saved!\n\n"+
			"File: %s\n"+
			"Size: %.1f KB",
		m.result.Path,
		float64(m.result.Bytes)/1024,
	))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	title, detail := describeError(m.err)
	b.WriteString(errorStyle.Render("❌ " + title))
	b.WriteString("\n\n")
	if detail != "" {
		b.WriteString(fmt.Sprintf("  %s\n", detail))
	}

	return b.String()
}

// describeError turns a fetch error into a headline and a hint for the user.
func describeError(err error) (title, detail string) {
	var (
		serviceErr *tapmusic.ServiceError
		statusErr  *http.StatusError
	)

	switch {
	case err == nil:
		return "Unknown error", ""
	case errors.Is(err, context.Canceled):
		return "Cancelled by user", "No collage was saved."
	case errors.As(err, &serviceErr):
		return "tapmusic could not create the collage", serviceErr.Guidance()
	case errors.Is(err, http.ErrTimeout):
		return "Request timed out", "Try again later."
	case errors.Is(err, http.ErrTooManyRedirects):
		return "Too many redirects", err.Error()
	case errors.Is(err, ioutils.ErrFileExists):
		return "File already exists", err.Error() + "; the existing file was left untouched."
	case errors.As(err, &statusErr):
		return "tapmusic returned an error", err.Error()
	}
	return "Error occurred", err.Error()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case collage.LevelError:
			style = errorStyle
			prefix = "✗"
		case collage.LevelWarning:
			style = warningStyle
			prefix = "!"
		case collage.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case collage.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: fetch • tab/↑↓: move • ←→/space: change option • esc: quit"
	case StateFetching:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new collage • q: quit"
	}
	return ""
}

// startFetch runs the collage request in the background.
func (m *Model) startFetch() tea.Cmd {
	fetcher, req, ctx := m.fetcher, m.request, m.ctx
	return func() tea.Msg {
		if fetcher == nil || req == nil {
			return FetchDoneMsg{Err: errors.New("no request")}
		}

		result, err := fetcher.Fetch(ctx, req)
		return FetchDoneMsg{Result: result, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
