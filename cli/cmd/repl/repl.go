// Package repl implements the interactive template playground. The source
// pane is an editable textarea; every keystroke re-expands the template and
// the result pane shows the rendered output or the error with a caret
// snippet.
package repl

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LyonSyonII/akin/lang"
	"github.com/LyonSyonII/akin/log"
)

// Styles.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Run starts the playground, optionally preloaded with template source.
// It blocks until the user quits or the context is cancelled.
func Run(ctx context.Context, initial string, logger log.Logger) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.Bool("preloaded", initial != ""))

	m := newModel(ctx, initial, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()

	return err
}

// model is the Bubble Tea model for the playground.
type model struct {
	ctxFunc func() context.Context
	editor  textarea.Model
	result  viewport.Model
	logger  log.Logger

	source    string // last rendered source
	rendered  string // last successful expansion
	renderErr error

	width    int
	height   int
	quitting bool
}

func newModel(ctx context.Context, initial string, logger log.Logger) model {
	ta := textarea.New()
	ta.Placeholder = "let &name = [a, b, c];\n... *name ..."
	ta.SetValue(initial)
	ta.Focus()

	m := model{
		ctxFunc: func() context.Context { return ctx },
		editor:  ta,
		result:  viewport.New(defaultWidth, defaultHeight/2),
		logger:  logger,
		width:   defaultWidth,
		height:  defaultHeight,
	}

	m.render()
	m.layout()

	return m
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true

			return m, tea.Quit

		case tea.KeyCtrlL:
			m.editor.SetValue("")
			m.render()

			return m, nil

		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd

			m.result, cmd = m.result.Update(msg)

			return m, cmd
		}

		var cmd tea.Cmd

		m.editor, cmd = m.editor.Update(msg)
		m.render()

		return m, cmd
	}

	var cmd tea.Cmd

	m.editor, cmd = m.editor.Update(msg)

	return m, cmd
}

// render expands the editor content and refreshes the result pane.
func (m *model) render() {
	src := m.editor.Value()
	if src == m.source {
		return
	}

	m.source = src

	out, err := lang.Render(m.ctxFunc(), src, lang.WithLogger(m.logger))
	m.renderErr = err

	if err != nil {
		m.logger.TraceContext(m.ctxFunc(), "repl render failed",
			slog.Any("error", err))
		m.result.SetContent(m.errorView())

		return
	}

	m.rendered = out

	m.logger.TraceContext(m.ctxFunc(), "repl render",
		slog.Int("source_len", len(src)),
		slog.Int("output_len", len(out)))

	m.result.SetContent(resultStyle.Render(out))
}

// errorView formats the current render error with a caret snippet when the
// error carries a source position.
func (m *model) errorView() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("error: " + m.renderErr.Error()))
	b.WriteString("\n")

	var expErr *lang.Error
	if errors.As(m.renderErr, &expErr) {
		if snippet := expErr.Snippet(m.source); snippet != "" {
			b.WriteString(hintStyle.Render(snippet))
		}
	}

	return b.String()
}

// layout splits the available height between the editor and result panes.
func (m *model) layout() {
	frame := paneStyle.GetVerticalFrameSize()

	// Title and footer each take one line.
	usable := m.height - 2 - 2*frame
	if usable < 4 {
		usable = 4
	}

	editorHeight := usable / 2

	m.editor.SetWidth(m.width - paneStyle.GetHorizontalFrameSize())
	m.editor.SetHeight(editorHeight)

	m.result.Width = m.width - paneStyle.GetHorizontalFrameSize()
	m.result.Height = usable - editorHeight
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("akin playground"))
	b.WriteString("\n")
	b.WriteString(paneStyle.Render(m.editor.View()))
	b.WriteString("\n")
	b.WriteString(paneStyle.Render(m.result.View()))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(
		"PgUp/PgDn scroll output · Ctrl+L clear · Esc quit"))

	return b.String()
}
