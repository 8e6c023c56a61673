package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytsheet/internal/shared"
	"github.com/mattn/go-isatty"
)

// AskFunc asks the operator a question and returns the trimmed answer.
type AskFunc func(ctx context.Context, question string) (string, error)

// PromptModel is a single-line input view.
type PromptModel struct {
	question  string
	input     textinput.Model
	help      help.Model
	keys      keyMap
	value     string
	submitted bool
	cancelled bool
}

var _ tea.Model = (*PromptModel)(nil)

// NewPromptModel creates a focused prompt for question.
func NewPromptModel(question string) *PromptModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Width = 64
	ti.Focus()

	return &PromptModel{
		question: question,
		input:    ti,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

func (m *PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses; enter submits and esc/ctrl+c cancels. Everything else goes to the input.
func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.submit):
			m.value = strings.TrimSpace(m.input.Value())
			m.submitted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.cancel):
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the question and input, or the final answer once the prompt is closed.
func (m *PromptModel) View() string {
	switch {
	case m.submitted:
		return fmt.Sprintf("%s%s\n", m.question, styles.Success(m.value))
	case m.cancelled:
		return fmt.Sprintf("%s%s\n", m.question, styles.Warn("cancelled"))
	}
	return fmt.Sprintf("%s%s\n\n%s\n", styles.Title(m.question), m.input.View(), m.help.ShortHelpView(m.keys.ShortHelp()))
}

// Value returns the submitted answer or [shared.ErrInputCancelled].
func (m *PromptModel) Value() (string, error) {
	if m.cancelled || !m.submitted {
		return "", shared.ErrInputCancelled
	}
	return m.value, nil
}

// Ask runs a [PromptModel] on the given terminal streams.
func Ask(ctx context.Context, in io.Reader, out io.Writer, question string) (string, error) {
	p := tea.NewProgram(NewPromptModel(question), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", shared.ErrInputCancelled
		}
		return "", err
	}

	m, ok := final.(*PromptModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	return m.Value()
}

// TerminalAsker returns an [AskFunc] backed by [Ask].
func TerminalAsker(in io.Reader, out io.Writer) AskFunc {
	return func(ctx context.Context, question string) (string, error) {
		return Ask(ctx, in, out, question)
	}
}

// LineAsker returns an [AskFunc] that prints the question and reads one line from in.
//
// The reader is shared between calls so buffered input is not lost. A read blocks until a
// line arrives; the context is only checked before reading.
func LineAsker(in io.Reader, out io.Writer) AskFunc {
	var mu sync.Mutex
	reader := bufio.NewReader(in)

	return func(ctx context.Context, question string) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		if err := ctx.Err(); err != nil {
			return "", err
		}

		fmt.Fprint(out, question)

		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line != "" {
				return strings.TrimSpace(line), nil
			}
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: %w", shared.ErrInputCancelled, err)
			}
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

// NewAsker picks [TerminalAsker] when both streams are terminals and [LineAsker] otherwise.
func NewAsker(in, out *os.File) AskFunc {
	if IsTerminal(in) && IsTerminal(out) {
		return TerminalAsker(in, out)
	}
	return LineAsker(in, out)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
