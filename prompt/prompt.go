// Package prompt provides an interactive terminal binding source. The
// value is read from the user at resolution time, so a prompt binding is
// always provided and never falls back to a default.
package prompt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/internal/ctxlog"
)

// Source reads one line of input from the terminal. When Hide is set the
// typed characters are masked.
type Source struct {
	Text string
	Hide bool

	// In and Out override the terminal streams, primarily for tests. Nil
	// means the process stdin/stdout.
	In  io.Reader
	Out io.Writer
}

// New creates a prompt source with the given prompt text.
func New(text string, hide bool) *Source {
	return &Source{Text: text, Hide: hide}
}

// Origin identifies the binding origin in tree rendering and errors.
func (s *Source) Origin() string { return "prompt" }

// Resolve runs the interactive prompt and returns the entered line. An
// empty line counts as not provided, letting defaults apply.
func (s *Source) Resolve(ctx context.Context) (cty.Value, bool, error) {
	ctxlog.FromContext(ctx).Debug("prompt: reading input.", "text", s.Text, "hide", s.Hide)

	in := s.In
	if in == nil {
		in = os.Stdin
	}
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	m := newModel(s.Text, s.Hide)
	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := program.Run()
	if err != nil {
		return cty.NilVal, false, fmt.Errorf("reading prompt input: %w", err)
	}
	result := final.(model)
	if result.aborted {
		return cty.NilVal, false, fmt.Errorf("prompt aborted")
	}
	line := result.input.Value()
	if line == "" {
		return cty.NilVal, false, nil
	}
	return cty.StringVal(line), true, nil
}

type model struct {
	input   textinput.Model
	aborted bool
	done    bool
}

func newModel(text string, hide bool) model {
	ti := textinput.New()
	ti.Prompt = strings.TrimRight(text, " ") + " "
	if hide {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	ti.Focus()
	return model{input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}
	return m.input.View()
}
