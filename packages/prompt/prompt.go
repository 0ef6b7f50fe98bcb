// Package prompt implements wizard questions as small bubbletea programs.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the operator aborts a question.
var ErrCancelled = errors.New("prompt cancelled")

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// Terminal asks questions on a terminal.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

type Option func(*Terminal)

func WithInput(r io.Reader) Option {
	return func(t *Terminal) {
		t.in = r
	}
}

func WithOutput(w io.Writer) Option {
	return func(t *Terminal) {
		t.out = w
	}
}

func NewTerminal(opts ...Option) *Terminal {
	t := &Terminal{in: os.Stdin, out: os.Stderr}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) run(m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running prompt: %w", err)
	}
	return final, nil
}

// Input asks for one line of text and repeats the question while validate
// rejects the answer.
func (t *Terminal) Input(prompt string, validate func(string) error) (string, error) {
	final, err := t.run(newInputModel(prompt, validate))
	if err != nil {
		return "", err
	}
	result := final.(inputModel)
	if result.cancelled {
		return "", ErrCancelled
	}
	return result.value, nil
}

// MultiSelect lets the operator toggle options with space and confirm with
// enter. The selection keeps the order of options.
func (t *Terminal) MultiSelect(prompt string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, nil
	}
	final, err := t.run(newSelectModel(prompt, options))
	if err != nil {
		return nil, err
	}
	result := final.(selectModel)
	if result.cancelled {
		return nil, ErrCancelled
	}
	return result.selected(), nil
}

type inputModel struct {
	prompt    string
	input     textinput.Model
	validate  func(string) error
	err       error
	value     string
	done      bool
	cancelled bool
}

func newInputModel(prompt string, validate func(string) error) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()
	return inputModel{prompt: prompt, input: ti, validate: validate}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

func (m inputModel) View() string {
	question := questionStyle.Render("? " + m.prompt + ":")
	if m.done {
		return question + " " + answerStyle.Render(m.value) + "\n"
	}
	if m.cancelled {
		return question + "\n"
	}

	view := question + " " + m.input.View()
	if m.err != nil {
		view += "\n" + errorStyle.Render(m.err.Error())
	}
	return view + "\n"
}

type selectModel struct {
	prompt    string
	options   []string
	checked   []bool
	cursor    int
	done      bool
	cancelled bool
}

func newSelectModel(prompt string, options []string) selectModel {
	return selectModel{prompt: prompt, options: options, checked: make([]bool, len(options))}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case " ", "x":
		m.checked = append([]bool(nil), m.checked...)
		m.checked[m.cursor] = !m.checked[m.cursor]
	case "a":
		all := !allChecked(m.checked)
		m.checked = make([]bool, len(m.options))
		for i := range m.checked {
			m.checked[i] = all
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func allChecked(checked []bool) bool {
	for _, c := range checked {
		if !c {
			return false
		}
	}
	return true
}

func (m selectModel) selected() []string {
	var out []string
	for i, c := range m.checked {
		if c {
			out = append(out, m.options[i])
		}
	}
	return out
}

func (m selectModel) View() string {
	question := questionStyle.Render("? " + m.prompt + ":")
	if m.done {
		return question + " " + answerStyle.Render(strings.Join(m.selected(), ", ")) + "\n"
	}
	if m.cancelled {
		return question + "\n"
	}

	var sb strings.Builder
	sb.WriteString(question)
	sb.WriteByte('\n')
	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ] "
		if m.checked[i] {
			box = checkedStyle.Render("[x] ")
		}
		sb.WriteString(cursor + box + opt + "\n")
	}
	sb.WriteString(helpStyle.Render("↑/↓: navigate • space: toggle • a: all • enter: confirm • esc: cancel"))
	sb.WriteByte('\n')
	return sb.String()
}
