package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formField describes one input of a form.
type formField struct {
	label       string
	placeholder string
	secret      bool
}

// form is a vertical stack of text inputs with tab/arrow focus cycling.
// Every create/edit screen builds one.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...formField) *form {
	f := &form{}
	for i, field := range fields {
		input := textinput.New()
		input.Placeholder = field.placeholder
		input.CharLimit = 500
		input.Width = 40
		if field.secret {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		if i == 0 {
			input.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, input)
	}
	return f
}

// Update handles focus cycling and delegates everything else to the focused
// input. Enter is left for the owning view to interpret.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) setFocus(idx int) {
	if len(f.inputs) == 0 {
		return
	}
	if idx < 0 {
		idx = len(f.inputs) - 1
	}
	idx = idx % len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = idx
	f.inputs[f.focus].Focus()
}

// Value returns the trimmed value of field i.
func (f *form) Value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// SetValue seeds field i (edit mode).
func (f *form) SetValue(i int, value string) {
	f.inputs[i].SetValue(value)
}

// IntValue parses a required numeric field.
func (f *form) IntValue(i int) (int64, bool) {
	n, err := strconv.ParseInt(f.Value(i), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// OptionalIntValue parses an optional numeric field: empty or invalid input
// is submitted as absent rather than zero.
func (f *form) OptionalIntValue(i int) *int {
	raw := f.Value(i)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// Reset clears every field and refocuses the first.
func (f *form) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
}

// View renders labels and inputs stacked.
func (f *form) View() string {
	var rows []string
	for i := range f.inputs {
		rows = append(rows, mutedStyle.Render(f.labels[i]), f.inputs[i].View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
