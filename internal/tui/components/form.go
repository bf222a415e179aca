package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storydesk/internal/tui/styles"
)

// Field describes one labeled input in a Form.
type Field struct {
	Label       string
	Placeholder string
	Secret      bool
	CharLimit   int
}

// Form is a vertical stack of labeled text inputs with tab navigation.
// Enter on the last field submits.
type Form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	errMsg string
}

func NewForm(title string, fields ...Field) Form {
	f := Form{title: title}
	for i, spec := range fields {
		ti := textinput.New()
		ti.Placeholder = spec.Placeholder
		ti.Prompt = ""
		ti.Width = 40
		if spec.CharLimit > 0 {
			ti.CharLimit = spec.CharLimit
		}
		if spec.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		if i == 0 {
			ti.Focus()
		}
		f.labels = append(f.labels, spec.Label)
		f.inputs = append(f.inputs, ti)
	}
	return f
}

// Values returns the current input values in field order.
func (f Form) Values() []string {
	out := make([]string, len(f.inputs))
	for i, ti := range f.inputs {
		out[i] = strings.TrimSpace(ti.Value())
	}
	return out
}

// SetValues pre-fills the inputs, for edit forms.
func (f *Form) SetValues(values ...string) {
	for i, v := range values {
		if i < len(f.inputs) {
			f.inputs[i].SetValue(v)
		}
	}
}

// SetError shows an inline error line under the inputs.
func (f *Form) SetError(msg string) {
	f.errMsg = msg
}

// Reset clears all inputs and refocuses the first field.
func (f *Form) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.errMsg = ""
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
}

// Update handles key events. Returns (form, cmd, submitted).
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % len(f.inputs))
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
			return f, nil, false
		case "enter":
			if f.focus == len(f.inputs)-1 {
				return f, nil, true
			}
			f.setFocus(f.focus + 1)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f *Form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f Form) View() string {
	var parts []string
	if f.title != "" {
		parts = append(parts, styles.ModalTitleStyle.Render(f.title))
	}
	for i, ti := range f.inputs {
		label := styles.SubtitleStyle.Render(f.labels[i])
		if i == f.focus {
			label = styles.AccentStyle.Render(f.labels[i])
		}
		parts = append(parts, label, ti.View(), "")
	}
	if f.errMsg != "" {
		parts = append(parts, styles.ErrorStyle.Render(f.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
