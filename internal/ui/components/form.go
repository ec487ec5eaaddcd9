package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ovalabs/ovaterm/internal/ui/theme"
)

// FieldKind selects how a form field is edited and rendered.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldPassword
	FieldSelect
	FieldToggle
)

// Choice is one entry of a select field.
type Choice struct {
	Label string
	Value int64
}

// Field is a single labeled form entry.
type Field struct {
	Label    string
	Kind     FieldKind
	Optional bool

	// Text/Number/Password
	Input TextInput

	// Select
	Choices     []Choice
	ChoiceIndex int
	// -1 until the user picks something.
	picked bool

	// Toggle
	Checked bool
}

// TextField builds a text field.
func TextField(label, placeholder string, optional bool) Field {
	return Field{Label: label, Kind: FieldText, Optional: optional, Input: NewTextInput(placeholder, false, 0)}
}

// NumberField builds a digits-only field.
func NumberField(label, placeholder string, optional bool) Field {
	return Field{Label: label, Kind: FieldNumber, Optional: optional, Input: NewTextInput(placeholder, true, 6)}
}

// PasswordField builds a masked text field.
func PasswordField(label string) Field {
	f := Field{Label: label, Kind: FieldPassword, Input: NewTextInput("", false, 0)}
	f.Input.MaskInput()
	return f
}

// SelectField builds a field cycling through choices.
func SelectField(label string, choices []Choice, optional bool) Field {
	return Field{Label: label, Kind: FieldSelect, Optional: optional, Choices: choices}
}

// ToggleField builds a yes/no field.
func ToggleField(label string) Field {
	return Field{Label: label, Kind: FieldToggle, Optional: true}
}

// Form is a vertical stack of fields with a submit button. Tab and
// shift+tab move focus; the button triggers OnSubmit when every
// required field holds a value.
type Form struct {
	Fields     []Field
	SubmitText string
	OnSubmit   func() tea.Cmd

	focus  int // index into fields; len(fields) = submit button
	errMsg string
}

// NewForm creates a form. The first editable field gets focus.
func NewForm(submitText string, onSubmit func() tea.Cmd, fields ...Field) Form {
	f := Form{Fields: fields, SubmitText: submitText, OnSubmit: onSubmit}
	f.applyFocus()
	return f
}

// Init focuses the first field.
func (f Form) Init() tea.Cmd {
	if f.focus < len(f.Fields) && isTextual(f.Fields[f.focus].Kind) {
		return f.Fields[f.focus].Input.Model.Focus()
	}
	return nil
}

func (f *Form) applyFocus() {
	for i := range f.Fields {
		if i == f.focus && isTextual(f.Fields[i].Kind) {
			f.Fields[i].Input.Focus()
		} else {
			f.Fields[i].Input.Blur()
		}
	}
}

func isTextual(k FieldKind) bool {
	return k == FieldText || k == FieldNumber || k == FieldPassword
}

// Update handles navigation, editing and submission.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch kmsg.String() {
		case "tab", "down":
			// "down" inside a text field still navigates: fields are
			// single-line only.
			if f.focus < len(f.Fields) {
				f.focus++
			}
			f.applyFocus()
			return f, nil
		case "shift+tab", "up":
			if f.focus > 0 {
				f.focus--
			}
			f.applyFocus()
			return f, nil
		case "enter":
			if f.focus == len(f.Fields) {
				return f.submit()
			}
			// Enter on a field advances, like the web forms did.
			f.focus++
			f.applyFocus()
			return f, nil
		}

		if f.focus < len(f.Fields) {
			field := &f.Fields[f.focus]
			switch field.Kind {
			case FieldSelect:
				switch kmsg.String() {
				case "left", "h":
					if field.ChoiceIndex > 0 {
						field.ChoiceIndex--
					}
					field.picked = true
					return f, nil
				case "right", "l", " ", "space":
					if field.picked && field.ChoiceIndex < len(field.Choices)-1 {
						field.ChoiceIndex++
					}
					field.picked = true
					return f, nil
				}
			case FieldToggle:
				switch kmsg.String() {
				case " ", "space", "left", "right":
					field.Checked = !field.Checked
					return f, nil
				}
			}
		}
	}

	// Forward everything else to the focused text input.
	if f.focus < len(f.Fields) && isTextual(f.Fields[f.focus].Kind) {
		var cmd tea.Cmd
		f.Fields[f.focus].Input, cmd = f.Fields[f.focus].Input.Update(msg)
		return f, cmd
	}

	return f, nil
}

func (f Form) submit() (Form, tea.Cmd) {
	for i := range f.Fields {
		field := &f.Fields[i]
		if field.Optional {
			continue
		}
		switch {
		case isTextual(field.Kind) && field.Input.Value() == "":
			f.errMsg = "Todos los campos son obligatorios."
			return f, nil
		case field.Kind == FieldSelect && !field.picked:
			f.errMsg = fmt.Sprintf("Selecciona %s.", field.Label)
			return f, nil
		}
	}
	f.errMsg = ""
	if f.OnSubmit != nil {
		return f, f.OnSubmit()
	}
	return f, nil
}

// SetError displays a submission error under the form.
func (f *Form) SetError(msg string) { f.errMsg = msg }

// Value returns the text of field i.
func (f Form) Value(i int) string { return f.Fields[i].Input.Value() }

// IntValue returns the numeric value of field i, or nil when the
// optional field was left blank.
func (f Form) IntValue(i int) (*int, error) {
	raw := f.Fields[i].Input.Value()
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Fields[i].Label, err)
	}
	return &n, nil
}

// ChoiceValue returns the selected choice value of field i. ok is
// false when nothing was picked.
func (f Form) ChoiceValue(i int) (int64, bool) {
	field := f.Fields[i]
	if !field.picked || field.ChoiceIndex >= len(field.Choices) {
		return 0, false
	}
	return field.Choices[field.ChoiceIndex].Value, true
}

// Toggled returns the toggle state of field i.
func (f Form) Toggled(i int) bool { return f.Fields[i].Checked }

// View renders the form.
func (f Form) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	focusLabel := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var s string
	for i, field := range f.Fields {
		label := field.Label
		if !field.Optional {
			label += " *"
		}
		if i == f.focus {
			s += focusLabel.Render(label) + "\n"
		} else {
			s += labelStyle.Render(label) + "\n"
		}

		switch field.Kind {
		case FieldSelect:
			current := "— elige una opción —"
			if field.picked && field.ChoiceIndex < len(field.Choices) {
				current = field.Choices[field.ChoiceIndex].Label
			}
			marker := "◂ " + current + " ▸"
			if i == f.focus {
				s += lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("  "+marker) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.Text).Render("  "+marker) + "\n"
			}
		case FieldToggle:
			box := "[ ] no"
			if field.Checked {
				box = "[x] sí"
			}
			s += lipgloss.NewStyle().Foreground(theme.Text).Render("  "+box) + "\n"
		default:
			s += "  " + field.Input.View() + "\n"
		}
		s += "\n"
	}

	button := NewButton(f.SubmitText, f.focus == len(f.Fields), nil)
	s += button.View() + "\n"

	if f.errMsg != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(f.errMsg) + "\n"
	}
	return s
}
