package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ovalabs/ovaterm/internal/ui/theme"
)

// OptionItem is one selectable entry in an OptionList.
type OptionItem struct {
	ID    int64
	Label string
}

// OptionList is a multi-select list of answer options. Membership
// state lives with the owner; the list only knows how to ask for it
// and how to report toggles, so the same selection set can back
// several renders.
type OptionList struct {
	Items    []OptionItem
	Cursor   int
	Focused  bool
	Disabled bool

	// IsChosen reports current membership for rendering.
	IsChosen func(id int64) bool
	// OnToggle is called when the user flips an option.
	OnToggle func(id int64)
}

// NewOptionList creates an option list over items.
func NewOptionList(items []OptionItem, isChosen func(id int64) bool, onToggle func(id int64)) OptionList {
	return OptionList{
		Items:    items,
		IsChosen: isChosen,
		OnToggle: onToggle,
	}
}

// Update handles cursor movement and toggling.
func (l OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if l.Disabled || !l.Focused {
		return l, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
	case "down", "j":
		if l.Cursor < len(l.Items)-1 {
			l.Cursor++
		}
	case " ", "space":
		if l.Cursor >= 0 && l.Cursor < len(l.Items) && l.OnToggle != nil {
			l.OnToggle(l.Items[l.Cursor].ID)
		}
	}

	return l, nil
}

// View renders the option list with checkbox markers.
func (l OptionList) View() string {
	var s string
	for i, item := range l.Items {
		marker := "[ ]"
		if l.IsChosen != nil && l.IsChosen(item.ID) {
			marker = "[x]"
		}

		prefix := "  "
		if i == l.Cursor && l.Focused && !l.Disabled {
			prefix = "▸ "
		}

		line := prefix + marker + " " + item.Label

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case l.Disabled:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == l.Cursor && l.Focused:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"
	}
	return s
}
