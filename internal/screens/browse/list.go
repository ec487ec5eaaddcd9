// Package browse implements the list/detail screens: generic
// fetch-and-render lists plus the student drill-down from modules to
// lessons, activities and the quiz.
package browse

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/ovalabs/ovaterm/internal/screen"
	"github.com/ovalabs/ovaterm/internal/ui/layout"
	"github.com/ovalabs/ovaterm/internal/ui/theme"
)

// Item is one row of a ListScreen.
type Item struct {
	ID       int64
	Title    string
	Subtitle string
	Badge    string
}

// LoadFunc fetches the rows.
type LoadFunc func(ctx context.Context) ([]Item, error)

// SelectFunc reacts to the user picking a row, usually by pushing a
// detail screen.
type SelectFunc func(item Item) tea.Cmd

// ListScreen is the shared shape of every collection screen: load on
// mount, render loading/error/empty, then the rows.
type ListScreen struct {
	title    string
	emptyMsg string
	load     LoadFunc
	onSelect SelectFunc

	token   uuid.UUID
	items   []Item
	cursor  int
	loading bool
	errMsg  string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

type itemsLoadedMsg struct {
	token uuid.UUID
	items []Item
	err   error
}

// NewList creates a list screen. onSelect may be nil for read-only
// collections.
func NewList(title, emptyMsg string, load LoadFunc, onSelect SelectFunc) *ListScreen {
	return &ListScreen{
		title:    title,
		emptyMsg: emptyMsg,
		load:     load,
		onSelect: onSelect,
		token:    uuid.New(),
		loading:  true,
	}
}

func (s *ListScreen) Init() tea.Cmd {
	token := s.token
	load := s.load
	return func() tea.Msg {
		items, err := load(context.Background())
		return itemsLoadedMsg{token: token, items: items, err: err}
	}
}

func (s *ListScreen) Title() string { return s.title }

func (s *ListScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
	}
	if s.onSelect != nil {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Abrir"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Volver"})
	return hints
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		// A stale token means this response raced a remount; drop it.
		if msg.token != s.token {
			return s, nil
		}
		s.loading = false
		if msg.err != nil {
			s.errMsg = "No se pudieron cargar los datos. Intenta nuevamente."
			return s, nil
		}
		s.items = msg.items
		return s, nil

	case tea.KeyMsg:
		if s.loading || s.errMsg != "" {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.items)-1 {
				s.cursor++
			}
		case "enter":
			if s.onSelect != nil && s.cursor < len(s.items) {
				return s, s.onSelect(s.items[s.cursor])
			}
		}
	}
	return s, nil
}

func (s *ListScreen) View(width, height int) string {
	if s.loading {
		return layout.Centered(theme.Hint.Render("Cargando..."), width, height)
	}
	if s.errMsg != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), width, height)
	}
	if len(s.items) == 0 {
		return layout.Centered(theme.Hint.Render(s.emptyMsg), width, height)
	}

	var body string
	for i, item := range s.items {
		line := item.Title
		if item.Badge != "" {
			line += "  " + lipgloss.NewStyle().Foreground(theme.Secondary).Render("["+item.Badge+"]")
		}
		if i == s.cursor {
			body += theme.Selected.Render("  ▸ "+line) + "\n"
		} else {
			body += theme.Unselected.Render("    "+line) + "\n"
		}
		if item.Subtitle != "" {
			body += theme.Hint.Render("      "+item.Subtitle) + "\n"
		}
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}
