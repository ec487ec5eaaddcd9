// Package register implements the creation forms: modules, lessons,
// activities, questions, options, users, media resources, lesson
// progress and manual result entry. Every form is one Definition
// rendered by the shared Screen, which owns the load → edit → save
// cycle.
package register

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/ovalabs/ovaterm/internal/screen"
	"github.com/ovalabs/ovaterm/internal/ui/components"
	"github.com/ovalabs/ovaterm/internal/ui/layout"
	"github.com/ovalabs/ovaterm/internal/ui/theme"
)

// Definition describes one registration form.
type Definition struct {
	Title      string
	SubmitText string

	// LoadChoices fetches picker data (parent entities). May be nil
	// when the form has no pickers.
	LoadChoices func(ctx context.Context) ([][]components.Choice, error)

	// Fields builds the form fields. choices holds the result of
	// LoadChoices, in the same order the fields consume them.
	Fields func(choices [][]components.Choice) []components.Field

	// Submit validates domain rules and posts the payload.
	Submit func(ctx context.Context, f components.Form) error
}

// Screen renders a Definition.
type Screen struct {
	def Definition

	token   uuid.UUID
	choices [][]components.Choice
	form    components.Form

	loading bool
	saving  bool
	saved   bool
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

type choicesLoadedMsg struct {
	token   uuid.UUID
	choices [][]components.Choice
	err     error
}

type savedMsg struct {
	token uuid.UUID
	err   error
}

// NewScreen creates a registration screen from a definition.
func NewScreen(def Definition) *Screen {
	return &Screen{
		def:     def,
		token:   uuid.New(),
		loading: def.LoadChoices != nil,
	}
}

func (s *Screen) Init() tea.Cmd {
	if s.def.LoadChoices == nil {
		s.buildForm()
		return s.form.Init()
	}
	token := s.token
	load := s.def.LoadChoices
	return func() tea.Msg {
		choices, err := load(context.Background())
		return choicesLoadedMsg{token: token, choices: choices, err: err}
	}
}

func (s *Screen) Title() string { return s.def.Title }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Siguiente campo"},
		{Key: "Enter", Description: "Guardar"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *Screen) buildForm() {
	s.form = components.NewForm(s.def.SubmitText, s.submit, s.def.Fields(s.choices)...)
}

func (s *Screen) submit() tea.Cmd {
	if s.saving {
		return nil
	}
	s.saving = true
	s.saved = false
	s.errMsg = ""

	token := s.token
	submit := s.def.Submit
	form := s.form
	return func() tea.Msg {
		err := submit(context.Background(), form)
		return savedMsg{token: token, err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case choicesLoadedMsg:
		if msg.token != s.token {
			return s, nil
		}
		s.loading = false
		if msg.err != nil {
			s.errMsg = "No se pudieron cargar los datos necesarios."
			return s, nil
		}
		s.choices = msg.choices
		s.buildForm()
		return s, s.form.Init()

	case savedMsg:
		if msg.token != s.token {
			return s, nil
		}
		s.saving = false
		if msg.err != nil {
			s.errMsg = "No se pudo guardar el registro. Intenta nuevamente."
			return s, nil
		}
		s.saved = true
		// Fresh form for the next record, like the web forms reset.
		s.buildForm()
		return s, s.form.Init()

	case tea.KeyMsg:
		if s.loading || s.saving {
			return s, nil
		}
	}

	if s.loading {
		return s, nil
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	if s.loading {
		return layout.Centered(theme.Hint.Render("Cargando..."), width, height)
	}
	if len(s.form.Fields) == 0 {
		// Picker load failed; there is no form to show.
		msg := lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
		return layout.Centered(msg, width, height)
	}

	body := s.form.View()
	if s.saving {
		body += "\n" + theme.Hint.Render("Guardando...")
	}
	if s.saved {
		body += "\n" + theme.Correct.Render("✓ Registrado correctamente.")
	}
	if s.errMsg != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}

	card := theme.Card.Width(56).Render(body)
	return layout.Centered(card, width, height)
}
