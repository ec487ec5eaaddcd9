// Package quiztake renders one quiz-taking session on top of the
// quiz engine: question list with multi-select options, submission,
// per-question feedback and the final grade. The engine owns every
// rule; this screen only moves it between states.
package quiztake

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/ovalabs/ovaterm/internal/api"
	"github.com/ovalabs/ovaterm/internal/quiz"
	"github.com/ovalabs/ovaterm/internal/screen"
	"github.com/ovalabs/ovaterm/internal/session"
	"github.com/ovalabs/ovaterm/internal/ui/components"
	"github.com/ovalabs/ovaterm/internal/ui/layout"
	"github.com/ovalabs/ovaterm/internal/ui/theme"
)

// QuizScreen drives one engine mount. The selection and outcome
// state live in the engine; the screen owns only cursors.
type QuizScreen struct {
	client *api.Client
	engine *quiz.Engine
	title  string

	// token tags async messages so responses that arrive after this
	// mount was torn down and remounted are discarded.
	token uuid.UUID

	// busy is true while a command goroutine owns the engine. The
	// engine is only touched from Update/View when busy is false,
	// which is what keeps the handoff race-free.
	busy bool

	// optionsByQ caches the fetched option lists for rendering.
	optionsByQ map[int64][]api.Option

	// focusedQ indexes the question holding keyboard focus.
	focusedQ int
	lists    []components.OptionList
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

type initializedMsg struct {
	token   uuid.UUID
	options map[int64][]api.Option
}

type submittedMsg struct {
	token uuid.UUID
}

// New creates a quiz screen for one activity.
func New(client *api.Client, sess session.Session, activityID int64, title string) *QuizScreen {
	return &QuizScreen{
		client:     client,
		engine:     quiz.New(client, activityID, sess.UserID),
		title:      title,
		token:      uuid.New(),
		busy:       true,
		optionsByQ: make(map[int64][]api.Option),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	token := s.token
	engine := s.engine
	client := s.client
	return func() tea.Msg {
		ctx := context.Background()
		engine.Initialize(ctx)

		// Pre-fetch option texts for rendering. Correctness is NOT
		// taken from this copy: the engine re-fetches at submit so
		// the authoritative flags are never held in view state
		// longer than needed.
		options := make(map[int64][]api.Option)
		if engine.State() == quiz.StateReady {
			for _, q := range engine.Questions() {
				opts, err := client.OptionsByQuestion(ctx, q.ID)
				if err != nil {
					// Leave the list empty; the question renders a
					// "no options" hint and scores like a blank.
					continue
				}
				options[q.ID] = opts
			}
		}
		return initializedMsg{token: token, options: options}
	}
}

func (s *QuizScreen) Title() string { return s.title }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.busy {
		return []layout.KeyHint{{Key: "Esc", Description: "Volver"}}
	}
	switch s.engine.State() {
	case quiz.StateReady:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Opción"},
			{Key: "Space", Description: "Marcar"},
			{Key: "Tab", Description: "Siguiente pregunta"},
			{Key: "Enter", Description: "Enviar respuestas"},
			{Key: "Esc", Description: "Volver"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Volver"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case initializedMsg:
		if msg.token != s.token {
			return s, nil
		}
		s.busy = false
		s.optionsByQ = msg.options
		s.buildLists()
		return s, nil

	case submittedMsg:
		if msg.token != s.token {
			return s, nil
		}
		s.busy = false
		for i := range s.lists {
			s.lists[i].Disabled = true
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy || s.engine.State() != quiz.StateReady {
		return s, nil
	}

	switch msg.String() {
	case "tab":
		if len(s.lists) > 0 {
			s.lists[s.focusedQ].Focused = false
			s.focusedQ = (s.focusedQ + 1) % len(s.lists)
			s.lists[s.focusedQ].Focused = true
		}
		return s, nil
	case "shift+tab":
		if len(s.lists) > 0 {
			s.lists[s.focusedQ].Focused = false
			s.focusedQ = (s.focusedQ - 1 + len(s.lists)) % len(s.lists)
			s.lists[s.focusedQ].Focused = true
		}
		return s, nil
	case "enter":
		if err := s.engine.BeginSubmit(); err != nil {
			return s, nil
		}
		s.busy = true
		token := s.token
		engine := s.engine
		return s, func() tea.Msg {
			engine.Submit(context.Background())
			return submittedMsg{token: token}
		}
	}

	if s.focusedQ < len(s.lists) {
		var cmd tea.Cmd
		s.lists[s.focusedQ], cmd = s.lists[s.focusedQ].Update(msg)
		return s, cmd
	}
	return s, nil
}

// buildLists creates one option list per loaded question, bound to
// the engine's selection set.
func (s *QuizScreen) buildLists() {
	questions := s.engine.Questions()
	s.lists = make([]components.OptionList, 0, len(questions))
	for _, q := range questions {
		items := make([]components.OptionItem, 0, len(s.optionsByQ[q.ID]))
		for _, o := range s.optionsByQ[q.ID] {
			items = append(items, components.OptionItem{ID: o.ID, Label: o.Text})
		}
		qID := q.ID
		list := components.NewOptionList(items,
			func(id int64) bool { return s.engine.Selected(qID, id) },
			func(id int64) { s.engine.ToggleOption(qID, id) },
		)
		s.lists = append(s.lists, list)
	}
	if len(s.lists) > 0 {
		s.focusedQ = 0
		s.lists[0].Focused = true
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.busy {
		return layout.Centered(theme.Hint.Render("Cargando..."), width, height)
	}

	switch s.engine.State() {
	case quiz.StateError:
		return layout.Centered(
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.engine.ErrorMessage()),
			width, height,
		)

	case quiz.StateAlreadyCompleted:
		card := theme.Card.Render(
			theme.Incorrect.Render("¡Actividad Realizada!") + "\n\n" +
				theme.Body.Render(fmt.Sprintf("Calificación: %.2f / 5", s.engine.Grade())),
		)
		return layout.Centered(card, width, height)
	}

	submitted := s.engine.State() == quiz.StateSubmitted

	var body string
	for i, q := range s.engine.Questions() {
		prompt := fmt.Sprintf("%d. %s", i+1, q.Prompt)
		body += lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(prompt) + "\n"
		body += theme.Hint.Render("   " + questionKindLabel(q.Kind)) + "\n\n"

		if i < len(s.lists) {
			if len(s.lists[i].Items) == 0 {
				body += theme.Hint.Render("   No hay opciones disponibles para esta pregunta.") + "\n"
			} else {
				body += s.lists[i].View()
			}
		}

		if submitted {
			if s.engine.Outcome(q.ID) {
				body += theme.Correct.Render("   ✓ ¡Respuesta Correcta!") + "\n"
			} else {
				body += theme.Incorrect.Render("   ✗ Respuesta Incorrecta") + "\n"
			}
		}
		body += "\n"
	}

	if submitted {
		body += theme.Title.Align(lipgloss.Left).Render(
			fmt.Sprintf("Tu calificación es: %.2f / 5", s.engine.Grade()),
		) + "\n"
		if s.engine.PersistFailed() {
			body += lipgloss.NewStyle().Foreground(theme.Accent).Render(
				"Aviso: la calificación no pudo registrarse en el servidor.",
			) + "\n"
		}
	} else if len(s.engine.Questions()) == 0 {
		body += theme.Hint.Render("Esta actividad no tiene preguntas.") + "\n"
	} else {
		body += components.NewButton("Enviar Respuestas", true, nil).View() + "\n"
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func questionKindLabel(kind string) string {
	switch kind {
	case api.QuestionMultipleChoice:
		return "opción múltiple"
	case api.QuestionTrueFalse:
		return "verdadero / falso"
	case api.QuestionOpenResponse:
		return "respuesta abierta"
	default:
		return kind
	}
}
