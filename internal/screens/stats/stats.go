// Package stats shows a student their graded activity results.
package stats

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

// StatsScreen lists the session user's results with a grade bar per
// activity and the running average.
type StatsScreen struct {
	client *api.Client
	sess   session.Session

	token   uuid.UUID
	results []api.Result
	loading bool
	errMsg  string
}

var _ screen.Screen = (*StatsScreen)(nil)

type resultsLoadedMsg struct {
	token   uuid.UUID
	results []api.Result
	err     error
}

// New creates the statistics screen for the current user.
func New(client *api.Client, sess session.Session) *StatsScreen {
	return &StatsScreen{client: client, sess: sess, token: uuid.New(), loading: true}
}

func (s *StatsScreen) Init() tea.Cmd {
	token := s.token
	client := s.client
	userID := s.sess.UserID
	return func() tea.Msg {
		results, err := client.ResultsByUser(context.Background(), userID)
		return resultsLoadedMsg{token: token, results: results, err: err}
	}
}

func (s *StatsScreen) Title() string { return "Mis Estadísticas" }

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(resultsLoadedMsg); ok {
		if msg.token != s.token {
			return s, nil
		}
		s.loading = false
		if msg.err != nil {
			s.errMsg = "No se pudieron cargar tus estadísticas."
			return s, nil
		}
		s.results = msg.results
	}
	return s, nil
}

func average(results []api.Result) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Grade
	}
	return quiz.Round2(sum / float64(len(results)))
}

func (s *StatsScreen) View(width, height int) string {
	if s.loading {
		return layout.Centered(theme.Hint.Render("Cargando..."), width, height)
	}
	if s.errMsg != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), width, height)
	}
	if len(s.results) == 0 {
		return layout.Centered(theme.Hint.Render("Aún no has realizado ninguna actividad."), width, height)
	}

	var body string
	for _, r := range s.results {
		title := r.ActivityTitle
		if title == "" {
			title = fmt.Sprintf("Actividad %d", r.ActivityID)
		}
		body += theme.Body.Render(title) + "\n"
		bar := components.NewProgressBar("", r.Grade/quiz.MaxGrade, false, 40)
		grade := theme.Hint.Render(fmt.Sprintf("%.2f / %.0f", r.Grade, quiz.MaxGrade))
		body += "  " + bar.View() + "  " + grade + "\n\n"
	}

	avg := average(s.results)
	avgStyle := theme.Correct
	if avg < 3 {
		avgStyle = theme.Incorrect
	}
	body += theme.Body.Render("Promedio general: ") + avgStyle.Render(fmt.Sprintf("%.2f", avg))

	card := theme.Card.Width(60).Render(body)
	return layout.Centered(card, width, height)
}
