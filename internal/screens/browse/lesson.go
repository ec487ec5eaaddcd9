package browse

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/ovalabs/ovaterm/internal/api"
	"github.com/ovalabs/ovaterm/internal/router"
	"github.com/ovalabs/ovaterm/internal/screen"
	"github.com/ovalabs/ovaterm/internal/session"
	"github.com/ovalabs/ovaterm/internal/ui/layout"
	"github.com/ovalabs/ovaterm/internal/ui/theme"
)

// LessonScreen shows one lesson: its content, the media resources
// attached to it, and the entry points to activities and to marking
// the lesson completed.
type LessonScreen struct {
	client *api.Client
	sess   session.Session

	lessonID int64
	title    string

	token     uuid.UUID
	loading   bool
	errMsg    string
	lesson    api.Lesson
	resources []api.MediaResource

	completed  bool
	marking    bool
	markErrMsg string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

type lessonLoadedMsg struct {
	token     uuid.UUID
	lesson    api.Lesson
	resources []api.MediaResource
	completed bool
	err       error
}

type progressSavedMsg struct {
	token uuid.UUID
	err   error
}

// NewLessonScreen creates the lesson view.
func NewLessonScreen(client *api.Client, sess session.Session, lessonID int64, title string) *LessonScreen {
	return &LessonScreen{
		client:   client,
		sess:     sess,
		lessonID: lessonID,
		title:    title,
		token:    uuid.New(),
		loading:  true,
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	token := s.token
	return func() tea.Msg {
		ctx := context.Background()

		lesson, err := s.client.Lesson(ctx, s.lessonID)
		if err != nil {
			return lessonLoadedMsg{token: token, err: err}
		}

		resources, err := s.client.MediaResourcesByLesson(ctx, s.lessonID)
		if err != nil {
			return lessonLoadedMsg{token: token, err: err}
		}

		completed := false
		progress, err := s.client.ProgressByUser(ctx, s.sess.UserID)
		if err == nil {
			for _, p := range progress {
				if p.LessonID == s.lessonID && p.Completed {
					completed = true
					break
				}
			}
		}

		return lessonLoadedMsg{token: token, lesson: lesson, resources: resources, completed: completed}
	}
}

func (s *LessonScreen) Title() string { return s.title }

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "A", Description: "Actividades"},
	}
	if !s.completed {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Marcar completada"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Volver"})
	return hints
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonLoadedMsg:
		if msg.token != s.token {
			return s, nil
		}
		s.loading = false
		if msg.err != nil {
			s.errMsg = "No se pudo cargar la lección. Intenta nuevamente."
			return s, nil
		}
		s.lesson = msg.lesson
		s.resources = msg.resources
		s.completed = msg.completed
		return s, nil

	case progressSavedMsg:
		if msg.token != s.token {
			return s, nil
		}
		s.marking = false
		if msg.err != nil {
			s.markErrMsg = "No se pudo registrar el progreso."
			return s, nil
		}
		s.completed = true
		return s, nil

	case tea.KeyMsg:
		if s.loading || s.errMsg != "" {
			return s, nil
		}
		switch msg.String() {
		case "a":
			next := NewStudentActivities(s.client, s.sess, s.lessonID, s.title)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		case "c":
			if s.completed || s.marking {
				return s, nil
			}
			s.marking = true
			s.markErrMsg = ""
			token := s.token
			return s, func() tea.Msg {
				_, err := s.client.CreateProgress(context.Background(), api.NewProgress{
					Completed: true,
					UserID:    s.sess.UserID,
					LessonID:  s.lessonID,
				})
				return progressSavedMsg{token: token, err: err}
			}
		}
	}
	return s, nil
}

func (s *LessonScreen) View(width, height int) string {
	if s.loading {
		return layout.Centered(theme.Hint.Render("Cargando lección..."), width, height)
	}
	if s.errMsg != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), width, height)
	}

	var body string
	body += theme.Title.Align(lipgloss.Left).Render(s.lesson.Title) + "\n\n"
	body += theme.Body.Width(width - 8).Render(s.lesson.Content) + "\n\n"

	if len(s.resources) > 0 {
		body += theme.Subtitle.Align(lipgloss.Left).Render("Recursos") + "\n"
		for _, r := range s.resources {
			line := fmt.Sprintf("  · [%s] %s", r.Kind, r.Description)
			body += theme.Body.Render(line) + "\n"
			body += theme.Hint.Render("      "+r.URL) + "\n"
		}
		body += "\n"
	}

	switch {
	case s.completed:
		body += theme.Correct.Render("✓ Lección completada") + "\n"
	case s.marking:
		body += theme.Hint.Render("Registrando progreso...") + "\n"
	}
	if s.markErrMsg != "" {
		body += lipgloss.NewStyle().Foreground(theme.Error).Render(s.markErrMsg) + "\n"
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}
