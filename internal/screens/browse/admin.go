package browse

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/ovalabs/ovaterm/internal/api"
	"github.com/ovalabs/ovaterm/internal/router"
)

// NewUserList lists every platform account. Admin only.
func NewUserList(client *api.Client) *ListScreen {
	return NewList("Usuarios", "No hay usuarios registrados.",
		func(ctx context.Context) ([]Item, error) {
			users, err := client.Users(ctx)
			if err != nil {
				return nil, err
			}
			items := make([]Item, len(users))
			for i, u := range users {
				items[i] = Item{
					ID:       u.ID,
					Title:    u.Name,
					Subtitle: u.Email,
					Badge:    api.RoleName(u.Role),
				}
			}
			return items, nil
		}, nil)
}

// NewResultList lists every recorded grade with user and activity
// names as the server decorates them.
func NewResultList(client *api.Client) *ListScreen {
	return NewList("Resultados", "No hay resultados registrados.",
		func(ctx context.Context) ([]Item, error) {
			results, err := client.Results(ctx)
			if err != nil {
				return nil, err
			}
			items := make([]Item, len(results))
			for i, r := range results {
				title := r.UserName
				if title == "" {
					title = fmt.Sprintf("Usuario %d", r.UserID)
				}
				subtitle := r.ActivityTitle
				if subtitle == "" {
					subtitle = fmt.Sprintf("Actividad %d", r.ActivityID)
				}
				items[i] = Item{
					ID:       r.ID,
					Title:    title,
					Subtitle: subtitle,
					Badge:    fmt.Sprintf("%.2f", r.Grade),
				}
			}
			return items, nil
		}, nil)
}

// NewMediaList lists every media resource across lessons.
func NewMediaList(client *api.Client) *ListScreen {
	return NewList("Recursos Multimedia", "No hay recursos registrados.",
		func(ctx context.Context) ([]Item, error) {
			resources, err := client.MediaResources(ctx)
			if err != nil {
				return nil, err
			}
			items := make([]Item, len(resources))
			for i, r := range resources {
				items[i] = Item{
					ID:       r.ID,
					Title:    r.Description,
					Subtitle: r.URL,
					Badge:    r.Kind,
				}
			}
			return items, nil
		}, nil)
}

// NewContentModules is the read-only content drill-down for admin and
// docente roles: modules → lessons → activities → questions → options.
func NewContentModules(client *api.Client) *ListScreen {
	return NewList("Módulos", "No hay módulos registrados.",
		func(ctx context.Context) ([]Item, error) {
			mods, err := client.Modules(ctx)
			if err != nil {
				return nil, err
			}
			items := make([]Item, len(mods))
			for i, m := range mods {
				items[i] = Item{ID: m.ID, Title: m.Title, Subtitle: m.Description}
			}
			return items, nil
		},
		func(item Item) tea.Cmd {
			next := newContentLessons(client, item.ID, item.Title)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		})
}

func newContentLessons(client *api.Client, moduleID int64, moduleTitle string) *ListScreen {
	return NewList(moduleTitle, "Este módulo no tiene lecciones.",
		func(ctx context.Context) ([]Item, error) {
			lessons, err := client.LessonsByModule(ctx, moduleID)
			if err != nil {
				return nil, err
			}
			items := make([]Item, len(lessons))
			for i, l := range lessons {
				items[i] = Item{ID: l.ID, Title: l.Title}
			}
			return items, nil
		},
		func(item Item) tea.Cmd {
			next := newContentActivities(client, item.ID, item.Title)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		})
}

func newContentActivities(client *api.Client, lessonID int64, lessonTitle string) *ListScreen {
	return NewList(lessonTitle, "Esta lección no tiene actividades.",
		func(ctx context.Context) ([]Item, error) {
			acts, err := client.ActivitiesByLesson(ctx, lessonID)
			if err != nil {
				return nil, err
			}
			items := make([]Item, len(acts))
			for i, a := range acts {
				items[i] = Item{ID: a.ID, Title: a.Title, Subtitle: a.Description, Badge: a.Kind}
			}
			return items, nil
		},
		func(item Item) tea.Cmd {
			next := newContentQuestions(client, item.ID, item.Title)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		})
}

func newContentQuestions(client *api.Client, activityID int64, activityTitle string) *ListScreen {
	return NewList(activityTitle, "Esta actividad no tiene preguntas.",
		func(ctx context.Context) ([]Item, error) {
			qs, err := client.QuestionsByActivity(ctx, activityID)
			if err != nil {
				return nil, err
			}
			items := make([]Item, len(qs))
			for i, q := range qs {
				items[i] = Item{ID: q.ID, Title: q.Prompt, Badge: q.Kind}
			}
			return items, nil
		},
		func(item Item) tea.Cmd {
			next := newContentOptions(client, item.ID, item.Title)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		})
}

func newContentOptions(client *api.Client, questionID int64, prompt string) *ListScreen {
	return NewList(prompt, "Esta pregunta no tiene opciones.",
		func(ctx context.Context) ([]Item, error) {
			opts, err := client.OptionsByQuestion(ctx, questionID)
			if err != nil {
				return nil, err
			}
			items := make([]Item, len(opts))
			for i, o := range opts {
				badge := ""
				if o.Correct {
					badge = "correcta"
				}
				items[i] = Item{ID: o.ID, Title: o.Text, Badge: badge}
			}
			return items, nil
		}, nil)
}
