package browse

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/ovalabs/ovaterm/internal/api"
	"github.com/ovalabs/ovaterm/internal/router"
	"github.com/ovalabs/ovaterm/internal/screens/quiztake"
	"github.com/ovalabs/ovaterm/internal/session"
)

// NewStudentModules is the root of the student drill-down: modules →
// lessons → lesson view → activities → quiz.
func NewStudentModules(client *api.Client, sess session.Session) *ListScreen {
	return NewList(
		"Módulos",
		"No hay módulos disponibles.",
		func(ctx context.Context) ([]Item, error) {
			modules, err := client.Modules(ctx)
			if err != nil {
				return nil, err
			}
			items := make([]Item, 0, len(modules))
			for _, m := range modules {
				items = append(items, Item{ID: m.ID, Title: m.Title, Subtitle: m.Description})
			}
			return items, nil
		},
		func(item Item) tea.Cmd {
			next := NewStudentLessons(client, sess, item.ID, item.Title)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		},
	)
}

// NewStudentLessons lists the lessons of one module.
func NewStudentLessons(client *api.Client, sess session.Session, moduleID int64, moduleTitle string) *ListScreen {
	return NewList(
		fmt.Sprintf("Lecciones · %s", moduleTitle),
		"Este módulo aún no tiene lecciones.",
		func(ctx context.Context) ([]Item, error) {
			lessons, err := client.LessonsByModule(ctx, moduleID)
			if err != nil {
				return nil, err
			}
			items := make([]Item, 0, len(lessons))
			for _, l := range lessons {
				badge := ""
				if l.Order != nil {
					badge = fmt.Sprintf("%d", *l.Order)
				}
				items = append(items, Item{ID: l.ID, Title: l.Title, Badge: badge})
			}
			return items, nil
		},
		func(item Item) tea.Cmd {
			next := NewLessonScreen(client, sess, item.ID, item.Title)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		},
	)
}

// NewStudentActivities lists the activities of one lesson; picking
// one opens the quiz.
func NewStudentActivities(client *api.Client, sess session.Session, lessonID int64, lessonTitle string) *ListScreen {
	return NewList(
		fmt.Sprintf("Actividades · %s", lessonTitle),
		"Esta lección no tiene actividades.",
		func(ctx context.Context) ([]Item, error) {
			activities, err := client.ActivitiesByLesson(ctx, lessonID)
			if err != nil {
				return nil, err
			}
			items := make([]Item, 0, len(activities))
			for _, a := range activities {
				items = append(items, Item{ID: a.ID, Title: a.Title, Subtitle: a.Description, Badge: a.Kind})
			}
			return items, nil
		},
		func(item Item) tea.Cmd {
			next := quiztake.New(client, sess, item.ID, item.Title)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		},
	)
}
