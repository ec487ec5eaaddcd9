// Package home implements the role-gated main menu. Each role sees
// only the panels it is allowed to use: students browse and check
// their statistics, docentes author content, admins additionally
// manage accounts and records.
package home

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/ovalabs/ovaterm/internal/api"
	"github.com/ovalabs/ovaterm/internal/router"
	"github.com/ovalabs/ovaterm/internal/screen"
	"github.com/ovalabs/ovaterm/internal/screens/browse"
	"github.com/ovalabs/ovaterm/internal/screens/register"
	"github.com/ovalabs/ovaterm/internal/screens/stats"
	"github.com/ovalabs/ovaterm/internal/session"
	"github.com/ovalabs/ovaterm/internal/store"
	"github.com/ovalabs/ovaterm/internal/ui/components"
	"github.com/ovalabs/ovaterm/internal/ui/layout"
	"github.com/ovalabs/ovaterm/internal/ui/theme"
)

// LoginFactory rebuilds the login screen after logout. Injected to
// avoid an import cycle with the login package.
type LoginFactory func() screen.Screen

// HomeScreen is the authenticated landing menu.
type HomeScreen struct {
	sess session.Session
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

func push(s screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

// New creates the home menu for the authenticated session.
func New(client *api.Client, st *store.Store, sess session.Session, newLogin LoginFactory) *HomeScreen {
	var items []components.MenuItem

	if sess.IsStudent() {
		items = append(items,
			components.MenuItem{Label: "Explorar módulos", Action: push(browse.NewStudentModules(client, sess))},
			components.MenuItem{Label: "Mis estadísticas", Action: push(stats.New(client, sess))},
		)
	}

	if sess.IsAdmin() || sess.IsDocente() {
		items = append(items,
			components.MenuItem{Label: "Ver contenido", Action: push(browse.NewContentModules(client))},
			components.MenuItem{Label: "Registrar módulo", Action: push(register.NewModuleScreen(client))},
			components.MenuItem{Label: "Registrar lección", Action: push(register.NewLessonScreen(client))},
			components.MenuItem{Label: "Registrar actividad", Action: push(register.NewActivityScreen(client))},
			components.MenuItem{Label: "Registrar pregunta", Action: push(register.NewQuestionScreen(client))},
			components.MenuItem{Label: "Registrar opción", Action: push(register.NewOptionScreen(client))},
			components.MenuItem{Label: "Registrar recurso multimedia", Action: push(register.NewMediaResourceScreen(client))},
		)
	}

	if sess.IsAdmin() {
		items = append(items,
			components.MenuItem{Label: "Usuarios", Action: push(browse.NewUserList(client))},
			components.MenuItem{Label: "Resultados", Action: push(browse.NewResultList(client))},
			components.MenuItem{Label: "Recursos multimedia", Action: push(browse.NewMediaList(client))},
			components.MenuItem{Label: "Registrar usuario", Action: push(register.NewUserScreen(client))},
			components.MenuItem{Label: "Registrar progreso", Action: push(register.NewProgressScreen(client))},
			components.MenuItem{Label: "Registrar resultado", Action: push(register.NewResultScreen(client))},
		)
	}

	items = append(items, components.MenuItem{Label: "Cerrar sesión", Action: func() tea.Cmd {
		return tea.Batch(
			func() tea.Msg { return screen.UserChangedMsg{} },
			func() tea.Msg {
				if err := st.ClearSession(context.Background()); err != nil {
					fmt.Fprintf(os.Stderr, "warning: failed to clear cached session: %v\n", err)
				}
				return router.ResetScreenMsg{Screen: newLogin()}
			},
		)
	}})

	return &HomeScreen{sess: sess, menu: components.NewMenu(items)}
}

func (s *HomeScreen) Init() tea.Cmd { return s.menu.Init() }

func (s *HomeScreen) Title() string { return "Menú Principal" }

func (s *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Abrir"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	greeting := theme.Title.Render("Hola, " + s.sess.Name)
	role := theme.Subtitle.Render(s.sess.RoleName())
	card := theme.Card.Width(44).Render(s.menu.View())
	content := greeting + "\n" + role + "\n\n" + card
	return layout.Centered(content, width, height)
}
