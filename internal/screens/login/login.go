// Package login implements the credential screen. On success the
// session is cached locally and the router stack is reset to the
// role's home screen, so "back" can never cross the login boundary.
package login

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/ovalabs/ovaterm/internal/api"
	"github.com/ovalabs/ovaterm/internal/router"
	"github.com/ovalabs/ovaterm/internal/screen"
	"github.com/ovalabs/ovaterm/internal/session"
	"github.com/ovalabs/ovaterm/internal/store"
	"github.com/ovalabs/ovaterm/internal/ui/components"
	"github.com/ovalabs/ovaterm/internal/ui/layout"
	"github.com/ovalabs/ovaterm/internal/ui/theme"
)

// HomeFactory builds the home screen for an authenticated session.
// Injected to avoid an import cycle between login and home.
type HomeFactory func(sess session.Session) screen.Screen

// LoginScreen collects credentials and resolves them against the
// platform's account list.
type LoginScreen struct {
	client  *api.Client
	st      *store.Store
	newHome HomeFactory

	form    components.Form
	token   uuid.UUID
	busy    bool
	errMsg  string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

type loginDoneMsg struct {
	token uuid.UUID
	sess  session.Session
	err   error
}

// New creates the login screen.
func New(client *api.Client, st *store.Store, newHome HomeFactory) *LoginScreen {
	s := &LoginScreen{
		client:  client,
		st:      st,
		newHome: newHome,
		token:   uuid.New(),
	}
	s.form = components.NewForm("Ingresar", s.submit,
		components.TextField("Correo electrónico", "correo@ejemplo.com", false),
		components.PasswordField("Contraseña"),
	)
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *LoginScreen) Title() string {
	return "Iniciar sesión"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Siguiente campo"},
		{Key: "Enter", Description: "Ingresar"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (s *LoginScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	s.busy = true
	s.errMsg = ""

	email := s.form.Value(0)
	password := s.form.Value(1)
	token := s.token

	return func() tea.Msg {
		sess, err := session.Login(context.Background(), s.client, email, password)
		return loginDoneMsg{token: token, sess: sess, err: err}
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		if msg.token != s.token {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, session.ErrBadCredentials) {
				s.errMsg = "Correo o contraseña incorrectos."
			} else {
				s.errMsg = "Error al conectar con el servidor."
			}
			return s, nil
		}

		if err := session.Save(context.Background(), s.st, msg.sess); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to cache session: %v\n", err)
		}

		home := s.newHome(msg.sess)
		return s, tea.Batch(
			func() tea.Msg { return screen.UserChangedMsg{Name: msg.sess.Name, Role: msg.sess.RoleName()} },
			func() tea.Msg { return router.ResetScreenMsg{Screen: home} },
		)

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *LoginScreen) View(width, height int) string {
	title := theme.Title.Render("OVA Ondas y Partículas")
	subtitle := theme.Subtitle.Render("Plataforma educativa")

	body := s.form.View()
	if s.busy {
		body += "\n" + theme.Hint.Render("Verificando credenciales...")
	}
	if s.errMsg != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}

	card := theme.Card.Width(48).Render(body)
	content := title + "\n" + subtitle + "\n\n" + card
	return layout.Centered(content, width, height)
}
