// Package app wires the screens into the root Bubble Tea model:
// header, footer, router stack and the login/home boundary.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ovalabs/ovaterm/internal/api"
	"github.com/ovalabs/ovaterm/internal/router"
	"github.com/ovalabs/ovaterm/internal/screen"
	"github.com/ovalabs/ovaterm/internal/screens/home"
	"github.com/ovalabs/ovaterm/internal/screens/login"
	"github.com/ovalabs/ovaterm/internal/session"
	"github.com/ovalabs/ovaterm/internal/store"
	"github.com/ovalabs/ovaterm/internal/ui/layout"
)

// Options carries the dependencies the shell needs. Session is nil
// when no cached session exists and the app starts at login.
type Options struct {
	Client  *api.Client
	Store   *store.Store
	Session *session.Session
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int

	userName string
	roleName string
}

func newAppModel(opts Options) AppModel {
	var newHome login.HomeFactory
	var newLogin home.LoginFactory

	newHome = func(sess session.Session) screen.Screen {
		return home.New(opts.Client, opts.Store, sess, newLogin)
	}
	newLogin = func() screen.Screen {
		return login.New(opts.Client, opts.Store, newHome)
	}

	m := AppModel{}
	if opts.Session != nil {
		m.userName = opts.Session.Name
		m.roleName = opts.Session.RoleName()
		m.router = router.New(newHome(*opts.Session))
	} else {
		m.router = router.New(newLogin())
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.UserChangedMsg:
		m.userName = msg.Name
		m.roleName = msg.Role
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.userName, m.roleName, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if provider, ok := active.(screen.KeyHintProvider); ok {
		return provider.KeyHints()
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
	}
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Volver"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Salir"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
