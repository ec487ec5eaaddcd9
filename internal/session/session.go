// Package session carries the current-user context. Screens receive
// a Session value at construction instead of reading a global, so
// role gating stays testable with plain inputs.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ovalabs/ovaterm/internal/api"
	"github.com/ovalabs/ovaterm/internal/store"
)

// ErrBadCredentials indicates no account matched the email/password
// pair.
var ErrBadCredentials = errors.New("session: correo o contraseña incorrectos")

// Session identifies the logged-in user for the lifetime of the app.
type Session struct {
	UserID int64
	Name   string
	Role   int
	Email  string
}

// IsAdmin reports whether the user is an administrator.
func (s Session) IsAdmin() bool { return s.Role == api.RoleAdmin }

// IsDocente reports whether the user is an instructor.
func (s Session) IsDocente() bool { return s.Role == api.RoleDocente }

// IsStudent reports whether the user is a student.
func (s Session) IsStudent() bool { return s.Role == api.RoleStudent }

// RoleName returns the display name of the user's role.
func (s Session) RoleName() string { return api.RoleName(s.Role) }

// Allowed reports whether the user's role is one of roles. Screens
// gate themselves with this check at construction.
func (s Session) Allowed(roles ...int) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// UserLister is the slice of the platform API login needs.
type UserLister interface {
	Users(ctx context.Context) ([]api.User, error)
}

// Login resolves credentials against the account list. The platform
// has no token auth: the web client listed users and matched
// email/password locally, and this client keeps that contract.
func Login(ctx context.Context, gw UserLister, email, password string) (Session, error) {
	users, err := gw.Users(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("list users: %w", err)
	}

	email = strings.TrimSpace(email)
	for _, u := range users {
		if u.Email == email && u.Password == password {
			if api.RoleName(u.Role) == "Desconocido" {
				return Session{}, fmt.Errorf("session: rol de usuario no válido: %d", u.Role)
			}
			return Session{UserID: u.ID, Name: u.Name, Role: u.Role, Email: u.Email}, nil
		}
	}
	return Session{}, ErrBadCredentials
}

// Load restores the cached session from the local store.
func Load(ctx context.Context, st *store.Store) (Session, error) {
	rec, err := st.Session(ctx)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: rec.UserID, Name: rec.Name, Role: rec.Role, Email: rec.Email}, nil
}

// Save caches the session in the local store.
func Save(ctx context.Context, st *store.Store, s Session) error {
	return st.SaveSession(ctx, store.SessionRecord{
		UserID: s.UserID,
		Name:   s.Name,
		Email:  s.Email,
		Role:   s.Role,
	})
}
