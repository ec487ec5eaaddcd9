package session

import (
	"context"
	"errors"
	"testing"

	"github.com/ovalabs/ovaterm/internal/api"
)

type fakeUserLister struct {
	users []api.User
	err   error
}

func (f *fakeUserLister) Users(ctx context.Context) ([]api.User, error) {
	return f.users, f.err
}

var accounts = []api.User{
	{ID: 1, Name: "Root", Email: "root@ova.edu", Password: "admin123", Role: api.RoleAdmin},
	{ID: 2, Name: "Prof", Email: "prof@ova.edu", Password: "clase", Role: api.RoleDocente},
	{ID: 3, Name: "Ana", Email: "ana@ova.edu", Password: "ondas", Role: api.RoleStudent},
	{ID: 4, Name: "Ghost", Email: "ghost@ova.edu", Password: "x", Role: 9},
}

func TestLogin(t *testing.T) {
	gw := &fakeUserLister{users: accounts}

	s, err := Login(context.Background(), gw, "ana@ova.edu", "ondas")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.UserID != 3 || !s.IsStudent() {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestLoginTrimsEmail(t *testing.T) {
	gw := &fakeUserLister{users: accounts}

	s, err := Login(context.Background(), gw, "  prof@ova.edu ", "clase")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsDocente() {
		t.Fatalf("expected docente, got role %d", s.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	gw := &fakeUserLister{users: accounts}

	_, err := Login(context.Background(), gw, "ana@ova.edu", "wrong")
	if !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("err = %v, want ErrBadCredentials", err)
	}
}

func TestLoginUnknownRole(t *testing.T) {
	gw := &fakeUserLister{users: accounts}

	_, err := Login(context.Background(), gw, "ghost@ova.edu", "x")
	if err == nil || errors.Is(err, ErrBadCredentials) {
		t.Fatalf("err = %v, want invalid-role error", err)
	}
}

func TestLoginListFailure(t *testing.T) {
	gw := &fakeUserLister{err: errors.New("down")}

	_, err := Login(context.Background(), gw, "ana@ova.edu", "ondas")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAllowed(t *testing.T) {
	s := Session{Role: api.RoleDocente}
	if !s.Allowed(api.RoleAdmin, api.RoleDocente) {
		t.Fatal("docente should be allowed")
	}
	if s.Allowed(api.RoleStudent) {
		t.Fatal("docente should not pass a student-only gate")
	}
}
