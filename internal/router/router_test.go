package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ovalabs/ovaterm/internal/screen"
)

type stubScreen struct {
	name      string
	initCalls int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initCalls++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.name }

func (s *stubScreen) Title() string { return s.name }

func TestPushPop(t *testing.T) {
	first := &stubScreen{name: "first"}
	second := &stubScreen{name: "second"}
	r := New(first)

	r.Update(PushScreenMsg{Screen: second})
	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", r.Depth())
	}
	if r.Active() != second {
		t.Fatal("second screen should be active")
	}
	if second.initCalls != 1 {
		t.Fatalf("Init calls = %d, want 1", second.initCalls)
	}

	r.Update(PopScreenMsg{})
	if r.Active() != first {
		t.Fatal("first screen should be active after pop")
	}
}

func TestPopNeverEmptiesStack(t *testing.T) {
	first := &stubScreen{name: "first"}
	r := New(first)

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", r.Depth())
	}
	if r.Active() != first {
		t.Fatal("root screen must survive pop")
	}
}

func TestResetReplacesStack(t *testing.T) {
	first := &stubScreen{name: "login"}
	second := &stubScreen{name: "browse"}
	home := &stubScreen{name: "home"}
	r := New(first)
	r.Push(second)

	r.Update(ResetScreenMsg{Screen: home})
	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", r.Depth())
	}
	if r.Active() != home {
		t.Fatal("home should be the only screen")
	}
	if home.initCalls != 1 {
		t.Fatalf("Init calls = %d, want 1", home.initCalls)
	}
}
