package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func testOptionList(chosen map[int64]bool) OptionList {
	items := []OptionItem{{ID: 1, Label: "Transversal"}, {ID: 2, Label: "Longitudinal"}, {ID: 3, Label: "Estacionaria"}}
	l := NewOptionList(items,
		func(id int64) bool { return chosen[id] },
		func(id int64) { chosen[id] = !chosen[id] })
	l.Focused = true
	return l
}

func TestOptionList_SpaceToggles(t *testing.T) {
	chosen := map[int64]bool{}
	l := testOptionList(chosen)

	l, _ = l.Update(keyPress(' '))
	if !chosen[1] {
		t.Error("expected option 1 toggled on")
	}
	l, _ = l.Update(keyPress(' '))
	if chosen[1] {
		t.Error("expected option 1 toggled back off")
	}
	_ = l
}

func TestOptionList_CursorBounds(t *testing.T) {
	l := testOptionList(map[int64]bool{})

	l, _ = l.Update(specialKey(tea.KeyUp))
	if l.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 at top", l.Cursor)
	}

	for i := 0; i < 5; i++ {
		l, _ = l.Update(specialKey(tea.KeyDown))
	}
	if l.Cursor != len(l.Items)-1 {
		t.Errorf("cursor = %d, want %d at bottom", l.Cursor, len(l.Items)-1)
	}
}

func TestOptionList_DisabledIgnoresInput(t *testing.T) {
	chosen := map[int64]bool{}
	l := testOptionList(chosen)
	l.Disabled = true

	l, _ = l.Update(keyPress(' '))
	if len(chosen) != 0 {
		t.Error("disabled list must not toggle")
	}
	l, _ = l.Update(specialKey(tea.KeyDown))
	if l.Cursor != 0 {
		t.Error("disabled list must not move the cursor")
	}
}

func TestOptionList_ViewMarkers(t *testing.T) {
	chosen := map[int64]bool{2: true}
	l := testOptionList(chosen)

	view := l.View()
	if view == "" {
		t.Fatal("expected non-empty view")
	}
}
