package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testForm(onSubmit func() tea.Cmd) Form {
	return NewForm("Guardar", onSubmit,
		TextField("Título", "", false),
		SelectField("Tipo", []Choice{{Label: "a", Value: 10}, {Label: "b", Value: 20}}, false),
		ToggleField("Activo"),
	)
}

func TestForm_TabMovesFocus(t *testing.T) {
	f := testForm(nil)
	if f.focus != 0 {
		t.Fatalf("initial focus = %d, want 0", f.focus)
	}

	f, _ = f.Update(specialKey(tea.KeyTab))
	if f.focus != 1 {
		t.Errorf("focus after tab = %d, want 1", f.focus)
	}

	f, _ = f.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if f.focus != 0 {
		t.Errorf("focus after shift+tab = %d, want 0", f.focus)
	}
}

func TestForm_TabStopsAtSubmitButton(t *testing.T) {
	f := testForm(nil)
	for i := 0; i < 10; i++ {
		f, _ = f.Update(specialKey(tea.KeyTab))
	}
	if f.focus != len(f.Fields) {
		t.Errorf("focus = %d, want %d (submit button)", f.focus, len(f.Fields))
	}
}

func TestForm_RequiredFieldsBlockSubmit(t *testing.T) {
	called := false
	f := testForm(func() tea.Cmd {
		called = true
		return nil
	})

	// Jump to the button and submit with everything empty.
	for f.focus < len(f.Fields) {
		f, _ = f.Update(specialKey(tea.KeyTab))
	}
	f, _ = f.Update(specialKey(tea.KeyEnter))

	if called {
		t.Error("OnSubmit ran with required fields empty")
	}
	if f.errMsg == "" {
		t.Error("expected a validation error message")
	}
}

func TestForm_SubmitWithValues(t *testing.T) {
	called := false
	f := testForm(func() tea.Cmd {
		called = true
		return nil
	})

	f.Fields[0].Input.SetValue("Ondas")
	// Pick the second choice.
	f, _ = f.Update(specialKey(tea.KeyTab))
	f, _ = f.Update(specialKey(tea.KeyRight))
	f, _ = f.Update(specialKey(tea.KeyRight))
	// Toggle on.
	f, _ = f.Update(specialKey(tea.KeyTab))
	f, _ = f.Update(keyPress(' '))
	// Submit.
	f, _ = f.Update(specialKey(tea.KeyTab))
	f, _ = f.Update(specialKey(tea.KeyEnter))

	if !called {
		t.Fatalf("OnSubmit not called; err = %q", f.errMsg)
	}
	if got := f.Value(0); got != "Ondas" {
		t.Errorf("Value(0) = %q, want %q", got, "Ondas")
	}
	if v, ok := f.ChoiceValue(1); !ok || v != 20 {
		t.Errorf("ChoiceValue(1) = %d, %v; want 20, true", v, ok)
	}
	if !f.Toggled(2) {
		t.Error("Toggled(2) = false, want true")
	}
}

func TestForm_IntValue(t *testing.T) {
	f := NewForm("ok", nil, NumberField("Orden", "", true))

	if n, err := f.IntValue(0); err != nil || n != nil {
		t.Errorf("empty optional field: got %v, %v; want nil, nil", n, err)
	}

	f.Fields[0].Input.SetValue("3")
	n, err := f.IntValue(0)
	if err != nil || n == nil || *n != 3 {
		t.Errorf("IntValue = %v, %v; want 3, nil", n, err)
	}
}
