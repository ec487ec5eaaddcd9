package quiz

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ovalabs/ovaterm/internal/api"
)

// fakeGateway serves canned questions/options/results and records
// every call the engine makes.
type fakeGateway struct {
	results   []api.Result
	resultErr error

	questions   []api.Question
	questionErr error

	options   map[int64][]api.Option
	optionErr map[int64]error

	createErr error

	resultChecks   int
	questionLoads  int
	createdResults []api.NewResult
}

func (f *fakeGateway) ResultsFor(ctx context.Context, userID, activityID int64) ([]api.Result, error) {
	f.resultChecks++
	return f.results, f.resultErr
}

func (f *fakeGateway) QuestionsByActivity(ctx context.Context, activityID int64) ([]api.Question, error) {
	f.questionLoads++
	return f.questions, f.questionErr
}

func (f *fakeGateway) OptionsByQuestion(ctx context.Context, questionID int64) ([]api.Option, error) {
	if err := f.optionErr[questionID]; err != nil {
		return nil, err
	}
	return f.options[questionID], nil
}

func (f *fakeGateway) CreateResult(ctx context.Context, r api.NewResult) (api.Result, error) {
	if f.createErr != nil {
		return api.Result{}, f.createErr
	}
	f.createdResults = append(f.createdResults, r)
	return api.Result{ID: 1, Grade: r.Grade, UserID: r.UserID, ActivityID: r.ActivityID}, nil
}

func question(id int64) api.Question {
	return api.Question{ID: id, Prompt: "q", Kind: api.QuestionMultipleChoice, ActivityID: 7}
}

func option(id, questionID int64, correct bool) api.Option {
	return api.Option{ID: id, Text: "o", Correct: correct, QuestionID: questionID}
}

func newTestEngine(gw *fakeGateway) *Engine {
	e := New(gw, 7, 3)
	e.SetWarnWriter(&bytes.Buffer{})
	return e
}

func TestInitializeReady(t *testing.T) {
	gw := &fakeGateway{questions: []api.Question{question(1), question(2)}}
	e := newTestEngine(gw)

	e.Initialize(context.Background())

	if e.State() != StateReady {
		t.Fatalf("state = %v, want StateReady", e.State())
	}
	if len(e.Questions()) != 2 {
		t.Fatalf("questions = %d, want 2", len(e.Questions()))
	}
}

func TestInitializePriorResultShortCircuits(t *testing.T) {
	// Scenario C: revisiting a completed activity shows the stored
	// grade and never fetches questions.
	gw := &fakeGateway{results: []api.Result{{Grade: 4.5, UserID: 3, ActivityID: 7}}}
	e := newTestEngine(gw)

	e.Initialize(context.Background())

	if e.State() != StateAlreadyCompleted {
		t.Fatalf("state = %v, want StateAlreadyCompleted", e.State())
	}
	if e.Grade() != 4.5 {
		t.Fatalf("grade = %v, want 4.5", e.Grade())
	}
	if gw.questionLoads != 0 {
		t.Fatalf("question loads = %d, want 0", gw.questionLoads)
	}
	if err := e.BeginSubmit(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("BeginSubmit after completion = %v, want ErrNotReady", err)
	}
}

func TestInitializeResultCheckFailure(t *testing.T) {
	gw := &fakeGateway{resultErr: errors.New("down")}
	e := newTestEngine(gw)

	e.Initialize(context.Background())

	if e.State() != StateError {
		t.Fatalf("state = %v, want StateError", e.State())
	}
	if e.ErrorMessage() == "" {
		t.Fatal("expected a user-facing error message")
	}
	if gw.questionLoads != 0 {
		t.Fatalf("question loads = %d, want 0 after failed result check", gw.questionLoads)
	}
}

func TestInitializeQuestionFetchFailure(t *testing.T) {
	gw := &fakeGateway{questionErr: errors.New("down")}
	e := newTestEngine(gw)

	e.Initialize(context.Background())

	if e.State() != StateError {
		t.Fatalf("state = %v, want StateError", e.State())
	}
}

func TestToggleOption(t *testing.T) {
	gw := &fakeGateway{questions: []api.Question{question(1)}}
	e := newTestEngine(gw)
	e.Initialize(context.Background())

	e.ToggleOption(1, 10)
	if !e.Selected(1, 10) {
		t.Fatal("option 10 should be selected after first toggle")
	}
	e.ToggleOption(1, 10)
	if e.Selected(1, 10) {
		t.Fatal("option 10 should be deselected after second toggle")
	}
}

func TestToggleIgnoredBeforeReady(t *testing.T) {
	gw := &fakeGateway{questions: []api.Question{question(1)}}
	e := newTestEngine(gw)

	e.ToggleOption(1, 10)
	if e.Selected(1, 10) {
		t.Fatal("toggle must be a no-op while loading")
	}
}

func TestSubmitAllCorrect(t *testing.T) {
	// Scenario A: two multiple-choice questions, one correct option
	// each, both chosen correctly.
	gw := &fakeGateway{
		questions: []api.Question{question(1), question(2)},
		options: map[int64][]api.Option{
			1: {option(10, 1, true), option(11, 1, false)},
			2: {option(20, 2, false), option(21, 2, true)},
		},
	}
	e := newTestEngine(gw)
	e.Initialize(context.Background())
	e.ToggleOption(1, 10)
	e.ToggleOption(2, 21)

	if err := e.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	e.Submit(context.Background())

	if e.State() != StateSubmitted {
		t.Fatalf("state = %v, want StateSubmitted", e.State())
	}
	if e.Grade() != 5.00 {
		t.Fatalf("grade = %v, want 5.00", e.Grade())
	}
	if !e.Outcome(1) || !e.Outcome(2) {
		t.Fatal("both outcomes should be true")
	}
	if len(gw.createdResults) != 1 {
		t.Fatalf("results created = %d, want 1", len(gw.createdResults))
	}
	got := gw.createdResults[0]
	if got.Grade != 5.00 || got.UserID != 3 || got.ActivityID != 7 {
		t.Fatalf("unexpected result payload: %+v", got)
	}
}

func TestSubmitMixedAnswers(t *testing.T) {
	// Scenario B: four questions; one right, one blank, two wrong.
	gw := &fakeGateway{
		questions: []api.Question{question(1), question(2), question(3), question(4)},
		options: map[int64][]api.Option{
			1: {option(10, 1, true), option(11, 1, false)},
			2: {option(20, 2, true), option(21, 2, false)},
			3: {option(30, 3, true), option(31, 3, false)},
			4: {option(40, 4, true), option(41, 4, false)},
		},
	}
	e := newTestEngine(gw)
	e.Initialize(context.Background())
	e.ToggleOption(1, 10) // correct
	// question 2 left blank
	e.ToggleOption(3, 31) // wrong option
	e.ToggleOption(4, 40) // right option plus a wrong one
	e.ToggleOption(4, 41)

	e.BeginSubmit()
	e.Submit(context.Background())

	if e.Grade() != 1.25 {
		t.Fatalf("grade = %v, want 1.25", e.Grade())
	}
	if !e.Outcome(1) {
		t.Fatal("question 1 should be correct")
	}
	for _, id := range []int64{2, 3, 4} {
		if e.Outcome(id) {
			t.Fatalf("question %d should be incorrect", id)
		}
	}
}

func TestSubmitOptionFetchFailureIsLocalized(t *testing.T) {
	// Scenario D: one option fetch fails mid-submit; that question
	// scores false, the rest score normally, the result still posts.
	gw := &fakeGateway{
		questions: []api.Question{question(1), question(7)},
		options: map[int64][]api.Option{
			1: {option(10, 1, true)},
		},
		optionErr: map[int64]error{7: errors.New("down")},
	}
	e := newTestEngine(gw)
	e.Initialize(context.Background())
	e.ToggleOption(1, 10)

	e.BeginSubmit()
	e.Submit(context.Background())

	if e.State() != StateSubmitted {
		t.Fatalf("state = %v, want StateSubmitted", e.State())
	}
	if !e.Outcome(1) {
		t.Fatal("question 1 should be correct")
	}
	if e.Outcome(7) {
		t.Fatal("question 7 should be marked incorrect on fetch failure")
	}
	if e.Grade() != 2.5 {
		t.Fatalf("grade = %v, want 2.5", e.Grade())
	}
	if len(gw.createdResults) != 1 {
		t.Fatalf("results created = %d, want 1", len(gw.createdResults))
	}
}

func TestSubmitEmptyCorrectSetNeedsEmptySelection(t *testing.T) {
	// A question whose correct set is empty is satisfied only by an
	// empty selection.
	gw := &fakeGateway{
		questions: []api.Question{question(1), question(2)},
		options: map[int64][]api.Option{
			1: {option(10, 1, false), option(11, 1, false)},
			2: {option(20, 2, false)},
		},
	}
	e := newTestEngine(gw)
	e.Initialize(context.Background())
	e.ToggleOption(2, 20)

	e.BeginSubmit()
	e.Submit(context.Background())

	if !e.Outcome(1) {
		t.Fatal("blank answer against empty correct set should be correct")
	}
	if e.Outcome(2) {
		t.Fatal("selection against empty correct set should be incorrect")
	}
}

func TestSubmitPersistFailureStillShowsGrade(t *testing.T) {
	gw := &fakeGateway{
		questions: []api.Question{question(1)},
		options:   map[int64][]api.Option{1: {option(10, 1, true)}},
		createErr: errors.New("down"),
	}
	e := newTestEngine(gw)
	e.Initialize(context.Background())
	e.ToggleOption(1, 10)

	e.BeginSubmit()
	e.Submit(context.Background())

	if e.State() != StateSubmitted {
		t.Fatalf("state = %v, want StateSubmitted", e.State())
	}
	if e.Grade() != 5.00 {
		t.Fatalf("grade = %v, want 5.00", e.Grade())
	}
	if !e.PersistFailed() {
		t.Fatal("PersistFailed should report the lost record")
	}
}

func TestSubmitIsSingleShot(t *testing.T) {
	gw := &fakeGateway{
		questions: []api.Question{question(1)},
		options:   map[int64][]api.Option{1: {option(10, 1, true)}},
	}
	e := newTestEngine(gw)
	e.Initialize(context.Background())
	e.ToggleOption(1, 10)

	e.BeginSubmit()
	e.Submit(context.Background())

	if err := e.BeginSubmit(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("second BeginSubmit = %v, want ErrNotReady", err)
	}
	e.Submit(context.Background())

	if len(gw.createdResults) != 1 {
		t.Fatalf("results created = %d, want exactly 1", len(gw.createdResults))
	}
	if e.Selected(1, 10) != true {
		t.Fatal("selections must survive submission for feedback rendering")
	}
	e.ToggleOption(1, 10)
	if !e.Selected(1, 10) {
		t.Fatal("toggle after submission must be a no-op")
	}
}

func TestBeginSubmitWithNoQuestions(t *testing.T) {
	gw := &fakeGateway{}
	e := newTestEngine(gw)
	e.Initialize(context.Background())

	if e.State() != StateReady {
		t.Fatalf("state = %v, want StateReady", e.State())
	}
	if err := e.BeginSubmit(); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("BeginSubmit = %v, want ErrNoQuestions", err)
	}
	if len(gw.createdResults) != 0 {
		t.Fatal("no result may be recorded for an empty activity")
	}
}

func TestSetsEqual(t *testing.T) {
	set := func(ids ...int64) map[int64]struct{} {
		s := make(map[int64]struct{})
		for _, id := range ids {
			s[id] = struct{}{}
		}
		return s
	}

	tests := []struct {
		name    string
		chosen  map[int64]struct{}
		correct map[int64]struct{}
		want    bool
	}{
		{"both empty", set(), set(), true},
		{"nil chosen empty correct", nil, set(), true},
		{"exact match", set(1, 2), set(2, 1), true},
		{"missing one", set(1), set(1, 2), false},
		{"extra one", set(1, 2), set(1), false},
		{"disjoint same size", set(3), set(1), false},
		{"blank against nonempty", set(), set(1), false},
	}

	for _, tt := range tests {
		if got := setsEqual(tt.chosen, tt.correct); got != tt.want {
			t.Errorf("%s: setsEqual = %v, want %v", tt.name, got, tt.want)
		}
	}
}
