// Package quiz implements the self-scoring quiz flow: load the
// questions of one activity, collect option selections, score them
// against the authoritative correct-option sets and record exactly
// one result per (user, activity) pair.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ovalabs/ovaterm/internal/api"
)

// State is the lifecycle of one quiz-taking session.
type State int

const (
	// StateLoading is the initial state while the prior-result check
	// and question fetch are in flight.
	StateLoading State = iota
	// StateAlreadyCompleted is terminal: a result already exists for
	// this (user, activity) pair and no questions are fetched.
	StateAlreadyCompleted
	// StateError is terminal for this load: the prior-result check or
	// the question fetch failed.
	StateError
	// StateReady accepts selections.
	StateReady
	// StateSubmitting is the window between BeginSubmit and the end
	// of scoring.
	StateSubmitting
	// StateSubmitted is terminal: outcomes and grade are visible.
	StateSubmitted
)

var (
	// ErrNotReady is returned when a transition is requested from the
	// wrong state.
	ErrNotReady = errors.New("quiz: session is not accepting answers")
	// ErrNoQuestions blocks submission of an activity with an empty
	// question list, where the grade would be undefined.
	ErrNoQuestions = errors.New("quiz: activity has no questions")
)

// loadErrMessage is the user-facing message for load failures.
const loadErrMessage = "No se pudieron cargar las preguntas o el resultado. Intenta nuevamente."

// Gateway is the slice of the platform API the engine needs.
// *api.Client satisfies it.
type Gateway interface {
	ResultsFor(ctx context.Context, userID, activityID int64) ([]api.Result, error)
	QuestionsByActivity(ctx context.Context, activityID int64) ([]api.Question, error)
	OptionsByQuestion(ctx context.Context, questionID int64) ([]api.Option, error)
	CreateResult(ctx context.Context, r api.NewResult) (api.Result, error)
}

// Engine holds the state of one quiz-taking session: one user, one
// activity, one mount. It is not safe for concurrent use; the owning
// screen serializes access by alternating between command goroutines
// and its Update loop.
type Engine struct {
	gw         Gateway
	activityID int64
	userID     int64

	state     State
	errMsg    string
	questions []api.Question

	// selections maps question id to the set of chosen option ids.
	selections map[int64]map[int64]struct{}
	// outcomes is populated for every question at submit, never
	// partially.
	outcomes map[int64]bool

	grade         float64
	persistFailed bool

	warn io.Writer
}

// New creates an engine for one (activity, user) pair.
func New(gw Gateway, activityID, userID int64) *Engine {
	return &Engine{
		gw:         gw,
		activityID: activityID,
		userID:     userID,
		state:      StateLoading,
		selections: make(map[int64]map[int64]struct{}),
		warn:       os.Stderr,
	}
}

// Initialize runs the prior-result check and, only when no result
// exists, fetches the activity's questions. Purely read; any failure
// lands in StateError.
func (e *Engine) Initialize(ctx context.Context) {
	prior, err := e.gw.ResultsFor(ctx, e.userID, e.activityID)
	if err != nil {
		e.fail(err)
		return
	}
	if len(prior) > 0 {
		e.grade = prior[0].Grade
		e.state = StateAlreadyCompleted
		return
	}

	questions, err := e.gw.QuestionsByActivity(ctx, e.activityID)
	if err != nil {
		e.fail(err)
		return
	}
	e.questions = questions
	e.state = StateReady
}

func (e *Engine) fail(err error) {
	fmt.Fprintf(e.warn, "warning: quiz load for activity %d failed: %v\n", e.activityID, err)
	e.errMsg = loadErrMessage
	e.state = StateError
}

// ToggleOption flips membership of optionID in the selection set of
// questionID. Ignored outside StateReady.
func (e *Engine) ToggleOption(questionID, optionID int64) {
	if e.state != StateReady {
		return
	}
	set := e.selections[questionID]
	if set == nil {
		set = make(map[int64]struct{})
		e.selections[questionID] = set
	}
	if _, ok := set[optionID]; ok {
		delete(set, optionID)
	} else {
		set[optionID] = struct{}{}
	}
}

// Selected reports whether optionID is currently chosen for
// questionID.
func (e *Engine) Selected(questionID, optionID int64) bool {
	_, ok := e.selections[questionID][optionID]
	return ok
}

// BeginSubmit transitions Ready → Submitting. It runs synchronously
// in the caller's loop so that no further selections can race with
// scoring. Repeated calls after submission return ErrNotReady, which
// is what makes Submit single-shot per mount.
func (e *Engine) BeginSubmit() error {
	if e.state != StateReady {
		return ErrNotReady
	}
	if len(e.questions) == 0 {
		return ErrNoQuestions
	}
	e.state = StateSubmitting
	return nil
}

// Submit scores every question and records the result. Per-question
// option-fetch failures mark that question incorrect and are logged,
// not propagated; the session always reaches StateSubmitted once
// scoring completes, even when persisting the result fails.
func (e *Engine) Submit(ctx context.Context) {
	if e.state != StateSubmitting {
		return
	}

	outcomes := make([]bool, len(e.questions))

	// Join barrier: the grade is computed only after every
	// per-question fetch has resolved.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, q := range e.questions {
		g.Go(func() error {
			options, err := e.gw.OptionsByQuestion(gctx, q.ID)
			if err != nil {
				fmt.Fprintf(e.warn, "warning: options for question %d failed, marking incorrect: %v\n", q.ID, err)
				outcomes[i] = false
				return nil
			}
			correct := make(map[int64]struct{})
			for _, o := range options {
				if o.Correct {
					correct[o.ID] = struct{}{}
				}
			}
			outcomes[i] = setsEqual(e.selections[q.ID], correct)
			return nil
		})
	}
	g.Wait()

	e.outcomes = make(map[int64]bool, len(e.questions))
	correctCount := 0
	for i, q := range e.questions {
		e.outcomes[q.ID] = outcomes[i]
		if outcomes[i] {
			correctCount++
		}
	}

	e.grade = Grade(correctCount, len(e.questions))
	e.state = StateSubmitted

	_, err := e.gw.CreateResult(ctx, api.NewResult{
		Grade:      e.grade,
		UserID:     e.userID,
		ActivityID: e.activityID,
	})
	if err != nil {
		// The grade is still shown; only the record is lost.
		fmt.Fprintf(e.warn, "warning: failed to record result for activity %d: %v\n", e.activityID, err)
		e.persistFailed = true
	}
}

// setsEqual reports set equality between the chosen and correct
// option-id sets. Both empty counts as correct.
func setsEqual(chosen map[int64]struct{}, correct map[int64]struct{}) bool {
	if len(chosen) != len(correct) {
		return false
	}
	for id := range chosen {
		if _, ok := correct[id]; !ok {
			return false
		}
	}
	return true
}

// State returns the current session state.
func (e *Engine) State() State { return e.state }

// Questions returns the loaded question list, in server order.
func (e *Engine) Questions() []api.Question { return e.questions }

// Grade returns the 0–5 grade. Meaningful in StateSubmitted and
// StateAlreadyCompleted.
func (e *Engine) Grade() float64 { return e.grade }

// Outcome reports whether questionID was answered correctly. Only
// populated after submission.
func (e *Engine) Outcome(questionID int64) bool { return e.outcomes[questionID] }

// PersistFailed reports whether the result POST failed after
// scoring; the grade shown to the user was not recorded.
func (e *Engine) PersistFailed() bool { return e.persistFailed }

// ErrorMessage returns the user-facing message for StateError.
func (e *Engine) ErrorMessage() string { return e.errMsg }

// SetWarnWriter redirects warning output, for tests.
func (e *Engine) SetWarnWriter(w io.Writer) { e.warn = w }
