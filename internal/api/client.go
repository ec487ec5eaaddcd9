// Package api is the typed client for the remote platform API. It
// owns the wire shapes, validates every response at the boundary and
// converts HTTP failures into typed errors. It never retries: the
// caller decides what a failure means for its screen.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL points at the hosted platform backend.
const DefaultBaseURL = "https://ova-core-981714647360.us-central1.run.app/api"

// Client talks to the remote data gateway.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL. A zero timeout means
// no client-side deadline beyond the request context.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// get fetches path, validates the body for collection and decodes it
// into out. list selects array-of-items validation.
func (c *Client) get(ctx context.Context, path, collection string, list bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, collection, list, out)
}

// post creates a resource and decodes the server's echo into out
// when out is non-nil.
func (c *Client) post(ctx context.Context, path, collection string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", collection, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, collection, false, out)
}

func (c *Client) do(req *http.Request, path, collection string, list bool, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}

	// Some create endpoints echo the created object, others answer
	// with the full collection. Normalize to the last element, which
	// matches how the web client treated the quirk.
	if !list && len(raw) > 0 && raw[0] == '[' {
		if err := validateBody(collection, true, raw); err != nil {
			return err
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return &DecodeError{Collection: collection, Err: err}
		}
		if len(elems) == 0 {
			return &DecodeError{Collection: collection, Err: fmt.Errorf("empty collection response")}
		}
		raw = elems[len(elems)-1]
	} else if err := validateBody(collection, list, raw); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Collection: collection, Err: err}
	}
	return nil
}

// Modules lists every module.
func (c *Client) Modules(ctx context.Context) ([]Module, error) {
	var out []Module
	err := c.get(ctx, "modulos", "modulos", true, &out)
	return out, err
}

// Module fetches one module by id.
func (c *Client) Module(ctx context.Context, id int64) (Module, error) {
	var out Module
	err := c.get(ctx, fmt.Sprintf("modulos/%d", id), "modulos", false, &out)
	return out, err
}

// CreateModule registers a module and returns the created record.
func (c *Client) CreateModule(ctx context.Context, m NewModule) (Module, error) {
	var out Module
	err := c.post(ctx, "modulos/", "modulos", m, &out)
	return out, err
}

// Lessons lists every lesson.
func (c *Client) Lessons(ctx context.Context) ([]Lesson, error) {
	var out []Lesson
	err := c.get(ctx, "lecciones", "lecciones", true, &out)
	return out, err
}

// LessonsByModule lists the lessons belonging to one module.
func (c *Client) LessonsByModule(ctx context.Context, moduleID int64) ([]Lesson, error) {
	var out []Lesson
	err := c.get(ctx, fmt.Sprintf("lecciones/?modulo_id=%d", moduleID), "lecciones", true, &out)
	return out, err
}

// Lesson fetches one lesson by id.
func (c *Client) Lesson(ctx context.Context, id int64) (Lesson, error) {
	var out Lesson
	err := c.get(ctx, fmt.Sprintf("lecciones/%d", id), "lecciones", false, &out)
	return out, err
}

// CreateLesson registers a lesson.
func (c *Client) CreateLesson(ctx context.Context, l NewLesson) (Lesson, error) {
	var out Lesson
	err := c.post(ctx, "lecciones/", "lecciones", l, &out)
	return out, err
}

// Activities lists every activity.
func (c *Client) Activities(ctx context.Context) ([]Activity, error) {
	var out []Activity
	err := c.get(ctx, "actividades", "actividades", true, &out)
	return out, err
}

// ActivitiesByLesson lists the activities attached to one lesson.
func (c *Client) ActivitiesByLesson(ctx context.Context, lessonID int64) ([]Activity, error) {
	var out []Activity
	err := c.get(ctx, fmt.Sprintf("actividades/?leccion_id=%d", lessonID), "actividades", true, &out)
	return out, err
}

// CreateActivity registers an activity.
func (c *Client) CreateActivity(ctx context.Context, a NewActivity) (Activity, error) {
	var out Activity
	err := c.post(ctx, "actividades/", "actividades", a, &out)
	return out, err
}

// Questions lists every question.
func (c *Client) Questions(ctx context.Context) ([]Question, error) {
	var out []Question
	err := c.get(ctx, "preguntas", "preguntas", true, &out)
	return out, err
}

// QuestionsByActivity lists the questions belonging to one activity.
func (c *Client) QuestionsByActivity(ctx context.Context, activityID int64) ([]Question, error) {
	var out []Question
	err := c.get(ctx, fmt.Sprintf("preguntas/?actividad_id=%d", activityID), "preguntas", true, &out)
	return out, err
}

// CreateQuestion registers a question.
func (c *Client) CreateQuestion(ctx context.Context, q NewQuestion) (Question, error) {
	var out Question
	err := c.post(ctx, "preguntas/", "preguntas", q, &out)
	return out, err
}

// OptionsByQuestion lists the options of one question, including
// the correctness flags the quiz engine scores against.
func (c *Client) OptionsByQuestion(ctx context.Context, questionID int64) ([]Option, error) {
	var out []Option
	err := c.get(ctx, fmt.Sprintf("opciones/?pregunta_id=%d", questionID), "opciones", true, &out)
	return out, err
}

// Options lists every option.
func (c *Client) Options(ctx context.Context) ([]Option, error) {
	var out []Option
	err := c.get(ctx, "opciones", "opciones", true, &out)
	return out, err
}

// CreateOption registers an option.
func (c *Client) CreateOption(ctx context.Context, o NewOption) (Option, error) {
	var out Option
	err := c.post(ctx, "opciones/", "opciones", o, &out)
	return out, err
}

// ResultsFor lists the results recorded for one (user, activity)
// pair. An empty slice means the user has not completed the
// activity.
func (c *Client) ResultsFor(ctx context.Context, userID, activityID int64) ([]Result, error) {
	var out []Result
	path := fmt.Sprintf("resultados/?usuario_id=%d&actividad_id=%d", userID, activityID)
	err := c.get(ctx, path, "resultados", true, &out)
	return out, err
}

// ResultsByUser lists every result recorded for one user.
func (c *Client) ResultsByUser(ctx context.Context, userID int64) ([]Result, error) {
	var out []Result
	err := c.get(ctx, fmt.Sprintf("resultados/?usuario_id=%d", userID), "resultados", true, &out)
	return out, err
}

// Results lists every result.
func (c *Client) Results(ctx context.Context) ([]Result, error) {
	var out []Result
	err := c.get(ctx, "resultados", "resultados", true, &out)
	return out, err
}

// CreateResult records a grade for a (user, activity) pair.
func (c *Client) CreateResult(ctx context.Context, r NewResult) (Result, error) {
	var out Result
	err := c.post(ctx, "resultados/", "resultados", r, &out)
	return out, err
}

// ProgressByUser lists the lesson progress markers of one user.
func (c *Client) ProgressByUser(ctx context.Context, userID int64) ([]Progress, error) {
	var out []Progress
	err := c.get(ctx, fmt.Sprintf("progreso/?usuario_id=%d", userID), "progreso", true, &out)
	return out, err
}

// CreateProgress records a lesson completion marker.
func (c *Client) CreateProgress(ctx context.Context, p NewProgress) (Progress, error) {
	var out Progress
	err := c.post(ctx, "progreso/", "progreso", p, &out)
	return out, err
}

// Users lists every platform account.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	err := c.get(ctx, "usuarios", "usuarios", true, &out)
	return out, err
}

// CreateUser registers an account.
func (c *Client) CreateUser(ctx context.Context, u NewUser) (User, error) {
	var out User
	err := c.post(ctx, "usuarios/", "usuarios", u, &out)
	return out, err
}

// MediaResources lists every media resource.
func (c *Client) MediaResources(ctx context.Context) ([]MediaResource, error) {
	var out []MediaResource
	err := c.get(ctx, "recursos-multimedia", "recursos-multimedia", true, &out)
	return out, err
}

// MediaResourcesByLesson lists the media resources of one lesson.
func (c *Client) MediaResourcesByLesson(ctx context.Context, lessonID int64) ([]MediaResource, error) {
	var out []MediaResource
	path := fmt.Sprintf("recursos-multimedia/?leccion_id=%d", lessonID)
	err := c.get(ctx, path, "recursos-multimedia", true, &out)
	return out, err
}

// CreateMediaResource attaches a media resource to a lesson.
func (c *Client) CreateMediaResource(ctx context.Context, r NewMediaResource) (MediaResource, error) {
	var out MediaResource
	err := c.post(ctx, "recursos-multimedia/", "recursos-multimedia", r, &out)
	return out, err
}
