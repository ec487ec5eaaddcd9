package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestQuestionsByActivity(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/preguntas/", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("actividad_id"))
		w.Write([]byte(`[
			{"id": 1, "pregunta": "¿Qué es una onda?", "tipo": "opcion_multiple", "actividad": 7},
			{"id": 2, "pregunta": "La luz es una onda.", "tipo": "verdadero_falso", "actividad": 7}
		]`))
	})

	qs, err := c.QuestionsByActivity(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, int64(1), qs[0].ID)
	assert.Equal(t, QuestionMultipleChoice, qs[0].Kind)
	assert.Equal(t, "La luz es una onda.", qs[1].Prompt)
}

func TestOptionsByQuestionCorrectnessFlag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 10, "texto": "Sí", "es_correcta": true, "pregunta": 1},
			{"id": 11, "texto": "No", "es_correcta": false, "pregunta": 1}
		]`))
	})

	opts, err := c.OptionsByQuestion(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.True(t, opts[0].Correct)
	assert.False(t, opts[1].Correct)
}

func TestResultsForEmptyMeansNoPriorResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("usuario_id"))
		assert.Equal(t, "7", r.URL.Query().Get("actividad_id"))
		w.Write([]byte(`[]`))
	})

	rs, err := c.ResultsFor(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestCreateResultPayload(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		got = string(buf)
		w.Write([]byte(`{"id": 99, "calificacion": 3.75, "usuario": 3, "actividad": 7}`))
	})

	res, err := c.CreateResult(context.Background(), NewResult{Grade: 3.75, UserID: 3, ActivityID: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"calificacion": 3.75, "usuario": 3, "actividad": 7}`, got)
	assert.Equal(t, int64(99), res.ID)
	assert.InDelta(t, 3.75, res.Grade, 1e-9)
}

func TestCreateModuleListEchoTakesLastElement(t *testing.T) {
	// Some deployments answer create with the whole collection.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "titulo": "Ondas", "descripcion": "", "orden": 1},
			{"id": 2, "titulo": "Partículas", "descripcion": "", "orden": 2}
		]`))
	})

	m, err := c.CreateModule(context.Background(), NewModule{Title: "Partículas"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), m.ID)
	assert.Equal(t, "Partículas", m.Title)
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := c.Modules(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Body)
}

func TestNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Module(context.Background(), 42)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMalformedShapeBecomesDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// es_correcta as a string must be rejected at the boundary.
		w.Write([]byte(`[{"id": 10, "texto": "Sí", "es_correcta": "true", "pregunta": 1}]`))
	})

	_, err := c.OptionsByQuestion(context.Background(), 1)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "opciones", decErr.Collection)
}

func TestInvalidJSONBecomesDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := c.Users(context.Background())
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Modules(ctx)
	require.Error(t, err)
}
