package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := SessionRecord{UserID: 3, Name: "Ana", Email: "ana@example.com", Role: 3}
	require.NoError(t, s.SaveSession(ctx, rec))

	got, err := s.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestSaveSessionReplacesPrevious(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, SessionRecord{UserID: 1, Name: "Admin", Email: "a@x", Role: 1}))
	require.NoError(t, s.SaveSession(ctx, SessionRecord{UserID: 3, Name: "Ana", Email: "b@x", Role: 3}))

	got, err := s.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.UserID)
	assert.Equal(t, 3, got.Role)
}

func TestSessionEmpty(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Session(context.Background())
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestClearSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, SessionRecord{UserID: 3, Name: "Ana", Email: "a@x", Role: 3}))
	require.NoError(t, s.ClearSession(ctx))

	_, err := s.Session(ctx)
	assert.True(t, errors.Is(err, ErrNoSession))

	// Clearing again is fine.
	require.NoError(t, s.ClearSession(ctx))
}
