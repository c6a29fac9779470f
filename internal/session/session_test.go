package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

func TestSessionLifecycle(t *testing.T) {
	sess := &Session{}
	assert.False(t, sess.Authenticated(), "zero value is anonymous")

	sess.Establish("tok-123", model.User{ID: "1", Username: "priya"})
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "tok-123", sess.Token())
	assert.Equal(t, "priya", sess.User().Username)

	invalidations := 0
	sess.OnInvalidate(func() { invalidations++ })

	sess.Invalidate()
	assert.False(t, sess.Authenticated())
	assert.Equal(t, 1, invalidations)

	// Invalidating an anonymous session does not re-notify.
	sess.Invalidate()
	assert.Equal(t, 1, invalidations)
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	sess := New("tok-xyz", model.User{ID: "2", Email: "a@b.c"})
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", loaded.Token())
	assert.Equal(t, "a@b.c", loaded.User().Email)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated(), "cleared store loads as anonymous")
}

func TestStoreMissingFileIsAnonymous(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	sess, err := store.Load()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())

	assert.NoError(t, store.Clear(), "clearing an absent session is not an error")
}

func TestStoreCorruptFileDegradesToAnonymous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store, err := NewStore(path)
	require.NoError(t, err)

	sess, err := store.Load()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}
