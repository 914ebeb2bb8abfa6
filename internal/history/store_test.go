package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/jsonvalue"
	"github.com/aleister1102/respdiff/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "db", "snapshots.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return store
}

func TestStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.Save("users", "https://api.example.com/users", `{ "b": 1, "a": [true, null] }`)
	require.NoError(t, err)

	_, err = uuid.Parse(saved.ID)
	assert.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":[true,null]}`, saved.Body)

	got, err := store.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	v, err := Value(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, v.(jsonvalue.Object).Keys())
}

func TestStore_LatestAndList(t *testing.T) {
	store := openTestStore(t)

	first, err := store.Save("users", "v1.json", `{"v":1}`)
	require.NoError(t, err)
	second, err := store.Save("users", "v2.json", `{"v":2}`)
	require.NoError(t, err)
	other, err := store.SaveValue("orders", "-", jsonvalue.NewArray())
	require.NoError(t, err)

	latest, err := store.Latest("users")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.True(t, latest.CreatedAt.After(first.CreatedAt))

	users, err := store.List("users", 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, second.ID, users[0].ID)
	assert.Equal(t, first.ID, users[1].ID)

	all, err := store.List("", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, other.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	none, err := store.List("missing", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.Latest("nope")
	assert.ErrorIs(t, err, models.ErrRecordNotFound)

	assert.ErrorIs(t, store.Delete("nope"), common.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := openTestStore(t)

	snap, err := store.Save("users", "v1.json", `[1]`)
	require.NoError(t, err)

	require.NoError(t, store.Delete(snap.ID))

	_, err = store.Get(snap.ID)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestStore_SaveRejectsInvalidInput(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Save("users", "x", `{"a":`)
	assert.Error(t, err)

	_, err = store.Save("", "x", `{}`)
	assert.Error(t, err)

	_, err = store.Save("has space", "x", `{}`)
	assert.Error(t, err)

	all, err := store.List("", 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")

	store, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	snap, err := store.Save("users", "v1.json", `{"k":"v"}`)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Latest("users")
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.CreatedAt, got.CreatedAt)
}

func TestOpen_InMemory(t *testing.T) {
	store, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Save("a", "b", `1`)
	require.NoError(t, err)

	list, err := store.List("a", 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
