package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/history"
	"github.com/aleister1102/respdiff/internal/httpclient"
	"github.com/aleister1102/respdiff/internal/jsonvalue"
	"github.com/aleister1102/respdiff/internal/models"
	"github.com/h2non/gock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestKindOf(t *testing.T) {
	tests := map[string]RefKind{
		"-":                       RefStdin,
		"http://localhost/a":      RefURL,
		"HTTPS://api.example.com": RefURL,
		"snapshot:users":          RefSnapshot,
		"./data/users.json":       RefFile,
		"snapshot.json":           RefFile,
		"https-notes.json":        RefFile,
	}
	for ref, want := range tests {
		assert.Equal(t, want, KindOf(ref), ref)
	}
	assert.Equal(t, "users", SnapshotName("snapshot:users"))
	assert.Equal(t, "url", RefURL.String())
}

func TestLocalPaths(t *testing.T) {
	got := LocalPaths("a.json", "-", "https://x/y", "snapshot:s", "a.json", "b.yaml", "")
	assert.Equal(t, []string{"a.json", "b.yaml"}, got)
	assert.Empty(t, LocalPaths("-", "snapshot:s"))
}

func TestLoader_LoadFile(t *testing.T) {
	loader := NewLoaderBuilder(zerolog.Nop()).Build()

	v, err := loader.Load(context.Background(), writeFile(t, "doc.json", `{"b":1,"a":2}`))
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":2}`, jsonvalue.Compact(v))

	v, err = loader.Load(context.Background(), writeFile(t, "doc.YML", "b: 1\na: [x]\n"))
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":["x"]}`, jsonvalue.Compact(v))
}

func TestLoader_InvalidDocument(t *testing.T) {
	loader := NewLoaderBuilder(zerolog.Nop()).Build()
	path := writeFile(t, "bad.json", `{"a":`)

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, models.IsInvalidJSONInput(err))

	var invalid *models.InvalidJSONInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, path, invalid.Source)
}

func TestLoader_EmptyDocument(t *testing.T) {
	loader := NewLoaderBuilder(zerolog.Nop()).Build()

	_, err := loader.Load(context.Background(), writeFile(t, "empty.json", " \n\t"))
	require.Error(t, err)
	assert.True(t, models.IsInvalidJSONInput(err))
	assert.ErrorIs(t, err, jsonvalue.ErrEmptyDocument)
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoaderBuilder(zerolog.Nop()).Build()

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.False(t, models.IsInvalidJSONInput(err))
	assert.True(t, IsNotFound(err))
}

func TestLoader_FileTooLarge(t *testing.T) {
	loader := NewLoaderBuilder(zerolog.Nop()).WithMaxSize(4).Build()

	_, err := loader.Load(context.Background(), writeFile(t, "big.json", `[1,2,3]`))
	assert.ErrorIs(t, err, common.ErrTooLarge)
}

func TestLoader_Stdin(t *testing.T) {
	loader := NewLoaderBuilder(zerolog.Nop()).WithStdin(strings.NewReader(`[true]`)).Build()

	doc, err := loader.LoadDocument(context.Background(), models.SideLeft, "-")
	require.NoError(t, err)
	assert.Equal(t, RefStdin, doc.Kind)
	assert.Equal(t, `[true]`, string(doc.Raw))
}

func TestLoader_URL(t *testing.T) {
	client, err := httpclient.NewBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)
	gock.InterceptClient(client.StdClient())
	defer gock.RestoreClient(client.StdClient())
	defer gock.Off()

	gock.New("https://api.example.com").
		Get("/users").
		Reply(200).
		JSON([]map[string]any{{"id": 1}})
	gock.New("https://api.example.com").
		Get("/config").
		Reply(200).
		SetHeader("Content-Type", "application/yaml").
		BodyString("enabled: true\n")

	loader := NewLoaderBuilder(zerolog.Nop()).WithFetcher(client).Build()

	v, err := loader.Load(context.Background(), "https://api.example.com/users")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, jsonvalue.Compact(v))

	v, err = loader.Load(context.Background(), "https://api.example.com/config")
	require.NoError(t, err)
	assert.Equal(t, `{"enabled":true}`, jsonvalue.Compact(v))
}

func TestLoader_URLWithoutFetcher(t *testing.T) {
	loader := NewLoaderBuilder(zerolog.Nop()).Build()

	_, err := loader.Load(context.Background(), "https://api.example.com/users")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLoader_Snapshot(t *testing.T) {
	store, err := history.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Save("users", "v1.json", `{"v":1}`)
	require.NoError(t, err)
	_, err = store.Save("users", "v2.json", `{"v":2}`)
	require.NoError(t, err)

	loader := NewLoaderBuilder(zerolog.Nop()).WithSnapshots(store).Build()

	v, err := loader.Load(context.Background(), "snapshot:users")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, jsonvalue.Compact(v))

	_, err = loader.Load(context.Background(), "snapshot:orders")
	assert.True(t, IsNotFound(err))

	_, err = loader.Load(context.Background(), "snapshot:")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLoader_LoadPair(t *testing.T) {
	loader := NewLoaderBuilder(zerolog.Nop()).Build()
	good := writeFile(t, "good.json", `{}`)
	bad := writeFile(t, "bad.json", `nope`)

	left, right, err := loader.LoadPair(context.Background(), good, good)
	require.NoError(t, err)
	assert.NotNil(t, left)
	assert.NotNil(t, right)

	_, _, err = loader.LoadPair(context.Background(), bad, bad)
	require.Error(t, err)

	var pairErr *PairError
	require.ErrorAs(t, err, &pairErr)

	var leftInvalid, rightInvalid *models.InvalidJSONInputError
	require.True(t, errors.As(pairErr.Left, &leftInvalid))
	require.True(t, errors.As(pairErr.Right, &rightInvalid))
	assert.Equal(t, models.SideLeft, leftInvalid.Side)
	assert.Equal(t, models.SideRight, rightInvalid.Side)
	assert.Contains(t, err.Error(), "invalid left document")
	assert.Contains(t, err.Error(), "invalid right document")

	_, _, err = loader.LoadPair(context.Background(), good, bad)
	require.ErrorAs(t, err, &pairErr)
	assert.NoError(t, pairErr.Left)
	assert.True(t, models.IsInvalidJSONInput(err))
}

func TestLoader_LoadPairRejectsDoubleStdin(t *testing.T) {
	loader := NewLoaderBuilder(zerolog.Nop()).WithStdin(strings.NewReader(`{}`)).Build()

	_, _, err := loader.LoadPair(context.Background(), "-", "-")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLoader_EmptyRef(t *testing.T) {
	loader := NewLoaderBuilder(zerolog.Nop()).Build()

	_, err := loader.Load(context.Background(), "  ")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
