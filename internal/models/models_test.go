package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineKind_String(t *testing.T) {
	assert.Equal(t, "unchanged", LineUnchanged.String())
	assert.Equal(t, "added", LineAdded.String())
	assert.Equal(t, "removed", LineRemoved.String())
	assert.Equal(t, "moved-from", LineMovedFrom.String())
	assert.Equal(t, "moved-to", LineMovedTo.String())
	assert.Equal(t, "LineKind(42)", LineKind(42).String())
}

func TestDiffLine_JSON(t *testing.T) {
	group := 0
	line := DiffLine{Content: `  "a": 1`, Kind: LineMovedTo, NewLineNumber: 3, MoveGroup: &group}

	data, err := json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"  \"a\": 1","kind":"moved-to","new_line_number":3,"move_group":0}`, string(data))

	var decoded DiffLine
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, line, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"sideways"}`), &decoded))
}

func TestDiffLine_Group(t *testing.T) {
	_, ok := DiffLine{}.Group()
	assert.False(t, ok)

	g := 2
	got, ok := DiffLine{MoveGroup: &g}.Group()
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestLineKind_Sides(t *testing.T) {
	assert.True(t, LineRemoved.IsOldSide())
	assert.True(t, LineMovedFrom.IsOldSide())
	assert.False(t, LineUnchanged.IsOldSide())
	assert.True(t, LineAdded.IsNewSide())
	assert.True(t, LineMovedTo.IsNewSide())
	assert.False(t, LineRemoved.IsNewSide())
}

func TestDiffResult_Counts(t *testing.T) {
	r := DiffResult{
		Lines: []DiffLine{
			{Kind: LineUnchanged},
			{Kind: LineAdded},
			{Kind: LineAdded},
			{Kind: LineRemoved},
		},
		AddedCount:   2,
		RemovedCount: 1,
	}
	assert.True(t, r.HasChanges())
	assert.Equal(t, 2, r.CountKind(LineAdded))
	assert.Equal(t, 0, r.CountKind(LineMovedTo))
	assert.False(t, DiffResult{}.HasChanges())
}

func TestInvalidJSONInputError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("load: %w", &InvalidJSONInputError{Side: SideLeft, Source: "a.json", Err: cause})

	assert.True(t, IsInvalidJSONInput(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "invalid left document a.json")
	assert.False(t, IsInvalidJSONInput(cause))
}

func TestSnapshot_Validate(t *testing.T) {
	assert.NoError(t, Snapshot{Name: "users", Body: "{}"}.Validate())
	assert.Error(t, Snapshot{Name: " ", Body: "{}"}.Validate())
	assert.Error(t, Snapshot{Name: "two words", Body: "{}"}.Validate())
	assert.Error(t, Snapshot{Name: "users"}.Validate())
}
