package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "history.json"))
	s.Load()
	return s
}

func TestAppendPrependsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	s.Append("first", "data:image/png;base64,AA==", "1:1")
	s.Append("second", "data:image/png;base64,BB==", "16:9")

	records := s.All()
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].Prompt)
	assert.Equal(t, "first", records[1].Prompt)
	assert.NotEmpty(t, records[0].ID)
	assert.NotEqual(t, records[0].ID, records[1].ID)
}

func TestAppendEvictsOldestBeyondCapacity(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i <= MaxRecords; i++ {
		s.Append(fmt.Sprintf("prompt-%d", i), "data:image/png;base64,AA==", "1:1")
	}

	assert.Equal(t, MaxRecords, s.Len())
	records := s.All()
	assert.Equal(t, fmt.Sprintf("prompt-%d", MaxRecords), records[0].Prompt)
	// prompt-0 was the oldest and must be gone.
	for _, rec := range records {
		assert.NotEqual(t, "prompt-0", rec.Prompt)
	}
}

func TestUpdateImageByIDTouchesOnlyTheImageField(t *testing.T) {
	s := newTestStore(t)
	before := s.Append("keep me", "data:image/png;base64,AA==", "9:16")

	s.UpdateImageByID(before.ID, "data:image/jpeg;base64,CC==")

	after, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, "data:image/jpeg;base64,CC==", after.ImageData)
	assert.Equal(t, before.Prompt, after.Prompt)
	assert.Equal(t, before.AspectRatio, after.AspectRatio)
	assert.Equal(t, before.ID, after.ID)
}

func TestUpdateImageByIDSurvivesPrepends(t *testing.T) {
	s := newTestStore(t)
	old := s.Append("old", "data:image/png;base64,AA==", "1:1")
	s.Append("new", "data:image/png;base64,BB==", "1:1")

	s.UpdateImageByID(old.ID, "data:image/jpeg;base64,CC==")

	newest, _ := s.Get(0)
	assert.Equal(t, "data:image/png;base64,BB==", newest.ImageData, "newest record must be untouched")
	updated, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, old.ID, updated.ID)
	assert.Equal(t, "data:image/jpeg;base64,CC==", updated.ImageData)
}

func TestUpdateImageByIDUnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.Append("only", "data:image/png;base64,AA==", "1:1")

	s.UpdateImageByID("no-such-id", "x")
	s.UpdateImageByID("", "x")

	rec, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AA==", rec.ImageData)
}

func TestClearEmptiesLogAndPersistedRepresentation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s := NewStore(path)
	s.Load()
	s.Append("a", "data:image/png;base64,AA==", "1:1")
	s.Append("b", "data:image/png;base64,BB==", "1:1")

	s.Clear()

	assert.Zero(t, s.Len())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s := NewStore(path)
	s.Load()
	s.Append("persisted", "data:image/png;base64,AA==", "16:9")

	reopened := NewStore(path)
	reopened.Load()

	require.Equal(t, 1, reopened.Len())
	rec, _ := reopened.Get(0)
	assert.Equal(t, "persisted", rec.Prompt)
	assert.Equal(t, "16:9", rec.AspectRatio)
}

func TestLoadMissingFileYieldsEmptyLog(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	s.Load()
	assert.Zero(t, s.Len())
}

func TestLoadCorruptFileYieldsEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewStore(path)
	s.Load()

	assert.Zero(t, s.Len())
	// The store must stay usable after a corrupt load.
	s.Append("fresh", "data:image/png;base64,AA==", "1:1")
	assert.Equal(t, 1, s.Len())
}

func TestLoadTruncatesOversizedLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	var records []Record
	for i := 0; i < MaxRecords+10; i++ {
		records = append(records, Record{ID: fmt.Sprintf("id-%d", i), Prompt: "p"})
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	s := NewStore(path)
	s.Load()

	assert.Equal(t, MaxRecords, s.Len())
}

func TestAllReturnsACopy(t *testing.T) {
	s := newTestStore(t)
	s.Append("original", "data:image/png;base64,AA==", "1:1")

	records := s.All()
	records[0].Prompt = "mutated"

	rec, _ := s.Get(0)
	assert.Equal(t, "original", rec.Prompt)
}
