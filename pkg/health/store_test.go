package health

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingAndEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "health.json")
	s := NewFileStore(path)

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, State{}, st)

	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))
	st, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, State{}, st)
}

func TestFileStoreSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "health.json")
	s := NewFileStore(path)

	want := State{
		ChargeCycles:    42,
		CycleInProgress: true,
		FirstUse:        time.Date(2023, time.May, 4, 10, 0, 0, 0, time.UTC),
		LastLowBattery:  time.Date(2024, time.February, 1, 8, 30, 0, 0, time.UTC),
	}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want.ChargeCycles, got.ChargeCycles)
	assert.Equal(t, want.CycleInProgress, got.CycleInProgress)
	assert.True(t, want.FirstUse.Equal(got.FirstUse))
	assert.True(t, want.LastLowBattery.Equal(got.LastLowBattery))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestMemoryStore(t *testing.T) {
	var m MemoryStore
	require.NoError(t, m.Save(State{ChargeCycles: 3}))
	st, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, st.ChargeCycles)
	assert.Equal(t, 1, m.Saves)
}
