package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_CreateOpenGlob(t *testing.T) {
	dir := t.TempDir()
	var fsys FileSystem = OSFileSystem{}

	require.NoError(t, fsys.MkdirAll(filepath.Join(dir, "out"), 0755))

	w, err := fsys.Create(filepath.Join(dir, "out", "a.csv"))
	require.NoError(t, err)
	_, err = w.Write([]byte("time,speed\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, fsys.WriteFile(filepath.Join(dir, "out", "b.csv"), []byte("x"), 0644))

	f, err := fsys.Open(filepath.Join(dir, "out", "a.csv"))
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "time,speed\n", string(data))

	matches, err := fsys.Glob(filepath.Join(dir, "out", "*.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "out", "a.csv"), filepath.Join(dir, "out", "b.csv")}, matches)

	assert.True(t, fsys.Exists(filepath.Join(dir, "out")))
	assert.False(t, fsys.Exists(filepath.Join(dir, "missing")))

	_, err = fsys.Open(filepath.Join(dir, "missing.csv"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	m := NewMemoryFileSystem()

	require.NoError(t, m.WriteFile("runs/scenario_1.csv", []byte("hello"), 0600))

	data, err := m.ReadFile("runs/scenario_1.csv")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	// Returned slices are copies.
	data[0] = 'j'
	again, _ := m.ReadFile("runs/scenario_1.csv")
	assert.Equal(t, "hello", string(again))

	info, err := m.Stat("runs/scenario_1.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.Equal(t, os.FileMode(0600), info.Mode())
	assert.False(t, info.IsDir())

	dirInfo, err := m.Stat("runs")
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())
}

func TestMemoryFileSystem_CreateVisibleOnClose(t *testing.T) {
	m := NewMemoryFileSystem()

	w, err := m.Create("out/report.txt")
	require.NoError(t, err)
	_, err = io.WriteString(w, "line 1\n")
	require.NoError(t, err)
	_, err = io.WriteString(w, "line 2\n")
	require.NoError(t, err)

	before, err := m.ReadFile("out/report.txt")
	require.NoError(t, err)
	assert.Empty(t, before)

	require.NoError(t, w.Close())
	after, err := m.ReadFile("out/report.txt")
	require.NoError(t, err)
	assert.Equal(t, "line 1\nline 2\n", string(after))

	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, fs.ErrClosed)
	assert.True(t, m.Exists("out"))
}

func TestMemoryFileSystem_OpenNonExistent(t *testing.T) {
	m := NewMemoryFileSystem()

	_, err := m.Open("nope.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = m.Stat("nope.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = m.ReadFile("nope.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_Glob(t *testing.T) {
	m := NewMemoryFileSystem()
	for _, name := range []string{
		"data/vehicle_simulation_scenario_2.csv",
		"data/vehicle_simulation_scenario_1.csv",
		"data/notes.txt",
		"other/vehicle_simulation_scenario_3.csv",
	} {
		require.NoError(t, m.WriteFile(name, nil, 0644))
	}

	got, err := m.Glob("data/vehicle_simulation_scenario_*.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"data/vehicle_simulation_scenario_1.csv",
		"data/vehicle_simulation_scenario_2.csv",
	}, got)

	_, err = m.Glob("data/[")
	assert.Error(t, err)
}

func TestMemoryFileSystem_PathCleaning(t *testing.T) {
	m := NewMemoryFileSystem()
	require.NoError(t, m.WriteFile("./a/../b/file.txt", []byte("x"), 0644))

	assert.True(t, m.Exists("b/file.txt"))
	assert.Equal(t, []string{"b/file.txt"}, m.Files())
}

func TestMemoryFileSystem_MkdirAll(t *testing.T) {
	m := NewMemoryFileSystem()
	require.NoError(t, m.MkdirAll("out/run/plots", 0755))

	for _, dir := range []string{"out", "out/run", "out/run/plots"} {
		assert.True(t, m.Exists(dir), dir)
	}
	assert.Empty(t, m.Files())
}
