package storage

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchpad/internal/export"
)

func fixedClock(s *Storage, t time.Time) {
	s.now = func() time.Time { return t }
}

func sample() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(1, 1, color.RGBA{255, 0, 0, 255})
	return img
}

func TestSaveUsesTimestampedName(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, export.JPEG, 80)
	fixedClock(s, time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local))

	path, err := s.Save(sample())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sketch_20260102_030405.jpg"), path)
	assert.FileExists(t, path)
}

func TestSaveAvoidsCollisions(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, export.PNG, 0)
	fixedClock(s, time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local))

	first, err := s.Save(sample())
	require.NoError(t, err)
	second, err := s.SaveAs(sample(), export.PNG)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "sketch_20260102_030405_1.png", filepath.Base(second))
}

func TestSaveUnknownFormatLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, export.Format(9), 0)

	_, err := s.Save(sample())
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, export.PNG, 0)

	old := filepath.Join(dir, "sketch_old.png")
	fresh := filepath.Join(dir, "sketch_new.png")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, fresh, other} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.Chtimes(other, past, past))

	n, err := s.Cleanup(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.FileExists(t, other)
}

func TestSetDirectoryCreates(t *testing.T) {
	s := NewStorage("", export.PNG, 0)
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, s.SetDirectory(dir))
	assert.DirExists(t, dir)
	assert.Equal(t, dir, s.GetDirectory())
}
