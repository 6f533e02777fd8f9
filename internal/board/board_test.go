package board

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchpad/internal/export"
	"sketchpad/internal/shape"
	"sketchpad/internal/stroke"
	"sketchpad/internal/surface"
)

var red = color.RGBA{255, 0, 0, 255}

func newBoard(t *testing.T) *Board {
	t.Helper()
	opts := DefaultOptions()
	opts.Width, opts.Height = 120, 80
	b, err := New(opts)
	require.NoError(t, err)
	return b
}

func drawLine(b *Board, y int) {
	b.HandleEvent(stroke.At(stroke.Begin, 10, y))
	b.HandleEvent(stroke.At(stroke.Move, 60, y))
	b.HandleEvent(stroke.At(stroke.End, 60, y))
}

func TestNewRejectsInvalidSize(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 0
	_, err := New(opts)
	assert.ErrorIs(t, err, surface.ErrInvalidSize)
}

func TestUndoRedoAcrossStrokes(t *testing.T) {
	b := newBoard(t)
	states := []surface.Snapshot{b.Snapshot()}
	for i := 0; i < 4; i++ {
		drawLine(b, 10+i*15)
		states = append(states, b.Snapshot())
	}

	for i := 3; i >= 0; i-- {
		require.True(t, b.Undo())
		assert.True(t, b.Snapshot().Equal(states[i]), "undo to state %d", i)
	}
	assert.False(t, b.Undo())

	for i := 1; i <= 4; i++ {
		require.True(t, b.Redo())
		assert.True(t, b.Snapshot().Equal(states[i]), "redo to state %d", i)
	}
	assert.False(t, b.Redo())
}

func TestDrawAfterUndoDiscardsRedo(t *testing.T) {
	b := newBoard(t)
	drawLine(b, 20)
	drawLine(b, 40)
	require.True(t, b.Undo())

	drawLine(b, 60)
	assert.False(t, b.Redo())
	info := b.Info()
	assert.Equal(t, 2, info.Undo)
	assert.Equal(t, 0, info.Redo)
}

func TestClearIsUndoable(t *testing.T) {
	b := newBoard(t)
	b.SetColor(red)
	drawLine(b, 30)
	drawn := b.Snapshot()
	assert.Equal(t, red, b.At(35, 30))

	b.Clear()
	assert.Equal(t, surface.DefaultBackground, b.At(35, 30))

	require.True(t, b.Undo())
	assert.True(t, b.Snapshot().Equal(drawn))
}

func TestUndoEndsActiveStroke(t *testing.T) {
	b := newBoard(t)
	b.HandleEvent(stroke.At(stroke.Begin, 5, 5))
	b.HandleEvent(stroke.At(stroke.Move, 50, 5))
	assert.True(t, b.Info().Drawing)

	require.True(t, b.Undo())
	assert.False(t, b.Info().Drawing)
	assert.False(t, b.HandleEvent(stroke.At(stroke.Move, 70, 40)))
}

func TestSettingsAreNormalized(t *testing.T) {
	b := newBoard(t)
	b.SetWidth(500)
	b.SetTool(shape.Tool(99))
	st := b.Settings()
	assert.Equal(t, shape.MaxWidth, st.Width)
	assert.Equal(t, shape.ToolBrush, st.Tool)

	b.SetSettings(stroke.Settings{Tool: shape.ToolCircle, Color: red, Width: 3, Fill: true})
	info := b.Info()
	assert.Equal(t, "circle", info.Tool)
	assert.Equal(t, "#ff0000", info.Color)
	assert.Equal(t, 3, info.StrokeWidth)
	assert.True(t, info.Fill)
}

func TestResize(t *testing.T) {
	b := newBoard(t)
	v := b.Version()
	assert.ErrorIs(t, b.Resize(-1, 10), surface.ErrInvalidSize)
	assert.Equal(t, v, b.Version())

	require.NoError(t, b.Resize(200, 40))
	info := b.Info()
	assert.Equal(t, 200, info.Width)
	assert.Equal(t, 40, info.Height)
	assert.Greater(t, b.Version(), v)
}

func TestExportPNG(t *testing.T) {
	b := newBoard(t)
	b.SetColor(red)
	drawLine(b, 30)

	var buf bytes.Buffer
	n, err := b.Export(&buf, export.PNG, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	r, _, _, _ := img.At(35, 30).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	id, b, err := r.Create(DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, b, got)
	assert.Equal(t, []string{id}, r.IDs())

	require.NoError(t, r.Delete(id))
	_, err = r.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Delete(id), ErrNotFound)
	assert.Equal(t, 0, r.Len())
}
