package surface

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{255, 0, 0, 255}

func paint(s *Surface, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.RGBA().SetRGBA(x, y, c)
		}
	}
}

func TestNewFillsBackground(t *testing.T) {
	s, err := New(20, 10, color.RGBA{10, 20, 30, 0})
	require.NoError(t, err)

	assert.Equal(t, 20, s.Width())
	assert.Equal(t, 10, s.Height())
	want := color.RGBA{10, 20, 30, 255}
	assert.Equal(t, want, s.Background(), "background is forced opaque")
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			require.Equal(t, want, s.At(x, y))
		}
	}
}

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, tc := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		_, err := New(tc[0], tc[1], DefaultBackground)
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	s, err := New(8, 8, DefaultBackground)
	require.NoError(t, err)

	snap := s.Snapshot()
	paint(s, 0, 0, 4, 4, red)
	assert.Equal(t, red, s.At(1, 1))

	img := snap.Image()
	assert.Equal(t, DefaultBackground, img.RGBAAt(1, 1), "snapshot must not alias the live buffer")

	img.SetRGBA(2, 2, red)
	assert.Equal(t, DefaultBackground, snap.Image().RGBAAt(2, 2), "Image returns a fresh copy")

	s.Restore(snap)
	assert.Equal(t, DefaultBackground, s.At(1, 1))
	assert.True(t, snap.Equal(s.Snapshot()))
}

func TestRestoreDifferentSize(t *testing.T) {
	s, err := New(10, 10, DefaultBackground)
	require.NoError(t, err)
	paint(s, 0, 0, 10, 10, red)
	snap := s.Snapshot()

	require.NoError(t, s.Resize(20, 5))
	s.Clear()
	s.Restore(snap)

	assert.Equal(t, 20, s.Width())
	assert.Equal(t, 5, s.Height())
	assert.Equal(t, red, s.At(9, 4))
	assert.Equal(t, DefaultBackground, s.At(15, 2))
}

func TestResizePreservesContent(t *testing.T) {
	s, err := New(10, 10, DefaultBackground)
	require.NoError(t, err)
	paint(s, 2, 2, 8, 8, red)

	require.NoError(t, s.Resize(6, 20))
	assert.Equal(t, red, s.At(5, 7))
	assert.Equal(t, DefaultBackground, s.At(5, 12))
	assert.Equal(t, DefaultBackground, s.At(1, 1))

	require.NoError(t, s.Resize(12, 12))
	assert.Equal(t, red, s.At(5, 7))
	assert.Equal(t, DefaultBackground, s.At(7, 7), "clipped content is not recovered")
}

func TestResizeRejectsInvalidSize(t *testing.T) {
	s, err := New(10, 10, DefaultBackground)
	require.NoError(t, err)
	paint(s, 0, 0, 1, 1, red)

	assert.ErrorIs(t, s.Resize(0, 10), ErrInvalidSize)
	assert.ErrorIs(t, s.Resize(10, -3), ErrInvalidSize)
	assert.Equal(t, 10, s.Width())
	assert.Equal(t, red, s.At(0, 0))
}

func TestClear(t *testing.T) {
	s, err := New(5, 5, DefaultBackground)
	require.NoError(t, err)
	paint(s, 0, 0, 5, 5, red)

	s.Clear()
	assert.Equal(t, DefaultBackground, s.At(4, 4))
}

func TestImageIsCopy(t *testing.T) {
	s, err := New(5, 5, DefaultBackground)
	require.NoError(t, err)

	img := s.Image()
	img.SetRGBA(0, 0, red)
	assert.Equal(t, DefaultBackground, s.At(0, 0))
}
