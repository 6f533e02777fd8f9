package tray

import (
	"encoding/binary"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIcon(t *testing.T) {
	img := renderIcon(iconSize)
	assert.Equal(t, color.RGBA{}, img.RGBAAt(2, 2), "corners stay transparent")
	assert.Equal(t, color.RGBA{0x29, 0x80, 0xb9, 0xff}, img.RGBAAt(16, 8))
}

func TestEncodeICO(t *testing.T) {
	ico := getIcon()
	n := iconSize
	require.Len(t, ico, 6+16+40+n*n*4+4*n)

	le := binary.LittleEndian
	assert.Equal(t, uint16(1), le.Uint16(ico[2:]))
	assert.Equal(t, uint16(1), le.Uint16(ico[4:]))
	assert.Equal(t, byte(n), ico[6])
	assert.Equal(t, uint32(22), le.Uint32(ico[18:]))
	assert.Equal(t, uint32(2*n), le.Uint32(ico[22+8:]))

	// 像素自下而上存储，BGRA 顺序
	off := 22 + 40 + (n-1-8)*n*4 + 16*4
	assert.Equal(t, []byte{0xb9, 0x80, 0x29, 0xff}, ico[off:off+4])
}
