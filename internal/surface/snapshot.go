package surface

import (
	"bytes"
	"image"
)

// Snapshot 某一时刻画布像素的不可变副本。
// 创建后不再修改，可以在多个栈或 goroutine 之间共享。
type Snapshot struct {
	pix    []byte
	stride int
	rect   image.Rectangle
}

// Bounds 快照范围
func (s Snapshot) Bounds() image.Rectangle { return s.rect }

// IsZero 是否为空快照
func (s Snapshot) IsZero() bool { return s.pix == nil }

// Image 返回快照内容的新副本
func (s Snapshot) Image() *image.RGBA {
	img := image.NewRGBA(s.rect)
	copyRows(img, s.pix, s.stride, s.rect)
	return img
}

// Equal 判断两个快照像素是否完全一致
func (s Snapshot) Equal(other Snapshot) bool {
	return s.rect == other.rect && bytes.Equal(s.pix, other.pix)
}
