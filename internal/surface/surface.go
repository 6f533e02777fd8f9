package surface

import (
	"errors"
	"image"
	"image/color"
)

// BytesPerPixel RGBA 格式每像素字节数
const BytesPerPixel = 4

// ErrInvalidSize 画布尺寸非法（宽或高 <= 0）
var ErrInvalidSize = errors.New("画布尺寸必须为正数")

// DefaultBackground 默认背景色（白色）
var DefaultBackground = color.RGBA{255, 255, 255, 255}

// Surface 像素画布，始终完全不透明
type Surface struct {
	img        *image.RGBA
	background color.RGBA
}

// New 创建画布并填充背景色
func New(width, height int, background color.RGBA) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	background.A = 255
	s := &Surface{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
	fill(s.img, background)
	return s, nil
}

// Width 画布宽度
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height 画布高度
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Bounds 画布范围
func (s *Surface) Bounds() image.Rectangle { return s.img.Rect }

// Background 背景色（橡皮擦也使用此颜色）
func (s *Surface) Background() color.RGBA { return s.background }

// RGBA 返回底层像素缓冲，供渲染器直接绘制
func (s *Surface) RGBA() *image.RGBA { return s.img }

// At 读取单个像素，越界返回零值
func (s *Surface) At(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}).In(s.img.Rect) {
		return color.RGBA{}
	}
	return s.img.RGBAAt(x, y)
}

// Snapshot 捕获当前全部像素（深拷贝）
func (s *Surface) Snapshot() Snapshot {
	pix := make([]byte, len(s.img.Pix))
	copy(pix, s.img.Pix)
	return Snapshot{pix: pix, stride: s.img.Stride, rect: s.img.Rect}
}

// Restore 用快照覆盖整个画布。
// 快照尺寸与当前画布不同时，只复制重叠区域，其余填充背景色，画布尺寸保持不变。
func (s *Surface) Restore(snap Snapshot) {
	if snap.rect == s.img.Rect {
		copy(s.img.Pix, snap.pix)
		return
	}
	fill(s.img, s.background)
	copyRows(s.img, snap.pix, snap.stride, snap.rect)
}

// Resize 调整画布尺寸，保留原有内容（超出新范围的部分被裁掉，不缩放）
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	if width == s.Width() && height == s.Height() {
		return nil
	}
	old := s.img
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	fill(s.img, s.background)
	copyRows(s.img, old.Pix, old.Stride, old.Rect)
	return nil
}

// Clear 重置为纯背景色
func (s *Surface) Clear() {
	fill(s.img, s.background)
}

// Image 返回当前像素的副本，可安全交给其他 goroutine 编码
func (s *Surface) Image() *image.RGBA {
	dst := image.NewRGBA(s.img.Rect)
	copy(dst.Pix, s.img.Pix)
	return dst
}

// fill 用单色填充整个缓冲（逐行复制第一行，避免逐像素写）
func fill(img *image.RGBA, c color.RGBA) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	row := img.Pix[:w*BytesPerPixel]
	for i := 0; i < len(row); i += BytesPerPixel {
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
	}
	for y := 1; y < h; y++ {
		start := y * img.Stride
		copy(img.Pix[start:start+len(row)], row)
	}
}

// copyRows 将 src 像素按行复制到 dst 的重叠区域（两者均以 (0,0) 为原点）
func copyRows(dst *image.RGBA, src []byte, srcStride int, srcRect image.Rectangle) {
	overlap := dst.Rect.Intersect(srcRect)
	if overlap.Empty() {
		return
	}
	bytesPerRow := overlap.Dx() * BytesPerPixel
	for y := overlap.Min.Y; y < overlap.Max.Y; y++ {
		srcStart := (y-srcRect.Min.Y)*srcStride + (overlap.Min.X-srcRect.Min.X)*BytesPerPixel
		dstStart := (y-dst.Rect.Min.Y)*dst.Stride + (overlap.Min.X-dst.Rect.Min.X)*BytesPerPixel
		copy(dst.Pix[dstStart:dstStart+bytesPerRow], src[srcStart:srcStart+bytesPerRow])
	}
}
