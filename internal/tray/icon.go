package tray

import (
	"encoding/binary"
	"image"
	"image/color"

	"sketchpad/internal/shape"
)

const iconSize = 32

// getIcon 托盘图标：蓝色圆底上的一笔白色曲线
func getIcon() []byte {
	return encodeICO(renderIcon(iconSize))
}

// renderIcon 用画板自身的渲染器绘制图标
func renderIcon(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	c := size / 2
	blue := color.RGBA{0x29, 0x80, 0xb9, 0xff}
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	shape.Draw(img, shape.ToolCircle, image.Pt(c, c), image.Pt(c, 1), shape.Style{Color: blue, Width: 1, Fill: true})

	w := size / 10
	if w < 2 {
		w = 2
	}
	pts := []image.Point{
		{size * 3 / 10, size * 6 / 10},
		{size * 4 / 10, size * 4 / 10},
		{size * 5 / 10, size * 6 / 10},
		{size * 6 / 10, size * 4 / 10},
		{size * 7 / 10, size * 6 / 10},
	}
	for i := 1; i < len(pts); i++ {
		shape.Segment(img, pts[i-1], pts[i], white, w)
	}
	return img
}

// encodeICO 将图片封装为单图 32 位 ICO（BITMAPINFOHEADER + 自下而上的 BGRA 像素 + AND 掩码）
func encodeICO(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()

	const (
		fileHeaderSize = 6
		entrySize      = 16
		bmpHeaderSize  = 40
	)
	maskStride := ((w + 31) / 32) * 4
	pixelSize := w * h * 4
	dataSize := bmpHeaderSize + pixelSize + maskStride*h

	buf := make([]byte, fileHeaderSize+entrySize+dataSize)
	le := binary.LittleEndian

	// ICONDIR
	le.PutUint16(buf[2:], 1) // 类型: ICO
	le.PutUint16(buf[4:], 1) // 图像数

	// ICONDIRENTRY，256 记为 0
	e := buf[fileHeaderSize:]
	e[0], e[1] = byte(w), byte(h)
	le.PutUint16(e[4:], 1)  // 颜色平面
	le.PutUint16(e[6:], 32) // 位深
	le.PutUint32(e[8:], uint32(dataSize))
	le.PutUint32(e[12:], fileHeaderSize+entrySize)

	// BITMAPINFOHEADER，高度为 XOR + AND 两部分之和
	bh := buf[fileHeaderSize+entrySize:]
	le.PutUint32(bh[0:], bmpHeaderSize)
	le.PutUint32(bh[4:], uint32(w))
	le.PutUint32(bh[8:], uint32(h*2))
	le.PutUint16(bh[12:], 1)
	le.PutUint16(bh[14:], 32)

	px := bh[bmpHeaderSize:]
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		dst := px[(h-1-y)*w*4:]
		for x := 0; x < w; x++ {
			r, g, b, a := src[x*4], src[x*4+1], src[x*4+2], src[x*4+3]
			dst[x*4], dst[x*4+1], dst[x*4+2], dst[x*4+3] = b, g, r, a
		}
	}
	// AND 掩码全 0，透明度由 alpha 通道决定
	return buf
}
