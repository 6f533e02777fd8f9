package shape

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/vector"
)

// circleKappa 用四段三次贝塞尔曲线逼近圆时的控制点系数
const circleKappa = 0.5522847498

var rasterizerPool = sync.Pool{
	New: func() any { return &vector.Rasterizer{} },
}

// fillPolygon 使用扫描线光栅化器填充闭合多边形
func fillPolygon(img *image.RGBA, pts []point, c color.RGBA) {
	b := img.Bounds()
	r := acquireRasterizer(b)
	defer rasterizerPool.Put(r)

	ox, oy := float64(b.Min.X), float64(b.Min.Y)
	r.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	r.ClosePath()
	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

// fillCircle 填充圆形
func fillCircle(img *image.RGBA, center point, radius float64, c color.RGBA) {
	b := img.Bounds()
	r := acquireRasterizer(b)
	defer rasterizerPool.Put(r)

	cx := float32(center.X - float64(b.Min.X))
	cy := float32(center.Y - float64(b.Min.Y))
	rr := float32(radius)
	k := float32(circleKappa) * rr

	r.MoveTo(cx+rr, cy)
	r.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	r.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	r.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	r.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	r.ClosePath()
	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

func acquireRasterizer(b image.Rectangle) *vector.Rasterizer {
	r := rasterizerPool.Get().(*vector.Rasterizer)
	r.Reset(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	return r
}
