package shape

import (
	"image"
	"image/color"
	"math"
)

// ArrowHeadLength 箭头两翼长度
const ArrowHeadLength = 10

// arrowHeadAngle 箭头两翼与主线的夹角（±30°）
const arrowHeadAngle = math.Pi / 6

// point 浮点坐标点（多边形顶点不一定落在整数像素上）
type point struct{ X, Y float64 }

func pt(p image.Point) point { return point{float64(p.X), float64(p.Y)} }

// Draw 在 img 上绘制从 origin 拖到 current 的形状。
// 调用方负责先把画布恢复到落笔前的快照；自由绘制类工具请使用 Segment。
func Draw(img *image.RGBA, tool Tool, origin, current image.Point, st Style) {
	switch tool {
	case ToolRectangle:
		drawPolygon(img, rectangleVertices(origin, current), st)
	case ToolSquare:
		drawPolygon(img, squareVertices(origin, current), st)
	case ToolTriangle:
		drawPolygon(img, triangleVertices(origin, current), st)
	case ToolHexagon:
		drawPolygon(img, regularPolygon(origin, current, 6, 0), st)
	case ToolPentagon:
		drawPolygon(img, regularPolygon(origin, current, 5, -math.Pi/2), st)
	case ToolCircle:
		renderCircle(img, origin, current, st)
	case ToolLine:
		o, c := pt(origin), pt(current)
		drawThickLine(img, o, c, st.Color, st.Width)
	case ToolArrow:
		renderArrow(img, origin, current, st)
	case ToolBrush, ToolPencil, ToolEraser:
		Segment(img, origin, current, st.Color, st.Width)
	}
}

// Segment 绘制自由画笔的一段增量线段（圆头端点，连续线段自然衔接）
func Segment(img *image.RGBA, from, to image.Point, c color.RGBA, width int) {
	drawThickLine(img, pt(from), pt(to), c, width)
}

// ---------- 几何 ----------

// rectangleVertices 轴对齐矩形，对角为 origin 与 current
func rectangleVertices(origin, current image.Point) []point {
	r := canonicalRect(origin, current)
	return rectVertices(r)
}

// squareVertices 正方形边长取 |originX - currentX|，锚定在 current 点（不以 origin 为中心）
func squareVertices(origin, current image.Point) []point {
	return rectVertices(squareRect(origin, current))
}

func squareRect(origin, current image.Point) image.Rectangle {
	side := abs(origin.X - current.X)
	return image.Rect(current.X, current.Y, current.X+side, current.Y+side)
}

// triangleVertices 等腰三角形：顶点在 origin，底边两端为 current 及其关于 originX 的镜像
func triangleVertices(origin, current image.Point) []point {
	return []point{
		pt(origin),
		pt(current),
		{float64(2*origin.X - current.X), float64(current.Y)},
	}
}

// regularPolygon 正 n 边形：中心在 current，半径为 |originX - currentX|，从 start 角度开始均分
func regularPolygon(origin, current image.Point, n int, start float64) []point {
	side := float64(abs(origin.X - current.X))
	if side == 0 {
		return nil
	}
	c := pt(current)
	pts := make([]point, n)
	for i := 0; i < n; i++ {
		angle := 2*math.Pi/float64(n)*float64(i) + start
		pts[i] = point{c.X + side*math.Cos(angle), c.Y + side*math.Sin(angle)}
	}
	return pts
}

func rectVertices(r image.Rectangle) []point {
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)
	return []point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// arrowHead 箭头两翼端点
func arrowHead(origin, current image.Point) (point, point) {
	o, c := pt(origin), pt(current)
	angle := math.Atan2(c.Y-o.Y, c.X-o.X)
	left := point{
		c.X - ArrowHeadLength*math.Cos(angle-arrowHeadAngle),
		c.Y - ArrowHeadLength*math.Sin(angle-arrowHeadAngle),
	}
	right := point{
		c.X - ArrowHeadLength*math.Cos(angle+arrowHeadAngle),
		c.Y - ArrowHeadLength*math.Sin(angle+arrowHeadAngle),
	}
	return left, right
}

// ---------- 绘制 ----------

// drawPolygon 按 Fill 标志填充或描边闭合多边形
func drawPolygon(img *image.RGBA, pts []point, st Style) {
	if len(pts) < 3 {
		return
	}
	if st.Fill {
		fillPolygon(img, pts, st.Color)
		return
	}
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		drawThickLine(img, pts[i], next, st.Color, st.Width)
	}
}

func renderCircle(img *image.RGBA, origin, current image.Point, st Style) {
	o, c := pt(origin), pt(current)
	radius := math.Hypot(o.X-c.X, o.Y-c.Y)
	if radius < 0.5 {
		return
	}
	if st.Fill {
		fillCircle(img, o, radius, st.Color)
		return
	}
	strokeCircle(img, o, radius, st.Color, st.Width)
}

func renderArrow(img *image.RGBA, origin, current image.Point, st Style) {
	o, c := pt(origin), pt(current)
	drawThickLine(img, o, c, st.Color, st.Width)
	if origin == current {
		return
	}
	left, right := arrowHead(origin, current)
	drawThickLine(img, left, c, st.Color, st.Width)
	drawThickLine(img, right, c, st.Color, st.Width)
}

// strokeCircle 使用距离场抗锯齿绘制圆形描边
func strokeCircle(img *image.RGBA, center point, radius float64, c color.RGBA, width int) {
	halfW := halfWidth(width)
	outer := radius + halfW + 1
	minX, maxX := int(math.Floor(center.X-outer)), int(math.Ceil(center.X+outer))
	minY, maxY := int(math.Floor(center.Y-outer)), int(math.Ceil(center.Y+outer))
	minX, minY, maxX, maxY = clipBox(img, minX, minY, maxX, maxY)

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			d := math.Hypot(float64(px)-center.X, float64(py)-center.Y)
			renderAAPixel(img, px, py, c, math.Abs(d-radius), halfW)
		}
	}
}

// ========== 辅助绘图函数 ==========

// halfWidth 线宽的一半，过细时保持可见
func halfWidth(width int) float64 {
	halfW := float64(width) / 2.0
	if halfW < 0.75 {
		halfW = 0.75
	}
	return halfW
}

// drawThickLine 使用距离场抗锯齿绘制线段（圆头端点）
func drawThickLine(img *image.RGBA, p1, p2 point, c color.RGBA, width int) {
	halfW := halfWidth(width)

	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	length := math.Hypot(dx, dy)

	if length < 0.5 {
		// 两点重合，画一个圆点
		drawFilledCircleAA(img, p1, halfW, c)
		return
	}

	// 单位方向和法向量
	ux, uy := dx/length, dy/length
	nx, ny := -uy, ux

	// 扫描包围盒
	margin := halfW + 2
	bx0 := int(math.Floor(math.Min(p1.X, p2.X) - margin))
	bx1 := int(math.Ceil(math.Max(p1.X, p2.X) + margin))
	by0 := int(math.Floor(math.Min(p1.Y, p2.Y) - margin))
	by1 := int(math.Ceil(math.Max(p1.Y, p2.Y) + margin))
	bx0, by0, bx1, by1 = clipBox(img, bx0, by0, bx1, by1)

	for py := by0; py <= by1; py++ {
		for px := bx0; px <= bx1; px++ {
			vx := float64(px) - p1.X
			vy := float64(py) - p1.Y
			along := vx*ux + vy*uy

			var dist float64
			if along <= 0 {
				dist = math.Hypot(vx, vy)
			} else if along >= length {
				dist = math.Hypot(float64(px)-p2.X, float64(py)-p2.Y)
			} else {
				dist = math.Abs(vx*nx + vy*ny)
			}

			renderAAPixel(img, px, py, c, dist, halfW)
		}
	}
}

// renderAAPixel 根据距离渲染抗锯齿像素
func renderAAPixel(img *image.RGBA, x, y int, c color.RGBA, dist, halfW float64) {
	if dist > halfW+0.5 {
		return
	}
	if dist <= halfW-0.5 {
		setPixelBlend(img, x, y, c)
	} else {
		frac := halfW + 0.5 - dist
		ac := color.RGBA{c.R, c.G, c.B, uint8(float64(c.A) * frac)}
		setPixelBlend(img, x, y, ac)
	}
}

// drawFilledCircleAA 绘制抗锯齿填充圆（用于点击未移动时的圆点）
func drawFilledCircleAA(img *image.RGBA, center point, r float64, c color.RGBA) {
	ri := r + 2
	minX, maxX := int(math.Floor(center.X-ri)), int(math.Ceil(center.X+ri))
	minY, maxY := int(math.Floor(center.Y-ri)), int(math.Ceil(center.Y+ri))
	minX, minY, maxX, maxY = clipBox(img, minX, minY, maxX, maxY)
	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			dist := math.Hypot(float64(px)-center.X, float64(py)-center.Y)
			renderAAPixel(img, px, py, c, dist, r)
		}
	}
}

// setPixelBlend 混合绘制像素（支持半透明）
func setPixelBlend(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}

	off := (y-bounds.Min.Y)*img.Stride + (x-bounds.Min.X)*4

	if c.A == 255 {
		// 不透明，直接写入
		img.Pix[off+0] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
		img.Pix[off+3] = 255
		return
	}

	if c.A == 0 {
		return
	}

	// Alpha 混合
	srcA := uint32(c.A)
	invA := 255 - srcA

	img.Pix[off+0] = uint8((uint32(c.R)*srcA + uint32(img.Pix[off+0])*invA) / 255)
	img.Pix[off+1] = uint8((uint32(c.G)*srcA + uint32(img.Pix[off+1])*invA) / 255)
	img.Pix[off+2] = uint8((uint32(c.B)*srcA + uint32(img.Pix[off+2])*invA) / 255)
	img.Pix[off+3] = uint8(srcA + uint32(img.Pix[off+3])*invA/255)
}

// ========== 通用辅助函数 ==========

// clipBox 将扫描范围裁剪到图片内，避免画布外的大量无效计算
func clipBox(img *image.RGBA, x0, y0, x1, y1 int) (int, int, int, int) {
	b := img.Bounds()
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if x1 > b.Max.X-1 {
		x1 = b.Max.X - 1
	}
	if y1 > b.Max.Y-1 {
		y1 = b.Max.Y - 1
	}
	return x0, y0, x1, y1
}

// canonicalRect 将两个点转换为规范化的矩形（保证 Min <= Max）
func canonicalRect(p1, p2 image.Point) image.Rectangle {
	return image.Rect(p1.X, p1.Y, p2.X, p2.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
