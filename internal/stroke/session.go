package stroke

import (
	"image"
	"image/color"

	"sketchpad/internal/history"
	"sketchpad/internal/shape"
	"sketchpad/internal/surface"
)

// Surface 笔画会话操作的画布
type Surface interface {
	history.Canvas
	RGBA() *image.RGBA
	Background() color.RGBA
}

// Recorder 在笔画开始前记录画布状态
type Recorder interface {
	Push(surface.Snapshot)
}

// Settings 工具选择状态。
// Tool、Color、Width 在落笔时冻结到会话中；Fill 在每次重绘时实时读取。
type Settings struct {
	Tool  shape.Tool
	Color color.RGBA
	Width int
	Fill  bool
}

// DefaultSettings 默认工具设置：黑色画刷
func DefaultSettings() Settings {
	return Settings{
		Tool:  shape.ToolBrush,
		Color: color.RGBA{0, 0, 0, 255},
		Width: shape.DefaultWidth,
	}
}

// Normalize 修正非法值：未知工具回退到画刷，线宽限制在 [1, MaxWidth]
func (s Settings) Normalize() Settings {
	if !s.Tool.Valid() {
		s.Tool = shape.ToolBrush
	}
	if s.Width < 1 {
		s.Width = 1
	}
	if s.Width > shape.MaxWidth {
		s.Width = shape.MaxWidth
	}
	s.Color.A = 255
	return s
}

// Session 一次从按下到抬起的连续笔画
type Session struct {
	Tool   shape.Tool
	Color  color.RGBA
	Width  int
	Origin image.Point

	last   image.Point      // 自由绘制上一次记录的点
	before surface.Snapshot // 落笔前的画布快照（形状预览从此重绘）
}

// Controller 笔画状态机：Idle -> Active -> Idle
type Controller struct {
	surface Surface
	history Recorder
	active  *Session
}

// NewController 创建笔画控制器
func NewController(s Surface, rec Recorder) *Controller {
	return &Controller{surface: s, history: rec}
}

// Active 是否有进行中的笔画
func (c *Controller) Active() bool { return c.active != nil }

// Session 返回进行中笔画的副本
func (c *Controller) Session() (Session, bool) {
	if c.active == nil {
		return Session{}, false
	}
	return *c.active, true
}

// Handle 按事件类型驱动状态机，返回画布是否被修改
func (c *Controller) Handle(ev Event, settings Settings) bool {
	switch ev.Kind {
	case Begin:
		c.Begin(ev.Point(), settings)
		return false
	case Move:
		return c.Move(ev.Point(), settings.Fill)
	case End:
		c.End()
	}
	return false
}

// Begin 落笔：记录历史、捕获快照和起点，冻结工具、颜色和线宽。
// 已有进行中的笔画时先隐式结束它。
func (c *Controller) Begin(p image.Point, settings Settings) {
	if c.active != nil {
		c.End()
	}
	settings = settings.Normalize()

	// 快照不可变，历史记录与预览重绘共用同一份
	before := c.surface.Snapshot()
	c.history.Push(before)
	c.active = &Session{
		Tool:   settings.Tool,
		Color:  settings.Color,
		Width:  settings.Width,
		Origin: p,
		last:   p,
		before: before,
	}
}

// Move 移动：自由绘制类工具追加增量线段，形状工具从落笔快照重绘预览
func (c *Controller) Move(p image.Point, fill bool) bool {
	s := c.active
	if s == nil {
		return false
	}

	img := c.surface.RGBA()
	if s.Tool.Freehand() {
		col := s.Color
		if s.Tool == shape.ToolEraser {
			col = c.surface.Background()
		}
		shape.Segment(img, s.last, p, col, s.Width)
		s.last = p
		return true
	}

	c.surface.Restore(s.before)
	shape.Draw(img, s.Tool, s.Origin, p, shape.Style{Color: s.Color, Width: s.Width, Fill: fill})
	s.last = p
	return true
}

// End 抬笔：最后一次渲染的结果即为最终结果，不再修改画布
func (c *Controller) End() {
	c.active = nil
}
