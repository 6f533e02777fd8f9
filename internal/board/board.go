package board

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"sketchpad/internal/export"
	"sketchpad/internal/history"
	"sketchpad/internal/metrics"
	"sketchpad/internal/shape"
	"sketchpad/internal/stroke"
	"sketchpad/internal/surface"
)

// Options 画板创建参数
type Options struct {
	Width      int
	Height     int
	Background color.RGBA
	MaxHistory int // 撤销栈深度上限，0 表示不限制
	Settings   stroke.Settings
}

// DefaultOptions 默认 800x600 白色画板
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		Background: surface.DefaultBackground,
		Settings:   stroke.DefaultSettings(),
	}
}

// Info 画板当前状态摘要
type Info struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Undo        int    `json:"undo"`
	Redo        int    `json:"redo"`
	Drawing     bool   `json:"drawing"`
	Version     uint64 `json:"version"`
	Tool        string `json:"tool"`
	Color       string `json:"color"`
	StrokeWidth int    `json:"strokeWidth"`
	Fill        bool   `json:"fill"`
}

// Board 绘图引擎：一块画布、撤销历史、笔画状态机和当前工具设置。
// 所有修改串行执行；导出时先复制像素再在锁外编码。
type Board struct {
	mu       sync.Mutex
	surface  *surface.Surface
	history  *history.History
	strokes  *stroke.Controller
	settings stroke.Settings
	version  uint64
}

// New 创建画板
func New(opts Options) (*Board, error) {
	s, err := surface.New(opts.Width, opts.Height, opts.Background)
	if err != nil {
		return nil, err
	}
	h := history.New(opts.MaxHistory)
	b := &Board{
		surface:  s,
		history:  h,
		strokes:  stroke.NewController(s, h),
		settings: opts.Settings.Normalize(),
	}
	Logger().Debug("画板已创建", "width", opts.Width, "height", opts.Height)
	return b, nil
}

// HandleEvent 处理一个指针事件，返回画布是否发生变化
func (b *Board) HandleEvent(ev stroke.Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ev.Kind == stroke.Begin {
		metrics.StrokesTotal.WithLabelValues(b.settings.Normalize().Tool.String()).Inc()
		Logger().Debug("开始笔画", "tool", b.settings.Tool, "x", ev.X, "y", ev.Y)
	}
	changed := b.strokes.Handle(ev, b.settings)
	if changed {
		b.version++
	}
	return changed
}

// Settings 当前工具设置
func (b *Board) Settings() stroke.Settings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings
}

// SetSettings 替换工具设置。进行中的笔画只会受到 Fill 变化的影响。
func (b *Board) SetSettings(st stroke.Settings) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.settings = st.Normalize()
}

// SetTool 切换工具
func (b *Board) SetTool(t shape.Tool) {
	b.update(func(st *stroke.Settings) { st.Tool = t })
}

// SetColor 设置颜色
func (b *Board) SetColor(c color.RGBA) {
	b.update(func(st *stroke.Settings) { st.Color = c })
}

// SetWidth 设置线宽
func (b *Board) SetWidth(w int) {
	b.update(func(st *stroke.Settings) { st.Width = w })
}

// SetFill 设置是否填充
func (b *Board) SetFill(fill bool) {
	b.update(func(st *stroke.Settings) { st.Fill = fill })
}

func (b *Board) update(fn func(*stroke.Settings)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.settings)
	b.settings = b.settings.Normalize()
}

// Undo 撤销，撤销栈为空时静默返回 false
func (b *Board) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.strokes.End()
	ok := b.history.Undo(b.surface)
	b.touch(ok)
	metrics.HistoryOpsTotal.WithLabelValues("undo", metrics.BoolLabel(ok)).Inc()
	return ok
}

// Redo 重做，重做栈为空时静默返回 false
func (b *Board) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.strokes.End()
	ok := b.history.Redo(b.surface)
	b.touch(ok)
	metrics.HistoryOpsTotal.WithLabelValues("redo", metrics.BoolLabel(ok)).Inc()
	return ok
}

// Clear 清空画布。清空会记入历史，可以撤销。
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.strokes.End()
	b.history.Record(b.surface)
	b.surface.Clear()
	b.touch(true)
	metrics.HistoryOpsTotal.WithLabelValues("clear", "true").Inc()
	Logger().Debug("画布已清空")
}

// Resize 调整画布尺寸并保留已有内容；尺寸非法时不做任何修改
func (b *Board) Resize(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.surface.Resize(width, height); err != nil {
		Logger().Warn("忽略非法的画布尺寸", "width", width, "height", height)
		return err
	}
	b.touch(true)
	return nil
}

// Image 当前画布像素的副本
func (b *Board) Image() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Image()
}

// Snapshot 当前画布快照
func (b *Board) Snapshot() surface.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Snapshot()
}

// At 读取单个像素
func (b *Board) At(x, y int) color.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.At(x, y)
}

// Version 每次画布变化递增，用于判断是否需要推送新帧
func (b *Board) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

// Info 返回状态摘要
func (b *Board) Info() Info {
	b.mu.Lock()
	defer b.mu.Unlock()
	undo, redo := b.history.Depth()
	return Info{
		Width:       b.surface.Width(),
		Height:      b.surface.Height(),
		Undo:        undo,
		Redo:        redo,
		Drawing:     b.strokes.Active(),
		Version:     b.version,
		Tool:        b.settings.Tool.String(),
		Color:       shape.FormatColor(b.settings.Color),
		StrokeWidth: b.settings.Width,
		Fill:        b.settings.Fill,
	}
}

// Export 将当前画布编码写入 w，返回写入的字节数
func (b *Board) Export(w io.Writer, f export.Format, quality int) (int64, error) {
	img := b.Image()

	var buf bytes.Buffer
	if err := export.Encode(&buf, img, f, quality); err != nil {
		return 0, err
	}
	n, err := buf.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("写入导出数据失败: %w", err)
	}
	metrics.ExportsTotal.WithLabelValues(f.String()).Inc()
	metrics.ExportBytes.Observe(float64(n))
	Logger().Info("画布已导出", "format", f, "bytes", n)
	return n, nil
}

func (b *Board) touch(changed bool) {
	if changed {
		b.version++
	}
}
