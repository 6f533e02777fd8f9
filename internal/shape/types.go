package shape

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Tool 绘图工具类型
type Tool int

const (
	ToolBrush     Tool = iota // 画刷
	ToolPencil                // 铅笔
	ToolEraser                // 橡皮擦
	ToolRectangle             // 矩形
	ToolCircle                // 圆形
	ToolTriangle              // 三角形
	ToolSquare                // 正方形
	ToolHexagon               // 六边形
	ToolPentagon              // 五边形
	ToolLine                  // 直线
	ToolArrow                 // 箭头
	ToolCount                 // 工具总数（用于遍历）
)

// toolNames 工具标识符，与界面层按钮 id 一致
var toolNames = [ToolCount]string{
	ToolBrush:     "brush",
	ToolPencil:    "pencil",
	ToolEraser:    "eraser",
	ToolRectangle: "rectangle",
	ToolCircle:    "circle",
	ToolTriangle:  "triangle",
	ToolSquare:    "square",
	ToolHexagon:   "hexagon",
	ToolPentagon:  "pentagon",
	ToolLine:      "line",
	ToolArrow:     "arrow",
}

func (t Tool) String() string {
	if t < 0 || t >= ToolCount {
		return fmt.Sprintf("tool(%d)", int(t))
	}
	return toolNames[t]
}

// Valid 是否为已知工具
func (t Tool) Valid() bool { return t >= 0 && t < ToolCount }

// Freehand 是否为自由绘制类工具（增量追加线段，不从快照重绘）
func (t Tool) Freehand() bool {
	return t == ToolBrush || t == ToolPencil || t == ToolEraser
}

// ParseTool 按名称解析工具
func ParseTool(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("未知工具: %q", name)
}

// MarshalText 实现 encoding.TextMarshaler
func (t Tool) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("未知工具: %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (t *Tool) UnmarshalText(b []byte) error {
	v, err := ParseTool(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Style 单次绘制使用的样式
type Style struct {
	Color color.RGBA // 颜色
	Width int        // 线宽
	Fill  bool       // 是否填充（仅形状工具）
}

// DefaultColors 预设颜色面板
var DefaultColors = []color.RGBA{
	{255, 255, 255, 255}, // 白色
	{0, 0, 0, 255},       // 黑色
	{230, 126, 34, 255},  // 橙色
	{41, 128, 185, 255},  // 蓝色
	{39, 174, 96, 255},   // 绿色
	{192, 57, 43, 255},   // 红色
}

// DefaultWidth 默认线宽
const DefaultWidth = 5

// MaxWidth 线宽上限（与界面滑块一致）
const MaxWidth = 30

// ParseColor 解析 #rrggbb 或 #rgb 形式的颜色
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("无效颜色 %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("无效颜色 %q: %w", s, err)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}

// FormatColor 将颜色格式化为 #rrggbb
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
