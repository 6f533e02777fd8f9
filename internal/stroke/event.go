package stroke

import (
	"fmt"
	"image"
	"strings"
)

// Kind 输入事件类型
type Kind int

const (
	Begin Kind = iota // 按下
	Move              // 移动
	End               // 抬起
)

var kindNames = [...]string{Begin: "begin", Move: "move", End: "end"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// kindAliases 平台原始事件名到三类事件的映射（鼠标、触摸、指针事件统一处理）
var kindAliases = map[string]Kind{
	"begin":       Begin,
	"down":        Begin,
	"mousedown":   Begin,
	"touchstart":  Begin,
	"pointerdown": Begin,
	"move":        Move,
	"mousemove":   Move,
	"touchmove":   Move,
	"pointermove": Move,
	"end":         End,
	"up":          End,
	"mouseup":     End,
	"touchend":    End,
	"pointerup":   End,
}

// ParseKind 解析事件类型名称
func ParseKind(name string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("未知事件类型: %q", name)
	}
	return k, nil
}

// Event 相对画布坐标的指针事件
type Event struct {
	Kind Kind
	X, Y int
}

// Point 事件坐标
func (e Event) Point() image.Point { return image.Point{X: e.X, Y: e.Y} }

// At 构造事件的便捷函数
func At(kind Kind, x, y int) Event { return Event{Kind: kind, X: x, Y: y} }
