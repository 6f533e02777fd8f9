package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported 当前平台不支持全局热键
var ErrUnsupported = errors.New("当前平台不支持全局热键")

// Binding 一个快捷键组合，如 ctrl+z
type Binding struct {
	Modifiers []string // ctrl, alt, shift, win
	Key       string   // 主键，小写，如 z, 1, f5, space
}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"shift":   "shift",
	"win":     "win",
	"cmd":     "win",
	"command": "win",
	"super":   "win",
}

var namedKeys = map[string]string{
	"space":  "space",
	"return": "enter",
	"enter":  "enter",
	"escape": "esc",
	"esc":    "esc",
	"tab":    "tab",
	"delete": "delete",
	"del":    "delete",
	"up":     "up",
	"down":   "down",
	"left":   "left",
	"right":  "right",
}

// ParseBinding 解析 "ctrl+shift+z" 形式的快捷键字符串
func ParseBinding(s string) (Binding, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return Binding{}, fmt.Errorf("快捷键至少需要一个修饰键: %q", s)
	}

	var b Binding
	seen := map[string]bool{}
	for _, p := range parts[:len(parts)-1] {
		mod, ok := modifierAliases[strings.TrimSpace(p)]
		if !ok {
			return Binding{}, fmt.Errorf("未知修饰键 %q: %q", p, s)
		}
		if !seen[mod] {
			seen[mod] = true
			b.Modifiers = append(b.Modifiers, mod)
		}
	}

	key, err := normalizeKey(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return Binding{}, fmt.Errorf("%w: %q", err, s)
	}
	b.Key = key
	return b, nil
}

func normalizeKey(key string) (string, error) {
	if len(key) == 1 && (key[0] >= 'a' && key[0] <= 'z' || key[0] >= '0' && key[0] <= '9') {
		return key, nil
	}
	if name, ok := namedKeys[key]; ok {
		return name, nil
	}
	var n int
	if _, err := fmt.Sscanf(key, "f%d", &n); err == nil && n >= 1 && n <= 12 && key == fmt.Sprintf("f%d", n) {
		return key, nil
	}
	return "", fmt.Errorf("未知按键 %q", key)
}

// String 快捷键的字符串表示
func (b Binding) String() string {
	if len(b.Modifiers) == 0 {
		return b.Key
	}
	return strings.Join(b.Modifiers, "+") + "+" + b.Key
}

// Label 菜单中显示的文本，如 Ctrl+Z
func (b Binding) Label() string {
	parts := make([]string, 0, len(b.Modifiers)+1)
	for _, m := range b.Modifiers {
		parts = append(parts, strings.ToUpper(m[:1])+m[1:])
	}
	parts = append(parts, strings.ToUpper(b.Key[:1])+b.Key[1:])
	return strings.Join(parts, "+")
}

// GetSupportedModifiers 获取支持的修饰键列表
func GetSupportedModifiers() []string {
	return []string{"ctrl", "alt", "shift", "win"}
}

// GetSupportedKeys 获取支持的主键列表
func GetSupportedKeys() []string {
	keys := []string{}

	for c := 'a'; c <= 'z'; c++ {
		keys = append(keys, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		keys = append(keys, string(c))
	}
	for i := 1; i <= 12; i++ {
		keys = append(keys, fmt.Sprintf("f%d", i))
	}
	return append(keys, "space", "enter", "esc", "tab", "delete", "up", "down", "left", "right")
}
