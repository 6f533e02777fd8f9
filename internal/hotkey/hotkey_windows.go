//go:build windows

package hotkey

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
)

type registration struct {
	binding Binding
	hk      *hotkey.Hotkey
	fn      func()
}

// Manager 热键管理器，可同时注册多个快捷键
type Manager struct {
	mu   sync.Mutex
	regs []*registration
	log  *slog.Logger
}

// NewManager 创建热键管理器
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{log: log}
}

// parseModifiers 解析修饰键
func parseModifiers(mods []string) []hotkey.Modifier {
	var result []hotkey.Modifier
	for _, mod := range mods {
		switch mod {
		case "ctrl":
			result = append(result, hotkey.ModCtrl)
		case "alt":
			result = append(result, hotkey.ModAlt)
		case "shift":
			result = append(result, hotkey.ModShift)
		case "win":
			result = append(result, hotkey.ModWin)
		}
	}
	return result
}

// parseKey 解析主键，key 已由 ParseBinding 规范化
func parseKey(key string) (hotkey.Key, error) {
	if len(key) == 1 {
		return hotkey.Key(strings.ToUpper(key)[0]), nil
	}

	switch key {
	case "f1":
		return hotkey.KeyF1, nil
	case "f2":
		return hotkey.KeyF2, nil
	case "f3":
		return hotkey.KeyF3, nil
	case "f4":
		return hotkey.KeyF4, nil
	case "f5":
		return hotkey.KeyF5, nil
	case "f6":
		return hotkey.KeyF6, nil
	case "f7":
		return hotkey.KeyF7, nil
	case "f8":
		return hotkey.KeyF8, nil
	case "f9":
		return hotkey.KeyF9, nil
	case "f10":
		return hotkey.KeyF10, nil
	case "f11":
		return hotkey.KeyF11, nil
	case "f12":
		return hotkey.KeyF12, nil
	case "space":
		return hotkey.KeySpace, nil
	case "enter":
		return hotkey.KeyReturn, nil
	case "esc":
		return hotkey.KeyEscape, nil
	case "tab":
		return hotkey.KeyTab, nil
	case "delete":
		return hotkey.KeyDelete, nil
	case "up":
		return hotkey.KeyUp, nil
	case "down":
		return hotkey.KeyDown, nil
	case "left":
		return hotkey.KeyLeft, nil
	case "right":
		return hotkey.KeyRight, nil
	}
	return 0, fmt.Errorf("未知按键 %q", key)
}

// Register 注册热键并开始监听，按下时调用 fn
func (m *Manager) Register(b Binding, fn func()) error {
	k, err := parseKey(b.Key)
	if err != nil {
		return err
	}
	mods := parseModifiers(b.Modifiers)

	hk := hotkey.New(mods, k)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("无法注册热键 %s: %w", b, err)
	}
	m.log.Debug("注册热键", "binding", b.String(), "keyCode", fmt.Sprintf("0x%X", k))

	reg := &registration{binding: b, hk: hk, fn: fn}
	m.mu.Lock()
	m.regs = append(m.regs, reg)
	m.mu.Unlock()

	go func() {
		for range hk.Keydown() {
			if reg.fn != nil {
				reg.fn()
			}
		}
	}()
	return nil
}

// UnregisterAll 注销全部热键
func (m *Manager) UnregisterAll() {
	m.mu.Lock()
	regs := m.regs
	m.regs = nil
	m.mu.Unlock()

	for _, r := range regs {
		if err := r.hk.Unregister(); err != nil {
			m.log.Warn("注销热键失败", "binding", r.binding.String(), "error", err)
		}
	}
}

// Run 在主线程中运行（某些平台需要）
func Run(fn func()) {
	mainthread.Init(fn)
}
