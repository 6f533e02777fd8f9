//go:build !windows

package hotkey

import "log/slog"

// Manager 非 Windows 平台的占位实现，注册总是返回 ErrUnsupported
type Manager struct {
	log *slog.Logger
}

// NewManager 创建热键管理器
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{log: log}
}

// Register 返回 ErrUnsupported
func (m *Manager) Register(b Binding, fn func()) error {
	m.log.Debug("跳过热键注册", "binding", b.String())
	return ErrUnsupported
}

// UnregisterAll 无操作
func (m *Manager) UnregisterAll() {}

// Run 直接在当前 goroutine 中执行 fn
func Run(fn func()) {
	fn()
}

// PromptBinding 返回 ErrUnsupported
func PromptBinding(title, current string) (Binding, bool, error) {
	return Binding{}, false, ErrUnsupported
}
