//go:build !windows

package tray

import "sync"

// Tray 没有系统托盘的平台上的占位实现，Run 阻塞到 Quit 被调用
type Tray struct {
	actions Actions
	labels  Labels
	once    sync.Once
	done    chan struct{}
}

// NewTray 创建系统托盘
func NewTray(actions Actions, labels Labels) *Tray {
	return &Tray{actions: actions, labels: labels, done: make(chan struct{})}
}

// Run 阻塞直到 Quit
func (t *Tray) Run() {
	<-t.done
}

// Quit 使 Run 返回并调用退出回调
func (t *Tray) Quit() {
	t.once.Do(func() {
		if t.actions.Quit != nil {
			t.actions.Quit()
		}
		close(t.done)
	})
}
