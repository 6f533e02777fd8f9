//go:build !windows

package notify

import "log/slog"

// LogNotifier 没有系统通知时写入日志
type LogNotifier struct {
	log *slog.Logger
}

// NewNotifier 创建通知器
func NewNotifier() Notifier {
	return &LogNotifier{log: slog.Default()}
}

// Show 以 info 级别记录通知内容
func (n *LogNotifier) Show(title, message string) error {
	n.log.Info(title, "message", message)
	return nil
}
