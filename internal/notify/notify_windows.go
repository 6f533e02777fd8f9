//go:build windows

package notify

import (
	"log/slog"

	"github.com/go-toast/toast"
)

// WindowsNotifier Windows 通知中心实现
type WindowsNotifier struct {
	appID string
}

// NewNotifier 创建通知器
func NewNotifier() Notifier {
	return &WindowsNotifier{
		appID: "Sketchpad",
	}
}

// Show 显示通知（异步，不阻塞主流程）
func (n *WindowsNotifier) Show(title, message string) error {
	go func() {
		notification := toast.Notification{
			AppID:   n.appID,
			Title:   title,
			Message: message,
		}
		if err := notification.Push(); err != nil {
			slog.Warn("显示通知失败", "error", err)
		}
	}()
	return nil
}
