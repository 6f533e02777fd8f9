package notify

// Notifier 通知接口
type Notifier interface {
	Show(title, message string) error
}

// Nop 不显示任何通知，用于关闭了通知选项的情况
type Nop struct{}

// Show 无操作
func (Nop) Show(string, string) error { return nil }
