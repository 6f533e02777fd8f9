package clipboard

import "errors"

// ErrUnsupported 当前平台没有剪贴板实现
var ErrUnsupported = errors.New("当前平台不支持剪贴板")

// Clipboard 剪贴板接口
type Clipboard interface {
	SetText(text string) error
	GetText() (string, error)
}
