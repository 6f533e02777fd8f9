//go:build !windows

package clipboard

type unsupported struct{}

// NewClipboard 创建剪贴板实例，非 Windows 平台的操作都返回 ErrUnsupported
func NewClipboard() Clipboard {
	return unsupported{}
}

func (unsupported) SetText(string) error      { return ErrUnsupported }
func (unsupported) GetText() (string, error) { return "", ErrUnsupported }
