//go:build windows

package clipboard

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	user32   = syscall.NewLazyDLL("user32.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	openClipboard    = user32.NewProc("OpenClipboard")
	closeClipboard   = user32.NewProc("CloseClipboard")
	emptyClipboard   = user32.NewProc("EmptyClipboard")
	setClipboardData = user32.NewProc("SetClipboardData")
	getClipboardData = user32.NewProc("GetClipboardData")

	globalAlloc  = kernel32.NewProc("GlobalAlloc")
	globalFree   = kernel32.NewProc("GlobalFree")
	globalLock   = kernel32.NewProc("GlobalLock")
	globalUnlock = kernel32.NewProc("GlobalUnlock")
)

const (
	cfUnicodeText = 13
	gmemMoveable  = 0x0002
)

// WindowsClipboard Windows 剪贴板实现，用于复制导出文件路径
type WindowsClipboard struct{}

// NewClipboard 创建剪贴板实例
func NewClipboard() Clipboard {
	return &WindowsClipboard{}
}

// withClipboard 打开剪贴板执行 fn，结束后关闭
func withClipboard(fn func() error) error {
	if ret, _, err := openClipboard.Call(0); ret == 0 {
		return fmt.Errorf("打开剪贴板失败: %w", err)
	}
	defer closeClipboard.Call()
	return fn()
}

// SetText 设置剪贴板文本
func (c *WindowsClipboard) SetText(text string) error {
	utf16, err := syscall.UTF16FromString(text)
	if err != nil {
		return err
	}
	size := uintptr(len(utf16) * 2)

	return withClipboard(func() error {
		emptyClipboard.Call()

		hMem, _, err := globalAlloc.Call(gmemMoveable, size)
		if hMem == 0 {
			return fmt.Errorf("分配内存失败: %w", err)
		}

		ptr, _, err := globalLock.Call(hMem)
		if ptr == 0 {
			globalFree.Call(hMem)
			return fmt.Errorf("锁定内存失败: %w", err)
		}
		dst := unsafe.Slice((*uint16)(unsafe.Pointer(ptr)), len(utf16))
		copy(dst, utf16)
		globalUnlock.Call(hMem)

		// 成功后内存归系统所有，不能再释放
		if ret, _, err := setClipboardData.Call(cfUnicodeText, hMem); ret == 0 {
			globalFree.Call(hMem)
			return fmt.Errorf("写入剪贴板失败: %w", err)
		}
		return nil
	})
}

// GetText 获取剪贴板文本
func (c *WindowsClipboard) GetText() (string, error) {
	var text string
	err := withClipboard(func() error {
		hMem, _, _ := getClipboardData.Call(cfUnicodeText)
		if hMem == 0 {
			return nil
		}

		ptr, _, err := globalLock.Call(hMem)
		if ptr == 0 {
			return fmt.Errorf("锁定内存失败: %w", err)
		}
		defer globalUnlock.Call(hMem)

		var buf []uint16
		for p := ptr; ; p += 2 {
			ch := *(*uint16)(unsafe.Pointer(p))
			if ch == 0 {
				break
			}
			buf = append(buf, ch)
		}
		text = syscall.UTF16ToString(buf)
		return nil
	})
	return text, err
}
