//go:build windows

package hotkey

import (
	"fmt"
	"os/exec"
	"strings"
)

// PromptBinding 弹出输入框让用户输入新的快捷键，取消或输入无效时 ok 为 false。
// 使用 PowerShell InputBox，避免 Windows GUI 线程问题。
func PromptBinding(title, current string) (b Binding, ok bool, err error) {
	script := fmt.Sprintf(`
Add-Type -AssemblyName Microsoft.VisualBasic
$msg = "请输入新的快捷键组合" + [char]10 + [char]10 + "格式: 修饰键+主键" + [char]10 + "示例: ctrl+alt+z, ctrl+shift+s" + [char]10 + [char]10 + "支持的修饰键: ctrl, alt, shift, win" + [char]10 + "支持的主键: a-z, 0-9, f1-f12"
$result = [Microsoft.VisualBasic.Interaction]::InputBox($msg, "%s", "%s")
Write-Output $result
`, psQuote(title), psQuote(current))

	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	output, err := cmd.Output()
	if err != nil {
		return Binding{}, false, fmt.Errorf("PowerShell 执行失败: %w", err)
	}

	input := strings.TrimSpace(string(output))
	if input == "" {
		return Binding{}, false, nil
	}

	b, err = ParseBinding(input)
	if err != nil {
		return Binding{}, false, err
	}
	return b, true, nil
}

// psQuote 转义双引号字符串中的特殊字符
func psQuote(s string) string {
	return strings.NewReplacer("`", "``", `"`, "`\"", "$", "`$").Replace(s)
}
