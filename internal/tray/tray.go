package tray

// Actions 托盘菜单回调，未设置的项不显示
type Actions struct {
	Undo    func()
	Redo    func()
	Clear   func()
	Export  func()
	OpenDir func()
	Hotkeys func() // 修改导出快捷键
	Quit    func()
}

// Labels 菜单项后显示的快捷键文本，按命令名索引
type Labels map[string]string

func (l Labels) title(name, text string) string {
	if k := l[name]; k != "" {
		return text + " (" + k + ")"
	}
	return text
}
