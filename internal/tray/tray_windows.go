//go:build windows

package tray

import (
	"github.com/getlantern/systray"
)

// Tray 系统托盘
type Tray struct {
	actions Actions
	labels  Labels
}

// NewTray 创建系统托盘
func NewTray(actions Actions, labels Labels) *Tray {
	return &Tray{actions: actions, labels: labels}
}

// Run 运行系统托盘（阻塞直到退出）
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit 关闭托盘，使 Run 返回
func (t *Tray) Quit() {
	systray.Quit()
}

type menuItem struct {
	item *systray.MenuItem
	fn   func()
}

func (t *Tray) onReady() {
	systray.SetIcon(getIcon())
	systray.SetTitle("Sketchpad")
	systray.SetTooltip("Sketchpad - 画板")

	var items []menuItem
	add := func(name, text, tip string, fn func()) {
		if fn == nil {
			return
		}
		items = append(items, menuItem{systray.AddMenuItem(t.labels.title(name, text), tip), fn})
	}

	add("undo", "撤销", "撤销上一笔", t.actions.Undo)
	add("redo", "重做", "重做被撤销的一笔", t.actions.Redo)
	add("clear", "清空", "清空画布", t.actions.Clear)
	systray.AddSeparator()
	add("export", "导出", "保存画布到导出目录", t.actions.Export)
	add("", "打开导出目录", "打开图片保存位置", t.actions.OpenDir)
	add("", "设置导出快捷键...", "修改导出使用的全局快捷键", t.actions.Hotkeys)
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("退出", "退出程序")

	for _, it := range items {
		go func(it menuItem) {
			for range it.item.ClickedCh {
				it.fn()
			}
		}(it)
	}

	go func() {
		<-mQuit.ClickedCh
		if t.actions.Quit != nil {
			t.actions.Quit()
		}
		systray.Quit()
	}()
}

func (t *Tray) onExit() {}
