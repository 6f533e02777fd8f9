package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"sketchpad/internal/board"
	"sketchpad/internal/clipboard"
	"sketchpad/internal/config"
	"sketchpad/internal/export"
	"sketchpad/internal/hotkey"
	"sketchpad/internal/notify"
	"sketchpad/internal/storage"
	"sketchpad/internal/tray"
)

// defaultBoardID 桌面模式下托盘和热键操作的画板
const defaultBoardID = "default"

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "启动画板服务，并提供托盘菜单和全局快捷键",
	Long: `在 serve 的基础上创建一块 ID 为 default 的画板，
托盘菜单和全局快捷键可以对它执行撤销、重做、清空和导出。
导出的文件保存到配置的存储目录，路径复制到剪贴板。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		// 使用 mainthread 确保热键在主线程运行
		hotkey.Run(func() { err = runDesktop(cmd.Context()) })
		return err
	},
}

func init() {
	desktopCmd.Flags().StringVar(&serveAddr, "addr", "", "监听地址（覆盖配置文件）")
	rootCmd.AddCommand(desktopCmd)
}

type desktop struct {
	board    *board.Board
	store    *storage.Storage
	clip     clipboard.Clipboard
	notifier notify.Notifier
	hotkeys  *hotkey.Manager

	mu  sync.Mutex
	cfg *config.Config
}

func runDesktop(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.EnsureStorageDir(); err != nil {
		slog.Warn("无法创建存储目录", "dir", cfg.Storage.Directory, "error", err)
	}
	format, err := export.ParseFormat(cfg.Storage.Format)
	if err != nil {
		return err
	}

	b, err := board.New(boardOptions(cfg))
	if err != nil {
		return err
	}
	reg := board.NewRegistry()
	reg.Put(defaultBoardID, b)

	d := &desktop{
		board:    b,
		store:    storage.NewStorage(cfg.Storage.Directory, format, cfg.Storage.Quality),
		clip:     clipboard.NewClipboard(),
		notifier: notify.NewNotifier(),
		hotkeys:  hotkey.NewManager(slog.Default()),
		cfg:      cfg,
	}
	if !cfg.Behavior.ShowNotification {
		d.notifier = notify.Nop{}
	}

	labels := d.registerHotkeys()
	defer d.hotkeys.UnregisterAll()

	t := tray.NewTray(tray.Actions{
		Undo:    func() { b.Undo() },
		Redo:    func() { b.Redo() },
		Clear:   b.Clear,
		Export:  d.export,
		OpenDir: d.openDir,
		Hotkeys: d.changeExportHotkey,
		Quit:    stop,
	}, labels)

	srv := newServer(reg)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx)
		t.Quit()
	}()
	go watchConfig(ctx)
	go func() {
		<-ctx.Done()
		t.Quit()
	}()

	slog.Info("Sketchpad 已启动", "board", defaultBoardID, "storage", d.store.GetDirectory())

	// 运行托盘（阻塞）
	t.Run()
	stop()
	return <-errCh
}

// registerHotkeys 注册配置中的全局快捷键，返回托盘菜单显示的文本
func (d *desktop) registerHotkeys() tray.Labels {
	actions := map[string]func(){
		"undo":   func() { d.board.Undo() },
		"redo":   func() { d.board.Redo() },
		"clear":  d.board.Clear,
		"export": d.export,
	}

	d.mu.Lock()
	bindings := d.cfg.Hotkeys.Bindings()
	d.mu.Unlock()

	labels := tray.Labels{}
	for name, binding := range bindings {
		err := d.hotkeys.Register(binding, actions[name])
		if errors.Is(err, hotkey.ErrUnsupported) {
			slog.Info("当前平台不支持全局快捷键")
			return labels
		}
		if err != nil {
			slog.Warn("注册热键失败，请检查快捷键是否被其他程序占用", "command", name, "binding", binding.String(), "error", err)
			continue
		}
		labels[name] = binding.Label()
	}
	return labels
}

// export 保存画布并把路径复制到剪贴板
func (d *desktop) export() {
	path, err := d.store.Save(d.board.Image())
	if err != nil {
		slog.Error("导出失败", "error", err)
		d.notifier.Show("导出失败", err.Error())
		return
	}
	slog.Info("画布已保存", "path", path)

	if err := d.clip.SetText(path); err != nil && !errors.Is(err, clipboard.ErrUnsupported) {
		d.notifier.Show("复制失败", err.Error())
		return
	}
	d.notifier.Show("导出完成", path)
}

// changeExportHotkey 弹出输入框修改导出快捷键，保存配置并重新注册
func (d *desktop) changeExportHotkey() {
	d.mu.Lock()
	current := d.cfg.Hotkeys.Export
	d.mu.Unlock()

	binding, ok, err := hotkey.PromptBinding("设置导出快捷键", current)
	if err != nil {
		d.notifier.Show("设置快捷键失败", err.Error())
		return
	}
	if !ok {
		return
	}

	d.mu.Lock()
	d.cfg.Hotkeys.Export = binding.String()
	err = d.cfg.Save(configPath)
	d.mu.Unlock()
	if err != nil {
		slog.Warn("保存配置失败", "error", err)
	}

	d.hotkeys.UnregisterAll()
	d.registerHotkeys()
	d.notifier.Show("快捷键已更新", binding.Label())
}

func (d *desktop) openDir() {
	dir := d.store.GetDirectory()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer.exe", dir)
	case "darwin":
		cmd = exec.Command("open", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}

	if err := cmd.Start(); err != nil {
		slog.Warn("打开目录失败", "dir", dir, "error", err)
	}
}
