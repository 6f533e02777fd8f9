package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch 监听配置文件变化，每次写入后重新加载并调用 fn。阻塞直到 ctx 取消。
// 监听的是所在目录，编辑器以重命名方式保存时也能收到事件。
func Watch(ctx context.Context, path string, fn func(*Config)) error {
	if path == "" {
		path = GetConfigPath()
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建配置监听失败: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("监听配置目录失败: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				slog.Warn("重新加载配置失败", "path", path, "error", err)
				continue
			}
			slog.Info("配置已重新加载", "path", path)
			fn(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("配置监听错误", "error", err)
		}
	}
}
