package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"sketchpad/internal/board"
	"sketchpad/internal/config"
	"sketchpad/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP/WebSocket 画板服务",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := newServer(board.NewRegistry())
		go watchConfig(ctx)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "监听地址（覆盖配置文件）")
	rootCmd.AddCommand(serveCmd)
}

func newServer(reg *board.Registry) *server.Server {
	if logVar.Level() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	return server.New(reg, server.Options{
		Addr:       addr,
		PreviewFPS: cfg.Server.PreviewFPS,
		ClearFade:  cfg.Server.ClearFade,
		Defaults:   boardOptions(cfg),
		Logger:     slog.Default(),
	})
}

// watchConfig 配置文件变化时更新日志级别，其余配置在重启后生效
func watchConfig(ctx context.Context) {
	err := config.Watch(ctx, configPath, func(c *config.Config) {
		if logLevel != "" {
			return
		}
		if err := setLogLevel(c.Log.Level); err != nil {
			slog.Warn("忽略无效的日志级别", "level", c.Log.Level)
		}
	})
	if err != nil {
		slog.Warn("配置热加载不可用", "error", err)
	}
}
