// Package server 为浏览器界面提供 HTTP 和 WebSocket 接口
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sketchpad/internal/board"
)

// Options 服务参数
type Options struct {
	Addr       string
	PreviewFPS int           // 拖动形状时预览帧的推送上限
	ClearFade  time.Duration // 清空时通知前端播放的淡出时长
	Defaults   board.Options // 新建画板的默认参数
	Logger     *slog.Logger
}

// Server HTTP 服务
type Server struct {
	opts   Options
	boards *board.Registry
	log    *slog.Logger
	engine *gin.Engine
}

// New 创建服务，boards 可与其他组件（托盘、热键）共享
func New(boards *board.Registry, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.PreviewFPS <= 0 {
		opts.PreviewFPS = 30
	}
	if opts.Defaults.Width == 0 || opts.Defaults.Height == 0 {
		opts.Defaults = board.DefaultOptions()
	}

	s := &Server{
		opts:   opts,
		boards: boards,
		log:    opts.Logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes(engine)
	s.engine = engine
	return s
}

// Handler 返回 http.Handler，便于测试或嵌入其他服务
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe 监听并服务，ctx 取消后优雅关闭
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP 服务已启动", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("HTTP 服务已停止")
	return nil
}

// requestLogger 用 slog 记录每个请求
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
