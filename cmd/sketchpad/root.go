package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sketchpad/internal/board"
	"sketchpad/internal/config"
	"sketchpad/internal/shape"
	"sketchpad/internal/stroke"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logVar = new(slog.LevelVar)
)

var rootCmd = &cobra.Command{
	Use:          "sketchpad",
	Short:        "画板绘图引擎：浏览器画板服务、离线渲染与桌面托盘",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认 "+config.GetConfigPath()+"）")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别: debug, info, warn, error（覆盖配置文件）")
}

// setup 加载配置并初始化日志
func setup() error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "加载配置失败，使用默认配置:", err)
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	if err := setLogLevel(level); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logVar}))
	slog.SetDefault(logger)
	board.SetLogger(logger)
	return nil
}

func setLogLevel(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("无效的日志级别 %q", level)
	}
	logVar.Set(l)
	return nil
}

// boardOptions 由配置生成画板参数
func boardOptions(c *config.Config) board.Options {
	opts := board.DefaultOptions()
	opts.Width = c.Canvas.Width
	opts.Height = c.Canvas.Height
	opts.MaxHistory = c.History.MaxDepth
	if bg, err := shape.ParseColor(c.Canvas.Background); err == nil {
		opts.Background = bg
	}

	st := stroke.DefaultSettings()
	if t, err := shape.ParseTool(c.Tool.Name); err == nil {
		st.Tool = t
	}
	if col, err := shape.ParseColor(c.Tool.Color); err == nil {
		st.Color = col
	}
	st.Width = c.Tool.Width
	st.Fill = c.Tool.Fill
	opts.Settings = st
	return opts
}
