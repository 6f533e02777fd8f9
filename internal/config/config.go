package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"sketchpad/internal/hotkey"
	"sketchpad/internal/shape"
)

// ErrInvalid 配置校验失败
var ErrInvalid = errors.New("配置无效")

// Canvas 画布配置
type Canvas struct {
	Width      int    `yaml:"width" validate:"min=1,max=8192"`
	Height     int    `yaml:"height" validate:"min=1,max=8192"`
	Background string `yaml:"background" validate:"color"`
}

// Tool 初始工具配置
type Tool struct {
	Name  string `yaml:"name" validate:"tool"`
	Color string `yaml:"color" validate:"color"`
	Width int    `yaml:"width" validate:"min=1,max=30"`
	Fill  bool   `yaml:"fill"`
}

// History 历史记录配置
type History struct {
	MaxDepth int `yaml:"maxDepth" validate:"min=0"` // 0 表示不限制
}

// Storage 存储配置
type Storage struct {
	Directory string `yaml:"directory" validate:"required,excludes=.."` // 保存目录
	Format    string `yaml:"format" validate:"oneof=png jpg jpeg bmp pdf"`
	Quality   int    `yaml:"quality" validate:"min=1,max=100"` // jpg质量 1-100
}

// Server 服务配置
type Server struct {
	Addr       string        `yaml:"addr" validate:"required,hostname_port"`
	PreviewFPS int           `yaml:"previewFPS" validate:"min=1,max=120"` // 拖动时预览帧率上限
	ClearFade  time.Duration `yaml:"clearFade" validate:"min=0,max=5s"`  // 清空动画时长，由前端播放
}

// Behavior 行为配置
type Behavior struct {
	ShowNotification bool `yaml:"showNotification"` // 导出后显示通知
}

// Hotkeys 全局快捷键
type Hotkeys struct {
	Undo   string `yaml:"undo" validate:"hotkey"`
	Redo   string `yaml:"redo" validate:"hotkey"`
	Clear  string `yaml:"clear" validate:"hotkey"`
	Export string `yaml:"export" validate:"hotkey"`
}

// Log 日志配置
type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Config 主配置结构
type Config struct {
	Canvas   Canvas   `yaml:"canvas"`
	Tool     Tool     `yaml:"tool"`
	History  History  `yaml:"history"`
	Storage  Storage  `yaml:"storage"`
	Server   Server   `yaml:"server"`
	Behavior Behavior `yaml:"behavior"`
	Hotkeys  Hotkeys  `yaml:"hotkeys"`
	Log      Log      `yaml:"log"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		_, err := shape.ParseColor(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("tool", func(fl validator.FieldLevel) bool {
		_, err := shape.ParseTool(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("hotkey", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := hotkey.ParseBinding(s)
		return err == nil
	})
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Canvas: Canvas{
			Width:      800,
			Height:     600,
			Background: "#ffffff",
		},
		Tool: Tool{
			Name:  "brush",
			Color: "#000000",
			Width: shape.DefaultWidth,
		},
		History: History{MaxDepth: 100},
		Storage: Storage{
			Directory: defaultStorageDir(),
			Format:    "png",
			Quality:   90,
		},
		Server: Server{
			Addr:       "127.0.0.1:8080",
			PreviewFPS: 30,
			ClearFade:  300 * time.Millisecond,
		},
		Behavior: Behavior{ShowNotification: true},
		Hotkeys: Hotkeys{
			Undo:   "ctrl+alt+z",
			Redo:   "ctrl+alt+y",
			Clear:  "ctrl+alt+c",
			Export: "ctrl+alt+s",
		},
		Log: Log{Level: "info"},
	}
}

func defaultStorageDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "sketches"
	}
	return filepath.Join(homeDir, "Pictures", "sketchpad")
}

// GetConfigPath 获取配置文件路径
func GetConfigPath() string {
	var configDir string

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, "AppData", "Roaming")
		}
	} else if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = xdg
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "sketchpad", "config.yaml")
}

// Load 加载配置，path 为空时使用默认路径。
// 文件不存在时写入并返回默认配置；非法字段回退为默认值。
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		_ = cfg.Save(path)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("读取配置失败: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("解析配置失败 %s: %w", path, err)
	}

	cfg.Validate()
	return cfg, nil
}

// Check 校验配置，返回包含全部非法字段的错误
func (c *Config) Check() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(fields, ", "))
}

// Validate 验证并修正配置值，返回被重置为默认值的字段
func (c *Config) Validate() []string {
	c.Storage.Format = strings.ToLower(c.Storage.Format)
	c.Log.Level = strings.ToLower(c.Log.Level)

	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	defaults := DefaultConfig()
	var reset []string
	for _, fe := range verrs {
		if fix, ok := resetters[fe.StructNamespace()]; ok {
			fix(c, defaults)
			reset = append(reset, fe.StructNamespace())
		}
	}
	return reset
}

var resetters = map[string]func(c, d *Config){
	"Config.Canvas.Width":      func(c, d *Config) { c.Canvas.Width = d.Canvas.Width },
	"Config.Canvas.Height":     func(c, d *Config) { c.Canvas.Height = d.Canvas.Height },
	"Config.Canvas.Background": func(c, d *Config) { c.Canvas.Background = d.Canvas.Background },
	"Config.Tool.Name":         func(c, d *Config) { c.Tool.Name = d.Tool.Name },
	"Config.Tool.Color":        func(c, d *Config) { c.Tool.Color = d.Tool.Color },
	"Config.Tool.Width":        func(c, d *Config) { c.Tool.Width = d.Tool.Width },
	"Config.History.MaxDepth":  func(c, d *Config) { c.History.MaxDepth = d.History.MaxDepth },
	"Config.Storage.Directory": func(c, d *Config) { c.Storage.Directory = d.Storage.Directory },
	"Config.Storage.Format":    func(c, d *Config) { c.Storage.Format = d.Storage.Format },
	"Config.Storage.Quality":   func(c, d *Config) { c.Storage.Quality = d.Storage.Quality },
	"Config.Server.Addr":       func(c, d *Config) { c.Server.Addr = d.Server.Addr },
	"Config.Server.PreviewFPS": func(c, d *Config) { c.Server.PreviewFPS = d.Server.PreviewFPS },
	"Config.Server.ClearFade":  func(c, d *Config) { c.Server.ClearFade = d.Server.ClearFade },
	"Config.Hotkeys.Undo":      func(c, d *Config) { c.Hotkeys.Undo = d.Hotkeys.Undo },
	"Config.Hotkeys.Redo":      func(c, d *Config) { c.Hotkeys.Redo = d.Hotkeys.Redo },
	"Config.Hotkeys.Clear":     func(c, d *Config) { c.Hotkeys.Clear = d.Hotkeys.Clear },
	"Config.Hotkeys.Export":    func(c, d *Config) { c.Hotkeys.Export = d.Hotkeys.Export },
	"Config.Log.Level":         func(c, d *Config) { c.Log.Level = d.Log.Level },
}

// Save 保存配置
func (c *Config) Save(path string) error {
	if path == "" {
		path = GetConfigPath()
	}

	// 确保目录存在
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Bindings 已配置的快捷键，按命令名索引；空字符串表示不绑定
func (h Hotkeys) Bindings() map[string]hotkey.Binding {
	out := make(map[string]hotkey.Binding, 4)
	for name, s := range map[string]string{"undo": h.Undo, "redo": h.Redo, "clear": h.Clear, "export": h.Export} {
		if s == "" {
			continue
		}
		if b, err := hotkey.ParseBinding(s); err == nil {
			out[name] = b
		}
	}
	return out
}

// EnsureStorageDir 展开 ~ 并确保存储目录存在
func (c *Config) EnsureStorageDir() error {
	dir := c.Storage.Directory
	if len(dir) > 0 && dir[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, dir[1:])
	}
	c.Storage.Directory = dir

	return os.MkdirAll(dir, 0755)
}
