// Package script 回放录制的输入事件序列，用于离线渲染和回归测试
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"sketchpad/internal/board"
	"sketchpad/internal/shape"
	"sketchpad/internal/stroke"
)

// Op 步骤类型
type Op string

const (
	OpBegin  Op = "begin"
	OpMove   Op = "move"
	OpEnd    Op = "end"
	OpUndo   Op = "undo"
	OpRedo   Op = "redo"
	OpClear  Op = "clear"
	OpResize Op = "resize"
	OpTool   Op = "tool"
)

// Step 一个回放步骤。
// begin/move/end 使用 X、Y；resize 使用 Width、Height；
// tool 只修改给出的字段（Width 为线宽）。
type Step struct {
	Op     Op     `yaml:"op" json:"op" validate:"oneof=begin move end undo redo clear resize tool"`
	X      int    `yaml:"x,omitempty" json:"x,omitempty"`
	Y      int    `yaml:"y,omitempty" json:"y,omitempty"`
	Tool   string `yaml:"tool,omitempty" json:"tool,omitempty" validate:"omitempty,oneof=brush pencil eraser rectangle circle triangle square hexagon pentagon line arrow"`
	Color  string `yaml:"color,omitempty" json:"color,omitempty" validate:"omitempty,hexcolor"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty" validate:"min=0"`
	Height int    `yaml:"height,omitempty" json:"height,omitempty" validate:"min=0"`
	Fill   *bool  `yaml:"fill,omitempty" json:"fill,omitempty"`
}

// Script 画布尺寸加步骤列表
type Script struct {
	Width      int    `yaml:"width" json:"width" validate:"min=1,max=8192"`
	Height     int    `yaml:"height" json:"height" validate:"min=1,max=8192"`
	Background string `yaml:"background,omitempty" json:"background,omitempty" validate:"omitempty,hexcolor"`
	Steps      []Step `yaml:"steps" json:"steps" validate:"dive"`
}

var validate = validator.New()

// Decode 读取 YAML 或 JSON 格式的脚本并校验
func Decode(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("脚本为空")
		}
		return nil, fmt.Errorf("解析脚本失败: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("脚本校验失败: %w", err)
	}
	return &s, nil
}

// Load 从文件读取脚本
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// NewBoard 按脚本中的尺寸和背景色创建画板
func (s *Script) NewBoard(maxHistory int) (*board.Board, error) {
	opts := board.DefaultOptions()
	opts.Width, opts.Height = s.Width, s.Height
	opts.MaxHistory = maxHistory
	if s.Background != "" {
		bg, err := shape.ParseColor(s.Background)
		if err != nil {
			return nil, err
		}
		opts.Background = bg
	}
	return board.New(opts)
}

// Run 依次在画板上执行所有步骤，出错时返回出错步骤的序号
func Run(b *board.Board, s *Script) error {
	for i, st := range s.Steps {
		if err := apply(b, st); err != nil {
			return fmt.Errorf("步骤 %d (%s): %w", i, st.Op, err)
		}
	}
	return nil
}

func apply(b *board.Board, st Step) error {
	switch st.Op {
	case OpBegin:
		b.HandleEvent(stroke.At(stroke.Begin, st.X, st.Y))
	case OpMove:
		b.HandleEvent(stroke.At(stroke.Move, st.X, st.Y))
	case OpEnd:
		b.HandleEvent(stroke.At(stroke.End, st.X, st.Y))
	case OpUndo:
		b.Undo()
	case OpRedo:
		b.Redo()
	case OpClear:
		b.Clear()
	case OpResize:
		if err := b.Resize(st.Width, st.Height); err != nil {
			return err
		}
	case OpTool:
		return applyTool(b, st)
	default:
		return fmt.Errorf("未知操作 %q", st.Op)
	}
	return nil
}

func applyTool(b *board.Board, st Step) error {
	settings := b.Settings()
	if st.Tool != "" {
		t, err := shape.ParseTool(st.Tool)
		if err != nil {
			return err
		}
		settings.Tool = t
	}
	if st.Color != "" {
		c, err := shape.ParseColor(st.Color)
		if err != nil {
			return err
		}
		settings.Color = c
	}
	if st.Width > 0 {
		settings.Width = st.Width
	}
	if st.Fill != nil {
		settings.Fill = *st.Fill
	}
	b.SetSettings(settings)
	return nil
}
