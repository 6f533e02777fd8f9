package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sketchpad/internal/export"
	"sketchpad/internal/script"
)

var (
	renderOutput  string
	renderFormat  string
	renderQuality int
)

var renderCmd = &cobra.Command{
	Use:   "render <script>",
	Short: "回放事件脚本并导出图片",
	Long: `读取 YAML 或 JSON 事件脚本，在新画板上依次执行后导出。
未指定 -o 时按时间戳命名并保存在当前目录；未指定 --format 时按输出文件扩展名推断。`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "输出文件，- 表示标准输出")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "导出格式: png, jpg, bmp, pdf")
	renderCmd.Flags().IntVarP(&renderQuality, "quality", "q", export.DefaultQuality, "jpg 质量 1-100")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := script.Load(args[0])
	if err != nil {
		return err
	}
	b, err := s.NewBoard(cfg.History.MaxDepth)
	if err != nil {
		return err
	}
	if err := script.Run(b, s); err != nil {
		return err
	}

	name := renderFormat
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(renderOutput), ".")
	}
	f, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	if renderOutput == "-" {
		_, err := b.Export(cmd.OutOrStdout(), f, renderQuality)
		return err
	}
	out := renderOutput
	if out == "" {
		out = export.Filename(time.Now(), f)
	}

	file, err := os.Create(out)
	if err != nil {
		return err
	}
	if _, err := b.Export(file, f, renderQuality); err != nil {
		file.Close()
		os.Remove(out)
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
