package main

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchpad/internal/config"
	"sketchpad/internal/shape"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml"), "--log-level", "error"}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestRenderScript(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "line.yaml")
	doc := `
width: 50
height: 20
steps:
  - {op: tool, tool: line, color: "#00ff00", width: 4}
  - {op: begin, x: 5, y: 10}
  - {op: move, x: 45, y: 10}
  - {op: end, x: 45, y: 10}
`
	require.NoError(t, os.WriteFile(scriptPath, []byte(doc), 0644))
	out := filepath.Join(dir, "line.png")

	printed := execute(t, "render", scriptPath, "-o", out)
	assert.Equal(t, out, strings.TrimSpace(printed))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, color.RGBAModel.Convert(img.At(25, 10)))
}

func TestVersion(t *testing.T) {
	assert.Contains(t, execute(t, "version"), version)
}

func TestBoardOptionsFromConfig(t *testing.T) {
	c := config.DefaultConfig()
	c.Canvas.Width = 320
	c.Canvas.Background = "#000000"
	c.Tool.Name = "hexagon"
	c.Tool.Color = "#123456"
	c.Tool.Fill = true
	c.History.MaxDepth = 7

	opts := boardOptions(c)
	assert.Equal(t, 320, opts.Width)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, opts.Background)
	assert.Equal(t, shape.ToolHexagon, opts.Settings.Tool)
	assert.Equal(t, color.RGBA{0x12, 0x34, 0x56, 255}, opts.Settings.Color)
	assert.True(t, opts.Settings.Fill)
	assert.Equal(t, 7, opts.MaxHistory)
}
