package storage

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sketchpad/internal/export"
)

// Storage 导出文件的保存目录管理
type Storage struct {
	directory string
	format    export.Format
	quality   int
	now       func() time.Time
}

// NewStorage 创建存储管理器
func NewStorage(directory string, format export.Format, quality int) *Storage {
	return &Storage{
		directory: expandHome(directory),
		format:    format,
		quality:   quality,
		now:       time.Now,
	}
}

func expandHome(dir string) string {
	if len(dir) > 0 && dir[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, dir[1:])
	}
	return dir
}

// SetDirectory 设置保存目录
func (s *Storage) SetDirectory(dir string) error {
	s.directory = expandHome(dir)
	return os.MkdirAll(s.directory, 0755)
}

// SetFormat 设置默认导出格式
func (s *Storage) SetFormat(f export.Format, quality int) {
	s.format = f
	s.quality = quality
}

// Save 以默认格式保存图片，返回文件路径
func (s *Storage) Save(img image.Image) (string, error) {
	return s.SaveAs(img, s.format)
}

// SaveAs 以指定格式保存图片，文件名为 sketch_时间戳.扩展名，同一秒内重复保存时追加序号
func (s *Storage) SaveAs(img image.Image, f export.Format) (string, error) {
	if err := os.MkdirAll(s.directory, 0755); err != nil {
		return "", fmt.Errorf("无法创建目录: %w", err)
	}

	name := export.Filename(s.now(), f)
	path, file, err := s.create(name)
	if err != nil {
		return "", err
	}

	if err := export.Encode(file, img, f, s.quality); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("无法保存图片: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("无法保存图片: %w", err)
	}
	return path, nil
}

// create 独占创建文件，名称冲突时依次尝试 name_1.ext、name_2.ext ...
func (s *Storage) create(name string) (string, *os.File, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 0; i < 100; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", base, i, ext)
		}
		path := filepath.Join(s.directory, candidate)
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return path, file, nil
		}
		if !os.IsExist(err) {
			return "", nil, fmt.Errorf("无法创建文件: %w", err)
		}
	}
	return "", nil, fmt.Errorf("无法创建文件: %s 已存在", name)
}

// Cleanup 删除早于 olderThan 的导出文件，返回删除数量。只处理 sketch_ 前缀的文件。
func (s *Storage) Cleanup(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-olderThan)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "sketch_") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.directory, entry.Name())); err != nil {
				slog.Warn("删除旧文件失败", "file", entry.Name(), "error", err)
				continue
			}
			removed++
		}
	}

	return removed, nil
}

// GetDirectory 获取保存目录
func (s *Storage) GetDirectory() string {
	return s.directory
}
