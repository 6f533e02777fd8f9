package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
)

// Format 导出图片格式
type Format int

const (
	PNG Format = iota
	JPEG
	BMP
	PDF
)

// DefaultQuality 默认 jpg 质量
const DefaultQuality = 90

// ErrUnknownFormat 不支持的导出格式
var ErrUnknownFormat = errors.New("不支持的导出格式")

// ParseFormat 按名称或扩展名解析格式，可带前导点
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "png", "":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "pdf":
		return PDF, nil
	}
	return PNG, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	case PDF:
		return "pdf"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Ext 文件扩展名（不含点）
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return f.String()
}

// ContentType HTTP 下载使用的 MIME 类型
func (f Format) ContentType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case BMP:
		return "image/bmp"
	case PDF:
		return "application/pdf"
	}
	return "image/png"
}

// Filename 根据时间戳生成导出文件名
func Filename(t time.Time, f Format) string {
	return fmt.Sprintf("sketch_%s.%s", t.Format("20060102_150405"), f.Ext())
}

// Encode 将图片编码为指定格式写入 w
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case BMP:
		err = bmp.Encode(w, img)
	case PDF:
		err = encodePDF(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("编码 %s 失败: %w", f, err)
	}
	return nil
}

// encodePDF 生成单页 PDF，页面尺寸与画布一致（1 像素 = 1pt），内嵌 PNG 位图
func encodePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetCreator("sketchpad", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("sketch", opts, &buf)
	pdf.ImageOptions("sketch", 0, 0, wd, ht, false, opts, 0, "")

	return pdf.Output(w)
}
