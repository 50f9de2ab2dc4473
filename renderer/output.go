package renderer

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/poster/protocol"
)

// WriteImage 按输出配置编码图片并写入文件。
func WriteImage(img image.Image, cfg protocol.OutputConfig) error {
	return WriteFile(cfg.Filename, func(w io.Writer) error {
		return Encode(w, img, cfg)
	})
}

// WriteFile 创建文件并交给 write 写入，必要时创建输出目录。
func WriteFile(name string, write func(w io.Writer) error) error {
	if name == "" {
		return fmt.Errorf("输出文件名为空")
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("创建输出文件失败: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode 按格式编码。格式为 jpeg 时使用 Quality，其余一律 PNG。
func Encode(w io.Writer, img image.Image, cfg protocol.OutputConfig) error {
	format, opts := imaging.PNG, []imaging.EncodeOption(nil)
	if cfg.Format == "jpeg" || cfg.Format == "jpg" {
		quality := cfg.Quality
		if quality <= 0 || quality > 100 {
			quality = protocol.DefaultQuality
		}
		format = imaging.JPEG
		opts = append(opts, imaging.JPEGQuality(quality))
	}
	if err := imaging.Encode(w, img, format, opts...); err != nil {
		return fmt.Errorf("编码 %s 失败: %w", format, err)
	}
	return nil
}
