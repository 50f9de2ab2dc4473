package canvasrenderer

import (
	"fmt"
	"image"
	_ "image/gif"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/poster/renderer"
)

// ImageLoader 从磁盘读取图片，按 EXIF 方向摆正后缩放到目标尺寸。
type ImageLoader struct {
	// BaseDir 非空时相对路径按它解析。
	BaseDir string
}

var _ renderer.ImageLoader = (*ImageLoader)(nil)

// Load 实现 renderer.ImageLoader。宽高都不大于 0 时保持原始尺寸，只给一边时按比例缩放。
func (l *ImageLoader) Load(path string, width, height int) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("图片路径为空")
	}
	if l.BaseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(l.BaseDir, path)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", path, err)
	}
	width, height = max(width, 0), max(height, 0)
	if width == 0 && height == 0 {
		return img, nil
	}
	b := img.Bounds()
	if width == b.Dx() && height == b.Dy() {
		return img, nil
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}
