package renderer

import (
	"fmt"
	"image"

	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/protocol"
)

// ImageLoader 读取并解码图片。width/height 大于 0 时缩放到该尺寸，只给一边时保持比例。
type ImageLoader interface {
	Load(path string, width, height int) (image.Image, error)
}

// ImageRenderer 渲染单个图片元素。
type ImageRenderer struct {
	loader ImageLoader
}

// NewImageRenderer 创建图片渲染器。
func NewImageRenderer(loader ImageLoader) *ImageRenderer {
	return &ImageRenderer{loader: loader}
}

// Render 加载图片并在锚点变换后绘制到 (x, y)。
func (r *ImageRenderer) Render(s Surface, el *protocol.ImageElement) error {
	if el.Path == "" {
		return fmt.Errorf("图片 %s 缺少 path", el.ID)
	}
	img, err := r.loader.Load(el.Path, el.Width, el.Height)
	if err != nil {
		return fmt.Errorf("加载图片 %s 失败: %w", el.Path, err)
	}
	w, h := float64(el.Width), float64(el.Height)
	b := img.Bounds()
	if w <= 0 {
		w = float64(b.Dx())
	}
	if h <= 0 {
		h = float64(b.Dy())
	}

	defer scoped(s)()
	s.Concat(layout.Anchor(el.Transform))
	s.DrawImage(img, el.Transform.X, el.Transform.Y, w, h, el.Transform.Opacity)
	return nil
}
