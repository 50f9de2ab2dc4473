package renderer

import (
	"image"
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/poster/layout"
)

// PaintStyle 区分填充与描边。
type PaintStyle int

const (
	Fill PaintStyle = iota
	Stroke
)

// Paint 是一次绘制使用的颜色与样式。
type Paint struct {
	Color       color.NRGBA
	Style       PaintStyle
	StrokeWidth float64
}

// Surface 是可变的绘制表面。坐标以像素为单位，原点在左上角，y 轴向下。
type Surface interface {
	Size() (width, height int)
	Clear(c color.NRGBA)

	// Save/Restore 保存与恢复变换状态，必须成对出现，使用 scoped。
	Save()
	Restore()
	// Concat 把 m 右乘到当前变换上。
	Concat(m canvas.Matrix)

	// DrawText 以 (x, y) 为基线起点绘制一行文本。
	DrawText(face layout.Face, text string, x, y float64, p Paint) error
	// DrawParagraph 以 (x, y) 为左上角绘制段落。p 为空时使用各片段自身的填充色。
	DrawParagraph(para layout.Paragraph, x, y float64, p *Paint) error
	DrawRect(x, y, w, h float64, p Paint)
	DrawImage(img image.Image, x, y, w, h, opacity float64)

	// BeginLayer 之后的绘制会合成为一个整体，在 EndLayer 时按 opacity 叠加。
	BeginLayer(opacity float64)
	EndLayer()

	Snapshot() (image.Image, error)
}

// scoped 保存状态并返回恢复函数，配合 defer 使用，任何退出路径都会恢复：
//
//	defer scoped(s)()
func scoped(s Surface) func() {
	s.Save()
	return s.Restore
}

// layered 在 opacity < 1 时开启透明图层，返回关闭函数。
func layered(s Surface, opacity float64) func() {
	if opacity >= 1 {
		return func() {}
	}
	s.BeginLayer(opacity)
	return s.EndLayer
}
