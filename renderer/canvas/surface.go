package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/renderer"
)

// resolution 把 1 mm 映射为 1 像素，画布单位即像素。
var resolution = canvas.DPMM(1)

// layer 是一层 canvas。透明图层在关闭时栅格化并合成回下一层。
type layer struct {
	c       *canvas.Canvas
	ctx     *canvas.Context
	opacity float64
}

// Surface 实现 renderer.Surface。canvas 使用 y 轴向上的坐标系，
// Surface 自己维护 y 轴向下的变换栈，每次绘制前把 flip·M 设为视图矩阵。
type Surface struct {
	w, h   int
	flip   canvas.Matrix
	matrix canvas.Matrix
	stack  []canvas.Matrix
	layers []*layer
}

var (
	_ renderer.Surface       = (*Surface)(nil)
	_ renderer.VectorSurface = (*Surface)(nil)
)

// NewSurface 创建 width×height 像素的表面。
func NewSurface(width, height int) *Surface {
	s := &Surface{
		w:      width,
		h:      height,
		flip:   canvas.Identity.Translate(0, float64(height)).Scale(1, -1),
		matrix: canvas.Identity,
	}
	s.layers = []*layer{s.newLayer(1)}
	return s
}

func (s *Surface) newLayer(opacity float64) *layer {
	c := canvas.New(float64(s.w), float64(s.h))
	return &layer{c: c, ctx: canvas.NewContext(c), opacity: opacity}
}

func (s *Surface) top() *layer { return s.layers[len(s.layers)-1] }

// ctx 返回当前层的绘制上下文，视图为 flip·M·extra。
func (s *Surface) ctx(extra canvas.Matrix) *canvas.Context {
	ctx := s.top().ctx
	ctx.SetView(s.flip.Mul(s.matrix).Mul(extra))
	return ctx
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Clear(c color.NRGBA) {
	ctx := s.top().ctx
	ctx.ResetView()
	ctx.SetFillColor(c)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(float64(s.w), float64(s.h)))
}

func (s *Surface) Save() { s.stack = append(s.stack, s.matrix) }

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.matrix = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) Concat(m canvas.Matrix) { s.matrix = s.matrix.Mul(m) }

// Transform 返回当前变换，主要用于测试。
func (s *Surface) Transform() canvas.Matrix { return s.matrix }

// DrawText 用字形轮廓绘制一行文本。描边沿轮廓描边，不填充。
func (s *Surface) DrawText(face layout.Face, text string, x, y float64, p renderer.Paint) error {
	f, ok := face.(*Face)
	if !ok {
		return fmt.Errorf("不支持的字体面类型 %T", face)
	}
	path, err := f.Path(text, x, y)
	if err != nil {
		return fmt.Errorf("生成字形轮廓失败: %w", err)
	}
	if path.Empty() {
		return nil
	}
	s.drawPath(path, p)
	return nil
}

func (s *Surface) drawPath(path *canvas.Path, p renderer.Paint) {
	ctx := s.ctx(canvas.Identity)
	if p.Style == renderer.Stroke {
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(p.Color)
		ctx.SetStrokeWidth(p.StrokeWidth)
		ctx.SetStrokeJoiner(canvas.RoundJoin)
	} else {
		ctx.SetFillColor(p.Color)
		ctx.SetStrokeColor(canvas.Transparent)
	}
	ctx.DrawPath(0, 0, path)
}

// DrawParagraph 绘制整形好的段落，(x, y) 为左上角。
// p 为描边时用描边宽度为半径的一圈偏移填充近似，canvas 的文本没有描边。
func (s *Surface) DrawParagraph(para layout.Paragraph, x, y float64, p *renderer.Paint) error {
	pp, ok := para.(*Paragraph)
	if !ok {
		return fmt.Errorf("不支持的段落类型 %T", para)
	}
	var fill *color.NRGBA
	if p != nil {
		c := p.Color
		fill = &c
	}
	text := pp.build(fill)
	offsets := [][2]float64{{0, 0}}
	if p != nil && p.Style == renderer.Stroke && p.StrokeWidth > 0 {
		offsets = ring(p.StrokeWidth / 2)
	}
	for _, o := range offsets {
		ctx := s.ctx(canvas.Identity.Translate(x+o[0], y+o[1]).Scale(1, -1))
		ctx.DrawText(0, 0, text)
	}
	return nil
}

// ring 返回半径 r 上均匀分布的八个偏移。
func ring(r float64) [][2]float64 {
	out := make([][2]float64, 0, 8)
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		out = append(out, [2]float64{r * math.Cos(a), r * math.Sin(a)})
	}
	return out
}

func (s *Surface) DrawRect(x, y, w, h float64, p renderer.Paint) {
	path := &canvas.Path{}
	path.MoveTo(x, y)
	path.LineTo(x+w, y)
	path.LineTo(x+w, y+h)
	path.LineTo(x, y+h)
	path.Close()
	s.drawPath(path, p)
}

// DrawImage 把图片缩放到 w×h 绘制在 (x, y)。opacity < 1 时先调整 alpha。
func (s *Surface) DrawImage(img image.Image, x, y, w, h, opacity float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || w <= 0 || h <= 0 {
		return
	}
	if opacity < 1 {
		img = fade(img, opacity)
	}
	sx, sy := w/float64(b.Dx()), h/float64(b.Dy())
	ctx := s.ctx(canvas.Identity.Translate(x, y+h).Scale(sx, -sy))
	ctx.DrawImage(0, 0, img, resolution)
}

// fade 按比例缩小每个像素的 alpha。
func fade(img image.Image, opacity float64) *image.NRGBA {
	opacity = max(0, min(opacity, 1))
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.A = uint8(math.Round(float64(c.A) * opacity))
		return c
	})
}

func (s *Surface) BeginLayer(opacity float64) {
	s.layers = append(s.layers, s.newLayer(opacity))
}

// EndLayer 栅格化当前层并按其透明度合成到下一层。
func (s *Surface) EndLayer() {
	if len(s.layers) < 2 {
		return
	}
	l := s.top()
	s.layers = s.layers[:len(s.layers)-1]
	img := fade(rasterizer.Draw(l.c, resolution, canvas.DefaultColorSpace), l.opacity)
	ctx := s.top().ctx
	ctx.ResetView()
	ctx.DrawImage(0, 0, img, resolution)
}

// Snapshot 把全部层合成后栅格化。
func (s *Surface) Snapshot() (image.Image, error) {
	for len(s.layers) > 1 {
		s.EndLayer()
	}
	return rasterizer.Draw(s.layers[0].c, resolution, canvas.DefaultColorSpace), nil
}

// WritePDF 把画布按矢量写成单页 PDF，页面尺寸以毫米计等于像素尺寸。
func (s *Surface) WritePDF(w io.Writer) error {
	for len(s.layers) > 1 {
		s.EndLayer()
	}
	c := s.layers[0].c
	writer := pdf.New(w, float64(s.w), float64(s.h), nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}
