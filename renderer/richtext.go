package renderer

import (
	"errors"
	"fmt"

	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/protocol"
)

// ErrNoSegments 表示富文本元素没有片段。
var ErrNoSegments = errors.New("富文本片段为空")

// paragraphWidth 是段落策略未设置宽度时的排版宽度。
const paragraphWidth = 1000.0

// measureWidth 是计算段落总宽度时使用的“足够宽”。
const measureWidth = 10000.0

// Compositor 把多段富文本合成到画布上。
type Compositor interface {
	// Render 在元素的局部坐标系中绘制全部片段，调用方负责保存与恢复状态。
	Render(s Surface, el *protocol.TextElement) error
	// TotalWidth 不绘制，只返回全部片段排开后的宽度。
	TotalWidth(el *protocol.TextElement) (float64, error)
}

// MeasureCompositor 逐片段测量并推进游标。
type MeasureCompositor struct {
	Fonts FontResolver
	Warn  func(format string, args ...any)
}

var _ Compositor = (*MeasureCompositor)(nil)

func (c *MeasureCompositor) face(st protocol.TextStyle) layout.Face {
	face, err := c.Fonts.Face(st.FontFamily, st.FontSize)
	if err != nil && c.Warn != nil {
		c.Warn("无法加载字体 %s，使用默认字体: %v", st.FontFamily, err)
	}
	return face
}

// Render 实现 Compositor。游标从 0 开始，基线固定为元素基础字号。
func (c *MeasureCompositor) Render(s Surface, el *protocol.TextElement) error {
	if len(el.Segments) == 0 {
		return ErrNoSegments
	}
	x := 0.0
	baseline := el.Style.FontSize
	for i, seg := range el.Segments {
		st := layout.Merge(el.Style, seg)
		face := c.face(st)
		for _, pass := range Passes(st) {
			if err := s.DrawText(face, seg.Content, x+pass.Dx, baseline+pass.Dy, pass.Paint); err != nil {
				return fmt.Errorf("绘制第 %d 个片段失败: %w", i, err)
			}
		}
		x += face.TextWidth(seg.Content) + el.LetterSpacing
	}
	return nil
}

// TotalWidth 实现 Compositor：片段宽度之和加上片段之间的间距，最后一段之后不加。
func (c *MeasureCompositor) TotalWidth(el *protocol.TextElement) (float64, error) {
	if len(el.Segments) == 0 {
		return 0, ErrNoSegments
	}
	total := 0.0
	for i, seg := range el.Segments {
		st := layout.Merge(el.Style, seg)
		total += c.face(st).TextWidth(seg.Content)
		if i < len(el.Segments)-1 {
			total += el.LetterSpacing
		}
	}
	return total, nil
}

// ParagraphCompositor 把全部片段作为一个段落交给整形器。
// 段落按各片段的填充色绘制，描边与阴影不参与。
type ParagraphCompositor struct {
	Fonts  FontResolver
	Shaper layout.Shaper
	Warn   func(format string, args ...any)
}

var _ Compositor = (*ParagraphCompositor)(nil)

func (c *ParagraphCompositor) shape(el *protocol.TextElement, width float64) (layout.Paragraph, error) {
	if len(el.Segments) == 0 {
		return nil, ErrNoSegments
	}
	if c.Shaper == nil {
		return nil, layout.ErrNoParagraphShaper
	}
	runs := make([]layout.Run, 0, len(el.Segments))
	for _, seg := range el.Segments {
		st := layout.Merge(el.Style, seg)
		face, err := c.Fonts.Face(st.FontFamily, st.FontSize)
		if err != nil && c.Warn != nil {
			c.Warn("无法加载字体 %s，使用默认字体: %v", st.FontFamily, err)
		}
		runs = append(runs, layout.Run{Text: seg.Content, Face: face, Fill: st.FillColor})
	}
	spacing := 0.0
	if el.LetterSpacing > 0 {
		spacing = el.LetterSpacing
	}
	return c.Shaper.Shape(runs, width, spacing)
}

// Render 实现 Compositor。
func (c *ParagraphCompositor) Render(s Surface, el *protocol.TextElement) error {
	width := el.Width
	if width <= 0 {
		width = paragraphWidth
	}
	p, err := c.shape(el, width)
	if err != nil {
		return err
	}
	return s.DrawParagraph(p, 0, layout.ParagraphTop(0, el.Style.FontSize, p), nil)
}

// TotalWidth 实现 Compositor：在足够宽的段落里排成一行后取最宽行。
func (c *ParagraphCompositor) TotalWidth(el *protocol.TextElement) (float64, error) {
	p, err := c.shape(el, measureWidth)
	if err != nil {
		return 0, err
	}
	return p.Width(), nil
}
