package renderer

import (
	"image/color"

	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/protocol"
)

// Pass 是绘制遍序中的一遍。
type Pass struct {
	Name   string
	Paint  Paint
	Dx, Dy float64
}

// debugPaint 是调试框的样式。
var debugPaint = Paint{Color: color.NRGBA{R: 255, A: 255}, Style: Stroke, StrokeWidth: 2}

// Passes 返回样式对应的绘制遍序：阴影、描边、填充。
// 阴影只做平移，Sigma 不参与绘制。
func Passes(st protocol.TextStyle) []Pass {
	passes := make([]Pass, 0, 3)
	if st.HasShadow {
		passes = append(passes, Pass{
			Name:  "shadow",
			Paint: Paint{Color: st.Shadow.Color, Style: Fill},
			Dx:    st.Shadow.Dx,
			Dy:    st.Shadow.Dy,
		})
	}
	if st.StrokeWidth > 0 {
		passes = append(passes, Pass{
			Name:  "stroke",
			Paint: Paint{Color: st.StrokeColor, Style: Stroke, StrokeWidth: st.StrokeWidth},
		})
	}
	return append(passes, Pass{Name: "fill", Paint: Paint{Color: st.FillColor, Style: Fill}})
}

// PaintBlock 依次执行各遍绘制。所有遍共用同一个排版结果，只有画笔与偏移不同。
func PaintBlock(s Surface, b *layout.Block, st protocol.TextStyle) error {
	for _, pass := range Passes(st) {
		if err := drawBlock(s, b, pass); err != nil {
			return err
		}
	}
	return nil
}

func drawBlock(s Surface, b *layout.Block, pass Pass) error {
	if b.Paragraph != nil {
		p := pass.Paint
		top := layout.ParagraphTop(b.Y, b.FontSize, b.Paragraph)
		return s.DrawParagraph(b.Paragraph, b.X+pass.Dx, top+pass.Dy, &p)
	}
	for _, line := range b.Lines {
		if line.Text == "" {
			continue
		}
		if err := s.DrawText(b.Face, line.Text, line.X+pass.Dx, line.Y+pass.Dy, pass.Paint); err != nil {
			return err
		}
	}
	return nil
}

// drawDebugBox 在声明的宽高处画未填充的矩形，顶边与第一行基线对齐。
func drawDebugBox(s Surface, el *protocol.TextElement) {
	if el.Width <= 0 || el.Height <= 0 {
		return
	}
	s.DrawRect(el.Transform.X, el.Transform.Y+el.Style.FontSize, el.Width, el.Height, debugPaint)
}
