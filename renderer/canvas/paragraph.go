package canvasrenderer

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/poster/layout"
)

// Shaper 用 canvas.RichText 排版段落，实现 layout.Shaper。
// canvas 的文本没有字距参数，letterSpacing 只做校验不参与排版。
type Shaper struct{}

var _ layout.Shaper = Shaper{}

// Paragraph 是排好的段落。绘制时按需要的颜色重新生成 canvas.Text。
type Paragraph struct {
	runs  []layout.Run
	width float64
	text  *canvas.Text
	lines int
}

var _ layout.Paragraph = (*Paragraph)(nil)

// Shape 实现 layout.Shaper。width <= 0 时不换行。
func (Shaper) Shape(runs []layout.Run, width, letterSpacing float64) (layout.Paragraph, error) {
	if len(runs) == 0 {
		return nil, errors.New("段落为空")
	}
	if letterSpacing < 0 {
		return nil, fmt.Errorf("字距不能为负: %v", letterSpacing)
	}
	for i, r := range runs {
		if _, ok := r.Face.(*Face); !ok {
			return nil, fmt.Errorf("第 %d 段的字体面类型 %T 不受支持", i, r.Face)
		}
	}
	p := &Paragraph{runs: runs, width: max(width, 0)}
	p.text = p.build(nil)
	p.lines = p.countLines()
	return p, nil
}

// build 生成 canvas.Text。fill 非空时所有片段使用同一颜色。
func (p *Paragraph) build(fill *color.NRGBA) *canvas.Text {
	faceOf := func(r layout.Run) *canvas.FontFace {
		c := r.Fill
		if fill != nil {
			c = *fill
		}
		return r.Face.(*Face).canvasFace(c)
	}
	rt := canvas.NewRichText(faceOf(p.runs[0]))
	for _, r := range p.runs {
		rt.WriteFace(faceOf(r), r.Text)
	}
	return rt.ToText(p.width, 0, canvas.Left, canvas.Top, nil)
}

// countLines 用文本高度除以最大字号的行高估算行数。
func (p *Paragraph) countLines() int {
	lh := 0.0
	for _, r := range p.runs {
		lh = max(lh, r.Face.(*Face).canvasFace(color.Black).Metrics().LineHeight)
	}
	if lh <= 0 {
		return 1
	}
	return max(1, int(math.Round(p.Height()/lh)))
}

// Ascent 实现 layout.Paragraph：取各片段字体上升高度的最大值。
func (p *Paragraph) Ascent() float64 {
	a := 0.0
	for _, r := range p.runs {
		a = max(a, r.Face.(*Face).canvasFace(color.Black).Metrics().Ascent)
	}
	return a
}

// Width 实现 layout.Paragraph。
func (p *Paragraph) Width() float64 { return p.text.Bounds().W() }

// Height 实现 layout.Paragraph。
func (p *Paragraph) Height() float64 { return p.text.Bounds().H() }

// LineCount 实现 layout.Paragraph。
func (p *Paragraph) LineCount() int { return p.lines }
