package canvasrenderer

import (
	"image/color"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/poster/layout"
)

// Face 是某个像素字号下的字体面。测量与字形轮廓都来自同一份 sfnt 数据，
// 画出来的宽度与测量结果一致。
type Face struct {
	font *fontEntry
	size float64 // px
}

var _ layout.Face = (*Face)(nil)

func newFace(f *fontEntry, size float64) *Face {
	return &Face{font: f, size: size}
}

// Family 返回字体族名。
func (f *Face) Family() string { return f.font.name }

// Size 实现 layout.Face。
func (f *Face) Size() float64 { return f.size }

// WithSize 实现 layout.Face。
func (f *Face) WithSize(size float64) layout.Face { return newFace(f.font, size) }

// TextWidth 实现 layout.Measurer，单位为像素。
func (f *Face) TextWidth(s string) float64 {
	if s == "" || f.size <= 0 {
		return 0
	}
	e := f.font
	e.mu.Lock()
	w := font.MeasureString(e.measure, s)
	e.mu.Unlock()
	return fromFixed(w) * f.size / measureSize
}

// canvasFace 返回同一字体在 canvas 中的字体面，字号换算为点。
func (f *Face) canvasFace(c color.Color) *canvas.FontFace {
	return f.font.family.Face(layout.PxToPt(f.size), c, canvas.FontRegular, canvas.FontNormal)
}

// Path 返回以 (x, y) 为基线起点的字形轮廓，坐标 y 轴向下。
func (f *Face) Path(s string, x, y float64) (*canvas.Path, error) {
	var (
		buf  sfnt.Buffer
		prev sfnt.GlyphIndex
		p    = &canvas.Path{}
	)
	ppem := toFixed(f.size)
	for i, r := range []rune(s) {
		gi, err := f.font.sfnt.GlyphIndex(&buf, r)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			if k, err := f.font.sfnt.Kern(&buf, prev, gi, ppem, font.HintingNone); err == nil {
				x += fromFixed(k)
			}
		}
		segments, err := f.font.sfnt.LoadGlyph(&buf, gi, ppem, nil)
		if err != nil {
			return nil, err
		}
		appendSegments(p, segments, x, y)

		adv, err := f.font.sfnt.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, err
		}
		x += fromFixed(adv)
		prev = gi
	}
	return p, nil
}

func appendSegments(p *canvas.Path, segments sfnt.Segments, x, y float64) {
	pt := func(v fixed.Point26_6) (float64, float64) {
		return x + fromFixed(v.X), y + fromFixed(v.Y)
	}
	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			ex, ey := pt(seg.Args[1])
			p.QuadTo(cx, cy, ex, ey)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			ex, ey := pt(seg.Args[2])
			p.CubeTo(c1x, c1y, c2x, c2y, ex, ey)
		}
	}
	if open {
		p.Close()
	}
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v*64 + 0.5) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
