package layout

import (
	"errors"

	"github.com/ByLCY/poster/protocol"
)

// fixedFace 是等宽假字体：每个字符宽 size/2。
type fixedFace struct{ size float64 }

func (f fixedFace) Size() float64 { return f.size }
func (f fixedFace) WithSize(s float64) Face { return fixedFace{size: s} }
func (f fixedFace) TextWidth(s string) float64 { return float64(CharCount(s)) * f.size * 0.5 }

// wrapShaper 用贪心换行模拟段落整形器。
type wrapShaper struct {
	calls int
	err   error
}

type wrapParagraph struct {
	lines []string
	face  Face
}

func (p wrapParagraph) Width() float64 { return maxWidth(p.lines, p.face) }
func (p wrapParagraph) Height() float64 { return float64(len(p.lines)) * LineHeight(p.face.Size()) }
func (p wrapParagraph) LineCount() int { return len(p.lines) }
func (p wrapParagraph) Ascent() float64 { return p.face.Size() * 0.8 }

func (s *wrapShaper) Shape(runs []Run, width, letterSpacing float64) (Paragraph, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(runs) == 0 {
		return nil, errors.New("no runs")
	}
	text := ""
	for _, r := range runs {
		text += r.Text
	}
	face := runs[0].Face
	if width <= 0 {
		return wrapParagraph{lines: []string{text}, face: face}, nil
	}
	return wrapParagraph{lines: GreedyWrap(text, width, face), face: face}, nil
}

func textElement(content string, mode protocol.DisplayMode) *protocol.TextElement {
	st := protocol.DefaultTextStyle()
	st.DisplayMode = mode
	st.FontSize = 20
	return &protocol.TextElement{
		Content:   content,
		Transform: protocol.DefaultTransform(),
		Style:     st,
	}
}
