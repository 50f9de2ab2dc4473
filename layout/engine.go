package layout

import (
	"errors"

	"github.com/ByLCY/poster/protocol"
)

// Face 是某个字号下的字体面。
type Face interface {
	Measurer
	Size() float64
	// WithSize 返回同一字体在另一字号下的字体面。
	WithSize(size float64) Face
}

// Line 是一行已定位的文本，(X, Y) 为基线起点，不含绘制偏移。
type Line struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
}

// Block 是一个文本元素的排版结果。阴影、描边、填充三遍绘制共用同一个 Block。
type Block struct {
	Strategy Strategy `json:"strategy"`
	FontSize float64  `json:"fontSize"`
	Face     Face     `json:"-"`
	Lines    []Line   `json:"lines,omitempty"`

	// Paragraph 非空时按段落绘制，顶边由 ParagraphTop(Y, FontSize) 给出。
	Paragraph Paragraph `json:"-"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
}

// Size 返回排版结果占据的宽高。
func (b *Block) Size() (w, h float64) {
	if b.Paragraph != nil {
		return b.Paragraph.Width(), b.Paragraph.Height()
	}
	for _, l := range b.Lines {
		w = max(w, l.Width)
	}
	return w, float64(len(b.Lines)) * LineHeight(b.FontSize)
}

// Engine 把一个文本元素排成可绘制的 Block。
type Engine interface {
	Strategy() Strategy
	Layout(el *protocol.TextElement, face Face) (*Block, error)
}

// ErrNoFace 表示调用方没有提供字体面。
var ErrNoFace = errors.New("缺少字体面")

// Simple 是手工测量的贪心换行引擎。
type Simple struct{}

var _ Engine = Simple{}

func (Simple) Strategy() Strategy { return StrategySimple }

// Layout 实现 Engine。
func (s Simple) Layout(el *protocol.TextElement, face Face) (*Block, error) {
	if face == nil {
		return nil, ErrNoFace
	}
	if face.Size() != el.Style.FontSize {
		face = face.WithSize(el.Style.FontSize)
	}
	if el.Width <= 0 && el.Height <= 0 {
		return PlainBlock(el, face, StrategySimple), nil
	}

	switch el.Style.DisplayMode {
	case protocol.SingleLine:
		text := el.Content
		if el.Width > 0 && el.Style.Ellipsis {
			text = Truncate(text, el.Width, face)
		}
		return s.block(el, face, []string{text}), nil
	case protocol.MultiLine:
		if el.Width <= 0 {
			return PlainBlock(el, face, StrategySimple), nil
		}
		lines := GreedyWrap(el.Content, el.Width, face)
		return s.block(el, face, LimitLines(lines, el.Style.MaxLines, el.Style.Ellipsis, el.Width, face)), nil
	case protocol.AutoFit:
		if el.Width <= 0 || el.Height <= 0 {
			return PlainBlock(el, face, StrategySimple), nil
		}
		size := FitSize(MinAutoFitSize, el.Style.FontSize, func(size float64) bool {
			f := face.WithSize(size)
			lines := GreedyWrap(el.Content, el.Width, f)
			return float64(len(lines))*LineHeight(size) <= el.Height && maxWidth(lines, f) <= el.Width
		})
		fitted := face.WithSize(size)
		return s.block(el, fitted, GreedyWrap(el.Content, el.Width, fitted)), nil
	default:
		if el.Width <= 0 {
			return PlainBlock(el, face, StrategySimple), nil
		}
		return s.block(el, face, GreedyWrap(el.Content, el.Width, face)), nil
	}
}

func (Simple) block(el *protocol.TextElement, face Face, lines []string) *Block {
	b := &Block{Strategy: StrategySimple, FontSize: face.Size(), Face: face, X: el.Transform.X, Y: el.Transform.Y}
	for i, text := range lines {
		b.Lines = append(b.Lines, Line{
			Text:  text,
			X:     el.Transform.X,
			Y:     Baseline(el.Transform.Y, face.Size(), i),
			Width: face.TextWidth(text),
		})
	}
	return b
}

// PlainBlock 把内容原样放在基准位置的一行里，不换行。
// 既是“没有宽高约束”的排版结果，也是排版失败时的回退结果。
func PlainBlock(el *protocol.TextElement, face Face, strategy Strategy) *Block {
	size := face.Size()
	return &Block{
		Strategy: strategy,
		FontSize: size,
		Face:     face,
		X:        el.Transform.X,
		Y:        el.Transform.Y,
		Lines: []Line{{
			Text:  el.Content,
			X:     el.Transform.X,
			Y:     Baseline(el.Transform.Y, size, 0),
			Width: face.TextWidth(el.Content),
		}},
	}
}

// LimitLines 把行数截到 maxLines；发生截断且要求省略号时，对最后保留的一行做单行省略截断，
// 该行本身不超宽时原样保留。
func LimitLines(lines []string, maxLines int, ellipsis bool, width float64, m Measurer) []string {
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	kept := append([]string(nil), lines[:maxLines]...)
	if ellipsis {
		kept[maxLines-1] = Truncate(kept[maxLines-1], width, m)
	}
	return kept
}

func maxWidth(lines []string, m Measurer) float64 {
	w := 0.0
	for _, l := range lines {
		w = max(w, m.TextWidth(l))
	}
	return w
}
