package layout

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/ByLCY/poster/protocol"
)

// ErrNoParagraphShaper 表示 Advanced 引擎没有可用的段落整形器。
var ErrNoParagraphShaper = errors.New("未配置段落整形器")

// Run 是段落中的一个样式片段。
type Run struct {
	Text string
	Face Face
	Fill color.NRGBA
}

// Paragraph 是整形器排好的段落，可测量、可由绘制后端绘制。
type Paragraph interface {
	Width() float64 // 最宽一行
	Height() float64
	LineCount() int
	Ascent() float64 // 顶边到第一行基线
}

// ParagraphTop 返回段落顶边的 y，使第一行基线落在 Baseline(y, size, 0)，与逐行排版一致。
func ParagraphTop(y, size float64, p Paragraph) float64 {
	return Baseline(y, size, 0) - p.Ascent()
}

// Shaper 是段落整形协作者。width <= 0 表示不换行。
type Shaper interface {
	Shape(runs []Run, width, letterSpacing float64) (Paragraph, error)
}

// Advanced 把显示模式翻译成段落整形器的配置，整形本身完全委托出去。
type Advanced struct {
	Shaper Shaper
}

var _ Engine = Advanced{}

func (Advanced) Strategy() Strategy { return StrategyAdvanced }

// Layout 实现 Engine。
func (a Advanced) Layout(el *protocol.TextElement, face Face) (*Block, error) {
	if a.Shaper == nil {
		return nil, ErrNoParagraphShaper
	}
	if face == nil {
		return nil, ErrNoFace
	}
	if face.Size() != el.Style.FontSize {
		face = face.WithSize(el.Style.FontSize)
	}
	st := el.Style
	shape := func(text string, f Face, width float64) (Paragraph, error) {
		p, err := a.Shaper.Shape([]Run{{Text: text, Face: f, Fill: st.FillColor}}, width, 0)
		if err != nil {
			return nil, fmt.Errorf("段落整形失败: %w", err)
		}
		return p, nil
	}

	var (
		p   Paragraph
		err error
	)
	switch st.DisplayMode {
	case protocol.SingleLine:
		text := el.Content
		if el.Width > 0 && st.Ellipsis {
			text = Truncate(text, el.Width, face)
		}
		p, err = shape(text, face, 0)
	case protocol.MultiLine:
		p, err = shape(el.Content, face, el.Width)
		if err == nil && el.Width > 0 && st.MaxLines > 0 && p.LineCount() > st.MaxLines {
			p, err = a.limit(el.Content, face, el.Width, st.MaxLines, st.Ellipsis, shape)
		}
	case protocol.AutoFit:
		if el.Width > 0 && el.Height > 0 {
			var shapeErr error
			size := FitSize(MinAutoFitSize, st.FontSize, func(size float64) bool {
				probe, err := shape(el.Content, face.WithSize(size), el.Width)
				if err != nil {
					shapeErr = err
					return false
				}
				return probe.Height() <= el.Height && probe.Width() <= el.Width
			})
			if shapeErr != nil {
				return nil, shapeErr
			}
			face = face.WithSize(size)
		}
		p, err = shape(el.Content, face, el.Width)
	default:
		p, err = shape(el.Content, face, el.Width)
	}
	if err != nil {
		return nil, err
	}
	return &Block{
		Strategy:  StrategyAdvanced,
		FontSize:  face.Size(),
		Face:      face,
		Paragraph: p,
		X:         el.Transform.X,
		Y:         el.Transform.Y,
	}, nil
}

// limit 找出在 maxLines 行内能放下的最长前缀，要求省略号时前缀后面接 "..."。
func (a Advanced) limit(text string, face Face, width float64, maxLines int, ellipsis bool,
	shape func(string, Face, float64) (Paragraph, error)) (Paragraph, error) {
	suffix := ""
	if ellipsis {
		suffix = Ellipsis
	}
	bounds := charBoundaries(text)
	candidate := func(k int) string {
		if k == 0 {
			return suffix
		}
		return strings.TrimRightFunc(text[:bounds[k-1]], isSpace) + suffix
	}
	left, right := 0, len(bounds)
	for left < right {
		mid := (left + right + 1) / 2
		p, err := shape(candidate(mid), face, width)
		if err != nil {
			return nil, err
		}
		if p.LineCount() <= maxLines {
			left = mid
		} else {
			right = mid - 1
		}
	}
	return shape(candidate(left), face, width)
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
