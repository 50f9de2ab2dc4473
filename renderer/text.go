package renderer

import (
	"fmt"

	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/protocol"
)

// FontResolver 把字体族名解析为字体面。
type FontResolver interface {
	// Face 返回 family 在 size 下的字体面。找不到字体时返回回退字体面以及描述原因的 error，
	// 返回的字体面总是可用的。
	Face(family string, size float64) (layout.Face, error)
	// Fallback 返回内置回退字体面。
	Fallback(size float64) layout.Face
}

// TextRenderer 渲染单个文本元素：选择策略、排版、按遍序绘制。
type TextRenderer struct {
	fonts  FontResolver
	opts   layout.Options
	simple layout.Engine
	adv    layout.Engine
	shaper layout.Shaper
}

// NewTextRenderer 创建文本渲染器。shaper 可以为空，此时 Advanced 策略会回退。
func NewTextRenderer(fonts FontResolver, shaper layout.Shaper, opts layout.Options) *TextRenderer {
	return &TextRenderer{
		fonts:  fonts,
		opts:   opts,
		simple: layout.Simple{},
		adv:    layout.Advanced{Shaper: shaper},
		shaper: shaper,
	}
}

func (t *TextRenderer) engine(s layout.Strategy) layout.Engine {
	if s == layout.StrategyAdvanced {
		return t.adv
	}
	return t.simple
}

func (t *TextRenderer) compositor(el *protocol.TextElement, rep *Report) Compositor {
	warn := func(format string, args ...any) {}
	if rep != nil {
		warn = rep.Warnf
	}
	if el.RichTextStrategy == protocol.Paragraph {
		if t.shaper != nil {
			return &ParagraphCompositor{Fonts: t.fonts, Shaper: t.shaper, Warn: warn}
		}
		if rep != nil {
			rep.Warnf("文本 %s: 没有段落整形器，富文本改用 measureText 策略", el.ID)
		}
	}
	return &MeasureCompositor{Fonts: t.fonts, Warn: warn}
}

// Layout 只排版不绘制，返回排版结果以及是否发生了回退。
func (t *TextRenderer) Layout(el *protocol.TextElement, rep *Report) (*layout.Block, bool) {
	face, err := t.fonts.Face(el.Style.FontFamily, el.Style.FontSize)
	if err != nil {
		rep.Warnf("文本 %s: 无法加载字体 %s，使用默认字体: %v", el.ID, el.Style.FontFamily, err)
	}
	strategy := layout.SuggestStrategy(el, t.opts)
	block, err := t.engine(strategy).Layout(el, face)
	if err != nil {
		rep.Warnf("文本 %s: %s 排版失败，回退为默认字体单行绘制: %v", el.ID, strategy, err)
		return layout.PlainBlock(el, t.fonts.Fallback(el.Style.FontSize), strategy), true
	}
	return block, false
}

// Render 在 s 上绘制文本元素。状态在任何退出路径上都会恢复；
// opacity < 1 时整个元素（含全部片段与遍）合成为一个透明图层。
func (t *TextRenderer) Render(s Surface, el *protocol.TextElement, debug bool, rep *Report) error {
	defer scoped(s)()
	defer layered(s, el.Transform.Opacity)()

	if el.IsRichText() {
		rep.Stats.RichText++
		s.Concat(layout.Local(el.Transform))
		c := t.compositor(el, rep)
		if err := c.Render(s, el); err != nil {
			return fmt.Errorf("富文本渲染失败: %w", err)
		}
		rep.Layouts = append(rep.Layouts, layout.Record{
			ID:       el.ID,
			RichText: el.RichTextStrategy.String(),
			FontSize: el.Style.FontSize,
			Features: layout.Analyze(el),
		})
		return nil
	}

	s.Concat(layout.Anchor(el.Transform))
	block, fellBack := t.Layout(el, rep)
	if err := PaintBlock(s, block, el.Style); err != nil {
		if fellBack {
			return fmt.Errorf("绘制失败: %w", err)
		}
		rep.Warnf("文本 %s: 绘制失败，回退为默认字体单行绘制: %v", el.ID, err)
		block, fellBack = layout.PlainBlock(el, t.fonts.Fallback(el.Style.FontSize), block.Strategy), true
		if err := PaintBlock(s, block, el.Style); err != nil {
			return fmt.Errorf("回退绘制失败: %w", err)
		}
	}
	switch {
	case fellBack:
		rep.Stats.Fallbacks++
	case block.Strategy == layout.StrategyAdvanced:
		rep.Stats.Advanced++
	default:
		rep.Stats.Simple++
	}
	if debug {
		drawDebugBox(s, el)
	}

	rec := layout.NewRecord(el.ID, block, layout.Analyze(el))
	rec.Fallback = fellBack
	rep.Layouts = append(rep.Layouts, rec)
	return nil
}

// TotalWidth 返回富文本元素全部片段排开后的宽度。
func (t *TextRenderer) TotalWidth(el *protocol.TextElement) (float64, error) {
	return t.compositor(el, nil).TotalWidth(el)
}
