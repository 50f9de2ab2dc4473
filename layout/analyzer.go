package layout

import (
	"strings"

	"github.com/go-text/typesetting/language"

	"github.com/ByLCY/poster/protocol"
)

// Features 是对一个文本元素内容与几何的分析结果。
type Features struct {
	CharCount            int  `json:"charCount"`
	LineCount            int  `json:"lineCount"` // 显式换行数 + 1
	HasMultipleLines     bool `json:"hasMultipleLines"`
	HasLongText          bool `json:"hasLongText"`
	HasNonASCII          bool `json:"hasNonAscii"`
	HasComplexScript     bool `json:"hasComplexScript"` // 含拉丁与通用字符以外的书写系统
	NeedsWordWrap        bool `json:"needsWordWrap"`
	HasSpecialFormatting bool `json:"hasSpecialFormatting"`
}

// Analyze 分析文本元素。
func Analyze(el *protocol.TextElement) Features {
	content := el.Content
	f := Features{
		CharCount: CharCount(content),
		LineCount: 1 + strings.Count(content, "\n") + strings.Count(content, "\r") - strings.Count(content, "\r\n"),
	}
	f.HasMultipleLines = f.LineCount > 1
	f.HasLongText = f.CharCount > LongTextThreshold
	for _, r := range content {
		if r > 127 {
			f.HasNonASCII = true
		}
		if isComplexScript(r) {
			f.HasComplexScript = true
			break
		}
	}
	f.NeedsWordWrap = el.Width > 0 && el.Style.DisplayMode != protocol.SingleLine &&
		float64(f.CharCount)*el.Style.FontSize*EstimatedCharWidth > el.Width
	st := el.Style
	f.HasSpecialFormatting = st.MaxLines > 0 || st.Ellipsis || st.DisplayMode != protocol.SingleLine
	return f
}

func isComplexScript(r rune) bool {
	switch language.LookupScript(r) {
	case language.Latin, language.Common, language.Inherited, language.Unknown:
		return false
	}
	return true
}

// SuggestStrategy 为元素选择布局策略，每个元素只选择一次。
//
// SingleLine、MultiLine、AutoFit 总是交给 Advanced；
// WordWrap 只有在设置了 maxLines、ellipsis 或宽度时才用 Advanced，否则沿用 Simple 以兼容旧文档。
// opts.StrictDisplayMode 关闭这条兼容规则，WordWrap 一律用 Simple。
func SuggestStrategy(el *protocol.TextElement, opts Options) Strategy {
	if opts.Force != StrategyAuto {
		return opts.Force
	}
	st := el.Style
	switch st.DisplayMode {
	case protocol.SingleLine, protocol.MultiLine, protocol.AutoFit:
		return StrategyAdvanced
	}
	if opts.StrictDisplayMode {
		return StrategySimple
	}
	if st.MaxLines > 0 || st.Ellipsis || el.Width > 0 {
		return StrategyAdvanced
	}
	return StrategySimple
}
