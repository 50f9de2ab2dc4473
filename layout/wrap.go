package layout

import (
	"strings"
	"unicode"
)

// Measurer 测量一段文本在当前字号下的宽度。
type Measurer interface {
	TextWidth(s string) float64
}

// GreedyWrap 按空白分词贪心装箱。显式换行总是开启新行。
// 单个超宽的词独占一行，不在词内断开。
func GreedyWrap(text string, maxWidth float64, m Measurer) []string {
	var lines []string
	for _, para := range splitParagraphs(text) {
		words := strings.FieldsFunc(para, unicode.IsSpace)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if m.TextWidth(candidate) <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = word
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return trimTrailingBlank(lines)
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Truncate 在文本超宽时追加省略号，返回满足宽度的最长前缀；本来就不超宽时原样返回。
func Truncate(text string, maxWidth float64, m Measurer) string {
	if m.TextWidth(text) <= maxWidth {
		return text
	}
	return ForceEllipsis(text, maxWidth, m)
}

// ForceEllipsis 无条件追加省略号：二分查找最长的字符前缀 p，使 p+"..." 不超过 maxWidth。
func ForceEllipsis(text string, maxWidth float64, m Measurer) string {
	bounds := charBoundaries(text)
	prefix := func(k int) string {
		if k == 0 {
			return ""
		}
		return text[:bounds[k-1]]
	}
	left, right := 0, len(bounds)
	for left < right {
		mid := (left + right + 1) / 2
		if m.TextWidth(prefix(mid)+Ellipsis) <= maxWidth {
			left = mid
		} else {
			right = mid - 1
		}
	}
	return prefix(left) + Ellipsis
}

// FitSize 在 [lo, hi] 内二分查找使 fits 成立的最大字号。
// hi 本身可行时直接返回 hi；区间收窄到 AutoFitPrecision 以下时停止，返回找到的最大可行值。
// 整个区间都不可行时返回 lo。
func FitSize(lo, hi float64, fits func(size float64) bool) float64 {
	if hi <= lo {
		return hi
	}
	if fits(hi) {
		return hi
	}
	best := lo
	for hi-lo >= AutoFitPrecision {
		mid := (lo + hi) / 2
		if fits(mid) {
			best = mid
			lo = mid
		} else {
			hi = mid
		}
	}
	return best
}
