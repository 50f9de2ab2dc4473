package layout

import (
	"github.com/ByLCY/poster/colors"
	"github.com/ByLCY/poster/protocol"
)

// Merge 把富文本片段的稀疏覆盖合并到基础样式上，哨兵值表示继承。
//
// 阴影单独处理：片段 HasShadow 为 true 时，偏移与 sigma 整体替换，
// 颜色只在非透明时替换；为 false 时基础阴影原样保留。
// 显示模式、限行、省略号只属于元素，片段不能覆盖。
func Merge(base protocol.TextStyle, seg protocol.RichTextSegment) protocol.TextStyle {
	merged := base
	if seg.FontFamily != "" {
		merged.FontFamily = seg.FontFamily
	}
	if seg.FontSize > 0 {
		merged.FontSize = seg.FontSize
	}
	if !colors.IsTransparent(seg.FillColor) {
		merged.FillColor = seg.FillColor
	}
	if !colors.IsTransparent(seg.StrokeColor) {
		merged.StrokeColor = seg.StrokeColor
	}
	if seg.StrokeWidth >= 0 {
		merged.StrokeWidth = seg.StrokeWidth
	}
	if seg.HasShadow {
		merged.HasShadow = true
		merged.Shadow.Dx = seg.Shadow.Dx
		merged.Shadow.Dy = seg.Shadow.Dy
		merged.Shadow.Sigma = seg.Shadow.Sigma
		if !colors.IsTransparent(seg.Shadow.Color) {
			merged.Shadow.Color = seg.Shadow.Color
		}
	}
	return merged
}
