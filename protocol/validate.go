package protocol

import "fmt"

// Validate 检查协议中不影响解析、但大概率是编写错误的地方，返回警告列表。
func Validate(p *RenderProtocol) []string {
	if p == nil {
		return nil
	}
	var warnings []string
	seen := map[string]string{}
	claim := func(kind, id string) {
		if id == "" {
			return
		}
		if prev, ok := seen[id]; ok {
			warnings = append(warnings, fmt.Sprintf("%s id %q 与%s重复", kind, id, prev))
			return
		}
		seen[id] = kind
	}

	if p.Canvas.Width <= 0 || p.Canvas.Height <= 0 {
		warnings = append(warnings, fmt.Sprintf("画布尺寸 %dx%d 无效", p.Canvas.Width, p.Canvas.Height))
	}

	for i, img := range p.Images {
		claim("图片", img.ID)
		if img.Path == "" {
			warnings = append(warnings, fmt.Sprintf("图片 %s: 缺少 path", elementName(img.ID, i)))
		}
		if img.Transform.Opacity == 0 {
			warnings = append(warnings, fmt.Sprintf("图片 %s: opacity 为 0，不会可见", elementName(img.ID, i)))
		}
	}

	for i, txt := range p.Texts {
		claim("文本", txt.ID)
		name := elementName(txt.ID, i)
		st := txt.Style
		if st.DisplayMode == AutoFit && (txt.Width <= 0 || txt.Height <= 0) {
			warnings = append(warnings, fmt.Sprintf("文本 %s: AutoFit 需要同时设置 width 与 height", name))
		}
		if st.MaxLines > 0 && st.DisplayMode != MultiLine {
			warnings = append(warnings, fmt.Sprintf("文本 %s: maxLines 仅在 MultiLine 下生效", name))
		}
		if st.HasShadow && st.Shadow.Sigma > 0 {
			warnings = append(warnings, fmt.Sprintf("文本 %s: 不支持阴影模糊，shadowSigma=%g 将按无模糊绘制", name, st.Shadow.Sigma))
		}
		if txt.IsRichText() && txt.Content != "" {
			warnings = append(warnings, fmt.Sprintf("文本 %s: 已设置 richTextSegments，content 将被忽略", name))
		}
	}
	return warnings
}
