package protocol

import (
	"image/color"
	"strings"
)

// DisplayMode 决定文本内容如何放进元素的盒子。
type DisplayMode int

const (
	SingleLine DisplayMode = iota
	MultiLine
	WordWrap
	AutoFit
)

var displayModeNames = []string{"SingleLine", "MultiLine", "WordWrap", "AutoFit"}

func (m DisplayMode) String() string {
	if m < 0 || int(m) >= len(displayModeNames) {
		return "Unknown"
	}
	return displayModeNames[m]
}

// ParseDisplayMode 识别显示模式名称（大小写不敏感）。
func ParseDisplayMode(s string) (DisplayMode, bool) {
	for i, name := range displayModeNames {
		if strings.EqualFold(s, name) {
			return DisplayMode(i), true
		}
	}
	return WordWrap, false
}

// RichTextStrategy 选择富文本的合成方式。
type RichTextStrategy int

const (
	MeasureText RichTextStrategy = iota // 逐片段测量、推进游标
	Paragraph                           // 交给段落整形器整体排版
)

func (s RichTextStrategy) String() string {
	if s == Paragraph {
		return "paragraph"
	}
	return "measureText"
}

// Transform 是元素的几何变换，缩放与旋转都以 (X, Y) 为锚点。
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotation"` // 角度
	Opacity  float64 `json:"opacity"`  // 0–1
}

// Shadow 描述一次平移的阴影绘制。Sigma 只做保存，不做模糊。
type Shadow struct {
	Dx    float64     `json:"dx"`
	Dy    float64     `json:"dy"`
	Sigma float64     `json:"sigma"`
	Color color.NRGBA `json:"color"`
}

// TextStyle 是一个文本元素完整解析后的样式。
type TextStyle struct {
	FontFamily  string      `json:"fontFamily"`
	FontSize    float64     `json:"fontSize"`
	FillColor   color.NRGBA `json:"fillColor"`
	StrokeColor color.NRGBA `json:"strokeColor"`
	StrokeWidth float64     `json:"strokeWidth"`
	HasShadow   bool        `json:"hasShadow"`
	Shadow      Shadow      `json:"shadow"`
	DisplayMode DisplayMode `json:"displayMode"`
	MaxLines    int         `json:"maxLines"`
	Ellipsis    bool        `json:"ellipsis"`
}

// RichTextSegment 是一段富文本，样式字段稀疏覆盖基础样式：
// 空字体族、字号 <= 0、透明色、描边宽 < 0 表示继承。
type RichTextSegment struct {
	Content     string      `json:"content"`
	FontFamily  string      `json:"fontFamily,omitempty"`
	FontSize    float64     `json:"fontSize,omitempty"`
	FillColor   color.NRGBA `json:"fillColor"`
	StrokeColor color.NRGBA `json:"strokeColor"`
	StrokeWidth float64     `json:"strokeWidth"`
	HasShadow   bool        `json:"hasShadow,omitempty"`
	Shadow      Shadow      `json:"shadow"`
}

// TextElement 是一个文本块。Segments 非空时 Content 不参与渲染。
type TextElement struct {
	ID               string            `json:"id"`
	Content          string            `json:"content"`
	Transform        Transform         `json:"transform"`
	Style            TextStyle         `json:"style"`
	Width            float64           `json:"width"`
	Height           float64           `json:"height"`
	Segments         []RichTextSegment `json:"segments,omitempty"`
	RichTextStrategy RichTextStrategy  `json:"richTextStrategy"`
	LetterSpacing    float64           `json:"letterSpacing"`
}

// IsRichText 报告元素是否按富文本渲染。
func (t *TextElement) IsRichText() bool { return len(t.Segments) > 0 }

// ImageElement 是一张定位图片，宽高为 0 时使用原始尺寸。
type ImageElement struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Transform Transform `json:"transform"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
}

// CanvasConfig 描述画布尺寸与背景。
type CanvasConfig struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Background color.NRGBA `json:"background"`
	Debug      bool        `json:"debug"`
}

// OutputConfig 描述输出文件。Quality 只对 jpeg 生效。
type OutputConfig struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Quality  int    `json:"quality"`
}

// RenderProtocol 是一次渲染的完整输入，解析一次、渲染一次。
type RenderProtocol struct {
	Canvas CanvasConfig   `json:"canvas"`
	Images []ImageElement `json:"images"`
	Texts  []TextElement  `json:"texts"`
	Output OutputConfig   `json:"output"`

	// Warnings 记录解析与校验阶段发现的非致命问题。
	Warnings []string `json:"-"`
}
