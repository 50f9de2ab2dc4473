package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/poster/binding"
	"github.com/ByLCY/poster/colors"
)

// ErrMissingCanvas 表示协议缺少必需的 canvas 配置。
var ErrMissingCanvas = errors.New("缺少canvas配置")

// Options 控制解析行为。
type Options struct {
	// Data 是 content 中 ${path} 占位符的数据源，可为空。
	Data any
	// KeepForm 为 true 时不做 NFC 规范化。
	KeepForm bool
}

type rawDocument struct {
	Canvas json.RawMessage   `json:"canvas"`
	Images []json.RawMessage `json:"images"`
	Texts  []json.RawMessage `json:"texts"`
	Output json.RawMessage   `json:"output"`
}

type rawCanvas struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background"`
	Debug      bool    `json:"debug"`
}

type rawTransform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
}

type rawImage struct {
	rawTransform
	ID     string  `json:"id"`
	Path   string  `json:"path"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type rawShadow struct {
	HasShadow   bool    `json:"hasShadow"`
	ShadowDx    float64 `json:"shadowDx"`
	ShadowDy    float64 `json:"shadowDy"`
	ShadowSigma float64 `json:"shadowSigma"`
	ShadowColor string  `json:"shadowColor"`
}

type rawText struct {
	rawTransform
	rawShadow
	ID               string            `json:"id"`
	Content          string            `json:"content"`
	Width            float64           `json:"width"`
	Height           float64           `json:"height"`
	FontFamily       string            `json:"fontFamily"`
	FontSize         float64           `json:"fontSize"`
	FillColor        string            `json:"fillColor"`
	StrokeColor      string            `json:"strokeColor"`
	StrokeWidth      float64           `json:"strokeWidth"`
	DisplayMode      string            `json:"displayMode"`
	MaxLines         float64           `json:"maxLines"`
	Ellipsis         bool              `json:"ellipsis"`
	Segments         []json.RawMessage `json:"richTextSegments"`
	RichTextStrategy string            `json:"richTextStrategy"`
	LetterSpacing    float64           `json:"letterSpacing"`
}

type rawSegment struct {
	rawShadow
	Content     string  `json:"content"`
	FontFamily  string  `json:"fontFamily"`
	FontSize    float64 `json:"fontSize"`
	FillColor   string  `json:"fillColor"`
	StrokeColor string  `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
}

type rawOutput struct {
	Format   string  `json:"format"`
	Filename string  `json:"filename"`
	Quality  float64 `json:"quality"`
}

// Load 读取并解析协议文件。
func Load(path string, opts Options) (*RenderProtocol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开协议文件 %s: %w", path, err)
	}
	return Parse(data, opts)
}

// ParseReader 从 r 读取全部内容后解析。
func ParseReader(r io.Reader, opts Options) (*RenderProtocol, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取协议失败: %w", err)
	}
	return Parse(data, opts)
}

// Parse 把 JSON 协议映射为 RenderProtocol。除 canvas 外的字段都有缺省值。
func Parse(data []byte, opts Options) (*RenderProtocol, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("JSON解析错误: %w", err)
	}
	if len(doc.Canvas) == 0 || bytes.Equal(bytes.TrimSpace(doc.Canvas), []byte("null")) {
		return nil, ErrMissingCanvas
	}

	p := &RenderProtocol{}
	c, err := parseCanvas(doc.Canvas)
	if err != nil {
		return nil, err
	}
	p.Canvas = c

	for i, raw := range doc.Images {
		img, err := parseImage(raw)
		if err != nil {
			return nil, fmt.Errorf("解析第 %d 个图片失败: %w", i, err)
		}
		p.Images = append(p.Images, img)
	}

	for i, raw := range doc.Texts {
		txt, warnings, err := parseText(raw, opts)
		if err != nil {
			return nil, fmt.Errorf("解析第 %d 个文本失败: %w", i, err)
		}
		for _, w := range warnings {
			p.Warnings = append(p.Warnings, fmt.Sprintf("文本 %s: %s", elementName(txt.ID, i), w))
		}
		if txt.IsRichText() || txt.Content != "" {
			p.Texts = append(p.Texts, txt)
		} else {
			p.Warnings = append(p.Warnings, fmt.Sprintf("文本 %s: 内容为空，已跳过", elementName(txt.ID, i)))
		}
	}

	out, err := parseOutput(doc.Output)
	if err != nil {
		return nil, err
	}
	p.Output = out
	p.Warnings = append(p.Warnings, Validate(p)...)
	return p, nil
}

func parseCanvas(data json.RawMessage) (CanvasConfig, error) {
	raw := rawCanvas{
		Width:      DefaultCanvasWidth,
		Height:     DefaultCanvasHeight,
		Background: DefaultBackground,
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return CanvasConfig{}, fmt.Errorf("解析canvas配置失败: %w", err)
	}
	return CanvasConfig{
		Width:      toInt(raw.Width),
		Height:     toInt(raw.Height),
		Background: colors.Parse(raw.Background),
		Debug:      raw.Debug,
	}, nil
}

func defaultRawTransform() rawTransform {
	t := DefaultTransform()
	return rawTransform{ScaleX: t.ScaleX, ScaleY: t.ScaleY, Opacity: t.Opacity}
}

func (r rawTransform) transform() Transform {
	return Transform{
		X:        r.X,
		Y:        r.Y,
		ScaleX:   r.ScaleX,
		ScaleY:   r.ScaleY,
		Rotation: r.Rotation,
		Opacity:  math.Max(0, math.Min(1, r.Opacity)),
	}
}

func parseImage(data json.RawMessage) (ImageElement, error) {
	raw := rawImage{rawTransform: defaultRawTransform()}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ImageElement{}, err
	}
	return ImageElement{
		ID:        raw.ID,
		Path:      raw.Path,
		Transform: raw.transform(),
		Width:     toInt(raw.Width),
		Height:    toInt(raw.Height),
	}, nil
}

func parseText(data json.RawMessage, opts Options) (TextElement, []string, error) {
	base := DefaultTextStyle()
	raw := rawText{
		rawTransform: defaultRawTransform(),
		FontFamily:   base.FontFamily,
		FontSize:     base.FontSize,
		FillColor:    "#000000",
		StrokeColor:  "#000000",
		DisplayMode:  base.DisplayMode.String(),
	}
	raw.ShadowColor = "#000000"
	if err := json.Unmarshal(data, &raw); err != nil {
		return TextElement{}, nil, err
	}

	var warnings []string
	mode, ok := ParseDisplayMode(raw.DisplayMode)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("未知 displayMode %q，按 WordWrap 处理", raw.DisplayMode))
	}
	if raw.FontSize <= 0 {
		warnings = append(warnings, fmt.Sprintf("fontSize %g 无效，使用 %g", raw.FontSize, DefaultFontSize))
		raw.FontSize = DefaultFontSize
	}

	el := TextElement{
		ID:        raw.ID,
		Content:   normalize(bind(raw.Content, opts), opts),
		Transform: raw.transform(),
		Width:     raw.Width,
		Height:    raw.Height,
		Style: TextStyle{
			FontFamily:  raw.FontFamily,
			FontSize:    raw.FontSize,
			FillColor:   colors.Parse(raw.FillColor),
			StrokeColor: colors.Parse(raw.StrokeColor),
			StrokeWidth: raw.StrokeWidth,
			HasShadow:   raw.HasShadow,
			Shadow: Shadow{
				Dx:    raw.ShadowDx,
				Dy:    raw.ShadowDy,
				Sigma: raw.ShadowSigma,
				Color: colors.Parse(raw.ShadowColor),
			},
			DisplayMode: mode,
			MaxLines:    max(toInt(raw.MaxLines), 0),
			Ellipsis:    raw.Ellipsis,
		},
		LetterSpacing: raw.LetterSpacing,
	}
	if strings.EqualFold(raw.RichTextStrategy, "paragraph") {
		el.RichTextStrategy = Paragraph
	}

	for i, segData := range raw.Segments {
		seg, err := parseSegment(segData, opts)
		if err != nil {
			return TextElement{}, nil, fmt.Errorf("解析第 %d 个富文本片段失败: %w", i, err)
		}
		if seg.Content == "" {
			warnings = append(warnings, fmt.Sprintf("第 %d 个富文本片段内容为空，已跳过", i))
			continue
		}
		el.Segments = append(el.Segments, seg)
	}
	return el, warnings, nil
}

func parseSegment(data json.RawMessage, opts Options) (RichTextSegment, error) {
	raw := rawSegment{StrokeWidth: -1}
	if err := json.Unmarshal(data, &raw); err != nil {
		return RichTextSegment{}, err
	}
	seg := RichTextSegment{
		Content:     normalize(bind(raw.Content, opts), opts),
		FontFamily:  raw.FontFamily,
		FontSize:    raw.FontSize,
		FillColor:   optionalColor(raw.FillColor),
		StrokeColor: optionalColor(raw.StrokeColor),
		StrokeWidth: raw.StrokeWidth,
		HasShadow:   raw.HasShadow,
	}
	if seg.HasShadow {
		seg.Shadow = Shadow{
			Dx:    raw.ShadowDx,
			Dy:    raw.ShadowDy,
			Sigma: raw.ShadowSigma,
			Color: optionalColor(raw.ShadowColor),
		}
	}
	return seg, nil
}

func parseOutput(data json.RawMessage) (OutputConfig, error) {
	def := DefaultOutput()
	raw := rawOutput{Filename: def.Filename, Quality: float64(def.Quality)}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return OutputConfig{}, fmt.Errorf("解析output配置失败: %w", err)
		}
	}
	out := OutputConfig{
		Format:   strings.ToLower(strings.TrimSpace(raw.Format)),
		Filename: raw.Filename,
		Quality:  min(max(toInt(raw.Quality), 1), 100),
	}
	if out.Filename == "" {
		out.Filename = def.Filename
	}
	switch out.Format {
	case "":
		out.Format = FormatFromFilename(out.Filename)
	case "jpg":
		out.Format = "jpeg"
	}
	return out, nil
}

// FormatFromFilename 根据扩展名推断输出格式，未知扩展名按 png 处理。
func FormatFromFilename(name string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "jpg", "jpeg":
		return "jpeg"
	case "pdf":
		return "pdf"
	default:
		return DefaultFormat
	}
}

// optionalColor 空字符串表示继承，返回透明色。
func optionalColor(s string) color.NRGBA {
	if strings.TrimSpace(s) == "" {
		return colors.Transparent
	}
	return colors.Parse(s)
}

func bind(s string, opts Options) string {
	return binding.Interpolate(s, opts.Data)
}

func normalize(s string, opts Options) string {
	if opts.KeepForm {
		return s
	}
	return norm.NFC.String(s)
}

func toInt(v float64) int { return int(math.Round(v)) }

func elementName(id string, index int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index)
}
