package renderer

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/logger"
	"github.com/ByLCY/poster/protocol"
)

// Backend 提供绘制表面与字体、段落整形、图片加载等协作者。
type Backend interface {
	NewSurface(width, height int) (Surface, error)
	Fonts() FontResolver
	// Shaper 可以返回 nil，此时 Advanced 策略与段落富文本都会回退。
	Shaper() layout.Shaper
	Images() ImageLoader
}

// VectorSurface 是可以直接输出矢量 PDF 的表面。
type VectorSurface interface {
	Surface
	WritePDF(w io.Writer) error
}

// Options 控制渲染引擎的行为。
type Options struct {
	layout.Options
	// Debug 为每个有宽高的文本元素画调试框，与画布的 debug 字段取或。
	Debug bool
	// Output 非空时覆盖协议中的输出文件名。
	Output string
}

var errInvalidCanvas = errors.New("画布尺寸无效")

// Engine 编排一次完整渲染：背景、图片、文本、快照、编码。
type Engine struct {
	backend Backend
	opts    Options
	text    *TextRenderer
	images  *ImageRenderer
	lastErr string
}

var _ Renderer = (*Engine)(nil)

// NewEngine 创建渲染引擎。
func NewEngine(b Backend, opts Options) *Engine {
	return &Engine{
		backend: b,
		opts:    opts,
		text:    NewTextRenderer(b.Fonts(), b.Shaper(), opts.Options),
		images:  NewImageRenderer(b.Images()),
	}
}

// LastError 返回最近一次失败的错误信息，成功后清空。
func (e *Engine) LastError() string {
	return e.lastErr
}

// CalculateTotalWidth 返回富文本元素各片段排开后的总宽度。
func (e *Engine) CalculateTotalWidth(el *protocol.TextElement) (float64, error) {
	return e.text.TotalWidth(el)
}

// Draw 在内存中绘制协议并返回快照，不写文件。
// 单个元素失败只记录警告并跳过；画布无效或无法创建时中止。
func (e *Engine) Draw(p *protocol.RenderProtocol) (image.Image, *Report, error) {
	s, rep, err := e.draw(p)
	if err != nil {
		return nil, rep, err
	}
	img, err := s.Snapshot()
	if err != nil {
		return nil, rep, fmt.Errorf("生成快照失败: %w", err)
	}
	return img, rep, nil
}

func (e *Engine) draw(p *protocol.RenderProtocol) (Surface, *Report, error) {
	if p == nil {
		return nil, nil, errors.New("协议为空")
	}
	rep := &Report{
		Output:   p.Output.Filename,
		Width:    p.Canvas.Width,
		Height:   p.Canvas.Height,
		Warnings: append([]string(nil), p.Warnings...),
	}
	if p.Canvas.Width <= 0 || p.Canvas.Height <= 0 {
		return nil, rep, fmt.Errorf("%w: %dx%d", errInvalidCanvas, p.Canvas.Width, p.Canvas.Height)
	}
	s, err := e.backend.NewSurface(p.Canvas.Width, p.Canvas.Height)
	if err != nil {
		return nil, rep, fmt.Errorf("创建画布失败: %w", err)
	}
	s.Clear(p.Canvas.Background)

	logger.ProgressLogger.Printf("绘制 %d 张图片", len(p.Images))
	for i := range p.Images {
		el := &p.Images[i]
		if err := e.images.Render(s, el); err != nil {
			rep.Stats.SkippedImages++
			rep.Warnf("跳过图片 %s: %v", el.ID, err)
			continue
		}
		rep.Stats.Images++
	}

	logger.ProgressLogger.Printf("绘制 %d 个文本", len(p.Texts))
	debug := e.opts.Debug || p.Canvas.Debug
	for i := range p.Texts {
		el := &p.Texts[i]
		if err := e.text.Render(s, el, debug, rep); err != nil {
			rep.Stats.SkippedTexts++
			rep.Warnf("跳过文本 %s: %v", el.ID, err)
		}
	}

	return s, rep, nil
}

// Render 实现 Renderer：绘制并按输出配置编码写入文件。
func (e *Engine) Render(p *protocol.RenderProtocol) (*Report, error) {
	rep, err := e.render(p)
	if err != nil {
		e.lastErr = err.Error()
		return rep, err
	}
	e.lastErr = ""
	return rep, nil
}

func (e *Engine) render(p *protocol.RenderProtocol) (*Report, error) {
	if p == nil {
		return nil, errors.New("协议为空")
	}
	out := p.Output
	if e.opts.Output != "" {
		out.Filename = e.opts.Output
		out.Format = protocol.FormatFromFilename(out.Filename)
	}
	s, rep, err := e.draw(p)
	if err != nil {
		return rep, err
	}
	rep.Output = out.Filename
	if out.Format == "pdf" {
		v, ok := s.(VectorSurface)
		if !ok {
			return rep, errors.New("当前后端不支持 PDF 输出")
		}
		err = WriteFile(out.Filename, v.WritePDF)
	} else {
		var img image.Image
		if img, err = s.Snapshot(); err != nil {
			return rep, fmt.Errorf("生成快照失败: %w", err)
		}
		err = WriteImage(img, out)
	}
	if err != nil {
		return rep, err
	}
	logger.ProgressLogger.Printf("已输出 %s（%s）", out.Filename, rep.Stats)
	return rep, nil
}
