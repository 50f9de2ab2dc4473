package canvasrenderer

import (
	"fmt"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/ByLCY/poster/fonts"
	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/renderer"
)

// Renderer 是基于 github.com/tdewolff/canvas 的绘制后端。
type Renderer struct {
	baseDir  string
	registry *fonts.Registry

	fontMu   sync.Mutex
	fonts    map[string]*fontEntry // by family
	fallback *fontEntry
	images   *ImageLoader
}

var (
	_ renderer.Backend      = (*Renderer)(nil)
	_ renderer.FontResolver = (*Renderer)(nil)
)

// fontEntry 是一份解析好的字体：sfnt 用于测量与字形轮廓，canvas 字体族用于段落整形。
type fontEntry struct {
	name   string
	sfnt   *sfnt.Font
	family *canvas.FontFamily

	// measure 是参考字号下的度量字体面。不做 hinting 时宽度与字号成正比，
	// 任意字号都由它按比例换算。opentype 的字体面不能并发使用。
	mu      sync.Mutex
	measure font.Face
}

// measureSize 是度量字体面的像素字号。
const measureSize = 1024

// Options configures the canvas renderer.
type Options struct {
	// BaseDir 用于解析图片的相对路径。
	BaseDir string
	// Fonts 为空时使用 fonts.DefaultRegistry(fonts.DefaultDir)。
	Fonts *fonts.Registry
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with an explicit font registry.
func NewRendererWithOptions(opts Options) *Renderer {
	reg := opts.Fonts
	if reg == nil {
		reg = fonts.DefaultRegistry(fonts.DefaultDir)
	}
	return &Renderer{
		baseDir:  opts.BaseDir,
		registry: reg,
		fonts:    map[string]*fontEntry{},
		images:   &ImageLoader{BaseDir: opts.BaseDir},
	}
}

// NewSurface 实现 renderer.Backend。
func (r *Renderer) NewSurface(width, height int) (renderer.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", width, height)
	}
	return NewSurface(width, height), nil
}

// Fonts 实现 renderer.Backend。
func (r *Renderer) Fonts() renderer.FontResolver { return r }

// Shaper 实现 renderer.Backend。
func (r *Renderer) Shaper() layout.Shaper { return Shaper{} }

// Images 实现 renderer.Backend。
func (r *Renderer) Images() renderer.ImageLoader { return r.images }

// Face 实现 renderer.FontResolver。加载失败时返回回退字体面与原因。
func (r *Renderer) Face(family string, size float64) (layout.Face, error) {
	entry, err := r.ensureFont(family)
	if err != nil {
		return r.Fallback(size), err
	}
	return newFace(entry, size), nil
}

// Fallback 实现 renderer.FontResolver。
func (r *Renderer) Fallback(size float64) layout.Face {
	return newFace(r.fallbackFont(), size)
}

func (r *Renderer) ensureFont(family string) (*fontEntry, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fonts[family]; ok {
		return entry, nil
	}
	src, err := r.registry.Load(family)
	if err != nil {
		return nil, err
	}
	entry, err := parseFont(family, src.Data, src.Index)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s（%s）失败: %w", family, src.Origin, err)
	}
	r.fonts[family] = entry
	return entry, nil
}

func (r *Renderer) fallbackFont() *fontEntry {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.fallback != nil {
		return r.fallback
	}
	entry, err := parseFont(fonts.FallbackFamily, fonts.Fallback(), 0)
	if err != nil {
		// 内置字体随二进制发布，解析失败说明构建本身有问题
		panic(fmt.Sprintf("内置回退字体无法解析: %v", err))
	}
	r.fallback = entry
	return entry
}

func parseFont(name string, data []byte, index int) (*fontEntry, error) {
	var (
		f   *sfnt.Font
		err error
	)
	if index > 0 {
		var c *sfnt.Collection
		if c, err = sfnt.ParseCollection(data); err == nil {
			f, err = c.Font(index)
		}
	} else {
		f, err = sfnt.Parse(data)
	}
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, index, canvas.FontRegular); err != nil {
		return nil, err
	}
	measure, err := opentype.NewFace(f, &opentype.FaceOptions{Size: measureSize, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("创建度量字体面失败: %w", err)
	}
	return &fontEntry{name: name, sfnt: f, family: family, measure: measure}, nil
}
