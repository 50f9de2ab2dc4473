package renderer

import (
	"errors"
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/poster/layout"
	"github.com/ByLCY/poster/protocol"
)

// fakeFace 是等宽假字体：每个字符宽为字号的一半。
type fakeFace struct {
	family string
	size   float64
}

func (f fakeFace) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.size / 2
}
func (f fakeFace) Size() float64 { return f.size }
func (f fakeFace) WithSize(size float64) layout.Face { return fakeFace{family: f.family, size: size} }

type fakeFonts struct{}

func (fakeFonts) Face(family string, size float64) (layout.Face, error) {
	if family == "missing" {
		return fakeFace{family: "fallback", size: size}, errors.New("字体不存在")
	}
	return fakeFace{family: family, size: size}, nil
}

func (fakeFonts) Fallback(size float64) layout.Face { return fakeFace{family: "fallback", size: size} }

type fakeParagraph struct {
	runs  []layout.Run
	lines  int
	w, h   float64
	ascent float64
}

func (p fakeParagraph) Width() float64 { return p.w }
func (p fakeParagraph) Height() float64 { return p.h }
func (p fakeParagraph) LineCount() int { return p.lines }
func (p fakeParagraph) Ascent() float64 { return p.ascent }

// fakeShaper 按 fakeFace 的宽度贪心换行。
type fakeShaper struct {
	err error
}

func (s fakeShaper) Shape(runs []layout.Run, width, letterSpacing float64) (layout.Paragraph, error) {
	if s.err != nil {
		return nil, s.err
	}
	total, size := 0.0, 0.0
	for i, r := range runs {
		total += r.Face.TextWidth(r.Text)
		if i > 0 {
			total += letterSpacing
		}
		size = max(size, r.Face.Size())
	}
	lines := 1
	w := total
	if width > 0 && total > width {
		lines = int(total/width) + 1
		w = width
	}
	return fakeParagraph{runs: runs, lines: lines, w: w, h: float64(lines) * layout.LineHeight(size), ascent: size * 0.8}, nil
}

type fakeImages struct {
	err error
}

func (l fakeImages) Load(path string, width, height int) (image.Image, error) {
	if l.err != nil {
		return nil, l.err
	}
	w, h := width, height
	if w <= 0 {
		w = 40
	}
	if h <= 0 {
		h = 30
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h)), nil
}

type fakeBackend struct {
	surface    *recordingSurface
	surfaceErr error
	shaper     layout.Shaper
	images     fakeImages
}

func (b *fakeBackend) NewSurface(w, h int) (Surface, error) {
	if b.surfaceErr != nil {
		return nil, b.surfaceErr
	}
	b.surface = &recordingSurface{w: w, h: h}
	return b.surface, nil
}
func (b *fakeBackend) Fonts() FontResolver { return fakeFonts{} }
func (b *fakeBackend) Shaper() layout.Shaper { return b.shaper }
func (b *fakeBackend) Images() ImageLoader { return b.images }

// op 是 recordingSurface 记录的一次调用。
type op struct {
	kind    string
	text    string
	x, y    float64
	w, h    float64
	paint   Paint
	opacity float64
	depth   int
	layers  int
}

// recordingSurface 记录全部绘制调用的假画布。
type recordingSurface struct {
	w, h    int
	ops     []op
	depth   int
	layers  int
	saves   int
	drawErr error
	bg      color.NRGBA
}

func (s *recordingSurface) record(o op) {
	o.depth, o.layers = s.depth, s.layers
	s.ops = append(s.ops, o)
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }
func (s *recordingSurface) Clear(c color.NRGBA) { s.bg = c; s.record(op{kind: "clear"}) }
func (s *recordingSurface) Save() { s.depth++; s.saves++; s.record(op{kind: "save"}) }
func (s *recordingSurface) Restore() { s.depth--; s.record(op{kind: "restore"}) }
func (s *recordingSurface) Concat(m canvas.Matrix) { s.record(op{kind: "concat"}) }

func (s *recordingSurface) DrawText(face layout.Face, text string, x, y float64, p Paint) error {
	if s.drawErr != nil {
		return s.drawErr
	}
	s.record(op{kind: "text", text: text, x: x, y: y, paint: p})
	return nil
}

func (s *recordingSurface) DrawParagraph(para layout.Paragraph, x, y float64, p *Paint) error {
	if s.drawErr != nil {
		return s.drawErr
	}
	o := op{kind: "paragraph", x: x, y: y, w: para.Width(), h: para.Height()}
	if p != nil {
		o.paint = *p
	}
	s.record(o)
	return nil
}

func (s *recordingSurface) DrawRect(x, y, w, h float64, p Paint) {
	s.record(op{kind: "rect", x: x, y: y, w: w, h: h, paint: p})
}

func (s *recordingSurface) DrawImage(img image.Image, x, y, w, h, opacity float64) {
	s.record(op{kind: "image", x: x, y: y, w: w, h: h, opacity: opacity})
}

func (s *recordingSurface) BeginLayer(opacity float64) {
	s.layers++
	s.record(op{kind: "beginLayer", opacity: opacity})
}

func (s *recordingSurface) EndLayer() {
	s.layers--
	s.record(op{kind: "endLayer"})
}

func (s *recordingSurface) Snapshot() (image.Image, error) {
	return image.NewNRGBA(image.Rect(0, 0, s.w, s.h)), nil
}

func (s *recordingSurface) kinds(kind string) []op {
	var out []op
	for _, o := range s.ops {
		if o.kind == kind {
			out = append(out, o)
		}
	}
	return out
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	black = color.NRGBA{A: 255}
	gray  = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
)

func textElement(id, content string, mode protocol.DisplayMode) *protocol.TextElement {
	st := protocol.DefaultTextStyle()
	st.FontFamily = "Test"
	st.FontSize = 20
	st.DisplayMode = mode
	return &protocol.TextElement{
		ID:        id,
		Content:   content,
		Transform: protocol.Transform{X: 10, Y: 10, ScaleX: 1, ScaleY: 1, Opacity: 1},
		Style:     st,
	}
}
