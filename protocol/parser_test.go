package protocol_test

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/ByLCY/poster/colors"
	"github.com/ByLCY/poster/protocol"
)

func TestParseMissingCanvas(t *testing.T) {
	_, err := protocol.Parse([]byte(`{"texts":[]}`), protocol.Options{})
	if !errors.Is(err, protocol.ErrMissingCanvas) {
		t.Fatalf("expected ErrMissingCanvas, got %v", err)
	}
	if _, err := protocol.Parse([]byte(`{"canvas":`), protocol.Options{}); err == nil {
		t.Fatalf("expected JSON error")
	}
}

func TestParseDefaults(t *testing.T) {
	p, err := protocol.Parse([]byte(`{"canvas":{},"texts":[{"content":"Hi"}],"images":[{"path":"a.png"}]}`), protocol.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Canvas.Width != 1242 || p.Canvas.Height != 1660 {
		t.Fatalf("unexpected canvas size %dx%d", p.Canvas.Width, p.Canvas.Height)
	}
	if p.Canvas.Background != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("unexpected background %v", p.Canvas.Background)
	}
	txt := p.Texts[0]
	if txt.Style.FontSize != 12 || txt.Style.FontFamily != "Arial" {
		t.Fatalf("unexpected text defaults: %+v", txt.Style)
	}
	if txt.Style.FillColor != colors.Black || txt.Style.StrokeColor != colors.Black {
		t.Fatalf("expected black fill/stroke, got %+v", txt.Style)
	}
	if txt.Style.DisplayMode != protocol.WordWrap {
		t.Fatalf("expected WordWrap default, got %s", txt.Style.DisplayMode)
	}
	if txt.Transform != protocol.DefaultTransform() {
		t.Fatalf("unexpected transform %+v", txt.Transform)
	}
	if p.Images[0].Transform.ScaleX != 1 || p.Images[0].Transform.Opacity != 1 {
		t.Fatalf("unexpected image transform %+v", p.Images[0].Transform)
	}
	if p.Output != protocol.DefaultOutput() {
		t.Fatalf("unexpected output %+v", p.Output)
	}
}

func TestParseTextFields(t *testing.T) {
	src := `{
	  "canvas":{"width":200,"height":100,"background":"#000000","debug":true},
	  "texts":[{
	    "id":"t1","content":"${name|默认}","x":10,"y":20,"rotation":90,"opacity":0.5,
	    "width":120,"height":40,"fontFamily":"Go","fontSize":20,
	    "fillColor":"rgb(1,2,3)","strokeColor":"red","strokeWidth":2,
	    "hasShadow":true,"shadowDx":3,"shadowDy":4,"shadowSigma":1,"shadowColor":"#00000080",
	    "displayMode":"MultiLine","maxLines":2,"ellipsis":true,
	    "richTextStrategy":"paragraph","letterSpacing":5
	  }],
	  "output":{"filename":"out/a.JPG","quality":80}
	}`
	p, err := protocol.Parse([]byte(src), protocol.Options{Data: map[string]any{"name": "海报"}})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	txt := p.Texts[0]
	if txt.Content != "海报" {
		t.Fatalf("binding not applied: %q", txt.Content)
	}
	st := txt.Style
	if st.DisplayMode != protocol.MultiLine || st.MaxLines != 2 || !st.Ellipsis {
		t.Fatalf("unexpected layout fields %+v", st)
	}
	if st.FillColor != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) || st.StrokeWidth != 2 {
		t.Fatalf("unexpected paint fields %+v", st)
	}
	if !st.HasShadow || st.Shadow.Dx != 3 || st.Shadow.Dy != 4 || st.Shadow.Color.A != 0x80 {
		t.Fatalf("unexpected shadow %+v", st.Shadow)
	}
	if txt.RichTextStrategy != protocol.Paragraph || txt.LetterSpacing != 5 {
		t.Fatalf("unexpected rich text fields %+v", txt)
	}
	if txt.Transform.Rotation != 90 || txt.Transform.Opacity != 0.5 {
		t.Fatalf("unexpected transform %+v", txt.Transform)
	}
	if p.Output.Format != "jpeg" || p.Output.Quality != 80 {
		t.Fatalf("unexpected output %+v", p.Output)
	}
	if !p.Canvas.Debug {
		t.Fatalf("expected debug canvas")
	}
}

func TestParseSegmentsSentinels(t *testing.T) {
	src := `{"canvas":{},"texts":[{"fontSize":30,"richTextSegments":[
	  {"content":"A"},
	  {"content":""},
	  {"content":"B","fontSize":40,"fillColor":"#FF0000","strokeWidth":0,"shadowDx":9},
	  {"content":"C","hasShadow":true,"shadowDx":2}
	]}]}`
	p, err := protocol.Parse([]byte(src), protocol.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	segs := p.Texts[0].Segments
	if len(segs) != 3 {
		t.Fatalf("expected empty segment dropped, got %d segments", len(segs))
	}
	a := segs[0]
	if a.FontFamily != "" || a.FontSize != 0 || a.StrokeWidth != -1 || !colors.IsTransparent(a.FillColor) || !colors.IsTransparent(a.StrokeColor) {
		t.Fatalf("expected inherit sentinels, got %+v", a)
	}
	b := segs[1]
	if b.FontSize != 40 || b.FillColor != (color.NRGBA{R: 255, A: 255}) || b.StrokeWidth != 0 {
		t.Fatalf("unexpected overrides %+v", b)
	}
	if b.Shadow.Dx != 0 {
		t.Fatalf("shadow fields must be ignored without hasShadow, got %+v", b.Shadow)
	}
	c := segs[2]
	if !c.HasShadow || c.Shadow.Dx != 2 || !colors.IsTransparent(c.Shadow.Color) {
		t.Fatalf("unexpected shadow segment %+v", c)
	}
	if !hasWarning(p.Warnings, "片段内容为空") {
		t.Fatalf("expected empty segment warning, got %v", p.Warnings)
	}
}

func TestParseWarnings(t *testing.T) {
	src := `{"canvas":{},
	  "images":[{"id":"x"}],
	  "texts":[{"id":"x","content":"a","displayMode":"Marquee"},{"content":""}]}`
	p, err := protocol.Parse([]byte(src), protocol.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, want := range []string{"缺少 path", "重复", "Marquee", "内容为空"} {
		if !hasWarning(p.Warnings, want) {
			t.Fatalf("expected warning containing %q, got %v", want, p.Warnings)
		}
	}
	if len(p.Texts) != 1 || p.Texts[0].Style.DisplayMode != protocol.WordWrap {
		t.Fatalf("unexpected texts %+v", p.Texts)
	}
}

func TestEmptySegmentWarns(t *testing.T) {
	src := `{"canvas":{},"texts":[{"id":"r","richTextSegments":[{"content":"a"},{"content":""}]}]}`
	p, err := protocol.Parse([]byte(src), protocol.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !hasWarning(p.Warnings, "第 1 个富文本片段内容为空") {
		t.Fatalf("空片段应产生警告: %v", p.Warnings)
	}
	if len(p.Texts) != 1 || len(p.Texts[0].Segments) != 1 {
		t.Fatalf("空片段应被跳过: %+v", p.Texts)
	}
}

func TestNFCNormalization(t *testing.T) {
	decomposed := "e\u0301"
	p, err := protocol.Parse([]byte(`{"canvas":{},"texts":[{"content":"`+decomposed+`"}]}`), protocol.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Texts[0].Content != "\u00e9" {
		t.Fatalf("expected NFC form, got %q", p.Texts[0].Content)
	}
}

func TestExampleParses(t *testing.T) {
	p, err := protocol.Parse([]byte(protocol.ExampleJSON()), protocol.Options{})
	if err != nil {
		t.Fatalf("example must parse: %v", err)
	}
	if len(p.Texts) != 3 || len(p.Images) != 1 {
		t.Fatalf("unexpected example content: %d texts, %d images", len(p.Texts), len(p.Images))
	}
	if p.Texts[0].Content != "夏日市集" {
		t.Fatalf("expected fallback binding in example, got %q", p.Texts[0].Content)
	}
}

func TestFormatFromFilename(t *testing.T) {
	cases := map[string]string{"a.png": "png", "a.JPEG": "jpeg", "b.jpg": "jpeg", "c.webp": "png", "noext": "png", "d.PDF": "pdf"}
	for in, want := range cases {
		if got := protocol.FormatFromFilename(in); got != want {
			t.Fatalf("FormatFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func hasWarning(warnings []string, sub string) bool {
	for _, w := range warnings {
		if strings.Contains(w, sub) {
			return true
		}
	}
	return false
}
