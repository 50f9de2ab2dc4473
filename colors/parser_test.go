package colors_test

import (
	"image/color"
	"testing"

	"github.com/ByLCY/poster/colors"
)

func TestParseForms(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FF8000", color.NRGBA{R: 255, G: 128, A: 255}},
		{"#ff800080", color.NRGBA{R: 255, G: 128, A: 128}},
		{"rgb(10, 20, 30)", color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
		{"rgba(10,20,30,0.5)", color.NRGBA{R: 10, G: 20, B: 30, A: 128}},
		{"rgb(300, -4, 30)", color.NRGBA{R: 255, B: 30, A: 255}},
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"RED", color.NRGBA{R: 255, A: 255}},
		{"transparent", color.NRGBA{}},
	}
	for _, tc := range cases {
		if got := colors.Parse(tc.in); got != tc.want {
			t.Fatalf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseUnknownFallsBackToBlack(t *testing.T) {
	for _, in := range []string{"", "#12", "#GGGGGG", "purple", "rgb(1,2)", "hsl(1,2,3)", "rgb(1,2,3"} {
		if got := colors.Parse(in); got != colors.Black {
			t.Fatalf("Parse(%q) = %v, want black", in, got)
		}
		if _, err := colors.ParseStrict(in); err == nil {
			t.Fatalf("ParseStrict(%q) 应返回错误", in)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x78}
	if got := colors.Parse(colors.Hex(c)); got != c {
		t.Fatalf("Hex round trip mismatch: %v vs %v", got, c)
	}
}
