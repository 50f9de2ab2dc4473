package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
	for _, px := range samples {
		if diff := math.Abs(PxToPt(px)*PtToMm - px); diff > 1e-9 {
			t.Fatalf("px→pt 换算错误: in=%gpx pt=%g", px, PxToPt(px))
		}
	}
}

// TestBaseline 验证第 i 行基线 = y + 字号 + i × 1.2 × 字号。
func TestBaseline(t *testing.T) {
	cases := []struct {
		y, size float64
		i       int
		want    float64
	}{
		{10, 20, 0, 30},
		{10, 20, 1, 54},
		{0, 12, 3, 12 + 3*14.4},
	}
	for _, c := range cases {
		if got := Baseline(c.y, c.size, c.i); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("Baseline(%g, %g, %d) = %g, want %g", c.y, c.size, c.i, got, c.want)
		}
	}
	if LineHeight(20) != 24 {
		t.Fatalf("行高应为字号的 1.2 倍")
	}
}
