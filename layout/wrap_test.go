package layout

import (
	"strings"
	"testing"
)

func TestSplitCharsKeepsMultiByteSequences(t *testing.T) {
	got := SplitChars("aé中😀")
	want := []string{"a", "é", "中", "😀"}
	if len(got) != len(want) {
		t.Fatalf("expected %d chars, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("char %d: got %q want %q", i, got[i], want[i])
		}
	}
	// 截断的多字节序列不能越界
	if chars := SplitChars("a\xe4\xb8"); strings.Join(chars, "") != "a\xe4\xb8" {
		t.Fatalf("truncated sequence lost bytes: %q", chars)
	}
	if CharCount("中文ab") != 4 {
		t.Fatalf("unexpected char count %d", CharCount("中文ab"))
	}
}

func TestGreedyWrapWidthBound(t *testing.T) {
	face := fixedFace{size: 10}
	texts := []string{
		"the quick brown fox jumps over the lazy dog",
		"a bb ccc dddd eeeee ffffff ggggggg",
		"supercalifragilistic is a long word",
		"中文 与 English 混排 的 文本",
	}
	for _, width := range []float64{20, 35, 50, 80, 200} {
		for _, text := range texts {
			for _, line := range GreedyWrap(text, width, face) {
				if face.TextWidth(line) <= width {
					continue
				}
				if strings.ContainsAny(line, " \t") {
					t.Fatalf("line %q exceeds width %g and is not a single word", line, width)
				}
			}
		}
	}
}

func TestGreedyWrapPacksWords(t *testing.T) {
	face := fixedFace{size: 10} // 每字符 5
	// "aa bb cc" 宽 40，恰好等于上限时仍放得下
	lines := GreedyWrap("aa bb cc dd", 40, face)
	want := []string{"aa bb cc", "dd"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q want %q", lines, want)
	}
	lines = GreedyWrap("aa bb cc dd", 35, face)
	want = []string{"aa bb", "cc dd"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q want %q", lines, want)
	}
	lines = GreedyWrap("tiny enormousword tiny", 30, face)
	if len(lines) != 3 || lines[1] != "enormousword" {
		t.Fatalf("oversized word must own a line, got %q", lines)
	}
}

func TestGreedyWrapHonorsNewlines(t *testing.T) {
	lines := GreedyWrap("foo\n\nbar\r\nbaz\n", 1000, fixedFace{size: 10})
	want := []string{"foo", "", "bar", "baz"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q want %q", lines, want)
	}
}

func TestTruncateIdempotentForShortText(t *testing.T) {
	face := fixedFace{size: 10}
	if got := Truncate("short", 100, face); got != "short" {
		t.Fatalf("short text must be unchanged, got %q", got)
	}
}

func TestTruncateLongestFittingPrefix(t *testing.T) {
	face := fixedFace{size: 20} // 每字符 10
	for _, text := range []string{"Hello World", "你好世界欢迎光临", "ab", "a much longer sentence here"} {
		for _, width := range []float64{0, 25, 30, 50, 75, 101} {
			got := Truncate(text, width, face)
			if face.TextWidth(text) <= width {
				if got != text {
					t.Fatalf("fitting text changed: %q -> %q", text, got)
				}
				continue
			}
			if !strings.HasSuffix(got, Ellipsis) {
				t.Fatalf("expected ellipsis suffix, got %q", got)
			}
			prefix := strings.TrimSuffix(got, Ellipsis)
			if !strings.HasPrefix(text, prefix) {
				t.Fatalf("%q is not a prefix of %q", prefix, text)
			}
			chars := SplitChars(text)
			k := CharCount(prefix)
			if k > 0 && face.TextWidth(got) > width {
				t.Fatalf("truncated %q exceeds width %g", got, width)
			}
			if k < len(chars) {
				longer := strings.Join(chars[:k+1], "") + Ellipsis
				if face.TextWidth(longer) <= width {
					t.Fatalf("prefix not longest: %q also fits width %g", longer, width)
				}
			}
		}
	}
}

func TestForceEllipsisOnFittingText(t *testing.T) {
	face := fixedFace{size: 20}
	if got := ForceEllipsis("ab", 100, face); got != "ab..." {
		t.Fatalf("expected ellipsis appended, got %q", got)
	}
	if got := ForceEllipsis("abcdef", 60, face); got != "abc..." {
		t.Fatalf("expected abc..., got %q", got)
	}
}

func TestFitSizeMatchesLinearScan(t *testing.T) {
	face := fixedFace{size: 40}
	text := "poster text that needs to shrink to fit inside the box"
	boxes := []struct{ w, h float64 }{{200, 60}, {150, 100}, {300, 40}, {120, 200}, {1000, 1000}, {60, 10}}
	for _, box := range boxes {
		fits := func(size float64) bool {
			f := face.WithSize(size)
			lines := GreedyWrap(text, box.w, f)
			return float64(len(lines))*LineHeight(size) <= box.h && maxWidth(lines, f) <= box.w
		}
		got := FitSize(MinAutoFitSize, face.size, fits)
		if got > face.size {
			t.Fatalf("fitted size %g exceeds original", got)
		}

		linear := MinAutoFitSize
		found := false
		for s := face.size; s >= MinAutoFitSize; s -= 0.01 {
			if fits(s) {
				linear, found = s, true
				break
			}
		}
		if !found {
			if got != MinAutoFitSize {
				t.Fatalf("box %+v: nothing fits, expected minimum, got %g", box, got)
			}
			continue
		}
		if !fits(got) {
			t.Fatalf("box %+v: chosen size %g does not fit", box, got)
		}
		if got > linear+0.01 || linear-got >= AutoFitPrecision {
			t.Fatalf("box %+v: binary search %g too far from linear scan %g", box, got, linear)
		}
	}
}

func TestFitSizeKeepsOriginalWhenItFits(t *testing.T) {
	calls := 0
	got := FitSize(8, 30, func(float64) bool { calls++; return true })
	if got != 30 || calls != 1 {
		t.Fatalf("expected original size without search, got %g after %d calls", got, calls)
	}
}
