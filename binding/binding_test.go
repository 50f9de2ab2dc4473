package binding

import "testing"

func TestInterpolate(t *testing.T) {
	data, err := Decode([]byte(`{"user":{"name":"小明","tags":["vip","new"]},"price":39,"ratio":0.5}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	cases := []struct {
		in, want string
	}{
		{"你好 ${user.name}", "你好 小明"},
		{"${user.tags[1]}", "new"},
		{"¥${price}", "¥39"},
		{"${ratio}", "0.5"},
		{"${missing}", "${missing}"},
		{"${missing|默认}", "默认"},
		{"${user.name|默认}", "小明"},
		{"无占位符", "无占位符"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, data); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInterpolateWithoutData(t *testing.T) {
	if got := Interpolate("${a.b|兜底}", nil); got != "兜底" {
		t.Fatalf("expected fallback without data, got %q", got)
	}
	if got := Interpolate("${a.b}", nil); got != "${a.b}" {
		t.Fatalf("expected placeholder kept, got %q", got)
	}
}
