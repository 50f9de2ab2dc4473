package colors

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	colorLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Hex", Pattern: `#[0-9A-Fa-f]*`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `[(),]`},
	})

	exprParser = participle.MustBuild[Expr](
		participle.Lexer(colorLexer),
		participle.Elide("Whitespace"),
	)
)

// Transparent 表示“未设置”的颜色，富文本片段用它表示继承。
var Transparent = color.NRGBA{}

// Black 是无法识别时的兜底颜色。
var Black = color.NRGBA{A: 255}

var named = map[string]color.NRGBA{
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"black":       Black,
	"red":         {R: 255, A: 255},
	"green":       {G: 255, A: 255},
	"blue":        {B: 255, A: 255},
	"transparent": Transparent,
}

// Expr 是一个颜色表达式：#hex、rgb()/rgba() 调用或颜色名。
type Expr struct {
	Hex  *string `parser:"  @Hex"`
	Call *Call   `parser:"| @@"`
}

// Call 覆盖 rgb(...)、rgba(...) 以及不带括号的颜色名。
type Call struct {
	Name string    `parser:"@Ident"`
	Args []float64 `parser:"( '(' @Number ( ',' @Number )* ')' )?"`
}

// Parse 解析颜色字符串，无法识别时返回黑色。
func Parse(s string) color.NRGBA {
	c, err := ParseStrict(s)
	if err != nil {
		return Black
	}
	return c
}

// ParseStrict 解析颜色字符串并报告无法识别的输入。
func ParseStrict(s string) (color.NRGBA, error) {
	src := strings.TrimSpace(s)
	if src == "" {
		return Black, fmt.Errorf("颜色为空")
	}
	expr, err := exprParser.ParseString("", src)
	if err != nil {
		return Black, fmt.Errorf("无法解析颜色 %q: %w", s, err)
	}
	return expr.Color()
}

// Color 将表达式求值为颜色。
func (e *Expr) Color() (color.NRGBA, error) {
	switch {
	case e == nil:
		return Black, fmt.Errorf("颜色表达式为空")
	case e.Hex != nil:
		return parseHex(*e.Hex)
	case e.Call != nil:
		return e.Call.Color()
	}
	return Black, fmt.Errorf("颜色表达式为空")
}

// Color 求值 rgb/rgba 调用或颜色名。
func (c *Call) Color() (color.NRGBA, error) {
	name := strings.ToLower(c.Name)
	if len(c.Args) == 0 {
		if col, ok := named[name]; ok {
			return col, nil
		}
		return Black, fmt.Errorf("未知颜色名 %q", c.Name)
	}
	switch name {
	case "rgb":
		if len(c.Args) != 3 {
			return Black, fmt.Errorf("rgb() 需要 3 个参数，得到 %d 个", len(c.Args))
		}
		return color.NRGBA{R: channel(c.Args[0]), G: channel(c.Args[1]), B: channel(c.Args[2]), A: 255}, nil
	case "rgba":
		if len(c.Args) != 4 {
			return Black, fmt.Errorf("rgba() 需要 4 个参数，得到 %d 个", len(c.Args))
		}
		alpha := clamp(c.Args[3], 0, 1)
		return color.NRGBA{
			R: channel(c.Args[0]),
			G: channel(c.Args[1]),
			B: channel(c.Args[2]),
			A: uint8(math.Round(alpha * 255)),
		}, nil
	}
	return Black, fmt.Errorf("未知颜色函数 %s()", c.Name)
}

// parseHex 支持 #RRGGBB 与 #RRGGBBAA（RGBA 顺序）。
func parseHex(s string) (color.NRGBA, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 && len(digits) != 8 {
		return Black, fmt.Errorf("十六进制颜色 %s 长度无效", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Black, fmt.Errorf("十六进制颜色 %s 无效: %w", s, err)
	}
	if len(digits) == 6 {
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex 把颜色格式化为 #RRGGBBAA，调试输出使用。
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// IsTransparent 判断颜色是否为完全透明（继承哨兵）。
func IsTransparent(c color.NRGBA) bool { return c.A == 0 }

func channel(v float64) uint8 { return uint8(math.Round(clamp(v, 0, 255))) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
