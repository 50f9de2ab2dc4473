package fonts

import (
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackFamily 是内置回退字体的族名。
const FallbackFamily = "Go"

var builtin = map[string][]byte{
	"go":         goregular.TTF,
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
	"go-italic":  goitalic.TTF,
	"go-mono":    gomono.TTF,
}

// Builtin 返回内置字体的字节数据，名称大小写不敏感，可写为 "builtin:Go-Bold"。
func Builtin(name string) ([]byte, bool) {
	name = strings.TrimPrefix(strings.TrimPrefix(name, "builtin:"), "built-in:")
	data, ok := builtin[strings.ToLower(name)]
	return data, ok
}

// Fallback 返回内置回退字体（Go Regular）。
func Fallback() []byte { return goregular.TTF }
