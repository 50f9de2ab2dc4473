package binding

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// LoadFile 读取 JSON 数据文件，作为 Interpolate 的数据源。
func LoadFile(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取数据文件 %s 失败: %w", path, err)
	}
	return Decode(raw)
}

// Decode 解析内联 JSON 数据。
func Decode(raw []byte) (any, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// ${path|默认值} 在路径不存在时使用默认值；没有默认值时保留原占位符。
func Interpolate(text string, data any) string {
	if !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path, fallback, hasFallback := strings.Cut(groups[1], "|")
		path = strings.TrimSpace(path)
		if path == "" {
			return match
		}
		if data != nil {
			if val, ok := resolvePath(data, path); ok && val != nil {
				return format(val)
			}
		}
		if hasFallback {
			return fallback
		}
		return match
	})
}

// format 让整数形式的 JSON 数字不带小数点输出。
func format(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func resolvePath(data any, path string) (any, bool) {
	current := data
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			current, ok = descendMap(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []string) {
	name := segment
	indexes := []string{}
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 {
			if rest[0] != '[' {
				break
			}
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
