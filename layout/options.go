package layout

import (
	"fmt"
	"strings"
)

// Strategy 是文本元素的布局策略。
type Strategy int

const (
	StrategyAuto Strategy = iota // 交给特征分析器决定
	StrategySimple
	StrategyAdvanced
)

func (s Strategy) String() string {
	switch s {
	case StrategySimple:
		return "simple"
	case StrategyAdvanced:
		return "advanced"
	default:
		return "auto"
	}
}

// MarshalText 让调试 JSON 输出策略名称。
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ParseStrategy 解析 -strategy 参数。
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StrategyAuto, nil
	case "simple":
		return StrategySimple, nil
	case "advanced", "paragraph":
		return StrategyAdvanced, nil
	}
	return StrategyAuto, fmt.Errorf("未知布局策略 %q（可选 auto/simple/advanced）", s)
}

// Options 配置策略选择。
type Options struct {
	// Force 非 Auto 时所有文本元素都使用该策略。
	Force Strategy
	// StrictDisplayMode 让策略只由显示模式决定，关闭 WordWrap 的兼容规则。
	StrictDisplayMode bool
}
