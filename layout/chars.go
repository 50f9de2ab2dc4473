package layout

// charLen 按 UTF-8 首字节判断一个字符占用的字节数。
// 非法首字节与被截断的序列按单字节处理，保证总能前进。
func charLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// SplitChars 把字符串切成完整的 UTF-8 字符，绝不拆开多字节序列。
func SplitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for i := 0; i < len(s); {
		n := charLen(s[i])
		if i+n > len(s) {
			n = len(s) - i
		}
		chars = append(chars, s[i:i+n])
		i += n
	}
	return chars
}

// charBoundaries 返回每个字符结束处的字节偏移，boundaries[k-1] 即前 k 个字符的长度。
func charBoundaries(s string) []int {
	bounds := make([]int, 0, len(s))
	for i := 0; i < len(s); {
		n := charLen(s[i])
		if i+n > len(s) {
			n = len(s) - i
		}
		i += n
		bounds = append(bounds, i)
	}
	return bounds
}

// CharCount 返回字符数。
func CharCount(s string) int { return len(charBoundaries(s)) }
