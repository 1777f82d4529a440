package util

import (
	"strconv"
	"strings"
)

// MustParseInt 将字符串转换为整数，解析失败时返回 0
func MustParseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// SplitList "a, b,,c" -> [a b c]，保持原有顺序
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
