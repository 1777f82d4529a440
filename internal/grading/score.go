// Package grading 把 Smartschool 的测验记录整理成按学期/课程的索引，并计算分数汇总。
// 包内全部是纯函数，没有 I/O，也不保存任何选择状态。
package grading

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// 前缀匹配：分数后面的内容被忽略
	scorePattern = regexp.MustCompile(`^\s*([0-9,.]+)\s*/\s*([0-9,.]+)`)
	// 网格单元格使用的严格匹配
	strictScorePattern = regexp.MustCompile(`^\s*([0-9,.]+)\s*/\s*([0-9,.]+)\s*$`)
)

// Score 分子/分母，Den 永远大于 0
type Score struct {
	Num float64 `json:"num"`
	Den float64 `json:"den"`
}

// Pct 保留一位小数的百分比
func (s Score) Pct() float64 {
	return Percent(s.Num, s.Den)
}

// ParseScore 解析 "8/15"、"3,5/10" 这类分数文本，失败时返回 false。
func ParseScore(description string) (Score, bool) {
	return parseWith(scorePattern, description)
}

// ParseScoreStrict 与 ParseScore 相同，但分数之后不允许有其他内容。
func ParseScoreStrict(description string) (Score, bool) {
	return parseWith(strictScorePattern, description)
}

func parseWith(re *regexp.Regexp, description string) (Score, bool) {
	m := re.FindStringSubmatch(description)
	if m == nil {
		return Score{}, false
	}
	num, ok := parseNumber(m[1])
	if !ok {
		return Score{}, false
	}
	den, ok := parseNumber(m[2])
	if !ok || den <= 0 {
		return Score{}, false
	}
	return Score{Num: num, Den: den}, true
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// RoundPercent 保留一位小数，math.Round 为四舍五入（远离零）
func RoundPercent(p float64) float64 {
	return math.Round(p*10) / 10
}

// Percent num/den 的百分比，den 为 0 时返回 0
func Percent(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return RoundPercent(num / den * 100)
}

// FormatPercent 53.3 -> "53.3%"
func FormatPercent(p float64) string {
	return strconv.FormatFloat(RoundPercent(p), 'f', 1, 64) + "%"
}
