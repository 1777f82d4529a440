package grading

import (
	"better_results_backend/internal/model"
	"slices"
	"strings"
)

// Total 分子、分母分别求和后再算百分比，从不平均百分比
type Total struct {
	Num float64 `json:"num"`
	Den float64 `json:"den"`
	Pct float64 `json:"pct"`
}

func newTotal(num, den float64) Total {
	return Total{Num: num, Den: den, Pct: Percent(num, den)}
}

// Valid 至少有一个可解析的分数
func (t Total) Valid() bool {
	return t.Den > 0
}

func (t Total) String() string {
	if !t.Valid() {
		return ""
	}
	return FormatPercent(t.Pct)
}

// CourseTotal 对所有可解析的分数求和；没有任何可解析分数时返回 false。
func CourseTotal(evals []model.Evaluation) (Total, bool) {
	var num, den float64
	for _, ev := range evals {
		if s, ok := ParseScore(ev.Graphic.Description); ok {
			num += s.Num
			den += s.Den
		}
	}
	if den == 0 {
		return Total{}, false
	}
	return newTotal(num, den), true
}

// OverallTotal 跨课程汇总，输入为空时返回零值
func OverallTotal(totals []Total) Total {
	var num, den float64
	for _, t := range totals {
		num += t.Num
		den += t.Den
	}
	if den == 0 {
		return Total{}
	}
	return newTotal(num, den)
}

// Grid 多个学期合并后的课程 -> 测验列表
type Grid struct {
	Periods     []string
	Courses     []string
	Evaluations map[string][]model.Evaluation
}

// CombinedGrid 按选择顺序拼接每个课程在各学期的测验，不去重。
// 未知学期被忽略，重复的学期名只算一次。
func CombinedGrid(ix *Index, selectedPeriods []string) *Grid {
	g := &Grid{Evaluations: make(map[string][]model.Evaluation)}
	if ix == nil {
		return g
	}
	seen := make(map[string]bool, len(selectedPeriods))
	for _, period := range selectedPeriods {
		if seen[period] || !ix.HasPeriod(period) {
			continue
		}
		seen[period] = true
		g.Periods = append(g.Periods, period)
		for _, course := range ix.courses[period] {
			if _, ok := g.Evaluations[course]; !ok {
				g.Courses = append(g.Courses, course)
			}
			g.Evaluations[course] = append(g.Evaluations[course], ix.evals[period][course]...)
		}
	}
	return g
}

// Empty 没有选中任何有效学期
func (g *Grid) Empty() bool {
	return len(g.Courses) == 0
}

// SortedCourses 课程名按字母排序
func (g *Grid) SortedCourses() []string {
	out := append([]string(nil), g.Courses...)
	slices.Sort(out)
	return out
}

// Chronological 按 ISO 日期字符串升序的稳定排序，返回副本
func Chronological(evals []model.Evaluation) []model.Evaluation {
	out := append([]model.Evaluation(nil), evals...)
	slices.SortStableFunc(out, func(a, b model.Evaluation) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

// CumulativeSeries 逐个累加后的百分比（未取整）。无法解析的测验不占位。
func CumulativeSeries(sorted []model.Evaluation) []float64 {
	var num, den float64
	out := make([]float64, 0, len(sorted))
	for _, ev := range sorted {
		s, ok := ParseScore(ev.Graphic.Description)
		if !ok {
			continue
		}
		num += s.Num
		den += s.Den
		out = append(out, num/den*100)
	}
	return out
}

// Dedupe 按 (date, name) 去重，保留第一次出现。CombinedGrid 默认不调用。
func Dedupe(evals []model.Evaluation) []model.Evaluation {
	seen := make(map[model.EvaluationKey]bool, len(evals))
	out := make([]model.Evaluation, 0, len(evals))
	for _, ev := range evals {
		if seen[ev.Key()] {
			continue
		}
		seen[ev.Key()] = true
		out = append(out, ev)
	}
	return out
}

// UnknownPeriod PeriodOf 找不到归属时的占位名
const UnknownPeriod = "Unknown Period"

// PeriodOf 在给定学期中查找测验所属的学期，按 (date, name) 精确匹配，返回第一个命中。
func PeriodOf(ix *Index, periods []string, course string, ev model.Evaluation) string {
	if ix == nil {
		return UnknownPeriod
	}
	for _, period := range periods {
		for _, candidate := range ix.evals[period][course] {
			if candidate.Key() == ev.Key() {
				return period
			}
		}
	}
	return UnknownPeriod
}

// Band 本模块自己的百分比色带，与学校给出的 color 无关
type Band string

const (
	BandRed        Band = "red"
	BandYellow     Band = "yellow"
	BandLightGreen Band = "light-green"
	BandDarkGreen  Band = "dark-green"
)

// ColorBand 下界闭区间：50 为 yellow，65 为 light-green，85 为 dark-green
func ColorBand(pct float64) Band {
	switch {
	case pct < 50:
		return BandRed
	case pct < 65:
		return BandYellow
	case pct < 85:
		return BandLightGreen
	default:
		return BandDarkGreen
	}
}

// Hex 图表渲染使用的颜色
func (b Band) Hex() string {
	switch b {
	case BandRed:
		return "#ff0000"
	case BandYellow:
		return "#ffd531"
	case BandLightGreen:
		return "#3bd63d"
	case BandDarkGreen:
		return "#2b8114"
	}
	return ""
}
