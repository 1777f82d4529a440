package grading

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type YAxis string

const (
	YAxisPercentage YAxis = "percentage"
	YAxisCumulative YAxis = "cumulative"
)

type XAxis string

const (
	XAxisDate   XAxis = "date"
	XAxisNumber XAxis = "number"
)

type GraphPoint struct {
	Label       string  `json:"label"`
	Value       float64 `json:"value"`
	Band        Band    `json:"band"`
	Color       string  `json:"color"`
	Period      string  `json:"period"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

type GraphSeries struct {
	Title   string       `json:"title"`
	Subject string       `json:"subject"`
	Periods []string     `json:"periods"`
	YAxis   YAxis        `json:"yAxis"`
	XAxis   XAxis        `json:"xAxis"`
	Points  []GraphPoint `json:"points"`
}

// Empty 没有可绘制的数值分数
func (s *GraphSeries) Empty() bool {
	return len(s.Points) == 0
}

// Subjects 所选学期中出现过的课程，按字母排序
func Subjects(ix *Index, periods []string) []string {
	subjects := CombinedGrid(ix, periods).SortedCourses()
	if subjects == nil {
		return []string{}
	}
	return subjects
}

// DefaultSubject 当前课程仍然可用时保留，否则取第一个；没有课程时返回空字符串。
func DefaultSubject(subjects []string, current string) string {
	if current != "" && slices.Contains(subjects, current) {
		return current
	}
	if len(subjects) > 0 {
		return subjects[0]
	}
	return ""
}

// BuildGraph 单个课程在所选学期中的成绩曲线。只有可解析的测验会成为数据点。
func BuildGraph(ix *Index, periods []string, subject string, y YAxis, x XAxis) *GraphSeries {
	g := CombinedGrid(ix, periods)
	series := &GraphSeries{
		Subject: subject,
		Periods: g.Periods,
		YAxis:   y,
		XAxis:   x,
		Points:  []GraphPoint{},
	}
	if len(g.Periods) > 0 && subject != "" {
		series.Title = fmt.Sprintf("%s: %s", strings.Join(g.Periods, ", "), subject)
	}

	tests := Chronological(g.Evaluations[subject])
	cumulative := CumulativeSeries(tests)

	i := 0
	for _, ev := range tests {
		s, ok := ParseScore(ev.Graphic.Description)
		if !ok {
			continue
		}
		value := s.Pct()
		if y == YAxisCumulative {
			value = cumulative[i]
		}
		i++
		band := ColorBand(value)
		series.Points = append(series.Points, GraphPoint{
			Label:       pointLabel(x, ev.Date, i),
			Value:       value,
			Band:        band,
			Color:       band.Hex(),
			Period:      PeriodOf(ix, g.Periods, subject, ev),
			Date:        ev.Date,
			Name:        ev.Name,
			Description: ev.Graphic.Description,
		})
	}
	return series
}

func pointLabel(x XAxis, date string, n int) string {
	if x == XAxisDate {
		if t, ok := parseDate(date); ok {
			return t.Format("02/01/2006")
		}
	}
	return fmt.Sprintf("Test %d", n)
}

// parseDate 接受 "2006-01-02" 或带时间的 ISO 字符串
func parseDate(s string) (time.Time, bool) {
	if len(s) < len(dateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
