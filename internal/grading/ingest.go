package grading

import (
	"better_results_backend/internal/model"
	"fmt"
)

// Index 学期 -> 课程 -> 测验列表。
// 学期和课程保留首次出现的顺序，课程内的测验按输入顺序，不保证按日期排序。
type Index struct {
	periods  []string
	courses  map[string][]string
	evals    map[string]map[string][]model.Evaluation
	Icons    map[string]*model.Icon
	Latest   string
	Warnings []string
}

func newIndex() *Index {
	return &Index{
		courses: make(map[string][]string),
		evals:   make(map[string]map[string][]model.Evaluation),
		Icons:   make(map[string]*model.Icon),
	}
}

// Ingest 过滤出 normal 记录并建立索引。
// 第一个出现的学期即为最新学期（接口按时间倒序返回），不按日期重新推算。
func Ingest(records []model.EvaluationRecord) *Index {
	ix := newIndex()
	for i, rec := range records {
		if rec.Type != model.EvaluationTypeNormal {
			continue
		}
		if rec.Period == nil || rec.Period.Name == "" {
			ix.Warnings = append(ix.Warnings, fmt.Sprintf("record %d (%q): missing period name, skipped", i, rec.Name))
			continue
		}
		if rec.Courses == nil {
			ix.Warnings = append(ix.Warnings, fmt.Sprintf("record %d (%q): missing courses, skipped", i, rec.Name))
			continue
		}

		period := rec.Period.Name
		if ix.Latest == "" {
			ix.Latest = period
		}
		if _, ok := ix.evals[period]; !ok {
			ix.periods = append(ix.periods, period)
			ix.evals[period] = make(map[string][]model.Evaluation)
		}

		for _, course := range rec.Courses {
			if _, ok := ix.evals[period][course.Name]; !ok {
				ix.courses[period] = append(ix.courses[period], course.Name)
			}
			ix.evals[period][course.Name] = append(ix.evals[period][course.Name], model.Evaluation{
				Date:    rec.Date,
				Name:    rec.Name,
				Graphic: rec.Graphic,
			})
			ix.Icons[course.Name] = course.Graphic
		}
	}
	return ix
}

// Periods 学期名，按首次出现顺序
func (ix *Index) Periods() []string {
	return append([]string(nil), ix.periods...)
}

func (ix *Index) HasPeriod(period string) bool {
	_, ok := ix.evals[period]
	return ok
}

// Courses 某学期下的课程，按首次出现顺序
func (ix *Index) Courses(period string) []string {
	return append([]string(nil), ix.courses[period]...)
}

// Evaluations 返回副本，调用方可以随意排序
func (ix *Index) Evaluations(period, course string) []model.Evaluation {
	return append([]model.Evaluation(nil), ix.evals[period][course]...)
}

// Len 索引中的测验总数（一条记录有多个课程时按课程分别计数）
func (ix *Index) Len() int {
	n := 0
	for _, courses := range ix.evals {
		for _, evals := range courses {
			n += len(evals)
		}
	}
	return n
}
