package grading

import (
	"better_results_backend/internal/model"
)

type GridCell struct {
	Date        string   `json:"date"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Period      string   `json:"period"`
	Percentage  *float64 `json:"percentage,omitempty"`
	Band        Band     `json:"band,omitempty"`
}

type GridRow struct {
	Course    string      `json:"course"`
	Icon      *model.Icon `json:"icon,omitempty"`
	Cells     []GridCell  `json:"cells"`
	Total     *Total      `json:"total,omitempty"`
	Formatted string      `json:"formatted"`
	Band      Band        `json:"band,omitempty"`
	IsLow     bool        `json:"isLow"`
}

// GridView 网格视图：一行一个课程，最后是总计
type GridView struct {
	Periods          []string  `json:"periods"`
	Rows             []GridRow `json:"rows"`
	MaxEvaluations   int       `json:"maxEvaluations"`
	Overall          *Total    `json:"overall,omitempty"`
	OverallFormatted string    `json:"overallFormatted"`
	OverallIsLow     bool      `json:"overallIsLow"`
}

// Empty 没有任何课程行
func (v *GridView) Empty() bool {
	return len(v.Rows) == 0
}

// PeriodGrid 单个学期的网格
type PeriodGrid struct {
	Period string    `json:"period"`
	Grid   *GridView `json:"grid"`
}

// BuildGrid 合并所选学期，课程按字母排序，每行内按日期排序。
func BuildGrid(ix *Index, periods []string) *GridView {
	g := CombinedGrid(ix, periods)
	return buildView(ix, g, g.SortedCourses())
}

// PeriodGrids 每个学期一个网格，学期和课程都保持接口返回的顺序。
func PeriodGrids(ix *Index) []PeriodGrid {
	if ix == nil {
		return nil
	}
	out := make([]PeriodGrid, 0, len(ix.periods))
	for _, period := range ix.periods {
		g := CombinedGrid(ix, []string{period})
		out = append(out, PeriodGrid{Period: period, Grid: buildView(ix, g, g.Courses)})
	}
	return out
}

func buildView(ix *Index, g *Grid, courses []string) *GridView {
	view := &GridView{Periods: g.Periods, Rows: make([]GridRow, 0, len(courses))}
	totals := make([]Total, 0, len(courses))

	for _, course := range courses {
		evals := Chronological(g.Evaluations[course])
		row := GridRow{Course: course, Cells: make([]GridCell, 0, len(evals))}
		if ix != nil {
			if icon := ix.Icons[course]; icon.IsIcon() {
				row.Icon = icon
			}
		}
		for _, ev := range evals {
			cell := GridCell{
				Date:        ev.Date,
				Name:        ev.Name,
				Description: ev.Graphic.Description,
				Color:       ev.Graphic.Color,
				Period:      PeriodOf(ix, g.Periods, course, ev),
			}
			if s, ok := ParseScore(ev.Graphic.Description); ok {
				pct := s.Pct()
				cell.Percentage = &pct
				cell.Band = ColorBand(pct)
			}
			row.Cells = append(row.Cells, cell)
		}
		if t, ok := CourseTotal(evals); ok {
			row.Total = &t
			row.Formatted = t.String()
			row.Band = ColorBand(t.Pct)
			row.IsLow = t.Num/t.Den < 0.5
			totals = append(totals, t)
		}
		if len(evals) > view.MaxEvaluations {
			view.MaxEvaluations = len(evals)
		}
		view.Rows = append(view.Rows, row)
	}

	if overall := OverallTotal(totals); overall.Valid() {
		view.Overall = &overall
		view.OverallFormatted = overall.String()
		view.OverallIsLow = overall.Num/overall.Den < 0.5
	}
	return view
}
