package grading

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

type ExportOrder string

const (
	OrderChronological       ExportOrder = "chronological"
	OrderPeriodCourse        ExportOrder = "period-course"
	OrderCourseChronological ExportOrder = "course-chronological"
)

var ErrInvalidExportOrder = errors.New("invalid export order")

// ExportHeader 导出文件的表头
var ExportHeader = []string{"Period", "Course", "Test Date", "Test Name", "Score", "Percentage", "Color Code"}

const xlsxSheet = "Results"

// ParseExportOrder 空字符串默认为按时间排序
func ParseExportOrder(s string) (ExportOrder, error) {
	switch ExportOrder(s) {
	case "":
		return OrderChronological, nil
	case OrderChronological, OrderPeriodCourse, OrderCourseChronological:
		return ExportOrder(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidExportOrder, s)
}

// ExportRow 一行一个测验，无法解析的分数 Percentage 为空
type ExportRow struct {
	Period     string
	Course     string
	Date       string
	Name       string
	Score      string
	Percentage string
	Color      string

	pct         float64
	hasPct      bool
	periodIndex int
}

func (r ExportRow) fields() []string {
	return []string{r.Period, r.Course, r.Date, r.Name, r.Score, r.Percentage, r.Color}
}

// ExportRows 列出所选学期（为空时为全部学期）的所有测验并排序。
func ExportRows(ix *Index, periods []string, order ExportOrder) []ExportRow {
	if ix == nil {
		return nil
	}
	if len(periods) == 0 {
		periods = ix.periods
	}
	g := CombinedGrid(ix, periods)

	var rows []ExportRow
	for pi, period := range g.Periods {
		for _, course := range ix.courses[period] {
			for _, ev := range ix.evals[period][course] {
				row := ExportRow{
					Period:      period,
					Course:      course,
					Date:        ev.Date,
					Name:        ev.Name,
					Score:       ev.Graphic.Description,
					Color:       ev.Graphic.Color,
					periodIndex: pi,
				}
				if s, ok := ParseScore(ev.Graphic.Description); ok {
					row.pct = s.Pct()
					row.hasPct = true
					row.Percentage = FormatPercent(row.pct)
				}
				rows = append(rows, row)
			}
		}
	}

	slices.SortStableFunc(rows, func(a, b ExportRow) int {
		switch order {
		case OrderPeriodCourse:
			if a.periodIndex != b.periodIndex {
				return a.periodIndex - b.periodIndex
			}
			if c := strings.Compare(a.Course, b.Course); c != 0 {
				return c
			}
		case OrderCourseChronological:
			if c := strings.Compare(a.Course, b.Course); c != 0 {
				return c
			}
		}
		return strings.Compare(a.Date, b.Date)
	})
	return rows
}

// WriteCSV 每个字段都加双引号，内部的双引号写两次
func WriteCSV(w io.Writer, rows []ExportRow) error {
	bw := bufio.NewWriter(w)
	writeLine := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
			bw.WriteByte('"')
		}
		bw.WriteByte('\n')
	}
	writeLine(ExportHeader)
	for _, r := range rows {
		writeLine(r.fields())
	}
	return bw.Flush()
}

// WriteXLSX 单个工作表，百分比列写成数字
func WriteXLSX(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}
	header := make([]interface{}, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{r.Period, r.Course, r.Date, r.Name, r.Score, nil, r.Color}
		if r.hasPct {
			values[5] = r.pct
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
