package grading

import (
	"better_results_backend/internal/model"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

type FilterMode string

const (
	FilterNone   FilterMode = ""
	FilterBefore FilterMode = "before"
	FilterAfter  FilterMode = "after"
)

var ErrInvalidFilter = errors.New("invalid date filter")

// ParseFilter 校验过滤方式和日期，mode 为空表示不过滤
func ParseFilter(mode, date string) (FilterMode, string, error) {
	switch FilterMode(mode) {
	case FilterNone:
		return FilterNone, "", nil
	case FilterBefore, FilterAfter:
	default:
		return FilterNone, "", fmt.Errorf("%w: unknown mode %q", ErrInvalidFilter, mode)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return FilterNone, "", fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidFilter, date)
	}
	return FilterMode(mode), date, nil
}

// dayOf 只取 ISO 日期的 YYYY-MM-DD 部分，时间和时区不参与比较
func dayOf(date string) string {
	if len(date) > len(dateLayout) {
		return date[:len(dateLayout)]
	}
	return date
}

// FilterRecords 在 Ingest 之前按日期过滤原始记录，两端都包含，按天比较字符串。
func FilterRecords(records []model.EvaluationRecord, mode FilterMode, date string) []model.EvaluationRecord {
	if mode == FilterNone {
		return records
	}
	out := make([]model.EvaluationRecord, 0, len(records))
	for _, rec := range records {
		day := dayOf(rec.Date)
		switch mode {
		case FilterBefore:
			if day <= date {
				out = append(out, rec)
			}
		case FilterAfter:
			if day >= date {
				out = append(out, rec)
			}
		}
	}
	return out
}

// FilterSchoolYear 去掉不在学年内的记录，year 为 nil 时原样返回
func FilterSchoolYear(records []model.EvaluationRecord, year *SchoolYear) []model.EvaluationRecord {
	if year == nil {
		return records
	}
	out := make([]model.EvaluationRecord, 0, len(records))
	for _, rec := range records {
		if year.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}
