package grading

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// CurrentYearKeyword year=current 表示 now 所在的学年
	CurrentYearKeyword = "current"

	minSchoolYear = 2000
	maxSchoolYear = 2100
)

var ErrInvalidSchoolYear = errors.New("invalid school year")

// SchoolYear 学年从 9 月 1 日到次年 8 月 31 日，Start 为开始的年份
type SchoolYear struct {
	Start int
}

func (y SchoolYear) StartDate() string {
	return fmt.Sprintf("%04d-09-01", y.Start)
}

func (y SchoolYear) EndDate() string {
	return fmt.Sprintf("%04d-08-31", y.Start+1)
}

// Label "2024-2025"
func (y SchoolYear) Label() string {
	return fmt.Sprintf("%d-%d", y.Start, y.Start+1)
}

// Contains 按字符串比较 ISO 日期
func (y SchoolYear) Contains(date string) bool {
	day := dayOf(date)
	return day >= y.StartDate() && day <= y.EndDate()
}

// CurrentSchoolYear now 所在的学年
func CurrentSchoolYear(now time.Time) SchoolYear {
	if now.Month() >= time.September {
		return SchoolYear{Start: now.Year()}
	}
	return SchoolYear{Start: now.Year() - 1}
}

// ParseSchoolYear 解析 year 参数：空表示不限学年，"current" 为 now 所在学年，其他为开始年份
func ParseSchoolYear(s string, now time.Time) (*SchoolYear, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return nil, nil
	case CurrentYearKeyword:
		y := CurrentSchoolYear(now)
		return &y, nil
	}
	start, err := strconv.Atoi(s)
	if err != nil || start < minSchoolYear || start > maxSchoolYear {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSchoolYear, s)
	}
	return &SchoolYear{Start: start}, nil
}
