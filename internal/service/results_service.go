package service

import (
	"better_results_backend/internal/grading"
	"better_results_backend/internal/model"
	"better_results_backend/internal/util"
	"better_results_backend/pkg/logger"
	"better_results_backend/pkg/monitoring"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EvaluationFetcher 拉取原始评估记录，SmartschoolClient 实现
type EvaluationFetcher interface {
	FetchEvaluations(ctx context.Context, session string, year *grading.SchoolYear) ([]model.EvaluationRecord, error)
}

// DatasetCache 原始记录缓存，DatasetCacheRepository 实现
type DatasetCache interface {
	Get(ctx context.Context, sessionHash, schoolYear string) ([]model.EvaluationRecord, bool, error)
	Set(ctx context.Context, sessionHash, schoolYear string, records []model.EvaluationRecord, ttl time.Duration) error
	DeleteSession(ctx context.Context, sessionHash string) (int, error)
}

// ResultsQuery 各个结果接口共用的查询条件
type ResultsQuery struct {
	Year       *grading.SchoolYear
	Filter     grading.FilterMode
	FilterDate string
	Periods    []string
}

// yearKey 缓存键中的学年部分
func (q ResultsQuery) yearKey() string {
	if q.Year == nil {
		return "all"
	}
	return q.Year.Label()
}

type Overview struct {
	SchoolYear  string                 `json:"schoolYear"`
	Periods     []string               `json:"periods"`
	Latest      string                 `json:"latest"`
	Courses     map[string][]string    `json:"courses"`
	Icons       map[string]*model.Icon `json:"icons"`
	Evaluations int                    `json:"evaluations"`
	Warnings    []string               `json:"warnings"`
}

type CourseTotalView struct {
	Course    string         `json:"course"`
	Total     *grading.Total `json:"total,omitempty"`
	Formatted string         `json:"formatted"`
	Band      grading.Band   `json:"band,omitempty"`
	IsLow     bool           `json:"isLow"`
}

type TotalsView struct {
	Periods          []string          `json:"periods"`
	Courses          []CourseTotalView `json:"courses"`
	Overall          *grading.Total    `json:"overall,omitempty"`
	OverallFormatted string            `json:"overallFormatted"`
	OverallIsLow     bool              `json:"overallIsLow"`
}

type GraphView struct {
	Subjects []string             `json:"subjects"`
	Series   *grading.GraphSeries `json:"series"`
}

type ResultsService struct {
	Fetcher EvaluationFetcher
	Cache   DatasetCache

	mu       sync.RWMutex
	cacheTTL time.Duration
}

func NewResultsService(fetcher EvaluationFetcher, cache DatasetCache, cacheTTL time.Duration) *ResultsService {
	return &ResultsService{
		Fetcher:  fetcher,
		Cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// SetCacheTTL 配置热更新
func (s *ResultsService) SetCacheTTL(ttl time.Duration) {
	s.mu.Lock()
	s.cacheTTL = ttl
	s.mu.Unlock()
}

func (s *ResultsService) ttl() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cacheTTL
}

func (s *ResultsService) records(ctx context.Context, session string, q ResultsQuery) ([]model.EvaluationRecord, error) {
	hash := util.HashSession(session)
	yearKey := q.yearKey()
	cacheOn := s.Cache != nil && s.ttl() > 0

	if cacheOn {
		records, ok, err := s.Cache.Get(ctx, hash, yearKey)
		if err != nil {
			logger.Log.Warn("Dataset cache lookup failed", zap.String("year", yearKey), zap.Error(err))
		}
		if ok {
			monitoring.CacheLookups.WithLabelValues("hit").Inc()
			return records, nil
		}
		monitoring.CacheLookups.WithLabelValues("miss").Inc()
	}

	records, err := s.Fetcher.FetchEvaluations(ctx, session, q.Year)
	if err != nil {
		return nil, err
	}

	if cacheOn {
		if err := s.Cache.Set(ctx, hash, yearKey, records, s.ttl()); err != nil {
			logger.Log.Warn("Dataset cache store failed", zap.String("year", yearKey), zap.Error(err))
		}
	}
	return records, nil
}

// LoadIndex 缓存 -> Smartschool -> 日期过滤 -> Ingest
func (s *ResultsService) LoadIndex(ctx context.Context, session string, q ResultsQuery) (*grading.Index, error) {
	records, err := s.records(ctx, session, q)
	if err != nil {
		return nil, err
	}

	if q.Year != nil {
		inYear := grading.FilterSchoolYear(records, q.Year)
		if dropped := len(records) - len(inYear); dropped > 0 {
			logger.Log.Warn("Records outside school year dropped",
				zap.String("year", q.Year.Label()), zap.Int("count", dropped))
		}
		records = inYear
	}
	records = grading.FilterRecords(records, q.Filter, q.FilterDate)
	ix := grading.Ingest(records)

	normal := 0
	for _, rec := range records {
		if rec.Type == model.EvaluationTypeNormal {
			normal++
		}
	}
	monitoring.RecordsIngested.Add(float64(normal - len(ix.Warnings)))
	monitoring.RecordsSkipped.Add(float64(len(ix.Warnings)))
	for _, w := range ix.Warnings {
		logger.Log.Warn("Evaluation record skipped", zap.String("reason", w))
	}

	return ix, nil
}

// selectedPeriods 没有选择时默认最新学期
func selectedPeriods(ix *grading.Index, periods []string) []string {
	if len(periods) > 0 {
		return periods
	}
	if ix.Latest != "" {
		return []string{ix.Latest}
	}
	return nil
}

func (s *ResultsService) Overview(ctx context.Context, session string, q ResultsQuery) (*Overview, error) {
	ix, err := s.LoadIndex(ctx, session, q)
	if err != nil {
		return nil, err
	}

	periods := ix.Periods()
	courses := make(map[string][]string, len(periods))
	for _, p := range periods {
		courses[p] = ix.Courses(p)
	}

	ov := &Overview{
		Periods:     periods,
		Latest:      ix.Latest,
		Courses:     courses,
		Icons:       ix.Icons,
		Evaluations: ix.Len(),
		Warnings:    ix.Warnings,
	}
	if q.Year != nil {
		ov.SchoolYear = q.Year.Label()
	}
	if ov.Periods == nil {
		ov.Periods = []string{}
	}
	if ov.Warnings == nil {
		ov.Warnings = []string{}
	}
	return ov, nil
}

func (s *ResultsService) Grid(ctx context.Context, session string, q ResultsQuery) (*grading.GridView, error) {
	ix, err := s.LoadIndex(ctx, session, q)
	if err != nil {
		return nil, err
	}
	return grading.BuildGrid(ix, selectedPeriods(ix, q.Periods)), nil
}

func (s *ResultsService) PeriodGrids(ctx context.Context, session string, q ResultsQuery) ([]grading.PeriodGrid, error) {
	ix, err := s.LoadIndex(ctx, session, q)
	if err != nil {
		return nil, err
	}
	grids := grading.PeriodGrids(ix)
	if grids == nil {
		grids = []grading.PeriodGrid{}
	}
	return grids, nil
}

// Graph subject 为空时取第一个课程；指定了不存在的课程返回 ErrUnknownSubject
func (s *ResultsService) Graph(ctx context.Context, session string, q ResultsQuery, subject string, y grading.YAxis, x grading.XAxis) (*GraphView, error) {
	ix, err := s.LoadIndex(ctx, session, q)
	if err != nil {
		return nil, err
	}

	periods := selectedPeriods(ix, q.Periods)
	subjects := grading.Subjects(ix, periods)
	if subject != "" && !slices.Contains(subjects, subject) {
		return nil, fmt.Errorf("%w: %q", util.ErrUnknownSubject, subject)
	}
	subject = grading.DefaultSubject(subjects, subject)

	return &GraphView{
		Subjects: subjects,
		Series:   grading.BuildGraph(ix, periods, subject, y, x),
	}, nil
}

func (s *ResultsService) Totals(ctx context.Context, session string, q ResultsQuery) (*TotalsView, error) {
	grid, err := s.Grid(ctx, session, q)
	if err != nil {
		return nil, err
	}

	view := &TotalsView{
		Periods:          grid.Periods,
		Courses:          make([]CourseTotalView, 0, len(grid.Rows)),
		Overall:          grid.Overall,
		OverallFormatted: grid.OverallFormatted,
		OverallIsLow:     grid.OverallIsLow,
	}
	if view.Periods == nil {
		view.Periods = []string{}
	}
	for _, row := range grid.Rows {
		view.Courses = append(view.Courses, CourseTotalView{
			Course:    row.Course,
			Total:     row.Total,
			Formatted: row.Formatted,
			Band:      row.Band,
			IsLow:     row.IsLow,
		})
	}
	return view, nil
}

// InvalidateCache 删除该会话所有学年的缓存数据
func (s *ResultsService) InvalidateCache(ctx context.Context, session string) (int, error) {
	if s.Cache == nil {
		return 0, nil
	}
	return s.Cache.DeleteSession(ctx, util.HashSession(session))
}
