package controller

import (
	"better_results_backend/internal/grading"
	"better_results_backend/internal/middleware"
	"better_results_backend/internal/model"
	"better_results_backend/internal/service"
	"better_results_backend/internal/util"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	records []model.EvaluationRecord
	err     error
}

func (s *stubFetcher) FetchEvaluations(ctx context.Context, session string, year *grading.SchoolYear) ([]model.EvaluationRecord, error) {
	return s.records, s.err
}

type nopStorage struct{}

func (nopStorage) Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	return "/uploads/" + objectKey, nil
}

func (nopStorage) Delete(ctx context.Context, objectKey string) error {
	return nil
}

type sliceRecords struct {
	records []model.ExportRecord
}

func (s *sliceRecords) Create(ctx context.Context, r *model.ExportRecord) error {
	r.ID = "archived"
	s.records = append(s.records, *r)
	return nil
}

func (s *sliceRecords) ListBySession(ctx context.Context, hash string, limit int) ([]model.ExportRecord, error) {
	return s.records, nil
}

func rec(period, date, name, desc, course string) model.EvaluationRecord {
	return model.EvaluationRecord{
		Type:    model.EvaluationTypeNormal,
		Date:    date,
		Name:    name,
		Period:  &model.Period{Name: period},
		Courses: []model.Course{{Name: course, Graphic: &model.Icon{Type: "icon", Value: "book"}}},
		Graphic: model.Graphic{Description: desc, Color: "green"},
	}
}

func sampleRecords() []model.EvaluationRecord {
	return []model.EvaluationRecord{
		rec("Trimester 2", "2024-12-05", "Dictee", "6/10", "Nederlands"),
		rec("Trimester 2", "2024-12-10", "Kerstexamen", "14/20", "Wiskunde"),
		rec("Trimester 1", "2024-10-01", "Toets 1", "9/10", "Wiskunde"),
		rec("Trimester 1", "2024-10-15", "Leesbegrip", "1/2", "Nederlands"),
	}
}

func newRouter(fetcher service.EvaluationFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	results := service.NewResultsService(fetcher, nil, 0)
	exports := service.NewExportService(results, nopStorage{}, &sliceRecords{})
	rc := NewResultsController(results)
	ec := NewExportController(exports)

	r := gin.New()
	api := r.Group("/api/results", middleware.SessionMiddleware("PHPSESSID"))
	api.GET("/overview", rc.Overview)
	api.GET("/grid", rc.Grid)
	api.GET("/grid/periods", rc.PeriodGrids)
	api.GET("/graph", rc.Graph)
	api.GET("/totals", rc.Totals)
	api.DELETE("/cache", rc.InvalidateCache)
	api.GET("/export", ec.Download)
	api.POST("/export/archive", ec.Archive)
	api.GET("/export/archives", ec.ListArchives)
	return r
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(util.SessionHeader, "sess")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestOverviewEndpoint(t *testing.T) {
	r := newRouter(&stubFetcher{records: sampleRecords()})

	w, env := do(t, r, http.MethodGet, "/api/results/overview?year=2024")
	require.Equal(t, http.StatusOK, w.Code)

	var ov service.Overview
	require.NoError(t, json.Unmarshal(env.Data, &ov))
	assert.Equal(t, []string{"Trimester 2", "Trimester 1"}, ov.Periods)
	assert.Equal(t, "Trimester 2", ov.Latest)
	assert.Equal(t, "2024-2025", ov.SchoolYear)
}

func TestResultsParamsCurrentYear(t *testing.T) {
	now := time.Date(2024, time.November, 20, 9, 0, 0, 0, time.UTC)

	q, err := resultsParams{Year: "current"}.query(now)
	require.NoError(t, err)
	require.NotNil(t, q.Year)
	assert.Equal(t, 2024, q.Year.Start)

	q, err = resultsParams{}.query(now)
	require.NoError(t, err)
	assert.Nil(t, q.Year)

	_, err = resultsParams{Year: "vorig"}.query(now)
	assert.ErrorIs(t, err, grading.ErrInvalidSchoolYear)
}

func TestRequiresSession(t *testing.T) {
	r := newRouter(&stubFetcher{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results/grid", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGridEndpointWithPeriods(t *testing.T) {
	r := newRouter(&stubFetcher{records: sampleRecords()})

	w, env := do(t, r, http.MethodGet, "/api/results/grid?periods=Trimester%201,Trimester%202")
	require.Equal(t, http.StatusOK, w.Code)

	var grid grading.GridView
	require.NoError(t, json.Unmarshal(env.Data, &grid))
	assert.Equal(t, []string{"Trimester 1", "Trimester 2"}, grid.Periods)
	require.Len(t, grid.Rows, 2)
	assert.Equal(t, "58.3%", grid.Rows[0].Formatted)
	// 9/10 + 14/20
	assert.Equal(t, "76.7%", grid.Rows[1].Formatted)
	// 30/42
	assert.Equal(t, "71.4%", grid.OverallFormatted)
}

func TestTotalsAndPeriodGridsEndpoints(t *testing.T) {
	r := newRouter(&stubFetcher{records: sampleRecords()})

	w, env := do(t, r, http.MethodGet, "/api/results/totals")
	require.Equal(t, http.StatusOK, w.Code)
	var totals service.TotalsView
	require.NoError(t, json.Unmarshal(env.Data, &totals))
	assert.Equal(t, []string{"Trimester 2"}, totals.Periods)
	// 6/10 + 14/20
	assert.Equal(t, "66.7%", totals.OverallFormatted)

	w, env = do(t, r, http.MethodGet, "/api/results/grid/periods")
	require.Equal(t, http.StatusOK, w.Code)
	var grids []grading.PeriodGrid
	require.NoError(t, json.Unmarshal(env.Data, &grids))
	assert.Len(t, grids, 2)
}

func TestGraphEndpoint(t *testing.T) {
	r := newRouter(&stubFetcher{records: sampleRecords()})

	w, env := do(t, r, http.MethodGet, "/api/results/graph?periods=Trimester%201,Trimester%202&subject=Wiskunde&y=cumulative&x=number")
	require.Equal(t, http.StatusOK, w.Code)

	var graph service.GraphView
	require.NoError(t, json.Unmarshal(env.Data, &graph))
	require.Len(t, graph.Series.Points, 2)
	assert.Equal(t, "Test 1", graph.Series.Points[0].Label)
	assert.InDelta(t, 90.0, graph.Series.Points[0].Value, 1e-9)
	// (9+14)/(10+20)
	assert.InDelta(t, 76.666, graph.Series.Points[1].Value, 1e-3)

	w, _ = do(t, r, http.MethodGet, "/api/results/graph?subject=Latijn")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/results/graph?y=log")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidQueryParameters(t *testing.T) {
	r := newRouter(&stubFetcher{records: sampleRecords()})

	for _, target := range []string{
		"/api/results/grid?filter=during&date=2024-10-01",
		"/api/results/grid?filter=before&date=01-10-2024",
		"/api/results/grid?year=1850",
		"/api/results/grid?year=dit-jaar",
		"/api/results/export?format=pdf",
		"/api/results/export?order=random",
	} {
		w, _ := do(t, r, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestUpstreamErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{util.ErrUpstreamAuth, http.StatusUnauthorized},
		{util.ErrUpstreamStatus, http.StatusBadGateway},
		{util.ErrUpstreamDown, http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		r := newRouter(&stubFetcher{err: tt.err})
		w, _ := do(t, r, http.MethodGet, "/api/results/overview")
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}

func TestExportDownload(t *testing.T) {
	r := newRouter(&stubFetcher{records: sampleRecords()})

	w, _ := do(t, r, http.MethodGet, "/api/results/export?order=course-chronological")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MimeCSV, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="results_all_`)

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, `"Trimester 1","Nederlands","2024-10-15","Leesbegrip","1/2","50.0%","green"`, lines[1])
}

func TestExportArchiveAndList(t *testing.T) {
	r := newRouter(&stubFetcher{records: sampleRecords()})

	w, env := do(t, r, http.MethodPost, "/api/results/export/archive?format=xlsx")
	require.Equal(t, http.StatusCreated, w.Code)
	var record model.ExportRecord
	require.NoError(t, json.Unmarshal(env.Data, &record))
	assert.Equal(t, "archived", record.ID)
	assert.Equal(t, "xlsx", record.Format)
	assert.Equal(t, 4, record.RowCount)

	w, env = do(t, r, http.MethodGet, "/api/results/export/archives")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Total)
}

func TestInvalidateCacheWithoutRedis(t *testing.T) {
	r := newRouter(&stubFetcher{})
	w, env := do(t, r, http.MethodDelete, "/api/results/cache")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":0}`, string(env.Data))
}
