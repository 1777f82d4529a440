package service

import (
	"better_results_backend/internal/grading"
	"better_results_backend/internal/model"
	"better_results_backend/internal/repository"
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) []model.EvaluationRecord {
	t.Helper()
	data, err := os.ReadFile("testdata/evaluations.json")
	require.NoError(t, err)
	var records []model.EvaluationRecord
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

type fakeFetcher struct {
	mu      sync.Mutex
	records []model.EvaluationRecord
	err     error
	calls   int
	years   []*grading.SchoolYear
}

func (f *fakeFetcher) FetchEvaluations(ctx context.Context, session string, year *grading.SchoolYear) ([]model.EvaluationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.years = append(f.years, year)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newRedisCache(t *testing.T) (*repository.DatasetCacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return repository.NewDatasetCacheRepository(rdb), mr
}

func newResultsService(t *testing.T) (*ResultsService, *fakeFetcher) {
	t.Helper()
	fetcher := &fakeFetcher{records: loadFixture(t)}
	cache, _ := newRedisCache(t)
	return NewResultsService(fetcher, cache, 30*time.Minute), fetcher
}
