package repository

import (
	"better_results_backend/internal/model"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*DatasetCacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewDatasetCacheRepository(rdb), mr
}

func sampleDataset() []model.EvaluationRecord {
	return []model.EvaluationRecord{{
		Type:    model.EvaluationTypeNormal,
		Date:    "2024-10-01",
		Name:    "Toets 1",
		Period:  &model.Period{Name: "Trimester 1"},
		Courses: []model.Course{{Name: "Wiskunde", Graphic: &model.Icon{Type: "icon", Value: "math"}}},
		Graphic: model.Graphic{Description: "9/10", Color: "green"},
	}}
}

func TestDatasetCacheRoundTrip(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "abc", "2024-2025")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "abc", "2024-2025", sampleDataset(), 30*time.Minute))
	assert.True(t, mr.Exists("results:dataset:abc:2024-2025"))
	assert.Equal(t, 30*time.Minute, mr.TTL("results:dataset:abc:2024-2025"))

	got, ok, err := cache.Get(ctx, "abc", "2024-2025")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleDataset(), got)
}

func TestDatasetCacheExpires(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "abc", "2024-2025", sampleDataset(), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "abc", "2024-2025")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDatasetCacheCorruptEntryIsMiss(t *testing.T) {
	cache, mr := newCache(t)
	require.NoError(t, mr.Set("results:dataset:abc:2024-2025", "{not json"))

	_, ok, err := cache.Get(context.Background(), "abc", "2024-2025")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDatasetCacheDeleteSession(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "abc", "2023-2024", sampleDataset(), time.Hour))
	require.NoError(t, cache.Set(ctx, "abc", "2024-2025", sampleDataset(), time.Hour))
	require.NoError(t, cache.Set(ctx, "xyz", "2024-2025", sampleDataset(), time.Hour))

	n, err := cache.DeleteSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, mr.Exists("results:dataset:abc:2024-2025"))
	assert.True(t, mr.Exists("results:dataset:xyz:2024-2025"))
}

func TestDatasetCacheWithoutRedis(t *testing.T) {
	cache := NewDatasetCacheRepository(nil)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "abc", "2024-2025", sampleDataset(), time.Minute))
	_, ok, err := cache.Get(ctx, "abc", "2024-2025")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := cache.DeleteSession(ctx, "abc")
	require.NoError(t, err)
	assert.Zero(t, n)
}
