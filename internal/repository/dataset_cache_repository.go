package repository

import (
	"better_results_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const datasetKeyPrefix = "results:dataset:"

// DatasetCacheRepository 缓存从 Smartschool 拉到的原始评估记录，按会话哈希和学年分键
type DatasetCacheRepository struct {
	Redis *redis.Client
}

func NewDatasetCacheRepository(rdb *redis.Client) *DatasetCacheRepository {
	return &DatasetCacheRepository{Redis: rdb}
}

func DatasetKey(sessionHash string, schoolYear string) string {
	return fmt.Sprintf("%s%s:%s", datasetKeyPrefix, sessionHash, schoolYear)
}

// Get 未命中时返回 ok=false；Redis 未配置时始终未命中
func (r *DatasetCacheRepository) Get(ctx context.Context, sessionHash, schoolYear string) ([]model.EvaluationRecord, bool, error) {
	if r == nil || r.Redis == nil {
		return nil, false, nil
	}

	data, err := r.Redis.Get(ctx, DatasetKey(sessionHash, schoolYear)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var records []model.EvaluationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		// 格式不对的缓存当作未命中，随后会被覆盖
		return nil, false, nil
	}
	return records, true, nil
}

func (r *DatasetCacheRepository) Set(ctx context.Context, sessionHash, schoolYear string, records []model.EvaluationRecord, ttl time.Duration) error {
	if r == nil || r.Redis == nil {
		return nil
	}

	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, DatasetKey(sessionHash, schoolYear), data, ttl).Err()
}

// DeleteSession 删除该会话所有学年的缓存，返回删除的键数
func (r *DatasetCacheRepository) DeleteSession(ctx context.Context, sessionHash string) (int, error) {
	if r == nil || r.Redis == nil {
		return 0, nil
	}

	pattern := datasetKeyPrefix + sessionHash + ":*"
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := r.Redis.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := r.Redis.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
