package repository

import (
	"better_results_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ExportRecordRepository struct {
	DB *gorm.DB
}

func NewExportRecordRepository(db *gorm.DB) *ExportRecordRepository {
	return &ExportRecordRepository{DB: db}
}

// Create 写入一条归档记录，ID 在 BeforeCreate 中生成
func (r *ExportRecordRepository) Create(ctx context.Context, record *model.ExportRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

// ListBySession 按创建时间倒序返回该会话的归档，limit <= 0 表示不限制
func (r *ExportRecordRepository) ListBySession(ctx context.Context, sessionHash string, limit int) ([]model.ExportRecord, error) {
	var records []model.ExportRecord
	q := r.DB.WithContext(ctx).
		Where("session_hash = ?", sessionHash).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&records).Error
	return records, err
}

func (r *ExportRecordRepository) FindByID(ctx context.Context, sessionHash, id string) (*model.ExportRecord, error) {
	var record model.ExportRecord
	err := r.DB.WithContext(ctx).
		Where("id = ? AND session_hash = ?", id, sessionHash).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
