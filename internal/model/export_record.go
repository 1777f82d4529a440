package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExportRecord 归档导出文件的元数据，成绩本身不落库
// swagger:model ExportRecord
type ExportRecord struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SessionHash string         `gorm:"index;size:64;not null" json:"-"`
	SchoolYear  string         `gorm:"size:20" json:"schoolYear"`
	Format      string         `gorm:"size:10;not null" json:"format"` // csv, xlsx
	SortOrder   string         `gorm:"size:40;not null" json:"order"`
	Periods     string         `gorm:"type:text" json:"periods"`
	RowCount    int            `gorm:"default:0" json:"rowCount"`
	Filename    string         `gorm:"size:255;not null" json:"filename"`
	ObjectKey   string         `gorm:"size:255;not null" json:"objectKey"`
	URL         string         `gorm:"size:512" json:"url"`
	CreatedAt   time.Time      `json:"createdAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ExportRecord) TableName() string {
	return "export_records"
}

func (r *ExportRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
