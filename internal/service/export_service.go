package service

import (
	"better_results_backend/internal/grading"
	"better_results_backend/internal/model"
	"better_results_backend/internal/util"
	"better_results_backend/pkg/logger"
	"better_results_backend/pkg/monitoring"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExportRecordStore 归档记录存储，ExportRecordRepository 实现
type ExportRecordStore interface {
	Create(ctx context.Context, record *model.ExportRecord) error
	ListBySession(ctx context.Context, sessionHash string, limit int) ([]model.ExportRecord, error)
}

// ObjectStorage StorageService 实现
type ObjectStorage interface {
	Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectKey string) error
}

// ExportFile 生成好的导出文件
type ExportFile struct {
	Filename    string
	ContentType string
	Format      string
	Order       grading.ExportOrder
	Periods     []string
	Data        []byte
	Rows        int
}

type ExportService struct {
	Results *ResultsService
	Storage ObjectStorage
	Records ExportRecordStore

	now func() time.Time
}

func NewExportService(results *ResultsService, storage ObjectStorage, records ExportRecordStore) *ExportService {
	return &ExportService{
		Results: results,
		Storage: storage,
		Records: records,
		now:     time.Now,
	}
}

func exportFilename(q ResultsQuery, format string, at time.Time) string {
	scope := "all"
	if q.Year != nil {
		scope = q.Year.Label()
	}
	return fmt.Sprintf("results_%s_%s.%s", scope, at.Format("20060102-150405"), format)
}

// Export 按格式和排序生成文件；没有选择学期时导出全部学期
func (s *ExportService) Export(ctx context.Context, session string, q ResultsQuery, format string, order grading.ExportOrder) (*ExportFile, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = util.ExportCSV
	}
	if format != util.ExportCSV && format != util.ExportXLSX {
		return nil, fmt.Errorf("%w: %q", util.ErrUnsupportedExport, format)
	}

	ix, err := s.Results.LoadIndex(ctx, session, q)
	if err != nil {
		return nil, err
	}

	periods := q.Periods
	if len(periods) == 0 {
		periods = ix.Periods()
	}
	rows := grading.ExportRows(ix, periods, order)

	var buf bytes.Buffer
	file := &ExportFile{
		Filename: exportFilename(q, format, s.now()),
		Format:   format,
		Order:    order,
		Periods:  periods,
		Rows:     len(rows),
	}
	switch format {
	case util.ExportCSV:
		file.ContentType = util.MimeCSV
		err = grading.WriteCSV(&buf, rows)
	case util.ExportXLSX:
		file.ContentType = util.MimeXLSX
		err = grading.WriteXLSX(&buf, rows)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write %s export: %w", format, err)
	}
	file.Data = buf.Bytes()

	monitoring.ExportsGenerated.WithLabelValues(format).Inc()
	return file, nil
}

// Archive 生成导出文件并保存到存储后端，同时写一条归档记录
func (s *ExportService) Archive(ctx context.Context, session string, q ResultsQuery, format string, order grading.ExportOrder) (*model.ExportRecord, error) {
	file, err := s.Export(ctx, session, q, format, order)
	if err != nil {
		return nil, err
	}

	hash := util.HashSession(session)
	objectKey := fmt.Sprintf("exports/%s/%s.%s", hash[:16], uuid.New().String(), file.Format)

	url, err := s.Storage.Upload(ctx, objectKey, bytes.NewReader(file.Data), int64(len(file.Data)), file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	record := &model.ExportRecord{
		SessionHash: hash,
		Format:      file.Format,
		SortOrder:   string(file.Order),
		Periods:     strings.Join(file.Periods, ", "),
		RowCount:    file.Rows,
		Filename:    file.Filename,
		ObjectKey:   objectKey,
		URL:         url,
	}
	if q.Year != nil {
		record.SchoolYear = q.Year.Label()
	}

	if err := s.Records.Create(ctx, record); err != nil {
		// 没有记录指向的文件无法再被列出，直接删掉
		if delErr := s.Storage.Delete(ctx, objectKey); delErr != nil {
			logger.Log.Error("Failed to remove orphaned export",
				zap.String("object", objectKey),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("failed to save export record: %w", err)
	}

	logger.Log.Info("Export archived",
		zap.String("id", record.ID),
		zap.String("format", record.Format),
		zap.Int("rows", record.RowCount),
		zap.String("object", objectKey),
	)
	return record, nil
}

func (s *ExportService) ListArchives(ctx context.Context, session string, limit int) ([]model.ExportRecord, error) {
	records, err := s.Records.ListBySession(ctx, util.HashSession(session), limit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.ExportRecord{}
	}
	return records, nil
}
