package service

import (
	"better_results_backend/internal/grading"
	"better_results_backend/internal/model"
	"better_results_backend/internal/util"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memoryStorage struct {
	objects map[string][]byte
}

func (m *memoryStorage) Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[objectKey] = data
	return "/uploads/" + objectKey, nil
}

func (m *memoryStorage) Delete(ctx context.Context, objectKey string) error {
	if _, ok := m.objects[objectKey]; !ok {
		return errors.New("object not found")
	}
	delete(m.objects, objectKey)
	return nil
}

type memoryRecords struct {
	records []model.ExportRecord
	err     error
}

func (m *memoryRecords) Create(ctx context.Context, record *model.ExportRecord) error {
	if m.err != nil {
		return m.err
	}
	record.ID = "rec-1"
	m.records = append(m.records, *record)
	return nil
}

func (m *memoryRecords) ListBySession(ctx context.Context, sessionHash string, limit int) ([]model.ExportRecord, error) {
	var out []model.ExportRecord
	for _, r := range m.records {
		if r.SessionHash == sessionHash {
			out = append(out, r)
		}
	}
	return out, nil
}

func newExportService(t *testing.T) (*ExportService, *memoryStorage, *memoryRecords) {
	t.Helper()
	results, _ := newResultsService(t)
	storage := &memoryStorage{}
	records := &memoryRecords{}
	svc := NewExportService(results, storage, records)
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 12, 30, 0, 0, time.UTC) }
	return svc, storage, records
}

func TestExportCSVAllPeriods(t *testing.T) {
	svc, _, _ := newExportService(t)

	file, err := svc.Export(context.Background(), testSession, ResultsQuery{Year: &grading.SchoolYear{Start: 2024}}, "csv", grading.OrderChronological)
	require.NoError(t, err)

	assert.Equal(t, "results_2024-2025_20250102-123000.csv", file.Filename)
	assert.Equal(t, util.MimeCSV, file.ContentType)
	assert.Equal(t, 6, file.Rows)
	assert.Equal(t, []string{"Trimester 2", "Trimester 1"}, file.Periods)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, `"Period","Course","Test Date","Test Name","Score","Percentage","Color Code"`, lines[0])
	assert.Equal(t, `"Trimester 1","Wiskunde","2024-10-01T08:30:00+02:00","Toets 1","9/10","90.0%","green"`, lines[1])
	assert.Equal(t, `"Trimester 1","Nederlands","2024-10-08T13:00:00+02:00","Spreekbeurt","A","","green"`, lines[2])
}

func TestExportSelectedPeriodsByCourse(t *testing.T) {
	svc, _, _ := newExportService(t)

	file, err := svc.Export(context.Background(), testSession, ResultsQuery{Periods: []string{"Trimester 2"}}, "", grading.OrderCourseChronological)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))
	assert.True(t, strings.HasPrefix(file.Filename, "results_all_"))
	assert.Equal(t, 3, file.Rows)
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	assert.Contains(t, lines[1], `"Dictee"`)
	assert.Contains(t, lines[2], `"Toets breuken"`)
	assert.Contains(t, lines[3], `"Kerstexamen"`)
}

func TestExportXLSX(t *testing.T) {
	svc, _, _ := newExportService(t)

	file, err := svc.Export(context.Background(), testSession, ResultsQuery{}, "XLSX", grading.OrderPeriodCourse)
	require.NoError(t, err)
	assert.Equal(t, util.MimeXLSX, file.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	assert.Len(t, rows, 7)
	assert.Equal(t, "Trimester 2", rows[1][0])
	assert.Equal(t, "Nederlands", rows[1][1])
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc, _, _ := newExportService(t)

	_, err := svc.Export(context.Background(), testSession, ResultsQuery{}, "pdf", grading.OrderChronological)
	assert.ErrorIs(t, err, util.ErrUnsupportedExport)
}

func TestArchiveStoresFileAndRecord(t *testing.T) {
	svc, storage, records := newExportService(t)
	ctx := context.Background()

	rec, err := svc.Archive(ctx, testSession, ResultsQuery{Year: &grading.SchoolYear{Start: 2024}}, "csv", grading.OrderPeriodCourse)
	require.NoError(t, err)

	hash := util.HashSession(testSession)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, hash, rec.SessionHash)
	assert.Equal(t, "2024-2025", rec.SchoolYear)
	assert.Equal(t, "period-course", rec.SortOrder)
	assert.Equal(t, "Trimester 2, Trimester 1", rec.Periods)
	assert.Equal(t, 6, rec.RowCount)
	assert.True(t, strings.HasPrefix(rec.ObjectKey, "exports/"+hash[:16]+"/"))
	assert.Equal(t, "/uploads/"+rec.ObjectKey, rec.URL)

	require.Contains(t, storage.objects, rec.ObjectKey)
	assert.True(t, bytes.HasPrefix(storage.objects[rec.ObjectKey], []byte(`"Period"`)))
	assert.Len(t, records.records, 1)

	list, err := svc.ListArchives(ctx, testSession, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.ListArchives(ctx, "someone-else", 10)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestArchiveRemovesUploadWhenRecordFails(t *testing.T) {
	svc, storage, records := newExportService(t)
	records.err = errors.New("database is gone")

	rec, err := svc.Archive(context.Background(), testSession, ResultsQuery{}, "csv", grading.OrderChronological)
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Contains(t, err.Error(), "database is gone")

	assert.Empty(t, storage.objects, "uploaded file is removed again")
	assert.Empty(t, records.records)
}
