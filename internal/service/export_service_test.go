package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/export"
	"github.com/noah-isme/plant-shift-api/pkg/jobs"
	"github.com/noah-isme/plant-shift-api/pkg/storage"
)

func compiledReport(t *testing.T) *models.ShiftReport {
	t.Helper()
	draft := completeDraft(t)
	draft.Pumps["water_pump"] = true
	require.NoError(t, draft.SetNotes(models.NoteFieldGeneral, []string{"mill 2 liner worn"}))
	store := &reportStoreStub{}
	compiler := newTestCompiler(&codeIssuerStub{code: "SR-1403-0009"}, store, false)
	report, err := compiler.Submit(context.Background(), "user-1", draft)
	require.NoError(t, err)
	return report
}

func newExportServiceForTest(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewURLSigner("link-secret", time.Hour)
	return NewExportService(store, export.NewCSVExporter(true), export.NewPDFExporter("section"), signer, zap.NewNop()), store
}

func TestExportServiceRenderCSV(t *testing.T) {
	svc, _ := newExportServiceForTest(t)
	report := compiledReport(t)

	file, err := svc.Render(report, models.ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "SR-1403-0009.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(file.Data, []byte("\xef\xbb\xbf")))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"section", "field", "value"}, records[0])
	assert.Contains(t, records, []string{"info", "date", "1403/01/01"})
	assert.Contains(t, records, []string{"feed LINE_1", "07:00", "120 t; stockpile_north 100%"})
	assert.Contains(t, records, []string{"feed LINE_1", "total_tonnage", "1440"})
	assert.Contains(t, records, []string{"downtime LINE_2", "stopped", "2:00"})
	assert.Contains(t, records, []string{"downtime", "pumps_running", "water_pump"})
	assert.Contains(t, records, []string{"notes", "1", "mill 2 liner worn"})
}

func TestExportServiceArchiveAndServePDF(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	report := compiledReport(t)

	path, err := svc.Archive(report)
	require.NoError(t, err)
	assert.Equal(t, "shift-reports/1403-01-01/SR-1403-0009.pdf", path)

	archived, err := store.Read(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(archived, []byte("%PDF")))

	file, err := svc.Render(report, models.ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, archived, file.Data)
	assert.Equal(t, "application/pdf", file.ContentType)
}

func TestExportServiceRenderWithoutStorage(t *testing.T) {
	svc := NewExportService(nil, nil, nil, nil, nil)
	report := compiledReport(t)

	file, err := svc.Render(report, models.ExportFormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))

	_, err = svc.Archive(report)
	assert.Error(t, err)

	_, err = svc.Render(report, models.ExportFormat("xlsx"))
	assert.Error(t, err)

	_, err = svc.Link(report)
	assert.Equal(t, appErrors.ErrServiceUnavailable.Code, appErrors.FromError(err).Code)
}

func TestExportServiceLinkArchivesAndOpens(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	report := compiledReport(t)

	link, err := svc.Link(report)
	require.NoError(t, err)
	assert.Equal(t, "SR-1403-0009", link.Code)
	_, err = store.Read("shift-reports/1403-01-01/SR-1403-0009.pdf")
	require.NoError(t, err)

	file, err := svc.OpenLink(link.Token)
	require.NoError(t, err)
	assert.Equal(t, "SR-1403-0009.pdf", file.Filename)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))

	_, err = svc.OpenLink(link.Token + "0")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestArchiveQueueRendersSubmittedReport(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	report := compiledReport(t)

	done := make(chan struct{}, 1)
	queue := jobs.NewQueue("archive-test", func(ctx context.Context, job jobs.Job) error {
		err := svc.HandleArchiveJob(ctx, job)
		done <- struct{}{}
		return err
	}, jobs.QueueConfig{Workers: 1})
	queue.Start(context.Background())
	defer queue.Stop()

	require.NoError(t, NewReportArchiver(queue).ScheduleArchive(report))
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("archive job not processed")
	}
	_, err := store.Read("shift-reports/1403-01-01/SR-1403-0009.pdf")
	require.NoError(t, err)
}

func TestHandleArchiveJobIgnoresForeignPayload(t *testing.T) {
	svc, _ := newExportServiceForTest(t)
	assert.NoError(t, svc.HandleArchiveJob(context.Background(), jobs.Job{ID: "x", Type: ArchiveJobType, Payload: "nope"}))
}
