package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/pkg/clock"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/export"
	"github.com/noah-isme/plant-shift-api/pkg/jobs"
	"github.com/noah-isme/plant-shift-api/pkg/storage"
)

// ArchiveJobType tags queued archive renders.
const ArchiveJobType = "shift_report_archive"

var exportHeaders = []string{"section", "field", "value"}

type archiveStorage interface {
	Save(name string, data []byte) (string, error)
	Read(name string) ([]byte, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type linkSigner interface {
	Sign(subject, path string) (string, time.Time, error)
	Verify(token string) (*storage.DownloadToken, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// ExportFile is a rendered report.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DownloadLink is a signed, unauthenticated link to an archived report PDF.
type DownloadLink struct {
	Code      string    `json:"code"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportService renders submitted shift reports and keeps their PDF archive.
type ExportService struct {
	storage archiveStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  linkSigner
	logger  *zap.Logger
}

// NewExportService constructs an ExportService. storage and signer may be nil when archiving is disabled.
func NewExportService(storage archiveStorage, csv csvRenderer, pdf pdfRenderer, signer linkSigner, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter(true)
	}
	if pdf == nil {
		pdf = export.NewPDFExporter(exportHeaders[0])
	}
	return &ExportService{storage: storage, csv: csv, pdf: pdf, signer: signer, logger: logger}
}

// Render produces the report in format. PDFs already archived are served from storage.
func (s *ExportService) Render(report *models.ShiftReport, format models.ExportFormat) (*ExportFile, error) {
	if report == nil {
		return nil, fmt.Errorf("report nil")
	}
	file := &ExportFile{
		Filename:    fmt.Sprintf("%s.%s", sanitizeFilename(report.Code), format),
		ContentType: format.ContentType(),
	}
	if format == models.ExportFormatPDF && s.storage != nil {
		data, err := s.storage.Read(archivePath(report))
		if err == nil {
			file.Data = data
			return file, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read archived report", zap.String("code", report.Code), zap.Error(err))
		}
	}

	dataset := BuildReportDataset(report)
	var err error
	switch format {
	case models.ExportFormatCSV:
		file.Data, err = s.csv.Render(dataset)
	case models.ExportFormatPDF:
		file.Data, err = s.pdf.Render(dataset, "Shift report "+report.Code)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Archive renders the PDF of report into storage and returns its relative path.
func (s *ExportService) Archive(report *models.ShiftReport) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("archive storage not configured")
	}
	data, err := s.pdf.Render(BuildReportDataset(report), "Shift report "+report.Code)
	if err != nil {
		return "", fmt.Errorf("render archive %s: %w", report.Code, err)
	}
	path, err := s.storage.Save(archivePath(report), data)
	if err != nil {
		return "", fmt.Errorf("save archive %s: %w", report.Code, err)
	}
	return path, nil
}

// Link archives report if needed and returns a signed download link to its PDF.
func (s *ExportService) Link(report *models.ShiftReport) (*DownloadLink, error) {
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrServiceUnavailable, "report archive is disabled")
	}
	path := archivePath(report)
	if _, err := s.storage.Read(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read archive")
		}
		if path, err = s.Archive(report); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive report")
		}
	}
	token, expiresAt, err := s.signer.Sign(report.Code, path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign link")
	}
	return &DownloadLink{Code: report.Code, Token: token, ExpiresAt: expiresAt}, nil
}

// OpenLink resolves a signed download token to the archived file.
func (s *ExportService) OpenLink(token string) (*ExportFile, error) {
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrServiceUnavailable, "report archive is disabled")
	}
	parsed, err := s.signer.Verify(token)
	switch {
	case errors.Is(err, storage.ErrTokenExpired):
		return nil, appErrors.Clone(appErrors.ErrForbidden, "download link expired")
	case err != nil:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}
	data, err := s.storage.Read(parsed.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "archived report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read archive")
	}
	return &ExportFile{
		Filename:    sanitizeFilename(parsed.Subject) + ".pdf",
		ContentType: models.ExportFormatPDF.ContentType(),
		Data:        data,
	}, nil
}

// HandleArchiveJob is the queue handler for ArchiveJobType jobs.
func (s *ExportService) HandleArchiveJob(ctx context.Context, job jobs.Job) error {
	report, ok := job.Payload.(*models.ShiftReport)
	if !ok || report == nil {
		s.logger.Error("archive job has unexpected payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}
	path, err := s.Archive(report)
	if err != nil {
		return err
	}
	s.logger.Info("shift report archived", zap.String("code", report.Code), zap.String("path", path), zap.Int("attempt", job.Attempt))
	return nil
}

// StartRetention periodically prunes archive files older than retention until ctx is done.
func (s *ExportService) StartRetention(ctx context.Context, interval, retention time.Duration) {
	if s.storage == nil || interval <= 0 || retention <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.storage.CleanupOlderThan(retention)
				if err != nil {
					s.logger.Warn("archive retention failed", zap.Error(err))
					continue
				}
				if len(deleted) > 0 {
					s.logger.Info("archive retention pruned files", zap.Int("count", len(deleted)))
				}
			}
		}
	}()
}

// ReportArchiver queues archive renders of freshly submitted reports.
type ReportArchiver struct {
	queue jobEnqueuer
}

// NewReportArchiver wraps queue.
func NewReportArchiver(queue jobEnqueuer) *ReportArchiver {
	return &ReportArchiver{queue: queue}
}

// ScheduleArchive enqueues report for archiving.
func (a *ReportArchiver) ScheduleArchive(report *models.ShiftReport) error {
	return a.queue.Enqueue(jobs.Job{ID: report.Code, Type: ArchiveJobType, Payload: report})
}

func archivePath(report *models.ShiftReport) string {
	date := strings.ReplaceAll(report.ShiftDate.String(), "/", "-")
	if date == "" {
		date = "undated"
	}
	return fmt.Sprintf("shift-reports/%s/%s.pdf", date, sanitizeFilename(report.Code))
}

func sanitizeFilename(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "report"
	}
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// BuildReportDataset flattens a report into section/field/value rows.
func BuildReportDataset(report *models.ShiftReport) export.Dataset {
	p := report.Payload
	rows := make([]map[string]string, 0, 64)
	add := func(section, field, value string) {
		rows = append(rows, map[string]string{"section": section, "field": field, "value": value})
	}

	add("info", "code", report.Code)
	add("info", "date", report.ShiftDate.String())
	add("info", "gregorian_date", p.GregorianDate)
	add("info", "crew", string(report.Crew))
	add("info", "rotation_type", string(report.RotationType))
	add("info", "duration", p.Info.Duration)
	add("info", "supervisor_id", report.SupervisorID)
	add("info", "submitted_by", p.SubmittedBy)
	if !p.SubmittedAt.IsZero() {
		add("info", "submitted_at", p.SubmittedAt.UTC().Format(time.RFC3339))
	}

	c := p.AttendanceCounts
	add("attendance", "present", strconv.Itoa(c.Present))
	add("attendance", "on_leave", strconv.Itoa(c.OnLeave))
	add("attendance", "hourly_leave", strconv.Itoa(c.HourlyLeave))
	add("attendance", "daily_leave", strconv.Itoa(c.DailyLeave))
	add("attendance", "absent", strconv.Itoa(c.Absent))

	for _, line := range p.Feed {
		section := "feed " + string(line.Line)
		for _, slot := range line.Hours {
			if slot.Tonnage == 0 && slot.Components.Sum() == 0 {
				continue
			}
			add(section, slot.Label, fmt.Sprintf("%s t; %s", formatNumber(slot.Tonnage), describeComposition(slot.Components)))
		}
		add(section, "total_tonnage", formatNumber(line.TotalTonnage))
	}
	add("feed", "total_tonnage", formatNumber(p.TotalTonnage))

	eq := p.Equipment
	add("equipment", "active_mills", strconv.Itoa(countActive(len(eq.Mills), func(i int) bool { return eq.Mills[i].Active })))
	add("equipment", "active_cyclone_clusters", strconv.Itoa(countActive(len(eq.Cyclones), func(i int) bool { return eq.Cyclones[i].Active })))
	add("equipment", "active_magnets", strconv.Itoa(countActive(len(eq.Magnets), func(i int) bool { return eq.Magnets[i].Active })))

	for _, d := range p.Downtime {
		section := "downtime " + string(d.Line)
		add(section, "worked", clock.FormatClock(d.WorkedMinutes))
		add(section, "stopped", clock.FormatClock(d.StoppedMinutes))
		add(section, "work_ratio", fmt.Sprintf("%.1f%%", d.WorkRatio*100))
		if d.Reason != "" {
			add(section, "reason", d.Reason)
		}
		for i, stop := range d.Stoppages {
			add(section, fmt.Sprintf("stoppage_%d", i+1), fmt.Sprintf("%s %s - %s %s %s", stop.FromDate, stop.FromTime, stop.ToDate, stop.ToTime, stop.Cause))
		}
	}

	pumps := make([]string, 0, len(p.Pumps))
	for pump, on := range p.Pumps {
		if on {
			pumps = append(pumps, pump)
		}
	}
	sort.Strings(pumps)
	if len(pumps) > 0 {
		add("downtime", "pumps_running", strings.Join(pumps, ", "))
	}

	for i, note := range p.Notes {
		add("notes", strconv.Itoa(i+1), note)
	}
	for i, action := range p.NextShiftActions {
		add("next_shift_actions", strconv.Itoa(i+1), action)
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func describeComposition(c models.FeedComposition) string {
	parts := make([]string, 0, 2)
	for _, comp := range c {
		if comp.Empty() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s%%", comp.SourceType, formatNumber(comp.Percent)))
	}
	if len(parts) == 0 {
		return "no composition"
	}
	return strings.Join(parts, " + ")
}

func countActive(n int, active func(int) bool) int {
	count := 0
	for i := 0; i < n; i++ {
		if active(i) {
			count++
		}
	}
	return count
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
