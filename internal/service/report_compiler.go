package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

type trackingCodeIssuer interface {
	NextCode(ctx context.Context, prefix string) (string, error)
}

type shiftReportStore interface {
	Save(ctx context.Context, report *models.ShiftReport) error
}

// ReportCompilerConfig tunes code issuance.
type ReportCompilerConfig struct {
	CodePrefix     string
	RandomFallback bool
}

// ReportCompiler turns a validated draft into an immutable report and hands it to persistence.
type ReportCompiler struct {
	codes   trackingCodeIssuer
	store   shiftReportStore
	metrics *MetricsService
	logger  *zap.Logger
	cfg     ReportCompilerConfig

	now    func() time.Time
	newID  func() string
	random func() int
}

// NewReportCompiler constructs the compiler.
func NewReportCompiler(codes trackingCodeIssuer, store shiftReportStore, metrics *MetricsService, cfg ReportCompilerConfig, logger *zap.Logger) *ReportCompiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CodePrefix == "" {
		cfg.CodePrefix = "SR-"
	}
	return &ReportCompiler{
		codes:   codes,
		store:   store,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
		newID:   uuid.NewString,
		random:  func() int { return rand.Intn(10000) },
	}
}

// IssueCode requests the next tracking code, falling back to a random suffix when enabled.
func (c *ReportCompiler) IssueCode(ctx context.Context) (string, error) {
	code, err := c.codes.NextCode(ctx, c.cfg.CodePrefix)
	if err == nil {
		return code, nil
	}
	if !c.cfg.RandomFallback {
		return "", appErrors.Wrap(err, appErrors.ErrServiceUnavailable.Code, appErrors.ErrServiceUnavailable.Status, "failed to issue tracking code")
	}
	c.logger.Warn("tracking code service failed, using random suffix", zap.String("prefix", c.cfg.CodePrefix), zap.Error(err))
	c.metrics.RecordCodeFallback()
	return fmt.Sprintf("%s%04d", c.cfg.CodePrefix, c.random()), nil
}

// Compile builds the payload from a deep copy of draft. Later edits to draft do not reach the result.
func (c *ReportCompiler) Compile(userID, code string, draft *models.ShiftDraft) (*models.ShiftReportPayload, error) {
	snapshot, err := draft.Clone()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to snapshot draft")
	}

	payload := &models.ShiftReportPayload{
		ID:               c.newID(),
		Code:             code,
		SubmittedBy:      userID,
		SubmittedAt:      c.now().UTC(),
		Info:             snapshot.Info,
		Weekday:          jalali.WeekdayName(snapshot.Info.Date),
		ShiftMinutes:     snapshot.ShiftMinutes(),
		Attendance:       snapshot.Attendance.Sorted(),
		AttendanceCounts: snapshot.Attendance.Counts(),
		Equipment:        snapshot.Equipment,
		Notes:            append([]string{}, snapshot.Notes.Items...),
		NextShiftActions: append([]string{}, snapshot.NextShiftActions.Items...),
		Pumps:            snapshot.Pumps,
	}
	if g, ok := jalali.ToGregorian(snapshot.Info.Date); ok {
		payload.GregorianDate = g.String()
	}

	for _, line := range models.ProductionLines {
		total := snapshot.Feed.TotalTonnage(line)
		payload.Feed = append(payload.Feed, models.LineFeedReport{
			Line:         line,
			Hours:        snapshot.Feed.Slots(line, snapshot.Info.RotationType),
			TotalTonnage: total,
		})
		payload.TotalTonnage += total
	}

	for _, record := range snapshot.Downtime {
		summary := models.DowntimeSummary{
			DowntimeRecord: record,
			WorkedMinutes:  record.WorkedMinutes(),
			StoppedMinutes: record.StoppedMinutes(),
		}
		if payload.ShiftMinutes > 0 {
			summary.WorkRatio = float64(summary.WorkedMinutes) / float64(payload.ShiftMinutes)
			summary.StopRatio = float64(summary.StoppedMinutes) / float64(payload.ShiftMinutes)
		}
		payload.Downtime = append(payload.Downtime, summary)
	}
	return payload, nil
}

// Submit issues a code, compiles the draft and persists the report. The draft is not modified.
func (c *ReportCompiler) Submit(ctx context.Context, userID string, draft *models.ShiftDraft) (*models.ShiftReport, error) {
	code, err := c.IssueCode(ctx)
	if err != nil {
		c.metrics.RecordSubmission(SubmissionFailed)
		return nil, err
	}
	payload, err := c.Compile(userID, code, draft)
	if err != nil {
		c.metrics.RecordSubmission(SubmissionFailed)
		return nil, err
	}

	report := &models.ShiftReport{
		ID:           payload.ID,
		Code:         payload.Code,
		ShiftDate:    payload.Info.Date,
		Crew:         payload.Info.Crew,
		RotationType: payload.Info.RotationType,
		SupervisorID: payload.Info.SupervisorID,
		TotalTonnage: payload.TotalTonnage,
		PresentCount: payload.AttendanceCounts.Present,
		Payload:      *payload,
		CreatedBy:    userID,
		CreatedAt:    payload.SubmittedAt,
	}
	if g, ok := jalali.ToGregorian(payload.Info.Date); ok {
		report.GregorianDate = g.Time(time.UTC)
	}
	for _, d := range payload.Downtime {
		report.StoppedMinutes += d.StoppedMinutes
	}

	if err := c.store.Save(ctx, report); err != nil {
		c.metrics.RecordSubmission(SubmissionFailed)
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist shift report")
	}
	c.metrics.RecordSubmission(SubmissionAccepted)
	c.logger.Info("shift report submitted",
		zap.String("code", report.Code),
		zap.String("shift_date", report.ShiftDate.String()),
		zap.String("crew", string(report.Crew)),
		zap.String("user_id", strings.TrimSpace(userID)),
	)
	return report, nil
}
