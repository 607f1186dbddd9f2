package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

const uniqueViolation = "23505"

const shiftReportColumns = `id, code, shift_date, gregorian_date, crew, rotation_type, supervisor_id, total_tonnage, present_count, stopped_minutes, payload, created_by, created_at`

// ShiftReportRepository persists submitted shift reports.
type ShiftReportRepository struct {
	db *sqlx.DB
}

// NewShiftReportRepository constructs the repository.
func NewShiftReportRepository(db *sqlx.DB) *ShiftReportRepository {
	return &ShiftReportRepository{db: db}
}

// Save inserts a submitted report. A reused tracking code surfaces as a conflict.
func (r *ShiftReportRepository) Save(ctx context.Context, report *models.ShiftReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO shift_reports (` + shiftReportColumns + `)
VALUES (:id, :code, :shift_date, :gregorian_date, :crew, :rotation_type, :supervisor_id, :total_tonnage, :present_count, :stopped_minutes, :payload, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("tracking code %s already used", report.Code))
		}
		return fmt.Errorf("insert shift report: %w", err)
	}
	return nil
}

// GetByCode returns a report by tracking code.
func (r *ShiftReportRepository) GetByCode(ctx context.Context, code string) (*models.ShiftReport, error) {
	query := `SELECT ` + shiftReportColumns + ` FROM shift_reports WHERE code = $1`
	var report models.ShiftReport
	if err := r.db.GetContext(ctx, &report, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("shift report %s not found", code))
		}
		return nil, fmt.Errorf("get shift report: %w", err)
	}
	return &report, nil
}

// List returns report rows matching filter, newest shift first, with the total count.
func (r *ShiftReportRepository) List(ctx context.Context, filter models.ShiftReportFilter) ([]models.ShiftReport, int, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)
	argPos := 1

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("shift_date >= $%d", argPos))
		args = append(args, filter.From.String())
		argPos++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("shift_date <= $%d", argPos))
		args = append(args, filter.To.String())
		argPos++
	}
	if filter.Crew != nil {
		conditions = append(conditions, fmt.Sprintf("crew = $%d", argPos))
		args = append(args, string(*filter.Crew))
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM shift_reports"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count shift reports: %w", err)
	}

	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	query := fmt.Sprintf("SELECT %s FROM shift_reports%s ORDER BY shift_date DESC, created_at DESC LIMIT $%d OFFSET $%d",
		shiftReportColumns, where, argPos, argPos+1)
	args = append(args, size, (page-1)*size)

	var reports []models.ShiftReport
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list shift reports: %w", err)
	}
	return reports, total, nil
}
