package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var shiftReportRowColumns = []string{"id", "code", "shift_date", "gregorian_date", "crew", "rotation_type", "supervisor_id", "total_tonnage", "present_count", "stopped_minutes", "payload", "created_by", "created_at"}

func sampleReport() *models.ShiftReport {
	return &models.ShiftReport{
		Code:          "SR-0001",
		ShiftDate:     jalali.MustParse("1403/01/01"),
		GregorianDate: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		Crew:          models.CrewB,
		RotationType:  models.RotationDay2,
		SupervisorID:  "sup-1",
		TotalTonnage:  1440,
		PresentCount:  12,
		Payload:       models.ShiftReportPayload{Code: "SR-0001", ShiftMinutes: 720},
		CreatedBy:     "user-1",
	}
}

func TestShiftReportRepositorySave(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftReportRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shift_reports")).
		WithArgs(sqlmock.AnyArg(), "SR-0001", "1403/01/01", sqlmock.AnyArg(), "B", "DAY_2", "sup-1", 1440.0, 12, 0, sqlmock.AnyArg(), "user-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	report := sampleReport()
	require.NoError(t, repo.Save(context.Background(), report))
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftReportRepositorySaveDuplicateCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftReportRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shift_reports")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Save(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shift_reports")).WillReturnError(errors.New("connection refused"))
	err = repo.Save(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftReportRepositoryGetByCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftReportRepository(db)

	rows := sqlmock.NewRows(shiftReportRowColumns).
		AddRow("r-1", "SR-0001", "1403/01/01", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), "B", "DAY_2", "sup-1", 1440.0, 12, 120,
			`{"code":"SR-0001","shift_minutes":720}`, "user-1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM shift_reports WHERE code = $1")).
		WithArgs("SR-0001").
		WillReturnRows(rows)

	report, err := repo.GetByCode(context.Background(), "SR-0001")
	require.NoError(t, err)
	assert.Equal(t, jalali.MustParse("1403/01/01"), report.ShiftDate)
	assert.Equal(t, models.CrewB, report.Crew)
	assert.Equal(t, 720, report.Payload.ShiftMinutes)

	mock.ExpectQuery(regexp.QuoteMeta("FROM shift_reports WHERE code = $1")).
		WithArgs("SR-9999").
		WillReturnRows(sqlmock.NewRows(shiftReportRowColumns))
	_, err = repo.GetByCode(context.Background(), "SR-9999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftReportRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftReportRepository(db)

	from := jalali.MustParse("1403/01/01")
	crew := models.CrewA
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM shift_reports WHERE shift_date >= $1 AND crew = $2")).
		WithArgs("1403/01/01", "A").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM shift_reports WHERE shift_date >= $1 AND crew = $2 ORDER BY shift_date DESC, created_at DESC LIMIT $3 OFFSET $4")).
		WithArgs("1403/01/01", "A", 10, 10).
		WillReturnRows(sqlmock.NewRows(shiftReportRowColumns).
			AddRow("r-2", "SR-0002", "1403/01/03", time.Now(), "A", "NIGHT_1", "sup-2", 900.0, 10, 0, `{}`, "user-2", time.Now()))

	reports, total, err := repo.List(context.Background(), models.ShiftReportFilter{From: &from, Crew: &crew, Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, reports, 1)
	assert.Equal(t, "SR-0002", reports[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
