package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

type shiftReportReaderStub struct {
	reports    map[string]*models.ShiftReport
	gets       int
	lastFilter models.ShiftReportFilter
	err        error
}

func (s *shiftReportReaderStub) GetByCode(ctx context.Context, code string) (*models.ShiftReport, error) {
	s.gets++
	if s.err != nil {
		return nil, s.err
	}
	report, ok := s.reports[code]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "shift report not found")
	}
	return report, nil
}

func (s *shiftReportReaderStub) List(ctx context.Context, filter models.ShiftReportFilter) ([]models.ShiftReport, int, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, 0, s.err
	}
	out := make([]models.ShiftReport, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, *r)
	}
	return out, len(out), nil
}

func newReportReaderStub() *shiftReportReaderStub {
	return &shiftReportReaderStub{reports: map[string]*models.ShiftReport{
		"SR-0001": {
			ID:            "r-1",
			Code:          "SR-0001",
			ShiftDate:     jalali.MustParse("1403/01/01"),
			GregorianDate: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			Crew:          models.CrewB,
			RotationType:  models.RotationDay2,
			TotalTonnage:  1440,
		},
	}}
}

func TestShiftReportServiceGetUsesCache(t *testing.T) {
	repo := newReportReaderStub()
	cache := NewCacheService(newMemCacheRepo(), nil, time.Minute, nil, true)
	svc := NewShiftReportService(repo, cache, NewMetricsService(), nil, nil)
	ctx := context.Background()

	report, err := svc.Get(ctx, " SR-0001 ")
	require.NoError(t, err)
	assert.Equal(t, 1440.0, report.TotalTonnage)

	report, err = svc.Get(ctx, "SR-0001")
	require.NoError(t, err)
	assert.Equal(t, jalali.MustParse("1403/01/01"), report.ShiftDate)
	assert.Equal(t, 1, repo.gets)

	_, err = svc.Get(ctx, "SR-4040")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(ctx, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestShiftReportServiceGetBackendFailure(t *testing.T) {
	repo := newReportReaderStub()
	repo.err = errors.New("connection reset")
	svc := NewShiftReportService(repo, nil, nil, nil, nil)

	_, err := svc.Get(context.Background(), "SR-0001")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestShiftReportServiceList(t *testing.T) {
	repo := newReportReaderStub()
	svc := NewShiftReportService(repo, nil, nil, nil, nil)
	ctx := context.Background()

	reports, pagination, err := svc.List(ctx, ShiftReportListRequest{From: "1403/01/01", To: "1403/01/31", Crew: "B"})
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1}, pagination)
	require.NotNil(t, repo.lastFilter.From)
	assert.Equal(t, "1403/01/31", repo.lastFilter.To.String())
	assert.Equal(t, models.CrewB, *repo.lastFilter.Crew)

	_, _, err = svc.List(ctx, ShiftReportListRequest{From: "1403/02/01", To: "1403/01/01"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, _, err = svc.List(ctx, ShiftReportListRequest{From: "1403/13/01"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidDate.Code, appErrors.FromError(err).Code)

	_, _, err = svc.List(ctx, ShiftReportListRequest{Crew: "D"})
	require.Error(t, err)
}
