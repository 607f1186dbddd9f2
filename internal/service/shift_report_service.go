package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

const shiftReportCacheTTL = 30 * time.Minute

type shiftReportReader interface {
	GetByCode(ctx context.Context, code string) (*models.ShiftReport, error)
	List(ctx context.Context, filter models.ShiftReportFilter) ([]models.ShiftReport, int, error)
}

// ShiftReportService reads submitted shift reports. Reports are immutable once stored so lookups
// by tracking code are cached without invalidation.
type ShiftReportService struct {
	repo      shiftReportReader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewShiftReportService constructs the service. cache and metrics may be nil.
func NewShiftReportService(repo shiftReportReader, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ShiftReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftReportService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// ShiftReportListRequest filters report listings. Dates are Jalali Y/M/D.
type ShiftReportListRequest struct {
	From     string `form:"from"`
	To       string `form:"to"`
	Crew     string `form:"crew" validate:"omitempty,oneof=A B C"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

func shiftReportCacheKey(code string) string {
	return "shift_report:" + code
}

// Get returns the report with the given tracking code.
func (s *ShiftReportService) Get(ctx context.Context, code string) (*models.ShiftReport, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "tracking code is required")
	}
	return loadThrough(ctx, s.cache, shiftReportCacheKey(code), shiftReportCacheTTL, func(ctx context.Context) (*models.ShiftReport, error) {
		start := time.Now()
		report, err := s.repo.GetByCode(ctx, code)
		s.metrics.ObserveDBQuery("shift_report_get", time.Since(start))
		switch {
		case errors.Is(err, appErrors.ErrNotFound):
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("shift report %s not found", code))
		case err != nil:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift report")
		}
		return report, nil
	})
}

// List returns a page of reports, newest shift first.
func (s *ShiftReportService) List(ctx context.Context, req ShiftReportListRequest) ([]models.ShiftReport, *models.Pagination, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter")
	}
	filter := models.ShiftReportFilter{Page: req.Page, PageSize: req.PageSize}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if req.From != "" {
		from, ok := jalali.Parse(req.From)
		if !ok {
			return nil, nil, appErrors.Clone(appErrors.ErrInvalidDate, fmt.Sprintf("invalid from date %q", req.From))
		}
		filter.From = &from
	}
	if req.To != "" {
		to, ok := jalali.Parse(req.To)
		if !ok {
			return nil, nil, appErrors.Clone(appErrors.ErrInvalidDate, fmt.Sprintf("invalid to date %q", req.To))
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "to must not be before from")
	}
	if req.Crew != "" {
		crew := models.Crew(req.Crew)
		filter.Crew = &crew
	}

	start := time.Now()
	reports, total, err := s.repo.List(ctx, filter)
	s.metrics.ObserveDBQuery("shift_report_list", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shift reports")
	}
	return reports, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}
