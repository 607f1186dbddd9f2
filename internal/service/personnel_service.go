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
)

const (
	personnelCacheTTL    = 5 * time.Minute
	personnelCachePrefix = "personnel:"
)

type personnelRepository interface {
	List(ctx context.Context, filter models.PersonnelFilter) ([]models.Personnel, error)
	GetByID(ctx context.Context, id string) (*models.Personnel, error)
}

// PersonnelService serves the roster used by the attendance section.
type PersonnelService struct {
	repo      personnelRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPersonnelService constructs the service. cache may be nil.
func NewPersonnelService(repo personnelRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *PersonnelService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonnelService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// PersonnelListRequest filters the roster. Ineligible people are hidden unless IncludeIneligible is set.
type PersonnelListRequest struct {
	Crew              string `form:"crew" validate:"omitempty,oneof=A B C"`
	Search            string `form:"search" validate:"max=100"`
	IncludeIneligible bool   `form:"include_ineligible"`
}

// List returns roster entries ordered by name.
func (s *PersonnelService) List(ctx context.Context, req PersonnelListRequest) ([]models.Personnel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter")
	}
	filter := models.PersonnelFilter{EligibleOnly: !req.IncludeIneligible, Search: strings.TrimSpace(req.Search)}
	if req.Crew != "" {
		crew := models.Crew(req.Crew)
		filter.Crew = &crew
	}

	key := fmt.Sprintf(personnelCachePrefix+"%s:%t:%s", req.Crew, filter.EligibleOnly, strings.ToLower(filter.Search))
	return loadThrough(ctx, s.cache, key, personnelCacheTTL, func(ctx context.Context) ([]models.Personnel, error) {
		people, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list personnel")
		}
		return people, nil
	})
}

// ResetCache drops cached roster listings. The personnel table is maintained outside this
// service, so listings cached by a previous process may be stale.
func (s *PersonnelService) ResetCache(ctx context.Context) error {
	return s.cache.Invalidate(ctx, personnelCachePrefix+"*")
}

// GetByID returns one roster entry.
func (s *PersonnelService) GetByID(ctx context.Context, id string) (*models.Personnel, error) {
	person, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.FromError(err)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load personnel")
	}
	return person, nil
}
