package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

// DefaultRotationReference is the date on which crew A starts DAY_1.
var DefaultRotationReference = jalali.Date{Year: 1402, Month: 12, Day: 25}

// crewOffsets places each crew two cycle states ahead of the previous one.
var crewOffsets = map[models.Crew]int{
	models.CrewA: 0,
	models.CrewB: 2,
	models.CrewC: 4,
}

// RotationService resolves crew duties from a fixed reference date and the 6-day cycle.
type RotationService struct {
	reference jalali.Date
	logger    *zap.Logger
}

// NewRotationService constructs the service. A zero reference falls back to DefaultRotationReference.
func NewRotationService(reference jalali.Date, logger *zap.Logger) (*RotationService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reference.IsZero() {
		reference = DefaultRotationReference
	}
	if !reference.Valid() {
		return nil, fmt.Errorf("invalid rotation reference date %s", reference)
	}
	return &RotationService{reference: reference, logger: logger}, nil
}

// Reference returns the configured reference date.
func (s *RotationService) Reference() jalali.Date {
	return s.reference
}

// RotationFor returns the label of every crew on date.
func (s *RotationService) RotationFor(date jalali.Date) (*models.Rotation, error) {
	diff, ok := jalali.DaysBetween(date, s.reference)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidDate, fmt.Sprintf("invalid date %s", date))
	}
	cycleIndex := ((diff % len(models.RotationCycle)) + len(models.RotationCycle)) % len(models.RotationCycle)

	rotation := &models.Rotation{
		Date:    date,
		Weekday: jalali.WeekdayName(date),
		Crews:   make(map[models.Crew]models.RotationLabel, len(models.Crews)),
	}
	if g, ok := jalali.ToGregorian(date); ok {
		rotation.Gregorian = g.String()
	}
	for _, crew := range models.Crews {
		rotation.Crews[crew] = models.RotationCycle[(cycleIndex+crewOffsets[crew])%len(models.RotationCycle)]
	}
	return rotation, nil
}

// CrewOnDuty returns the crew holding label on date.
func (s *RotationService) CrewOnDuty(date jalali.Date, label models.RotationLabel) (models.Crew, error) {
	if !label.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown rotation type %q", label))
	}
	rotation, err := s.RotationFor(date)
	if err != nil {
		return "", err
	}
	for _, crew := range models.Crews {
		if rotation.Crews[crew] == label {
			return crew, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("no crew works %s on %s", label, date))
}
