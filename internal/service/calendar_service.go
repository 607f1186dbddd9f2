package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

// CalendarService converts between the Jalali and Gregorian calendars.
type CalendarService struct {
	logger *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{logger: logger}
}

// ConvertRequest carries exactly one of the two date forms.
type ConvertRequest struct {
	Jalali    string `form:"jalali"`
	Gregorian string `form:"gregorian"`
}

// Convert resolves the request to a full conversion.
func (s *CalendarService) Convert(req ConvertRequest) (*models.CalendarConversion, error) {
	rawJalali := strings.TrimSpace(req.Jalali)
	rawGregorian := strings.TrimSpace(req.Gregorian)
	switch {
	case rawJalali != "" && rawGregorian != "":
		return nil, appErrors.Clone(appErrors.ErrValidation, "provide either jalali or gregorian, not both")
	case rawJalali != "":
		date, ok := jalali.Parse(rawJalali)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrInvalidDate, fmt.Sprintf("invalid jalali date %q", rawJalali))
		}
		return s.FromJalali(date)
	case rawGregorian != "":
		g, ok := jalali.ParseGregorian(rawGregorian)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrInvalidDate, fmt.Sprintf("invalid gregorian date %q", rawGregorian))
		}
		date, ok := jalali.ToJalali(g)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrInvalidDate, fmt.Sprintf("gregorian date %q is outside the supported range", rawGregorian))
		}
		return s.FromJalali(date)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "jalali or gregorian is required")
	}
}

// FromJalali builds the conversion of a Jalali date.
func (s *CalendarService) FromJalali(date jalali.Date) (*models.CalendarConversion, error) {
	g, ok := jalali.ToGregorian(date)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidDate, fmt.Sprintf("invalid jalali date %s", date))
	}
	weekday, _ := date.Weekday()
	return &models.CalendarConversion{
		Jalali:    date,
		Gregorian: g.String(),
		Weekday:   jalali.WeekdayName(date),
		DayOfWeek: int(weekday),
		LeapYear:  jalali.IsLeap(date.Year),
	}, nil
}
