package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/internal/service"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
	"github.com/noah-isme/plant-shift-api/pkg/response"
)

type calendarConverter interface {
	Convert(req service.ConvertRequest) (*models.CalendarConversion, error)
}

type rotationLookup interface {
	RotationFor(date jalali.Date) (*models.Rotation, error)
}

// CalendarHandler exposes date conversion and the crew rotation.
type CalendarHandler struct {
	calendar  calendarConverter
	rotations rotationLookup
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(calendar calendarConverter, rotations rotationLookup) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, rotations: rotations}
}

// Convert godoc
// @Summary Convert between Jalali and Gregorian dates
// @Tags Calendar
// @Produce json
// @Param jalali query string false "Jalali date YYYY/MM/DD"
// @Param gregorian query string false "Gregorian date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /calendar/convert [get]
func (h *CalendarHandler) Convert(c *gin.Context) {
	var req service.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	conv, err := h.calendar.Convert(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conv, nil)
}

// Rotation godoc
// @Summary Crew rotation for a date
// @Tags Calendar
// @Produce json
// @Param date query string true "Jalali date YYYY/MM/DD"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /rotations [get]
func (h *CalendarHandler) Rotation(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date required"))
		return
	}
	date, ok := jalali.Parse(raw)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrInvalidDate, fmt.Sprintf("invalid jalali date %q", raw)))
		return
	}
	rotation, err := h.rotations.RotationFor(date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rotation, nil)
}
