package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/internal/service"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

type rotationStub struct {
	date jalali.Date
}

func (s *rotationStub) RotationFor(date jalali.Date) (*models.Rotation, error) {
	s.date = date
	return &models.Rotation{Date: date, Crews: map[models.Crew]models.RotationLabel{}}, nil
}

type personnelListerStub struct {
	req service.PersonnelListRequest
}

func (s *personnelListerStub) List(ctx context.Context, req service.PersonnelListRequest) ([]models.Personnel, error) {
	s.req = req
	return []models.Personnel{{ID: "p-1", FullName: "Reza Karimi"}}, nil
}

func TestCalendarHandlerConvert(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCalendarHandler(service.NewCalendarService(nil), &rotationStub{})

	c, w := newGinContext(http.MethodGet, "/calendar/convert?jalali=1403/01/01", nil)
	handler.Convert(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024-03-20")

	c, w = newGinContext(http.MethodGet, "/calendar/convert?jalali=1403/13/01", nil)
	handler.Convert(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarHandlerRotation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rotations := &rotationStub{}
	handler := NewCalendarHandler(service.NewCalendarService(nil), rotations)

	c, w := newGinContext(http.MethodGet, "/rotations?date=1403/02/15", nil)
	handler.Rotation(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1403/02/15", rotations.date.String())

	c, w = newGinContext(http.MethodGet, "/rotations", nil)
	handler.Rotation(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPersonnelHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lister := &personnelListerStub{}
	handler := NewPersonnelHandler(lister)

	c, w := newGinContext(http.MethodGet, "/personnel?crew=A&search=reza", nil)
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A", lister.req.Crew)
	assert.Equal(t, "reza", lister.req.Search)
	assert.Contains(t, w.Body.String(), "Reza Karimi")
}
