package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/internal/service"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/response"
)

type personnelLister interface {
	List(ctx context.Context, req service.PersonnelListRequest) ([]models.Personnel, error)
}

// PersonnelHandler exposes the roster.
type PersonnelHandler struct {
	personnel personnelLister
}

// NewPersonnelHandler constructs the handler.
func NewPersonnelHandler(personnel personnelLister) *PersonnelHandler {
	return &PersonnelHandler{personnel: personnel}
}

// List godoc
// @Summary List roster entries eligible for attendance
// @Tags Personnel
// @Produce json
// @Param crew query string false "Crew A, B or C"
// @Param search query string false "Name search"
// @Param include_ineligible query bool false "Include ineligible personnel"
// @Success 200 {object} response.Envelope
// @Router /personnel [get]
func (h *PersonnelHandler) List(c *gin.Context) {
	var req service.PersonnelListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	people, err := h.personnel.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, people, nil)
}
