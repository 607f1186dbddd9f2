package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/internal/service"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/response"
)

type shiftDraftService interface {
	Start(ctx context.Context, userID string, req service.ShiftInfoRequest) (*service.DraftView, error)
	Current(ctx context.Context, userID string) (*service.DraftView, error)
	Discard(ctx context.Context, userID string) error
	UpdateInfo(ctx context.Context, userID string, req service.ShiftInfoRequest) (*service.DraftView, error)
	MarkAttendance(ctx context.Context, userID string, req service.AttendanceRequest) (*service.DraftView, error)
	SetTonnage(ctx context.Context, userID string, req service.TonnageRequest) (*service.DraftView, error)
	SetFeedComponent(ctx context.Context, userID string, req service.FeedComponentRequest) (*service.DraftView, error)
	UpdateEquipment(ctx context.Context, userID string, eq models.Equipment) (*service.DraftView, error)
	UpdateDowntime(ctx context.Context, userID string, req service.DowntimeRequest) (*service.DraftView, error)
	SetNotes(ctx context.Context, userID string, req service.NotesRequest) (*service.DraftView, error)
	AppendDictation(ctx context.Context, userID string, req service.DictationRequest) (*service.DictationResult, error)
	Next(ctx context.Context, userID string) (*service.DraftView, error)
	Previous(ctx context.Context, userID string) (*service.DraftView, error)
	GoTo(ctx context.Context, userID string, section models.Section) (*service.DraftView, error)
	Submit(ctx context.Context, userID string) (*models.ShiftReport, error)
}

// ShiftDraftHandler drives the caller's in-progress shift form.
type ShiftDraftHandler struct {
	drafts shiftDraftService
}

// NewShiftDraftHandler constructs the handler.
func NewShiftDraftHandler(drafts shiftDraftService) *ShiftDraftHandler {
	return &ShiftDraftHandler{drafts: drafts}
}

// Start godoc
// @Summary Start a shift report draft
// @Tags ShiftDrafts
// @Accept json
// @Produce json
// @Param payload body service.ShiftInfoRequest true "Shift info"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shift-drafts [post]
func (h *ShiftDraftHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.ShiftInfoRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.drafts.Start(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Current godoc
// @Summary Get the caller's draft
// @Tags ShiftDrafts
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /shift-drafts/current [get]
func (h *ShiftDraftHandler) Current(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respond(c, func(ctx context.Context) (*service.DraftView, error) {
		return h.drafts.Current(ctx, userID)
	})
}

// Discard godoc
// @Summary Discard the caller's draft
// @Tags ShiftDrafts
// @Success 204
// @Router /shift-drafts/current [delete]
func (h *ShiftDraftHandler) Discard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.drafts.Discard(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateInfo godoc
// @Summary Update shift info
// @Tags ShiftDrafts
// @Accept json
// @Produce json
// @Param payload body service.ShiftInfoRequest true "Shift info"
// @Success 200 {object} response.Envelope
// @Router /shift-drafts/current/info [put]
func (h *ShiftDraftHandler) UpdateInfo(c *gin.Context) {
	var req service.ShiftInfoRequest
	h.bindAndRespond(c, &req, func(ctx context.Context, userID string) (*service.DraftView, error) {
		return h.drafts.UpdateInfo(ctx, userID, req)
	})
}

// MarkAttendance godoc
// @Summary Mark or clear attendance for one person
// @Tags ShiftDrafts
// @Accept json
// @Produce json
// @Param payload body service.AttendanceRequest true "Attendance"
// @Success 200 {object} response.Envelope
// @Router /shift-drafts/current/attendance [put]
func (h *ShiftDraftHandler) MarkAttendance(c *gin.Context) {
	var req service.AttendanceRequest
	h.bindAndRespond(c, &req, func(ctx context.Context, userID string) (*service.DraftView, error) {
		return h.drafts.MarkAttendance(ctx, userID, req)
	})
}

// SetTonnage godoc
// @Summary Set hourly tonnage from an hour onward
// @Tags ShiftDrafts
// @Accept json
// @Produce json
// @Param payload body service.TonnageRequest true "Tonnage"
// @Success 200 {object} response.Envelope
// @Router /shift-drafts/current/feed/tonnage [put]
func (h *ShiftDraftHandler) SetTonnage(c *gin.Context) {
	var req service.TonnageRequest
	h.bindAndRespond(c, &req, func(ctx context.Context, userID string) (*service.DraftView, error) {
		return h.drafts.SetTonnage(ctx, userID, req)
	})
}

// SetFeedComponent godoc
// @Summary Update a feed composition component from an hour onward
// @Tags ShiftDrafts
// @Accept json
// @Produce json
// @Param payload body service.FeedComponentRequest true "Component"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /shift-drafts/current/feed/component [put]
func (h *ShiftDraftHandler) SetFeedComponent(c *gin.Context) {
	var req service.FeedComponentRequest
	h.bindAndRespond(c, &req, func(ctx context.Context, userID string) (*service.DraftView, error) {
		return h.drafts.SetFeedComponent(ctx, userID, req)
	})
}

// UpdateEquipment godoc
// @Summary Replace equipment readings
// @Tags ShiftDrafts
// @Accept json
// @Produce json
// @Param payload body models.Equipment true "Equipment"
// @Success 200 {object} response.Envelope
// @Router /shift-drafts/current/equipment [put]
func (h *ShiftDraftHandler) UpdateEquipment(c *gin.Context) {
	var req models.Equipment
	h.bindAndRespond(c, &req, func(ctx context.Context, userID string) (*service.DraftView, error) {
		return h.drafts.UpdateEquipment(ctx, userID, req)
	})
}

// UpdateDowntime godoc
// @Summary Replace a line's downtime record
// @Tags ShiftDrafts
// @Accept json
// @Produce json
// @Param payload body service.DowntimeRequest true "Downtime"
// @Success 200 {object} response.Envelope
// @Router /shift-drafts/current/downtime [put]
func (h *ShiftDraftHandler) UpdateDowntime(c *gin.Context) {
	var req service.DowntimeRequest
	h.bindAndRespond(c, &req, func(ctx context.Context, userID string) (*service.DraftView, error) {
		return h.drafts.UpdateDowntime(ctx, userID, req)
	})
}

// SetNotes godoc
// @Summary Replace general notes or next-shift actions
// @Tags ShiftDrafts
// @Accept json
// @Produce json
// @Param payload body service.NotesRequest true "Notes"
// @Success 200 {object} response.Envelope
// @Router /shift-drafts/current/notes [put]
func (h *ShiftDraftHandler) SetNotes(c *gin.Context) {
	var req service.NotesRequest
	h.bindAndRespond(c, &req, func(ctx context.Context, userID string) (*service.DraftView, error) {
		return h.drafts.SetNotes(ctx, userID, req)
	})
}

// AppendDictation godoc
// @Summary Append dictated text to a notes list
// @Tags ShiftDrafts
// @Accept json
// @Produce json
// @Param payload body service.DictationRequest true "Dictation"
// @Success 200 {object} response.Envelope
// @Router /shift-drafts/current/dictation [post]
func (h *ShiftDraftHandler) AppendDictation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.DictationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.drafts.AppendDictation(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Next godoc
// @Summary Advance to the next section
// @Tags ShiftDrafts
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /shift-drafts/current/next [post]
func (h *ShiftDraftHandler) Next(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respond(c, func(ctx context.Context) (*service.DraftView, error) {
		return h.drafts.Next(ctx, userID)
	})
}

// Previous godoc
// @Summary Return to the previous section
// @Tags ShiftDrafts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /shift-drafts/current/previous [post]
func (h *ShiftDraftHandler) Previous(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respond(c, func(ctx context.Context) (*service.DraftView, error) {
		return h.drafts.Previous(ctx, userID)
	})
}

// GoTo godoc
// @Summary Jump to a section
// @Tags ShiftDrafts
// @Produce json
// @Param section path string true "Section number or name"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shift-drafts/current/goto/{section} [post]
func (h *ShiftDraftHandler) GoTo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	section, valid := models.ParseSection(c.Param("section"))
	if !valid {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown section %q", c.Param("section"))))
		return
	}
	h.respond(c, func(ctx context.Context) (*service.DraftView, error) {
		return h.drafts.GoTo(ctx, userID, section)
	})
}

// Submit godoc
// @Summary Submit the draft as a shift report
// @Tags ShiftDrafts
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /shift-drafts/current/submit [post]
func (h *ShiftDraftHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	report, err := h.drafts.Submit(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

func (h *ShiftDraftHandler) respond(c *gin.Context, fn func(ctx context.Context) (*service.DraftView, error)) {
	view, err := fn(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

func (h *ShiftDraftHandler) bindAndRespond(c *gin.Context, dest interface{}, fn func(ctx context.Context, userID string) (*service.DraftView, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if !bindJSON(c, dest) {
		return
	}
	h.respond(c, func(ctx context.Context) (*service.DraftView, error) {
		return fn(ctx, userID)
	})
}
