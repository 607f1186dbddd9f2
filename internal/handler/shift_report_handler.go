package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/internal/service"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/response"
)

type shiftReportReader interface {
	Get(ctx context.Context, code string) (*models.ShiftReport, error)
	List(ctx context.Context, req service.ShiftReportListRequest) ([]models.ShiftReport, *models.Pagination, error)
}

type reportExporter interface {
	Render(report *models.ShiftReport, format models.ExportFormat) (*service.ExportFile, error)
	Link(report *models.ShiftReport) (*service.DownloadLink, error)
	OpenLink(token string) (*service.ExportFile, error)
}

// ShiftReportHandler serves submitted shift reports.
type ShiftReportHandler struct {
	reports  shiftReportReader
	exporter reportExporter
}

// NewShiftReportHandler constructs the handler.
func NewShiftReportHandler(reports shiftReportReader, exporter reportExporter) *ShiftReportHandler {
	return &ShiftReportHandler{reports: reports, exporter: exporter}
}

// List godoc
// @Summary List submitted shift reports
// @Tags ShiftReports
// @Produce json
// @Param from query string false "Jalali start date"
// @Param to query string false "Jalali end date"
// @Param crew query string false "Crew"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /shift-reports [get]
func (h *ShiftReportHandler) List(c *gin.Context) {
	var req service.ShiftReportListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	reports, pagination, err := h.reports.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, pagination)
}

// Get godoc
// @Summary Get a shift report by tracking code
// @Tags ShiftReports
// @Produce json
// @Param code path string true "Tracking code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /shift-reports/{code} [get]
func (h *ShiftReportHandler) Get(c *gin.Context) {
	report, err := h.reports.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Export godoc
// @Summary Download a shift report
// @Tags ShiftReports
// @Produce application/pdf
// @Produce text/csv
// @Param code path string true "Tracking code"
// @Param format query string false "pdf or csv"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /shift-reports/{code}/export [get]
func (h *ShiftReportHandler) Export(c *gin.Context) {
	format := models.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(models.ExportFormatPDF))))
	if !format.Valid() {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be pdf or csv"))
		return
	}
	report, err := h.reports.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.Render(report, format)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report"))
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Data)
}

// Link godoc
// @Summary Create a signed download link for a report PDF
// @Tags ShiftReports
// @Produce json
// @Param code path string true "Tracking code"
// @Success 201 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /shift-reports/{code}/links [post]
func (h *ShiftReportHandler) Link(c *gin.Context) {
	report, err := h.reports.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	link, err := h.exporter.Link(report)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// Download godoc
// @Summary Download an archived report through a signed link
// @Tags ShiftReports
// @Produce application/pdf
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Router /downloads/{token} [get]
func (h *ShiftReportHandler) Download(c *gin.Context) {
	file, err := h.exporter.OpenLink(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Data)
}

