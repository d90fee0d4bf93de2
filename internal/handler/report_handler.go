package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	"github.com/parsa-edu/transfer-appeal-api/internal/service"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
	"github.com/parsa-edu/transfer-appeal-api/pkg/response"
)

// ReportHandler exposes the smart-school statistics page and its export.
type ReportHandler struct {
	stats *service.StatsService
	jobs  *service.ExportJobService
}

// NewReportHandler constructs the handler.
func NewReportHandler(stats *service.StatsService, jobs *service.ExportJobService) *ReportHandler {
	return &ReportHandler{stats: stats, jobs: jobs}
}

// SmartSchool godoc
// @Summary Aggregated request statistics
// @Description Full report, or a single district when the district query is set
// @Tags Reports
// @Produce json
// @Param district query string false "District code"
// @Success 200 {object} response.Envelope
// @Router /smart-school/reports [get]
func (h *ReportHandler) SmartSchool(c *gin.Context) {
	if district := c.Query("district"); district != "" {
		row, err := h.stats.DistrictReport(c.Request.Context(), district)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, row, nil)
		return
	}

	report, err := h.stats.BuildReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	var meta map[string]interface{}
	if report.Cached {
		meta = map[string]interface{}{"cached": true}
	}
	response.JSON(c, http.StatusOK, report, nil, meta)
}

// Export godoc
// @Summary Start a smart-school report export
// @Tags Reports
// @Produce json
// @Param format query string false "csv or pdf"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /smart-school/reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := models.ExportFormat(c.DefaultQuery("format", string(models.ExportFormatCSV)))
	req := dto.CreateExportRequest{Format: format}

	job, err := h.jobs.CreateJob(c.Request.Context(), models.ExportTypeSmartSchool, req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, job, nil)
}
