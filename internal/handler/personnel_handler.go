package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	"github.com/parsa-edu/transfer-appeal-api/internal/service"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
	"github.com/parsa-edu/transfer-appeal-api/pkg/response"
)

// PersonnelHandler serves personnel lookups backing the opinion dialog.
type PersonnelHandler struct {
	service *service.PersonnelService
}

// NewPersonnelHandler constructs the handler.
func NewPersonnelHandler(svc *service.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{service: svc}
}

// Search godoc
// @Summary Search personnel records
// @Tags Personnel
// @Produce json
// @Param personnelCode query string false "Personnel code"
// @Param districtCode query string false "District code"
// @Param search query string false "Free text"
// @Success 200 {object} response.Envelope
// @Router /personnel-list [get]
func (h *PersonnelHandler) Search(c *gin.Context) {
	query := models.PersonnelSearch{
		PersonnelCode: c.Query("personnelCode"),
		DistrictCode:  c.Query("districtCode"),
		Search:        c.Query("search"),
	}

	records, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records, nil)
}

// Stats godoc
// @Summary Ranking statistics for one personnel record
// @Tags Personnel
// @Produce json
// @Param personnelCode query string true "Personnel code"
// @Param districtCode query string false "District code"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /personnel-stats [get]
func (h *PersonnelHandler) Stats(c *gin.Context) {
	personnelCode := c.Query("personnelCode")
	if personnelCode == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "personnelCode required"))
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), personnelCode, c.Query("districtCode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats, nil)
}
