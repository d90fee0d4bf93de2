package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsa-edu/transfer-appeal-api/internal/service"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
	"github.com/parsa-edu/transfer-appeal-api/pkg/response"
)

// TransferSpecHandler serves applicant spec lookups and filter helpers.
type TransferSpecHandler struct {
	specs *service.SpecService
	list  *service.RequestListService
}

// NewTransferSpecHandler constructs the handler.
func NewTransferSpecHandler(specs *service.SpecService, list *service.RequestListService) *TransferSpecHandler {
	return &TransferSpecHandler{specs: specs, list: list}
}

// Get godoc
// @Summary Load one applicant spec by national ID
// @Tags TransferSpecs
// @Produce json
// @Param nationalId query string true "National ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /transfer-applicant-specs [get]
func (h *TransferSpecHandler) Get(c *gin.Context) {
	spec, err := h.specs.GetByNationalID(c.Request.Context(), c.Query("nationalId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, spec, nil)
}

// Helpers godoc
// @Summary Distinct filter values for the request list
// @Tags TransferSpecs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /transfer-applicant-specs/helpers [get]
func (h *TransferSpecHandler) Helpers(c *gin.Context) {
	if h.list == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "request list service not configured"))
		return
	}
	helpers, err := h.list.FilterHelpers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, helpers, nil)
}
