package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/service"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
	"github.com/parsa-edu/transfer-appeal-api/pkg/response"
)

// ReasonHandler serves transfer reason catalogues and clause conditions.
type ReasonHandler struct {
	service *service.ReasonService
}

// NewReasonHandler constructs the handler.
func NewReasonHandler(svc *service.ReasonService) *ReasonHandler {
	return &ReasonHandler{service: svc}
}

// ApprovalReasons godoc
// @Summary List reasons usable on the approval path
// @Tags Reasons
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /approval-reasons [get]
func (h *ReasonHandler) ApprovalReasons(c *gin.Context) {
	reasons, err := h.service.ListApproval(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reasons, nil)
}

// TransferReasons godoc
// @Summary List the configured transfer reasons
// @Tags Reasons
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /transfer-settings/transfer-reasons [get]
func (h *ReasonHandler) TransferReasons(c *gin.Context) {
	reasons, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reasons, nil)
}

// ConditionsByClauses godoc
// @Summary Resolve clause conditions for selected reasons
// @Tags Reasons
// @Accept json
// @Produce json
// @Param payload body dto.ConditionsByClausesRequest true "Selected clauses"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /clause-conditions/by-clauses [post]
func (h *ReasonHandler) ConditionsByClauses(c *gin.Context) {
	var req dto.ConditionsByClausesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	conditions, err := h.service.ConditionsByClauses(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, conditions, nil)
}
