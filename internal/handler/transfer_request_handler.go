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

// TransferRequestHandler serves the incoming/outgoing transfer request lists.
type TransferRequestHandler struct {
	service *service.TransferRequestService
}

// NewTransferRequestHandler constructs the handler.
func NewTransferRequestHandler(svc *service.TransferRequestService) *TransferRequestHandler {
	return &TransferRequestHandler{service: svc}
}

// List godoc
// @Summary List transfer requests by direction
// @Description Pending outgoing rows carry masked applicant PII
// @Tags TransferRequests
// @Produce json
// @Param type query string true "in or out"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /transfer-requests [get]
func (h *TransferRequestHandler) List(c *gin.Context) {
	direction := models.TransferRequestDirection(c.Query("type"))

	items, err := h.service.List(c.Request.Context(), direction)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, items, nil)
}

// Respond godoc
// @Summary Decide a pending transfer request
// @Tags TransferRequests
// @Accept json
// @Produce json
// @Param id path string true "Transfer request ID"
// @Param payload body dto.RespondTransferRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /transfer-requests/{id}/respond [post]
func (h *TransferRequestHandler) Respond(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.RespondTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid respond payload"))
		return
	}

	item, err := h.service.Respond(c.Request.Context(), c.Param("id"), req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, item, nil)
}
