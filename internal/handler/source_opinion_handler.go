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

// SourceOpinionHandler serves the source opinion dialog and submission.
type SourceOpinionHandler struct {
	service *service.OpinionService
}

// NewSourceOpinionHandler constructs the handler.
func NewSourceOpinionHandler(svc *service.OpinionService) *SourceOpinionHandler {
	return &SourceOpinionHandler{service: svc}
}

// Context godoc
// @Summary Assemble the source opinion dialog payload
// @Description Ranking stats, reason lists, preselected reasons and clause conditions
// @Tags SourceOpinion
// @Produce json
// @Param personnelCode query string true "Personnel code"
// @Param action query string true "approve or reject"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /source-opinion/context [get]
func (h *SourceOpinionHandler) Context(c *gin.Context) {
	query := dto.OpinionContextQuery{
		PersonnelCode: c.Query("personnelCode"),
		Action:        models.OpinionAction(c.Query("action")),
	}
	if query.PersonnelCode == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "personnelCode required"))
		return
	}

	ctx, err := h.service.OpenContext(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, ctx, nil)
}

// Submit godoc
// @Summary Submit the source opinion
// @Tags SourceOpinion
// @Accept json
// @Produce json
// @Param payload body dto.SubmitOpinionRequest true "Opinion payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /source-opinion [post]
func (h *SourceOpinionHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SubmitOpinionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid opinion payload"))
		return
	}

	res, err := h.service.Submit(c.Request.Context(), req, actorFromClaims(claims))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
