package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/service"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
	"github.com/parsa-edu/transfer-appeal-api/pkg/response"
)

// DocumentReviewHandler serves the document-review table and the per-reason
// review workflow.
type DocumentReviewHandler struct {
	list           *service.RequestListService
	reviews        *service.ReviewService
	autoCloseDelay time.Duration
}

// NewDocumentReviewHandler constructs the handler.
func NewDocumentReviewHandler(list *service.RequestListService, reviews *service.ReviewService, autoCloseDelay time.Duration) *DocumentReviewHandler {
	if autoCloseDelay <= 0 {
		autoCloseDelay = 2 * time.Second
	}
	return &DocumentReviewHandler{list: list, reviews: reviews, autoCloseDelay: autoCloseDelay}
}

// List godoc
// @Summary List transfer appeal requests
// @Description Filtered, sorted, paginated request list with per-status tallies
// @Tags DocumentReview
// @Produce json
// @Param search query string false "Name, national ID or personnel code"
// @Param status query string false "Status key or all"
// @Param employmentField query string false "Employment field"
// @Param gender query string false "Gender"
// @Param districtCode query string false "District code"
// @Param sortBy query string false "Sort key (approvedScore)"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /document-review [get]
func (h *DocumentReviewHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	query := dto.RequestListQuery{
		Search:          c.Query("search"),
		Status:          c.Query("status"),
		EmploymentField: c.Query("employmentField"),
		Gender:          c.Query("gender"),
		DistrictCode:    c.Query("districtCode"),
		SortBy:          c.Query("sortBy"),
		SortOrder:       c.Query("sortOrder"),
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "0"))

	res, pagination, err := h.list.List(c.Request.Context(), query, claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, pagination)
}

// Get godoc
// @Summary Load one request with its review draft
// @Tags DocumentReview
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /document-review/{id} [get]
func (h *DocumentReviewHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	item, drafts, err := h.reviews.GetReviewContext(c.Request.Context(), c.Param("id"), claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"request": item,
		"reviews": drafts,
	}, nil)
}

// Save godoc
// @Summary Save per-reason document review decisions
// @Description Persists the review batch; when every reason is decided the
// @Description request status is resolved automatically
// @Tags DocumentReview
// @Accept json
// @Produce json
// @Param payload body dto.SaveReviewRequest true "Review batch"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /document-review [put]
func (h *DocumentReviewHandler) Save(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SaveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	res, err := h.reviews.SaveReview(c.Request.Context(), req, claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	// The dialog stays open while partial; once the server decides, the
	// client closes it after the advertised delay.
	var meta map[string]interface{}
	if res.AutoDecision.Made {
		meta = map[string]interface{}{"autoClose_after_ms": h.autoCloseDelay.Milliseconds()}
	}

	response.JSON(c, http.StatusOK, res, nil, meta)
}
