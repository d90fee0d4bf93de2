package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/middleware"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	"github.com/parsa-edu/transfer-appeal-api/internal/service"
)

type reviewRepoStub struct {
	request *models.TransferAppealRequest
}

func (s *reviewRepoStub) GetByID(ctx context.Context, id string) (*models.TransferAppealRequest, error) {
	clone := *s.request
	return &clone, nil
}

func (s *reviewRepoStub) SaveReasonReviews(ctx context.Context, requestID string, reviews map[string]dto.ReasonReviewDraft, reviewerRole models.UserRole, finalStatus *models.RequestStatus) error {
	if finalStatus != nil {
		s.request.CurrentRequestStatus = *finalStatus
	}
	return nil
}

func reviewableRequest() *models.TransferAppealRequest {
	return &models.TransferAppealRequest{
		ID:                   "req-1",
		PersonnelCode:        "9001",
		FullName:             "مریم احمدی",
		CurrentRequestStatus: models.StatusSourceReview,
		SelectedReasons: []models.SelectedReason{
			{ID: "sr-1", RequestID: "req-1", ReasonID: "reason-1", ReasonTitle: "بیماری خاص", ReviewStatus: models.ReviewPending},
		},
	}
}

func newReviewHandler(repo *reviewRepoStub) *DocumentReviewHandler {
	svc := service.NewReviewService(repo, zap.NewNop())
	return NewDocumentReviewHandler(nil, svc, 2*time.Second)
}

func TestDocumentReviewSaveRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newReviewHandler(&reviewRepoStub{request: reviewableRequest()})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/document-review", strings.NewReader(`{}`))

	h.Save(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDocumentReviewSaveAutoCloseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newReviewHandler(&reviewRepoStub{request: reviewableRequest()})

	body := `{"requestId":"req-1","reviews":{"reason-1":{"status":"approved"}}}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/document-review", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", Role: models.RoleDistrictReviewExpert})

	h.Save(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, float64(2000), envelope.Meta["autoClose_after_ms"])
	auto, _ := envelope.Data["auto_decision"].(map[string]interface{})
	assert.Equal(t, true, auto["made"])
}

func TestDocumentReviewSaveForbiddenRoleHasNoMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newReviewHandler(&reviewRepoStub{request: reviewableRequest()})

	body := `{"requestId":"req-1","reviews":{"reason-1":{"status":"approved"}}}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/document-review", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", Role: models.RoleSystemAdmin})

	h.Save(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type responseEnvelope struct {
	Data map[string]interface{} `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}
