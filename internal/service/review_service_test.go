package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
)

type reviewRepoStub struct {
	request *models.TransferAppealRequest

	savedRequestID   string
	savedReviews     map[string]dto.ReasonReviewDraft
	savedRole        models.UserRole
	savedFinalStatus *models.RequestStatus
	saveCalls        int
}

func (s *reviewRepoStub) GetByID(ctx context.Context, id string) (*models.TransferAppealRequest, error) {
	clone := *s.request
	return &clone, nil
}

func (s *reviewRepoStub) SaveReasonReviews(ctx context.Context, requestID string, reviews map[string]dto.ReasonReviewDraft, reviewerRole models.UserRole, finalStatus *models.RequestStatus) error {
	s.saveCalls++
	s.savedRequestID = requestID
	s.savedReviews = reviews
	s.savedRole = reviewerRole
	s.savedFinalStatus = finalStatus
	if finalStatus != nil {
		s.request.CurrentRequestStatus = *finalStatus
	}
	return nil
}

func reviewableRequest() *models.TransferAppealRequest {
	comment := "مدارک ناقص"
	return &models.TransferAppealRequest{
		ID:                   "req-1",
		PersonnelCode:        "9001",
		FullName:             "مریم احمدی",
		CurrentRequestStatus: models.StatusSourceReview,
		SelectedReasons: []models.SelectedReason{
			{ID: "sr-1", RequestID: "req-1", ReasonID: "reason-1", ReasonTitle: "بیماری خاص", ReviewStatus: models.ReviewPending},
			{ID: "sr-2", RequestID: "req-1", ReasonID: "reason-2", ReasonTitle: "همسر شاغل", ReviewStatus: models.ReviewRejected, ExpertComment: &comment},
		},
	}
}

func TestBuildReviewDraftSeedsFromStoredDecisions(t *testing.T) {
	request := reviewableRequest()

	draft := BuildReviewDraft(request)
	require.Len(t, draft, 2)
	require.Equal(t, models.ReviewPending, draft["reason-1"].Status)
	require.Equal(t, models.ReviewRejected, draft["reason-2"].Status)
	require.Equal(t, "مدارک ناقص", draft["reason-2"].Comment)

	// seeding again yields the same buffer
	require.Equal(t, draft, BuildReviewDraft(request))
}

func TestSaveReviewRejectsObservingRoles(t *testing.T) {
	repo := &reviewRepoStub{request: reviewableRequest()}
	svc := NewReviewService(repo, zap.NewNop())

	for _, role := range []models.UserRole{
		models.RoleDistrictTransferExpert,
		models.RoleProvinceTransferExpert,
		models.RoleSystemAdmin,
	} {
		_, err := svc.SaveReview(context.Background(), dto.SaveReviewRequest{
			RequestID: "req-1",
			Reviews:   map[string]dto.ReasonReviewDraft{"reason-1": {Status: models.ReviewApproved}},
		}, role)
		appErr := appErrors.FromError(err)
		require.Equal(t, appErrors.ErrForbidden.Code, appErr.Code, "role %s", role)
	}
	require.Zero(t, repo.saveCalls)
}

func TestSaveReviewStatusGate(t *testing.T) {
	request := reviewableRequest()
	request.CurrentRequestStatus = models.StatusSourceApproval
	repo := &reviewRepoStub{request: request}
	svc := NewReviewService(repo, zap.NewNop())

	_, err := svc.SaveReview(context.Background(), dto.SaveReviewRequest{
		RequestID: "req-1",
		Reviews:   map[string]dto.ReasonReviewDraft{"reason-1": {Status: models.ReviewApproved}},
	}, models.RoleDistrictReviewExpert)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrReviewNotAllowed.Code, appErr.Code)
	require.Zero(t, repo.saveCalls)
}

func TestSaveReviewRejectsForeignReason(t *testing.T) {
	repo := &reviewRepoStub{request: reviewableRequest()}
	svc := NewReviewService(repo, zap.NewNop())

	_, err := svc.SaveReview(context.Background(), dto.SaveReviewRequest{
		RequestID: "req-1",
		Reviews:   map[string]dto.ReasonReviewDraft{"reason-999": {Status: models.ReviewApproved}},
	}, models.RoleDistrictReviewExpert)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Zero(t, repo.saveCalls)
}

func TestSaveReviewPartialLeavesRequestOpen(t *testing.T) {
	repo := &reviewRepoStub{request: reviewableRequest()}
	svc := NewReviewService(repo, zap.NewNop())

	// reason-2 goes back to pending, so no decision can be made yet
	resp, err := svc.SaveReview(context.Background(), dto.SaveReviewRequest{
		RequestID: "req-1",
		Reviews: map[string]dto.ReasonReviewDraft{
			"reason-1": {Status: models.ReviewApproved, Comment: "تأیید شد"},
			"reason-2": {Status: models.ReviewPending},
		},
	}, models.RoleDistrictReviewExpert)
	require.NoError(t, err)
	require.False(t, resp.AutoDecision.Made)
	require.Nil(t, repo.savedFinalStatus)
	require.Equal(t, models.RoleDistrictReviewExpert, repo.savedRole)
}

func TestSaveReviewAutoDecisionAnyApproved(t *testing.T) {
	repo := &reviewRepoStub{request: reviewableRequest()}
	svc := NewReviewService(repo, zap.NewNop())

	resp, err := svc.SaveReview(context.Background(), dto.SaveReviewRequest{
		RequestID: "req-1",
		Reviews:   map[string]dto.ReasonReviewDraft{"reason-1": {Status: models.ReviewApproved}},
	}, models.RoleDistrictReviewExpert)
	require.NoError(t, err)
	require.True(t, resp.AutoDecision.Made)
	require.Equal(t, models.StatusExceptionEligibilityApproval, resp.AutoDecision.FinalStatus)
	require.NotNil(t, repo.savedFinalStatus)
	require.Equal(t, models.StatusExceptionEligibilityApproval, *repo.savedFinalStatus)
	require.NotNil(t, resp.UpdatedRequest)
	require.Equal(t, models.StatusExceptionEligibilityApproval, resp.UpdatedRequest.Status)
}

func TestSaveReviewAutoDecisionAllRejected(t *testing.T) {
	repo := &reviewRepoStub{request: reviewableRequest()}
	svc := NewReviewService(repo, zap.NewNop())

	resp, err := svc.SaveReview(context.Background(), dto.SaveReviewRequest{
		RequestID: "req-1",
		Reviews:   map[string]dto.ReasonReviewDraft{"reason-1": {Status: models.ReviewRejected}},
	}, models.RoleSchoolPrincipal)
	require.NoError(t, err)
	require.True(t, resp.AutoDecision.Made)
	require.Equal(t, models.StatusExceptionEligibilityRejection, resp.AutoDecision.FinalStatus)
}
