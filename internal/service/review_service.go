package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
)

type reviewRequestRepository interface {
	GetByID(ctx context.Context, id string) (*models.TransferAppealRequest, error)
	SaveReasonReviews(ctx context.Context, requestID string, reviews map[string]dto.ReasonReviewDraft, reviewerRole models.UserRole, finalStatus *models.RequestStatus) error
}

// reviewForbiddenMessage is the fixed text shown to observing roles.
const reviewForbiddenMessage = "شما مجاز به ثبت بررسی مدارک نیستید"

// ReviewService owns the per-reason document-review flow: draft assembly,
// persistence and the server-made final decision once every reason is decided.
type ReviewService struct {
	repo   reviewRequestRepository
	logger *zap.Logger
}

// NewReviewService constructs the service.
func NewReviewService(repo reviewRequestRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{repo: repo, logger: logger}
}

// BuildReviewDraft seeds the typed review buffer from the stored per-reason
// decisions; undecided reasons start as pending. Calling it twice for the
// same request yields the same map.
func BuildReviewDraft(request *models.TransferAppealRequest) map[string]dto.ReasonReviewDraft {
	draft := make(map[string]dto.ReasonReviewDraft, len(request.SelectedReasons))
	for _, reason := range request.SelectedReasons {
		entry := dto.ReasonReviewDraft{Status: reason.ReviewStatus}
		if entry.Status == "" {
			entry.Status = models.ReviewPending
		}
		if reason.ExpertComment != nil {
			entry.Comment = *reason.ExpertComment
		}
		draft[reason.ReasonID] = entry
	}
	return draft
}

// GetReviewContext loads one request and its seeded review draft for the
// review dialog.
func (s *ReviewService) GetReviewContext(ctx context.Context, requestID string, actor models.UserRole) (*dto.RequestListItem, map[string]dto.ReasonReviewDraft, error) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("load request %s: %w", requestID, err)
	}
	item := BuildRequestListItem(request, actor)
	return &item, BuildReviewDraft(request), nil
}

// SaveReview validates the role and status gates, persists the submitted
// decisions and, when no reason remains pending, transitions the request to
// its eligibility outcome.
func (s *ReviewService) SaveReview(ctx context.Context, req dto.SaveReviewRequest, actor models.UserRole) (*dto.SaveReviewResponse, error) {
	if !models.CanSaveDocumentReview(actor) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, reviewForbiddenMessage)
	}
	if len(req.Reviews) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "هیچ بررسی‌ای برای ثبت ارسال نشده است")
	}

	request, err := s.repo.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load request %s: %w", req.RequestID, err)
	}

	if !models.CanPerformDocumentReview(request.CurrentRequestStatus) {
		return nil, appErrors.Clone(appErrors.ErrReviewNotAllowed,
			"بررسی مدارک فقط در وضعیت‌های "+allowedReviewStatusLabels()+" ممکن است")
	}

	known := make(map[string]struct{}, len(request.SelectedReasons))
	for _, reason := range request.SelectedReasons {
		known[reason.ReasonID] = struct{}{}
	}
	for reasonID, draft := range req.Reviews {
		if _, ok := known[reasonID]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("دلیل %s متعلق به این درخواست نیست", reasonID))
		}
		if !draft.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("وضعیت بررسی نامعتبر برای دلیل %s", reasonID))
		}
	}

	merged := BuildReviewDraft(request)
	for reasonID, draft := range req.Reviews {
		merged[reasonID] = draft
	}
	decision := decideFinalStatus(merged)

	var finalStatus *models.RequestStatus
	if decision.Made {
		finalStatus = &decision.FinalStatus
	}
	if err := s.repo.SaveReasonReviews(ctx, req.RequestID, req.Reviews, actor, finalStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("save reason reviews: %w", err)
	}

	updated, err := s.repo.GetByID(ctx, req.RequestID)
	if err != nil {
		s.logger.Warn("reload request after review save", zap.String("request_id", req.RequestID), zap.Error(err))
		return &dto.SaveReviewResponse{Message: "بررسی مدارک ثبت شد", AutoDecision: decision}, nil
	}
	item := BuildRequestListItem(updated, actor)
	return &dto.SaveReviewResponse{
		Message:        "بررسی مدارک ثبت شد",
		UpdatedRequest: &item,
		AutoDecision:   decision,
	}, nil
}

// decideFinalStatus inspects the merged decision set. Once no reason remains
// pending the request closes: any approved reason grants the exception
// eligibility, an all-rejected set denies it.
func decideFinalStatus(merged map[string]dto.ReasonReviewDraft) dto.AutoDecision {
	if len(merged) == 0 {
		return dto.AutoDecision{}
	}
	anyApproved := false
	for _, draft := range merged {
		switch draft.Status {
		case models.ReviewPending:
			return dto.AutoDecision{}
		case models.ReviewApproved:
			anyApproved = true
		}
	}
	final := models.StatusExceptionEligibilityRejection
	if anyApproved {
		final = models.StatusExceptionEligibilityApproval
	}
	return dto.AutoDecision{
		Made:        true,
		FinalStatus: final,
		Message:     "وضعیت درخواست به «" + final.Text() + "» تغییر کرد",
	}
}

func allowedReviewStatusLabels() string {
	statuses := models.DocumentReviewStatuses()
	labels := make([]string, len(statuses))
	for i, status := range statuses {
		labels[i] = "«" + status.Text() + "»"
	}
	return strings.Join(labels, "، ")
}
