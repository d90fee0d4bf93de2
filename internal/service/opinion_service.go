package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
)

type opinionRequestRepository interface {
	GetByPersonnelCode(ctx context.Context, personnelCode string) (*models.TransferAppealRequest, error)
	ApplySourceOpinion(ctx context.Context, requestID string, status models.RequestStatus, transferType *models.TransferType) error
}

type opinionReasonRepository interface {
	ListByKind(ctx context.Context, kind models.ReasonKind) ([]models.TransferReason, error)
	ConditionsByReasons(ctx context.Context, reasonIDs []string, conditionType models.ConditionType) ([]models.ClauseCondition, error)
}

type opinionStore interface {
	Create(ctx context.Context, opinion *models.SourceOpinion) error
	ListByRequest(ctx context.Context, requestID string) ([]models.SourceOpinion, error)
}

type personnelStatsProvider interface {
	Stats(ctx context.Context, personnelCode, districtCode string) (*models.PersonnelStats, error)
}

// OpinionService owns the source-opinion flow: the dialog-open context and
// the gated submission that transitions the request.
type OpinionService struct {
	requests  opinionRequestRepository
	reasons   opinionReasonRepository
	opinions  opinionStore
	personnel personnelStatsProvider
	logger    *zap.Logger
}

// NewOpinionService constructs the service.
func NewOpinionService(requests opinionRequestRepository, reasons opinionReasonRepository, opinions opinionStore, personnel personnelStatsProvider, logger *zap.Logger) *OpinionService {
	return &OpinionService{requests: requests, reasons: reasons, opinions: opinions, personnel: personnel, logger: logger}
}

// OpenContext assembles the opinion dialog payload. Ranking stats are
// best-effort: a stats failure degrades to a null block instead of failing
// the open. Reasons whose document review already approved them come
// pre-selected for both actions.
func (s *OpinionService) OpenContext(ctx context.Context, query dto.OpinionContextQuery) (*dto.OpinionContext, error) {
	if !query.Action.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "عملیات نظر مبدأ نامعتبر است")
	}
	request, err := s.requests.GetByPersonnelCode(ctx, query.PersonnelCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load request for personnel %s: %w", query.PersonnelCode, err)
	}

	out := &dto.OpinionContext{
		ApprovalReasons:    []models.TransferReason{},
		RejectionReasons:   []models.TransferReason{},
		PreselectedReasons: []string{},
		ClauseConditions:   []models.ClauseCondition{},
		PreviousOpinions:   []models.SourceOpinion{},
	}

	stats, err := s.personnel.Stats(ctx, request.PersonnelCode, request.DistrictCode)
	if err != nil {
		s.logger.Warn("personnel stats unavailable",
			zap.String("personnel_code", request.PersonnelCode), zap.Error(err))
		out.StatsUnavailable = true
	} else {
		out.Stats = stats
	}

	// history is best-effort like stats; an empty dialog still opens
	history, err := s.opinions.ListByRequest(ctx, request.ID)
	if err != nil {
		s.logger.Warn("source opinion history unavailable",
			zap.String("request_id", request.ID), zap.Error(err))
	} else if history != nil {
		out.PreviousOpinions = history
	}

	approval, err := s.reasons.ListByKind(ctx, models.ReasonKindApproval)
	if err != nil {
		return nil, fmt.Errorf("load approval reasons: %w", err)
	}
	rejection, err := s.reasons.ListByKind(ctx, models.ReasonKindRejection)
	if err != nil {
		return nil, fmt.Errorf("load rejection reasons: %w", err)
	}
	out.ApprovalReasons = approval
	out.RejectionReasons = rejection

	for _, reason := range request.SelectedReasons {
		if reason.ReviewStatus == models.ReviewApproved {
			out.PreselectedReasons = append(out.PreselectedReasons, reason.ReasonID)
		}
	}

	if len(out.PreselectedReasons) > 0 {
		conditionType := models.ConditionTypeApproval
		if query.Action == models.OpinionReject {
			conditionType = models.ConditionTypeRejection
		}
		conditions, err := s.reasons.ConditionsByReasons(ctx, out.PreselectedReasons, conditionType)
		if err != nil {
			return nil, fmt.Errorf("load clause conditions: %w", err)
		}
		if conditions != nil {
			out.ClauseConditions = conditions
		}
	}
	return out, nil
}

// Submit validates the gates in order and records the opinion: role, request
// status, non-empty reasons, a transfer type on approvals, and explicit
// acceptance of every clause condition the chosen reasons carry.
func (s *OpinionService) Submit(ctx context.Context, req dto.SubmitOpinionRequest, actor models.User) (*dto.SubmitOpinionResponse, error) {
	if !models.CanSubmitSourceOpinion(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "شما مجاز به ثبت نظر مبدأ نیستید")
	}
	if !req.Action.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "عملیات نظر مبدأ نامعتبر است")
	}

	request, err := s.requests.GetByPersonnelCode(ctx, req.PersonnelCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load request for personnel %s: %w", req.PersonnelCode, err)
	}
	if !models.ShouldShowSourceOpinionButtons(request.CurrentRequestStatus) {
		return nil, appErrors.ErrOpinionNotAllowed
	}
	if len(req.ReasonIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "حداقل یک دلیل باید انتخاب شود")
	}

	var transferType *models.TransferType
	if req.Action == models.OpinionApprove {
		if req.TransferType == nil || !req.TransferType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "نوع انتقال (دائم یا موقت) باید مشخص شود")
		}
		transferType = req.TransferType
	}

	conditionType := models.ConditionTypeApproval
	if req.Action == models.OpinionReject {
		conditionType = models.ConditionTypeRejection
	}
	conditions, err := s.reasons.ConditionsByReasons(ctx, req.ReasonIDs, conditionType)
	if err != nil {
		return nil, fmt.Errorf("load clause conditions: %w", err)
	}
	if len(conditions) > 0 {
		accepted := make(map[string]struct{}, len(req.AcceptedConditionIDs))
		for _, id := range req.AcceptedConditionIDs {
			accepted[id] = struct{}{}
		}
		if len(accepted) != len(conditions) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "پذیرش همه شرایط بندهای انتخابی الزامی است")
		}
		for _, condition := range conditions {
			if _, ok := accepted[condition.ID]; !ok {
				return nil, appErrors.Clone(appErrors.ErrValidation, "پذیرش همه شرایط بندهای انتخابی الزامی است")
			}
		}
	}

	finalStatus := models.StatusSourceApproval
	if req.Action == models.OpinionReject {
		finalStatus = models.StatusSourceRejection
	}
	if err := s.requests.ApplySourceOpinion(ctx, request.ID, finalStatus, transferType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("apply source opinion: %w", err)
	}

	opinion := &models.SourceOpinion{
		RequestID:            request.ID,
		PersonnelCode:        request.PersonnelCode,
		Action:               req.Action,
		ReasonIDs:            models.StringList(req.ReasonIDs),
		AcceptedConditionIDs: models.StringList(req.AcceptedConditionIDs),
		Comment:              req.Comment,
		TransferType:         transferType,
		CreatedBy:            actor.ID,
	}
	if err := s.opinions.Create(ctx, opinion); err != nil {
		// the transition already happened; surface the record failure
		return nil, fmt.Errorf("record source opinion: %w", err)
	}

	message := "موافقت مبدأ ثبت شد"
	if req.Action == models.OpinionReject {
		message = "مخالفت مبدأ ثبت شد"
	}
	return &dto.SubmitOpinionResponse{Message: message, Status: finalStatus}, nil
}
