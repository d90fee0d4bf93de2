package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
)

type reasonSource interface {
	ListActive(ctx context.Context) ([]models.TransferReason, error)
	ListByKind(ctx context.Context, kind models.ReasonKind) ([]models.TransferReason, error)
	ConditionsByReasons(ctx context.Context, reasonIDs []string, conditionType models.ConditionType) ([]models.ClauseCondition, error)
}

// ReasonService reads the configured transfer reasons and resolves the clause
// conditions behind a selection.
type ReasonService struct {
	repo   reasonSource
	logger *zap.Logger
}

// NewReasonService constructs the service.
func NewReasonService(repo reasonSource, logger *zap.Logger) *ReasonService {
	return &ReasonService{repo: repo, logger: logger}
}

// ListAll returns every active transfer reason.
func (s *ReasonService) ListAll(ctx context.Context) ([]models.TransferReason, error) {
	reasons, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transfer reasons: %w", err)
	}
	if reasons == nil {
		reasons = []models.TransferReason{}
	}
	return reasons, nil
}

// ListApproval returns the approval-kind reasons for the review checklist.
func (s *ReasonService) ListApproval(ctx context.Context) ([]models.TransferReason, error) {
	reasons, err := s.repo.ListByKind(ctx, models.ReasonKindApproval)
	if err != nil {
		return nil, fmt.Errorf("list approval reasons: %w", err)
	}
	if reasons == nil {
		reasons = []models.TransferReason{}
	}
	return reasons, nil
}

// ConditionsByClauses resolves the clause conditions of the requested type
// attached to the selected reasons.
func (s *ReasonService) ConditionsByClauses(ctx context.Context, req dto.ConditionsByClausesRequest) ([]models.ClauseCondition, error) {
	if len(req.SelectedClauses) == 0 {
		return []models.ClauseCondition{}, nil
	}
	if !req.ConditionType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "conditionType باید approval یا rejection باشد")
	}
	conditions, err := s.repo.ConditionsByReasons(ctx, req.SelectedClauses, req.ConditionType)
	if err != nil {
		return nil, fmt.Errorf("list clause conditions: %w", err)
	}
	if conditions == nil {
		conditions = []models.ClauseCondition{}
	}
	return conditions, nil
}
