package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

// ReasonRepository reads the configured transfer reasons and their clause
// conditions.
type ReasonRepository struct {
	db *sqlx.DB
}

// NewReasonRepository constructs the repository.
func NewReasonRepository(db *sqlx.DB) *ReasonRepository {
	return &ReasonRepository{db: db}
}

// ListActive returns all active transfer reasons in display order.
func (r *ReasonRepository) ListActive(ctx context.Context) ([]models.TransferReason, error) {
	const query = `SELECT id, title, code, kind, sort_order, active, created_at
	FROM transfer_reasons WHERE active = TRUE ORDER BY sort_order, code`
	var reasons []models.TransferReason
	if err := r.db.SelectContext(ctx, &reasons, query); err != nil {
		return nil, fmt.Errorf("list transfer reasons: %w", err)
	}
	return reasons, nil
}

// ListByKind returns the active reasons of one kind (approval or rejection).
func (r *ReasonRepository) ListByKind(ctx context.Context, kind models.ReasonKind) ([]models.TransferReason, error) {
	const query = `SELECT id, title, code, kind, sort_order, active, created_at
	FROM transfer_reasons WHERE active = TRUE AND kind = $1 ORDER BY sort_order, code`
	var reasons []models.TransferReason
	if err := r.db.SelectContext(ctx, &reasons, query, kind); err != nil {
		return nil, fmt.Errorf("list %s reasons: %w", kind, err)
	}
	return reasons, nil
}

// ConditionsByReasons returns every clause condition of the given type
// attached to any of the reasons.
func (r *ReasonRepository) ConditionsByReasons(ctx context.Context, reasonIDs []string, conditionType models.ConditionType) ([]models.ClauseCondition, error) {
	if len(reasonIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, reason_id, condition_type, title, description, sort_order
	FROM clause_conditions WHERE reason_id IN (?) AND condition_type = ? ORDER BY sort_order`, reasonIDs, conditionType)
	if err != nil {
		return nil, fmt.Errorf("build clause conditions query: %w", err)
	}
	query = r.db.Rebind(query)

	var conditions []models.ClauseCondition
	if err := r.db.SelectContext(ctx, &conditions, query, args...); err != nil {
		return nil, fmt.Errorf("list clause conditions: %w", err)
	}
	return conditions, nil
}
