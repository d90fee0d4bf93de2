package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

// OpinionRepository persists submitted source opinions.
type OpinionRepository struct {
	db *sqlx.DB
}

// NewOpinionRepository constructs the repository.
func NewOpinionRepository(db *sqlx.DB) *OpinionRepository {
	return &OpinionRepository{db: db}
}

// Create inserts a new source opinion row.
func (r *OpinionRepository) Create(ctx context.Context, opinion *models.SourceOpinion) error {
	if opinion.ID == "" {
		opinion.ID = uuid.NewString()
	}
	if opinion.CreatedAt.IsZero() {
		opinion.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO source_opinions
	(id, request_id, personnel_code, action, reason_ids, accepted_condition_ids, comment, transfer_type, created_by, created_at)
	VALUES (:id, :request_id, :personnel_code, :action, :reason_ids, :accepted_condition_ids, :comment, :transfer_type, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, opinion); err != nil {
		return fmt.Errorf("create source opinion: %w", err)
	}
	return nil
}

// ListByRequest returns the opinions recorded for a request, newest first.
func (r *OpinionRepository) ListByRequest(ctx context.Context, requestID string) ([]models.SourceOpinion, error) {
	const query = `SELECT id, request_id, personnel_code, action, reason_ids, accepted_condition_ids, comment, transfer_type, created_by, created_at
	FROM source_opinions WHERE request_id = $1 ORDER BY created_at DESC`
	var opinions []models.SourceOpinion
	if err := r.db.SelectContext(ctx, &opinions, query, requestID); err != nil {
		return nil, fmt.Errorf("list source opinions: %w", err)
	}
	return opinions, nil
}
