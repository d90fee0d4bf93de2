package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

const transferRequestColumns = `id, direction, status, full_name, national_id, phone, from_district,
       to_district, description, response_description, responded_by, responded_at, created_at`

// TransferRequestRepository persists the school-to-school transfer-request
// sub-workflow.
type TransferRequestRepository struct {
	db *sqlx.DB
}

// NewTransferRequestRepository constructs the repository.
func NewTransferRequestRepository(db *sqlx.DB) *TransferRequestRepository {
	return &TransferRequestRepository{db: db}
}

// ListByDirection returns requests of one direction, newest first.
func (r *TransferRequestRepository) ListByDirection(ctx context.Context, direction models.TransferRequestDirection) ([]models.TransferRequest, error) {
	const query = "SELECT " + transferRequestColumns + ` FROM transfer_requests WHERE direction = $1 ORDER BY created_at DESC`
	var requests []models.TransferRequest
	if err := r.db.SelectContext(ctx, &requests, query, direction); err != nil {
		return nil, fmt.Errorf("list transfer requests: %w", err)
	}
	return requests, nil
}

// GetByID fetches one transfer request.
func (r *TransferRequestRepository) GetByID(ctx context.Context, id string) (*models.TransferRequest, error) {
	const query = "SELECT " + transferRequestColumns + ` FROM transfer_requests WHERE id = $1`
	var request models.TransferRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, err
	}
	return &request, nil
}

// Respond transitions a pending request to its decided status. The WHERE
// clause guards the pending precondition so concurrent responders race safely.
func (r *TransferRequestRepository) Respond(ctx context.Context, id string, status models.TransferRequestStatus, responseDescription, respondedBy string) error {
	const query = `UPDATE transfer_requests
	SET status = $1, response_description = $2, responded_by = $3, responded_at = $4
	WHERE id = $5 AND status = $6`
	result, err := r.db.ExecContext(ctx, query, status, responseDescription, respondedBy, time.Now().UTC(), id, models.TransferRequestPending)
	if err != nil {
		return fmt.Errorf("respond transfer request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check transfer request rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
