package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

const requestColumns = `id, personnel_code, national_id, full_name, phone, gender, district_code,
       employment_field, current_request_status, approved_score, rank_in_group, total_in_group,
       group_key, source_opinion_transfer_type, created_at, updated_at`

const reasonColumns = `id, request_id, reason_id, reason_title, reason_code, review_status,
       expert_comment, reviewed_at, reviewer_role`

// RequestRepository persists transfer-appeal requests and their selected reasons.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository constructs the repository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// ServerFilter narrows the list query server-side before the in-memory
// filter pipeline runs. All fields optional.
type ServerFilter struct {
	EmploymentField string
	Gender          string
	DistrictCode    string
}

// List returns requests matching the server filter with their selected
// reasons attached, newest first.
func (r *RequestRepository) List(ctx context.Context, filter ServerFilter) ([]models.TransferAppealRequest, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT " + requestColumns + " FROM transfer_appeal_requests")

	args := make([]interface{}, 0, 3)
	conditions := make([]string, 0, 3)
	if filter.EmploymentField != "" {
		args = append(args, filter.EmploymentField)
		conditions = append(conditions, fmt.Sprintf("employment_field = $%d", len(args)))
	}
	if filter.Gender != "" {
		args = append(args, filter.Gender)
		conditions = append(conditions, fmt.Sprintf("gender = $%d", len(args)))
	}
	if filter.DistrictCode != "" {
		args = append(args, filter.DistrictCode)
		conditions = append(conditions, fmt.Sprintf("district_code = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY created_at DESC")

	var requests []models.TransferAppealRequest
	if err := r.db.SelectContext(ctx, &requests, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list transfer appeal requests: %w", err)
	}
	if err := r.attachReasons(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// GetByID fetches one request with its selected reasons.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*models.TransferAppealRequest, error) {
	const query = "SELECT " + requestColumns + " FROM transfer_appeal_requests WHERE id = $1"
	var request models.TransferAppealRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, err
	}
	reqs := []models.TransferAppealRequest{request}
	if err := r.attachReasons(ctx, reqs); err != nil {
		return nil, err
	}
	return &reqs[0], nil
}

// GetByPersonnelCode fetches the request belonging to a personnel record.
func (r *RequestRepository) GetByPersonnelCode(ctx context.Context, personnelCode string) (*models.TransferAppealRequest, error) {
	const query = "SELECT " + requestColumns + " FROM transfer_appeal_requests WHERE personnel_code = $1 LIMIT 1"
	var request models.TransferAppealRequest
	if err := r.db.GetContext(ctx, &request, query, personnelCode); err != nil {
		return nil, err
	}
	reqs := []models.TransferAppealRequest{request}
	if err := r.attachReasons(ctx, reqs); err != nil {
		return nil, err
	}
	return &reqs[0], nil
}

func (r *RequestRepository) attachReasons(ctx context.Context, requests []models.TransferAppealRequest) error {
	if len(requests) == 0 {
		return nil
	}
	ids := make([]string, len(requests))
	for i := range requests {
		ids[i] = requests[i].ID
	}
	query, args, err := sqlx.In("SELECT "+reasonColumns+" FROM selected_reasons WHERE request_id IN (?) ORDER BY reason_code", ids)
	if err != nil {
		return fmt.Errorf("build selected reasons query: %w", err)
	}
	query = r.db.Rebind(query)

	var reasons []models.SelectedReason
	if err := r.db.SelectContext(ctx, &reasons, query, args...); err != nil {
		return fmt.Errorf("list selected reasons: %w", err)
	}

	byRequest := make(map[string][]models.SelectedReason, len(requests))
	for _, reason := range reasons {
		byRequest[reason.RequestID] = append(byRequest[reason.RequestID], reason)
	}
	for i := range requests {
		requests[i].SelectedReasons = byRequest[requests[i].ID]
	}
	return nil
}

// SaveReasonReviews persists a batch of per-reason decisions and, when a
// final status is provided, the request transition — in one transaction so
// a failure leaves stored reviews untouched.
func (r *RequestRepository) SaveReasonReviews(ctx context.Context, requestID string, reviews map[string]dto.ReasonReviewDraft, reviewerRole models.UserRole, finalStatus *models.RequestStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	const update = `UPDATE selected_reasons
	SET review_status = $1, expert_comment = $2, reviewed_at = $3, reviewer_role = $4
	WHERE request_id = $5 AND reason_id = $6`
	for reasonID, draft := range reviews {
		var comment *string
		if trimmed := strings.TrimSpace(draft.Comment); trimmed != "" {
			comment = &trimmed
		}
		role := string(reviewerRole)
		if _, err := tx.ExecContext(ctx, update, draft.Status, comment, now, role, requestID, reasonID); err != nil {
			return fmt.Errorf("update reason review %s: %w", reasonID, err)
		}
	}

	if finalStatus != nil {
		result, err := tx.ExecContext(ctx,
			`UPDATE transfer_appeal_requests SET current_request_status = $1, updated_at = $2 WHERE id = $3`,
			*finalStatus, now, requestID)
		if err != nil {
			return fmt.Errorf("update request status: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("check request status rows: %w", err)
		}
		if rows == 0 {
			return sql.ErrNoRows
		}
	} else {
		if _, err := tx.ExecContext(ctx,
			`UPDATE transfer_appeal_requests SET updated_at = $1 WHERE id = $2`, now, requestID); err != nil {
			return fmt.Errorf("touch request: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review transaction: %w", err)
	}
	return nil
}

// ApplySourceOpinion transitions the request per the opinion outcome and
// records the transfer-type choice on approvals.
func (r *RequestRepository) ApplySourceOpinion(ctx context.Context, requestID string, status models.RequestStatus, transferType *models.TransferType) error {
	const query = `UPDATE transfer_appeal_requests
	SET current_request_status = $1, source_opinion_transfer_type = $2, updated_at = $3
	WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, status, transferType, time.Now().UTC(), requestID)
	if err != nil {
		return fmt.Errorf("apply source opinion: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check source opinion rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FilterHelpers returns the distinct values the list filters offer.
func (r *RequestRepository) FilterHelpers(ctx context.Context) (*models.FilterHelpers, error) {
	helpers := &models.FilterHelpers{}
	if err := r.db.SelectContext(ctx, &helpers.EmploymentFields,
		`SELECT DISTINCT employment_field FROM transfer_appeal_requests WHERE employment_field <> '' ORDER BY employment_field`); err != nil {
		return nil, fmt.Errorf("list employment fields: %w", err)
	}
	if err := r.db.SelectContext(ctx, &helpers.Genders,
		`SELECT DISTINCT gender FROM transfer_appeal_requests WHERE gender <> '' ORDER BY gender`); err != nil {
		return nil, fmt.Errorf("list genders: %w", err)
	}
	if err := r.db.SelectContext(ctx, &helpers.Districts,
		`SELECT DISTINCT district_code FROM transfer_appeal_requests WHERE district_code <> '' ORDER BY district_code`); err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	return helpers, nil
}
