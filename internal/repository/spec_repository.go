package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

const specColumns = `id, national_id, personnel_code, employment_field, gender, district_code,
       destination_priorities, cultural_couple, approved_clauses, created_at, updated_at`

// SpecRepository reads the transfer-applicant form records.
type SpecRepository struct {
	db *sqlx.DB
}

// NewSpecRepository constructs the repository.
func NewSpecRepository(db *sqlx.DB) *SpecRepository {
	return &SpecRepository{db: db}
}

// GetByNationalID fetches the form record for one applicant.
func (r *SpecRepository) GetByNationalID(ctx context.Context, nationalID string) (*models.TransferApplicantSpec, error) {
	const query = "SELECT " + specColumns + " FROM transfer_applicant_specs WHERE national_id = $1 LIMIT 1"
	var spec models.TransferApplicantSpec
	if err := r.db.GetContext(ctx, &spec, query, nationalID); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ListByNationalIDs fetches form records for a batch of applicants keyed by
// national ID. Missing records are simply absent from the map.
func (r *SpecRepository) ListByNationalIDs(ctx context.Context, nationalIDs []string) (map[string]models.TransferApplicantSpec, error) {
	if len(nationalIDs) == 0 {
		return map[string]models.TransferApplicantSpec{}, nil
	}
	query, args, err := sqlx.In("SELECT "+specColumns+" FROM transfer_applicant_specs WHERE national_id IN (?)", nationalIDs)
	if err != nil {
		return nil, fmt.Errorf("build specs query: %w", err)
	}
	query = r.db.Rebind(query)

	var specs []models.TransferApplicantSpec
	if err := r.db.SelectContext(ctx, &specs, query, args...); err != nil {
		return nil, fmt.Errorf("list transfer applicant specs: %w", err)
	}
	byNationalID := make(map[string]models.TransferApplicantSpec, len(specs))
	for _, spec := range specs {
		byNationalID[spec.NationalID] = spec
	}
	return byNationalID, nil
}
