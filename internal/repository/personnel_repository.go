package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

// PersonnelRepository reads the personnel roster and ranking statistics.
type PersonnelRepository struct {
	db *sqlx.DB
}

// NewPersonnelRepository constructs the repository.
func NewPersonnelRepository(db *sqlx.DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

// Search returns roster entries matching the query, bounded by Limit.
func (r *PersonnelRepository) Search(ctx context.Context, q models.PersonnelSearch) ([]models.PersonnelRecord, error) {
	builder := strings.Builder{}
	builder.WriteString(`SELECT personnel_code, national_id, full_name, phone, gender, district_code, employment_field, created_at
	FROM personnel`)

	args := make([]interface{}, 0, 3)
	conditions := make([]string, 0, 3)
	if q.PersonnelCode != "" {
		args = append(args, q.PersonnelCode)
		conditions = append(conditions, fmt.Sprintf("personnel_code = $%d", len(args)))
	}
	if q.DistrictCode != "" {
		args = append(args, q.DistrictCode)
		conditions = append(conditions, fmt.Sprintf("district_code = $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+strings.ToLower(q.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR national_id LIKE $%d OR personnel_code LIKE $%d)", len(args), len(args), len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY full_name")

	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d", limit))

	var records []models.PersonnelRecord
	if err := r.db.SelectContext(ctx, &records, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("search personnel: %w", err)
	}
	return records, nil
}

// Stats returns ranking figures for one personnel record. Rank and totals
// come from a window over the eligibility group.
func (r *PersonnelRepository) Stats(ctx context.Context, personnelCode, districtCode string) (*models.PersonnelStats, error) {
	const query = `SELECT personnel_code, district_code, group_key, approved_score, rank_in_group, total_in_group
	FROM (
		SELECT personnel_code, district_code, group_key, approved_score,
		       RANK() OVER (PARTITION BY group_key ORDER BY approved_score DESC NULLS LAST) AS rank_in_group,
		       COUNT(*) OVER (PARTITION BY group_key) AS total_in_group
		FROM transfer_appeal_requests
		WHERE district_code = $2
	) ranked
	WHERE personnel_code = $1`
	var stats models.PersonnelStats
	if err := r.db.GetContext(ctx, &stats, query, personnelCode, districtCode); err != nil {
		return nil, fmt.Errorf("personnel stats: %w", err)
	}
	return &stats, nil
}
