package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// StatusCount pairs a grouped column value with its request count.
type StatusCount struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

// DistrictStatusCount is a per-district breakdown row.
type DistrictStatusCount struct {
	DistrictCode string `db:"district_code"`
	Key          string `db:"key"`
	Count        int    `db:"count"`
}

// StatsRepository runs the aggregate queries behind the reports page.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository constructs the repository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CountTotal returns the total number of transfer appeal requests.
func (r *StatsRepository) CountTotal(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM transfer_appeal_requests`); err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return total, nil
}

// CountByStatus groups requests by their current status.
func (r *StatsRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	return r.countBy(ctx, "current_request_status")
}

// CountByField groups requests by employment field.
func (r *StatsRepository) CountByField(ctx context.Context) ([]StatusCount, error) {
	return r.countBy(ctx, "employment_field")
}

// CountByGender groups requests by gender.
func (r *StatsRepository) CountByGender(ctx context.Context) ([]StatusCount, error) {
	return r.countBy(ctx, "gender")
}

func (r *StatsRepository) countBy(ctx context.Context, column string) ([]StatusCount, error) {
	query := fmt.Sprintf(`SELECT COALESCE(%s, '') AS key, COUNT(*) AS count
FROM transfer_appeal_requests GROUP BY %s ORDER BY count DESC`, column, column)
	var rows []StatusCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count requests by %s: %w", column, err)
	}
	return rows, nil
}

// CountByDistrictStatus returns per-district status breakdowns in one pass.
func (r *StatsRepository) CountByDistrictStatus(ctx context.Context) ([]DistrictStatusCount, error) {
	const query = `SELECT COALESCE(district_code, '') AS district_code, current_request_status AS key, COUNT(*) AS count
FROM transfer_appeal_requests GROUP BY district_code, current_request_status ORDER BY district_code`
	var rows []DistrictStatusCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count requests by district and status: %w", err)
	}
	return rows, nil
}

// CountByDistrictGender returns per-district gender breakdowns.
func (r *StatsRepository) CountByDistrictGender(ctx context.Context) ([]DistrictStatusCount, error) {
	const query = `SELECT COALESCE(district_code, '') AS district_code, COALESCE(gender, '') AS key, COUNT(*) AS count
FROM transfer_appeal_requests GROUP BY district_code, gender ORDER BY district_code`
	var rows []DistrictStatusCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count requests by district and gender: %w", err)
	}
	return rows, nil
}
