package models

import "time"

// PersonnelRecord is the roster entry a transfer-appeal request belongs to.
type PersonnelRecord struct {
	PersonnelCode   string    `db:"personnel_code" json:"personnel_code"`
	NationalID      string    `db:"national_id" json:"national_id"`
	FullName        string    `db:"full_name" json:"full_name"`
	Phone           string    `db:"phone" json:"phone"`
	Gender          string    `db:"gender" json:"gender"`
	DistrictCode    string    `db:"district_code" json:"district_code"`
	EmploymentField string    `db:"employment_field" json:"employment_field"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// PersonnelStats aggregates ranking figures for one personnel record within
// its eligibility group. Computed server-side, read-only for clients.
type PersonnelStats struct {
	PersonnelCode string   `db:"personnel_code" json:"personnel_code"`
	DistrictCode  string   `db:"district_code" json:"district_code"`
	GroupKey      string   `db:"group_key" json:"group_key"`
	ApprovedScore *float64 `db:"approved_score" json:"approved_score,omitempty"`
	RankInGroup   *int     `db:"rank_in_group" json:"rank_in_group,omitempty"`
	TotalInGroup  *int     `db:"total_in_group" json:"total_in_group,omitempty"`
}

// PersonnelSearch constrains the roster search query.
type PersonnelSearch struct {
	PersonnelCode string
	DistrictCode  string
	Search        string
	Limit         int
}
