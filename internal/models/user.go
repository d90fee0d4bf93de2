package models

import "time"

// UserRole represents the available roles for the RBAC system. Role values
// mirror the identifiers used by the administration front-end.
type UserRole string

const (
	RoleSystemAdmin            UserRole = "systemAdmin"
	RoleDistrictTransferExpert UserRole = "districtTransferExpert"
	RoleProvinceTransferExpert UserRole = "provinceTransferExpert"
	RoleDistrictReviewExpert   UserRole = "districtReviewExpert"
	RoleSchoolPrincipal        UserRole = "schoolPrincipal"
)

// User represents an application user stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	DistrictCode string     `db:"district_code" json:"district_code"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role      *UserRole
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}
