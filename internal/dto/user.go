package dto

import "github.com/parsa-edu/transfer-appeal-api/internal/models"

// CreateUserRequest registers a new dashboard user.
type CreateUserRequest struct {
	Email        string          `json:"email" validate:"required,email"`
	Password     string          `json:"password" validate:"required,min=6"`
	FullName     string          `json:"full_name" validate:"required"`
	Role         models.UserRole `json:"role" validate:"required,oneof=systemAdmin districtTransferExpert provinceTransferExpert districtReviewExpert schoolPrincipal"`
	DistrictCode string          `json:"district_code"`
}

// UpdateUserRequest mutates an existing user.
type UpdateUserRequest struct {
	Email        string          `json:"email" validate:"required,email"`
	FullName     string          `json:"full_name" validate:"required"`
	Role         models.UserRole `json:"role" validate:"required,oneof=systemAdmin districtTransferExpert provinceTransferExpert districtReviewExpert schoolPrincipal"`
	DistrictCode string          `json:"district_code"`
	Active       *bool           `json:"active"`
}
