package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
)

type specSource interface {
	GetByNationalID(ctx context.Context, nationalID string) (*models.TransferApplicantSpec, error)
}

// SpecService reads transfer-applicant form records.
type SpecService struct {
	repo specSource
}

// NewSpecService constructs the service.
func NewSpecService(repo specSource) *SpecService {
	return &SpecService{repo: repo}
}

// GetByNationalID returns the form record for one applicant.
func (s *SpecService) GetByNationalID(ctx context.Context, nationalID string) (*models.TransferApplicantSpec, error) {
	if nationalID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nationalId الزامی است")
	}
	spec, err := s.repo.GetByNationalID(ctx, nationalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load transfer applicant spec: %w", err)
	}
	return spec, nil
}
