package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
)

type transferRequestStore interface {
	ListByDirection(ctx context.Context, direction models.TransferRequestDirection) ([]models.TransferRequest, error)
	GetByID(ctx context.Context, id string) (*models.TransferRequest, error)
	Respond(ctx context.Context, id string, status models.TransferRequestStatus, responseDescription, respondedBy string) error
}

// TransferRequestService owns the school-to-school transfer-request
// sub-workflow: directional lists with PII masking and the pending-only
// respond transition.
type TransferRequestService struct {
	repo   transferRequestStore
	logger *zap.Logger
}

// NewTransferRequestService constructs the service.
func NewTransferRequestService(repo transferRequestStore, logger *zap.Logger) *TransferRequestService {
	return &TransferRequestService{repo: repo, logger: logger}
}

// List returns the requests of one direction as display rows.
func (s *TransferRequestService) List(ctx context.Context, direction models.TransferRequestDirection) ([]dto.TransferRequestItem, error) {
	if direction != models.TransferRequestIncoming && direction != models.TransferRequestOutgoing {
		return nil, appErrors.Clone(appErrors.ErrValidation, "نوع درخواست باید in یا out باشد")
	}
	requests, err := s.repo.ListByDirection(ctx, direction)
	if err != nil {
		return nil, fmt.Errorf("list transfer requests: %w", err)
	}
	items := make([]dto.TransferRequestItem, 0, len(requests))
	for _, request := range requests {
		items = append(items, buildTransferRequestItem(request))
	}
	return items, nil
}

// Respond decides a pending request. Requests already decided stay decided:
// the repository transition only matches pending rows.
func (s *TransferRequestService) Respond(ctx context.Context, id string, req dto.RespondTransferRequest, actorID string) (*dto.TransferRequestItem, error) {
	var status models.TransferRequestStatus
	switch req.Action {
	case "approve":
		status = models.TransferRequestApproved
	case "reject":
		status = models.TransferRequestRejected
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "عملیات باید approve یا reject باشد")
	}

	if err := s.repo.Respond(ctx, id, status, strings.TrimSpace(req.ResponseDescription), actorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// either missing or already decided; distinguish for the caller
			if _, getErr := s.repo.GetByID(ctx, id); getErr == nil {
				return nil, appErrors.Clone(appErrors.ErrConflict, "این درخواست قبلاً پاسخ داده شده است")
			}
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("respond transfer request: %w", err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		// the transition is committed; report it from what we already know
		s.logger.Warn("reload transfer request after respond", zap.String("id", id), zap.Error(err))
		item := dto.TransferRequestItem{ID: id, Status: status, StatusText: status.Text()}
		if description := strings.TrimSpace(req.ResponseDescription); description != "" {
			item.ResponseDescription = &description
		}
		return &item, nil
	}
	item := buildTransferRequestItem(*updated)
	return &item, nil
}

// buildTransferRequestItem applies the PII masking rule during projection so
// masked fields never leave the service layer.
func buildTransferRequestItem(request models.TransferRequest) dto.TransferRequestItem {
	item := dto.TransferRequestItem{
		ID:                  request.ID,
		Direction:           request.Direction,
		Status:              request.Status,
		StatusText:          request.Status.Text(),
		FullName:            request.FullName,
		NationalID:          request.NationalID,
		Phone:               request.Phone,
		FromDistrict:        request.FromDistrict,
		ToDistrict:          request.ToDistrict,
		Description:         request.Description,
		ResponseDescription: request.ResponseDescription,
		CreatedAt:           request.CreatedAt,
		RespondedAt:         request.RespondedAt,
	}
	if request.RequiresPIIMasking() {
		item.FullName = maskName(request.FullName)
		item.NationalID = maskDigits(request.NationalID)
		item.Phone = maskDigits(request.Phone)
		item.PIIMasked = true
	}
	return item
}

// maskName keeps the first rune of each name part.
func maskName(name string) string {
	parts := strings.Fields(name)
	for i, part := range parts {
		runes := []rune(part)
		if len(runes) <= 1 {
			continue
		}
		parts[i] = string(runes[0]) + strings.Repeat("*", len(runes)-1)
	}
	return strings.Join(parts, " ")
}

// maskDigits keeps the final three digits.
func maskDigits(value string) string {
	runes := []rune(value)
	if len(runes) <= 3 {
		return value
	}
	return strings.Repeat("*", len(runes)-3) + string(runes[len(runes)-3:])
}
