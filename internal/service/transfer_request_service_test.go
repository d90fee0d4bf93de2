package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
)

type transferRequestStoreStub struct {
	requests map[string]*models.TransferRequest

	respondErr error
	getErr     error
}

func (s *transferRequestStoreStub) ListByDirection(ctx context.Context, direction models.TransferRequestDirection) ([]models.TransferRequest, error) {
	var out []models.TransferRequest
	for _, request := range s.requests {
		if request.Direction == direction {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (s *transferRequestStoreStub) GetByID(ctx context.Context, id string) (*models.TransferRequest, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	request, ok := s.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *request
	return &clone, nil
}

func (s *transferRequestStoreStub) Respond(ctx context.Context, id string, status models.TransferRequestStatus, responseDescription, respondedBy string) error {
	if s.respondErr != nil {
		return s.respondErr
	}
	request, ok := s.requests[id]
	if !ok || request.Status != models.TransferRequestPending {
		return sql.ErrNoRows
	}
	request.Status = status
	request.ResponseDescription = &responseDescription
	request.RespondedBy = &respondedBy
	return nil
}

func TestTransferRequestListMasksOutgoingPending(t *testing.T) {
	store := &transferRequestStoreStub{requests: map[string]*models.TransferRequest{
		"tr-1": {ID: "tr-1", Direction: models.TransferRequestOutgoing, Status: models.TransferRequestPending,
			FullName: "علی رضایی", NationalID: "0098765432", Phone: "09350000000"},
		"tr-2": {ID: "tr-2", Direction: models.TransferRequestOutgoing, Status: models.TransferRequestApproved,
			FullName: "مریم احمدی", NationalID: "0012345678", Phone: "09120000000"},
	}}
	svc := NewTransferRequestService(store, zap.NewNop())

	items, err := svc.List(context.Background(), models.TransferRequestOutgoing)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[string]dto.TransferRequestItem{}
	for _, item := range items {
		byID[item.ID] = item
	}

	masked := byID["tr-1"]
	require.True(t, masked.PIIMasked)
	require.NotEqual(t, "علی رضایی", masked.FullName)
	require.Equal(t, "*******432", masked.NationalID)
	require.Equal(t, "********000", masked.Phone)

	// decided requests show full identity
	decided := byID["tr-2"]
	require.False(t, decided.PIIMasked)
	require.Equal(t, "مریم احمدی", decided.FullName)
}

func TestTransferRequestIncomingNeverMasked(t *testing.T) {
	store := &transferRequestStoreStub{requests: map[string]*models.TransferRequest{
		"tr-3": {ID: "tr-3", Direction: models.TransferRequestIncoming, Status: models.TransferRequestPending,
			FullName: "زهرا موسوی", NationalID: "0055443322"},
	}}
	svc := NewTransferRequestService(store, zap.NewNop())

	items, err := svc.List(context.Background(), models.TransferRequestIncoming)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.False(t, items[0].PIIMasked)
	require.Equal(t, "زهرا موسوی", items[0].FullName)
}

func TestTransferRequestListRejectsUnknownDirection(t *testing.T) {
	svc := NewTransferRequestService(&transferRequestStoreStub{}, zap.NewNop())
	_, err := svc.List(context.Background(), models.TransferRequestDirection("sideways"))
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTransferRequestRespondTransitionsPending(t *testing.T) {
	store := &transferRequestStoreStub{requests: map[string]*models.TransferRequest{
		"tr-1": {ID: "tr-1", Direction: models.TransferRequestIncoming, Status: models.TransferRequestPending},
	}}
	svc := NewTransferRequestService(store, zap.NewNop())

	item, err := svc.Respond(context.Background(), "tr-1",
		dto.RespondTransferRequest{Action: "approve", ResponseDescription: "موافقت شد"}, "user-1")
	require.NoError(t, err)
	require.Equal(t, models.TransferRequestApproved, item.Status)
	require.Equal(t, "موافقت شد", *item.ResponseDescription)
}

func TestTransferRequestRespondSurvivesReloadFailure(t *testing.T) {
	store := &transferRequestStoreStub{
		requests: map[string]*models.TransferRequest{
			"tr-1": {ID: "tr-1", Direction: models.TransferRequestIncoming, Status: models.TransferRequestPending},
		},
		getErr: errors.New("connection reset"),
	}
	svc := NewTransferRequestService(store, zap.NewNop())

	item, err := svc.Respond(context.Background(), "tr-1",
		dto.RespondTransferRequest{Action: "reject", ResponseDescription: "مدارک ناقص"}, "user-1")
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Equal(t, "tr-1", item.ID)
	require.Equal(t, models.TransferRequestRejected, item.Status)
	require.Equal(t, models.TransferRequestRejected.Text(), item.StatusText)
	require.Equal(t, "مدارک ناقص", *item.ResponseDescription)
}

func TestTransferRequestRespondConflictWhenDecided(t *testing.T) {
	store := &transferRequestStoreStub{requests: map[string]*models.TransferRequest{
		"tr-1": {ID: "tr-1", Direction: models.TransferRequestIncoming, Status: models.TransferRequestRejected},
	}}
	svc := NewTransferRequestService(store, zap.NewNop())

	_, err := svc.Respond(context.Background(), "tr-1", dto.RespondTransferRequest{Action: "approve"}, "user-1")
	require.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	_, err = svc.Respond(context.Background(), "missing", dto.RespondTransferRequest{Action: "reject"}, "user-1")
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTransferRequestRespondRejectsUnknownAction(t *testing.T) {
	svc := NewTransferRequestService(&transferRequestStoreStub{}, zap.NewNop())
	_, err := svc.Respond(context.Background(), "tr-1", dto.RespondTransferRequest{Action: "maybe"}, "user-1")
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
