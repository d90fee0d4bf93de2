package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
)

type opinionRequestRepoStub struct {
	request *models.TransferAppealRequest

	appliedStatus       *models.RequestStatus
	appliedTransferType *models.TransferType
}

func (s *opinionRequestRepoStub) GetByPersonnelCode(ctx context.Context, personnelCode string) (*models.TransferAppealRequest, error) {
	clone := *s.request
	return &clone, nil
}

func (s *opinionRequestRepoStub) ApplySourceOpinion(ctx context.Context, requestID string, status models.RequestStatus, transferType *models.TransferType) error {
	s.appliedStatus = &status
	s.appliedTransferType = transferType
	return nil
}

type opinionReasonRepoStub struct {
	approval   []models.TransferReason
	rejection  []models.TransferReason
	conditions []models.ClauseCondition

	conditionQueries [][]string
}

func (s *opinionReasonRepoStub) ListByKind(ctx context.Context, kind models.ReasonKind) ([]models.TransferReason, error) {
	if kind == models.ReasonKindApproval {
		return s.approval, nil
	}
	return s.rejection, nil
}

func (s *opinionReasonRepoStub) ConditionsByReasons(ctx context.Context, reasonIDs []string, conditionType models.ConditionType) ([]models.ClauseCondition, error) {
	s.conditionQueries = append(s.conditionQueries, reasonIDs)
	return s.conditions, nil
}

type opinionStoreStub struct {
	created    *models.SourceOpinion
	history    []models.SourceOpinion
	historyErr error
}

func (s *opinionStoreStub) Create(ctx context.Context, opinion *models.SourceOpinion) error {
	s.created = opinion
	return nil
}

func (s *opinionStoreStub) ListByRequest(ctx context.Context, requestID string) ([]models.SourceOpinion, error) {
	return s.history, s.historyErr
}

type personnelStatsStub struct {
	stats *models.PersonnelStats
	err   error
}

func (s *personnelStatsStub) Stats(ctx context.Context, personnelCode, districtCode string) (*models.PersonnelStats, error) {
	return s.stats, s.err
}

func opinionReadyRequest() *models.TransferAppealRequest {
	return &models.TransferAppealRequest{
		ID:                   "req-1",
		PersonnelCode:        "9001",
		DistrictCode:         "1205",
		CurrentRequestStatus: models.StatusExceptionEligibilityApproval,
		SelectedReasons: []models.SelectedReason{
			{ReasonID: "reason-1", ReviewStatus: models.ReviewApproved},
			{ReasonID: "reason-2", ReviewStatus: models.ReviewRejected},
		},
	}
}

func newOpinionService(requests *opinionRequestRepoStub, reasons *opinionReasonRepoStub, recorder *opinionStoreStub, stats *personnelStatsStub) *OpinionService {
	return NewOpinionService(requests, reasons, recorder, stats, zap.NewNop())
}

func TestOpenContextPreselectsApprovedReasons(t *testing.T) {
	requests := &opinionRequestRepoStub{request: opinionReadyRequest()}
	reasons := &opinionReasonRepoStub{
		approval:   []models.TransferReason{{ID: "reason-1", Kind: models.ReasonKindApproval}},
		rejection:  []models.TransferReason{{ID: "reason-9", Kind: models.ReasonKindRejection}},
		conditions: []models.ClauseCondition{{ID: "cond-1", ReasonID: "reason-1"}},
	}
	svc := newOpinionService(requests, reasons, &opinionStoreStub{}, &personnelStatsStub{
		stats: &models.PersonnelStats{PersonnelCode: "9001"},
	})

	out, err := svc.OpenContext(context.Background(), dto.OpinionContextQuery{
		PersonnelCode: "9001", Action: models.OpinionApprove,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Stats)
	require.False(t, out.StatsUnavailable)
	require.Equal(t, []string{"reason-1"}, out.PreselectedReasons)
	require.Len(t, out.ClauseConditions, 1)
	require.Len(t, out.ApprovalReasons, 1)
	require.Len(t, out.RejectionReasons, 1)
}

func TestOpenContextRejectActionAlsoPreselectsApproved(t *testing.T) {
	requests := &opinionRequestRepoStub{request: opinionReadyRequest()}
	reasons := &opinionReasonRepoStub{}
	svc := newOpinionService(requests, reasons, &opinionStoreStub{}, &personnelStatsStub{})

	out, err := svc.OpenContext(context.Background(), dto.OpinionContextQuery{
		PersonnelCode: "9001", Action: models.OpinionReject,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"reason-1"}, out.PreselectedReasons)
}

func TestOpenContextDegradesOnStatsFailure(t *testing.T) {
	requests := &opinionRequestRepoStub{request: opinionReadyRequest()}
	svc := newOpinionService(requests, &opinionReasonRepoStub{}, &opinionStoreStub{}, &personnelStatsStub{
		err: errors.New("window query timeout"),
	})

	out, err := svc.OpenContext(context.Background(), dto.OpinionContextQuery{
		PersonnelCode: "9001", Action: models.OpinionApprove,
	})
	require.NoError(t, err)
	require.Nil(t, out.Stats)
	require.True(t, out.StatsUnavailable)
}

func TestOpenContextIncludesOpinionHistory(t *testing.T) {
	requests := &opinionRequestRepoStub{request: opinionReadyRequest()}
	store := &opinionStoreStub{history: []models.SourceOpinion{
		{ID: "op-1", RequestID: "req-1", Action: models.OpinionReject, CreatedBy: "user-2"},
	}}
	svc := newOpinionService(requests, &opinionReasonRepoStub{}, store, &personnelStatsStub{})

	out, err := svc.OpenContext(context.Background(), dto.OpinionContextQuery{
		PersonnelCode: "9001", Action: models.OpinionApprove,
	})
	require.NoError(t, err)
	require.Len(t, out.PreviousOpinions, 1)
	require.Equal(t, "op-1", out.PreviousOpinions[0].ID)
}

func TestOpenContextDegradesOnHistoryFailure(t *testing.T) {
	requests := &opinionRequestRepoStub{request: opinionReadyRequest()}
	store := &opinionStoreStub{historyErr: errors.New("db down")}
	svc := newOpinionService(requests, &opinionReasonRepoStub{}, store, &personnelStatsStub{})

	out, err := svc.OpenContext(context.Background(), dto.OpinionContextQuery{
		PersonnelCode: "9001", Action: models.OpinionApprove,
	})
	require.NoError(t, err)
	require.NotNil(t, out.PreviousOpinions)
	require.Empty(t, out.PreviousOpinions)
}

func TestSubmitRoleGate(t *testing.T) {
	requests := &opinionRequestRepoStub{request: opinionReadyRequest()}
	svc := newOpinionService(requests, &opinionReasonRepoStub{}, &opinionStoreStub{}, &personnelStatsStub{})

	for _, role := range []models.UserRole{models.RoleDistrictTransferExpert, models.RoleProvinceTransferExpert} {
		_, err := svc.Submit(context.Background(), dto.SubmitOpinionRequest{
			PersonnelCode: "9001", Action: models.OpinionApprove, ReasonIDs: []string{"reason-1"},
		}, models.User{ID: "u1", Role: role})
		appErr := appErrors.FromError(err)
		require.Equal(t, appErrors.ErrForbidden.Code, appErr.Code, "role %s", role)
	}
	require.Nil(t, requests.appliedStatus)
}

func TestSubmitStatusGate(t *testing.T) {
	request := opinionReadyRequest()
	request.CurrentRequestStatus = models.StatusSourceReview
	requests := &opinionRequestRepoStub{request: request}
	svc := newOpinionService(requests, &opinionReasonRepoStub{}, &opinionStoreStub{}, &personnelStatsStub{})

	_, err := svc.Submit(context.Background(), dto.SubmitOpinionRequest{
		PersonnelCode: "9001", Action: models.OpinionApprove, ReasonIDs: []string{"reason-1"},
	}, models.User{ID: "u1", Role: models.RoleDistrictReviewExpert})
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrOpinionNotAllowed.Code, appErr.Code)
}

func TestSubmitRequiresReasonsAndTransferType(t *testing.T) {
	requests := &opinionRequestRepoStub{request: opinionReadyRequest()}
	svc := newOpinionService(requests, &opinionReasonRepoStub{}, &opinionStoreStub{}, &personnelStatsStub{})
	actor := models.User{ID: "u1", Role: models.RoleDistrictReviewExpert}

	_, err := svc.Submit(context.Background(), dto.SubmitOpinionRequest{
		PersonnelCode: "9001", Action: models.OpinionApprove,
	}, actor)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Submit(context.Background(), dto.SubmitOpinionRequest{
		PersonnelCode: "9001", Action: models.OpinionApprove, ReasonIDs: []string{"reason-1"},
	}, actor)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubmitRequiresEveryConditionAccepted(t *testing.T) {
	requests := &opinionRequestRepoStub{request: opinionReadyRequest()}
	reasons := &opinionReasonRepoStub{conditions: []models.ClauseCondition{
		{ID: "cond-1"}, {ID: "cond-2"},
	}}
	svc := newOpinionService(requests, reasons, &opinionStoreStub{}, &personnelStatsStub{})
	transferType := models.TransferPermanent
	actor := models.User{ID: "u1", Role: models.RoleDistrictReviewExpert}

	_, err := svc.Submit(context.Background(), dto.SubmitOpinionRequest{
		PersonnelCode: "9001", Action: models.OpinionApprove, ReasonIDs: []string{"reason-1"},
		TransferType: &transferType, AcceptedConditionIDs: []string{"cond-1"},
	}, actor)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Submit(context.Background(), dto.SubmitOpinionRequest{
		PersonnelCode: "9001", Action: models.OpinionApprove, ReasonIDs: []string{"reason-1"},
		TransferType: &transferType, AcceptedConditionIDs: []string{"cond-1", "cond-9"},
	}, actor)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubmitApprovePersistsTransferType(t *testing.T) {
	requests := &opinionRequestRepoStub{request: opinionReadyRequest()}
	recorder := &opinionStoreStub{}
	svc := newOpinionService(requests, &opinionReasonRepoStub{}, recorder, &personnelStatsStub{})
	transferType := models.TransferTemporary

	resp, err := svc.Submit(context.Background(), dto.SubmitOpinionRequest{
		PersonnelCode: "9001", Action: models.OpinionApprove, ReasonIDs: []string{"reason-1"},
		Comment: "با انتقال موقت موافقت می‌شود", TransferType: &transferType,
	}, models.User{ID: "u1", Role: models.RoleDistrictReviewExpert})
	require.NoError(t, err)
	require.Equal(t, models.StatusSourceApproval, resp.Status)
	require.NotNil(t, requests.appliedStatus)
	require.Equal(t, models.StatusSourceApproval, *requests.appliedStatus)
	require.NotNil(t, requests.appliedTransferType)
	require.Equal(t, models.TransferTemporary, *requests.appliedTransferType)
	require.NotNil(t, recorder.created)
	require.Equal(t, "u1", recorder.created.CreatedBy)
	require.Equal(t, models.StringList{"reason-1"}, recorder.created.ReasonIDs)
}

func TestSubmitRejectTransitionsWithoutTransferType(t *testing.T) {
	requests := &opinionRequestRepoStub{request: opinionReadyRequest()}
	recorder := &opinionStoreStub{}
	svc := newOpinionService(requests, &opinionReasonRepoStub{}, recorder, &personnelStatsStub{})

	resp, err := svc.Submit(context.Background(), dto.SubmitOpinionRequest{
		PersonnelCode: "9001", Action: models.OpinionReject, ReasonIDs: []string{"reason-9"},
	}, models.User{ID: "u2", Role: models.RoleSchoolPrincipal})
	require.NoError(t, err)
	require.Equal(t, models.StatusSourceRejection, resp.Status)
	require.Nil(t, requests.appliedTransferType)
	require.Equal(t, models.OpinionReject, recorder.created.Action)
}
