package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	"github.com/parsa-edu/transfer-appeal-api/internal/repository"
)

type requestListStub struct {
	requests   []models.TransferAppealRequest
	helpers    *models.FilterHelpers
	lastFilter repository.ServerFilter
}

func (s *requestListStub) List(ctx context.Context, filter repository.ServerFilter) ([]models.TransferAppealRequest, error) {
	s.lastFilter = filter
	return s.requests, nil
}

func (s *requestListStub) FilterHelpers(ctx context.Context) (*models.FilterHelpers, error) {
	return s.helpers, nil
}

func listFixture() []models.TransferAppealRequest {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	score := 78.5
	rank, total := 3, 12
	return []models.TransferAppealRequest{
		{
			ID:                   "req-1",
			PersonnelCode:        "9001",
			NationalID:           "0012345678",
			FullName:             "مریم احمدی",
			Gender:               "female",
			DistrictCode:         "1205",
			EmploymentField:      "آموزگار",
			CurrentRequestStatus: models.StatusSourceReview,
			ApprovedScore:        &score,
			RankInGroup:          &rank,
			TotalInGroup:         &total,
			CreatedAt:            now,
			UpdatedAt:            now,
		},
		{
			ID:                   "req-2",
			PersonnelCode:        "9002",
			NationalID:           "0023456789",
			FullName:             "رضا کریمی",
			Gender:               "male",
			DistrictCode:         "1205",
			EmploymentField:      "دبیر ریاضی",
			CurrentRequestStatus: models.StatusUserNoAction,
			CreatedAt:            now,
			UpdatedAt:            now,
		},
		{
			ID:                   "req-3",
			PersonnelCode:        "9003",
			NationalID:           "0034567890",
			FullName:             "سارا rezayi",
			Gender:               "female",
			DistrictCode:         "1310",
			EmploymentField:      "آموزگار",
			CurrentRequestStatus: models.StatusSourceReview,
			CreatedAt:            now,
			UpdatedAt:            now,
		},
	}
}

func TestListCountsStatusesBeforeFiltering(t *testing.T) {
	stub := &requestListStub{requests: listFixture()}
	svc := NewRequestListService(stub, zap.NewNop(), RequestListServiceConfig{})

	resp, pagination, err := svc.List(context.Background(), dto.RequestListQuery{
		Status: string(models.StatusUserNoAction),
	}, models.RoleDistrictReviewExpert)
	require.NoError(t, err)

	require.Len(t, resp.Requests, 1)
	require.Equal(t, "req-2", resp.Requests[0].ID)
	require.Equal(t, 1, pagination.TotalCount)

	// Tallies cover the whole list, not the filtered page.
	require.Equal(t, 2, resp.StatusCounts[string(models.StatusSourceReview)])
	require.Equal(t, 1, resp.StatusCounts[string(models.StatusUserNoAction)])
	require.Equal(t, 3, resp.StatusCounts[models.StatusFilterAll])
}

func TestListNarrowsDatabaseQueryByServerFilters(t *testing.T) {
	stub := &requestListStub{requests: listFixture()}
	svc := NewRequestListService(stub, zap.NewNop(), RequestListServiceConfig{})

	_, _, err := svc.List(context.Background(), dto.RequestListQuery{
		Search:          "مریم",
		EmploymentField: "آموزگار",
		Gender:          "female",
		DistrictCode:    "1205",
	}, models.RoleDistrictReviewExpert)
	require.NoError(t, err)

	require.Equal(t, "آموزگار", stub.lastFilter.EmploymentField)
	require.Equal(t, "female", stub.lastFilter.Gender)
	require.Equal(t, "1205", stub.lastFilter.DistrictCode)
}

func TestListClampsPageSizeToConfiguredMaximum(t *testing.T) {
	requests := make([]models.TransferAppealRequest, 0, 30)
	for i := 0; i < 30; i++ {
		requests = append(requests, models.TransferAppealRequest{
			ID:                   fmt.Sprintf("req-%d", i),
			PersonnelCode:        fmt.Sprintf("9%03d", i),
			CurrentRequestStatus: models.StatusUserNoAction,
		})
	}
	stub := &requestListStub{requests: requests}
	svc := NewRequestListService(stub, zap.NewNop(), RequestListServiceConfig{DefaultPageSize: 10, MaxPageSize: 20})

	resp, pagination, err := svc.List(context.Background(), dto.RequestListQuery{PageSize: 500}, models.RoleSystemAdmin)
	require.NoError(t, err)
	require.Len(t, resp.Requests, 20)
	require.Equal(t, 20, pagination.PageSize)
	require.Equal(t, 30, pagination.TotalCount)
	require.Equal(t, 2, pagination.TotalPages)
}

func TestBuildRequestListItemGatesActionsByRole(t *testing.T) {
	request := &listFixture()[0]

	reviewer := BuildRequestListItem(request, models.RoleDistrictReviewExpert)
	require.True(t, reviewer.CanReviewDocuments)
	require.False(t, reviewer.CanSubmitSourceOpinion, "source-opinion buttons stay hidden until eligibility approval")

	admin := BuildRequestListItem(request, models.RoleSystemAdmin)
	require.False(t, admin.CanReviewDocuments, "transfer experts and the administrator observe the review read-only")
}

func TestBuildRequestListItemRankDisplay(t *testing.T) {
	request := &listFixture()[0]
	item := BuildRequestListItem(request, models.RoleDistrictReviewExpert)
	require.Equal(t, "3 از 12", item.RankDisplay)

	hidden := &listFixture()[1]
	require.Equal(t, "-", BuildRequestListItem(hidden, models.RoleDistrictReviewExpert).RankDisplay)

	missing := &listFixture()[2]
	require.Equal(t, "-", BuildRequestListItem(missing, models.RoleDistrictReviewExpert).RankDisplay)
}

func TestBuildRequestListItemNormalisesNilReasons(t *testing.T) {
	request := &listFixture()[1]
	item := BuildRequestListItem(request, models.RoleSchoolPrincipal)
	require.NotNil(t, item.SelectedReasons)
	require.Empty(t, item.SelectedReasons)
}
