package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

func score(v float64) *float64 { return &v }

func sampleRequests() []models.TransferAppealRequest {
	return []models.TransferAppealRequest{
		{ID: "r1", FullName: "مریم احمدی", NationalID: "0012345678", PersonnelCode: "9001",
			EmploymentField: "دبیر ریاضی", Gender: "female", DistrictCode: "1205",
			CurrentRequestStatus: models.StatusSourceReview, ApprovedScore: score(70)},
		{ID: "r2", FullName: "علی رضایی", NationalID: "0098765432", PersonnelCode: "9002",
			EmploymentField: "دبیر فیزیک", Gender: "male", DistrictCode: "1205",
			CurrentRequestStatus: models.StatusUserApproval, ApprovedScore: score(85)},
		{ID: "r3", FullName: "زهرا موسوی", NationalID: "0055443322", PersonnelCode: "9003",
			EmploymentField: "دبیر ریاضی", Gender: "female", DistrictCode: "1310",
			CurrentRequestStatus: models.StatusSourceReview},
	}
}

func TestFilterRequestsSearchMatchesNameIDAndCode(t *testing.T) {
	requests := sampleRequests()

	byName := FilterRequests(requests, models.RequestFilter{Search: "مریم"})
	require.Len(t, byName, 1)
	require.Equal(t, "r1", byName[0].ID)

	byNationalID := FilterRequests(requests, models.RequestFilter{Search: "9876"})
	require.Len(t, byNationalID, 1)
	require.Equal(t, "r2", byNationalID[0].ID)

	byCode := FilterRequests(requests, models.RequestFilter{Search: "9003"})
	require.Len(t, byCode, 1)
	require.Equal(t, "r3", byCode[0].ID)
}

func TestFilterRequestsCombinesDimensionsWithAND(t *testing.T) {
	requests := sampleRequests()

	out := FilterRequests(requests, models.RequestFilter{
		Status:          string(models.StatusSourceReview),
		EmploymentField: "دبیر ریاضی",
		DistrictCode:    "1205",
	})
	require.Len(t, out, 1)
	require.Equal(t, "r1", out[0].ID)
}

func TestFilterRequestsAllStatusMatchesEverything(t *testing.T) {
	requests := sampleRequests()
	require.Len(t, FilterRequests(requests, models.RequestFilter{Status: models.StatusFilterAll}), 3)
	require.Len(t, FilterRequests(requests, models.RequestFilter{}), 3)
}

func TestSortRequestsApprovedScore(t *testing.T) {
	requests := sampleRequests()

	asc := SortRequests(requests, "approvedScore", "asc")
	require.Equal(t, []string{"r3", "r1", "r2"}, []string{asc[0].ID, asc[1].ID, asc[2].ID})

	desc := SortRequests(requests, "approvedScore", "desc")
	require.Equal(t, []string{"r2", "r1", "r3"}, []string{desc[0].ID, desc[1].ID, desc[2].ID})

	// the input slice keeps its order
	require.Equal(t, "r1", requests[0].ID)
}

func TestSortRequestsUnknownKeyIsNoOp(t *testing.T) {
	requests := sampleRequests()
	out := SortRequests(requests, "fullName", "asc")
	require.Equal(t, []string{"r1", "r2", "r3"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestSortRequestsStableForEqualScores(t *testing.T) {
	requests := []models.TransferAppealRequest{
		{ID: "a", ApprovedScore: score(50)},
		{ID: "b", ApprovedScore: score(50)},
		{ID: "c"},
		{ID: "d"},
	}
	out := SortRequests(requests, "approvedScore", "asc")
	require.Equal(t, []string{"c", "d", "a", "b"}, []string{out[0].ID, out[1].ID, out[2].ID, out[3].ID})
}

func TestPaginateClampsOutOfRangePages(t *testing.T) {
	requests := sampleRequests()

	page, current := Paginate(requests, 99, 2)
	require.Equal(t, 2, current)
	require.Len(t, page, 1)
	require.Equal(t, "r3", page[0].ID)

	page, current = Paginate(requests, 0, 2)
	require.Equal(t, 1, current)
	require.Len(t, page, 2)

	page, current = Paginate(nil, 5, 10)
	require.Equal(t, 1, current)
	require.Empty(t, page)
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, TotalPages(0, 10))
	require.Equal(t, 1, TotalPages(1, 10))
	require.Equal(t, 1, TotalPages(10, 10))
	require.Equal(t, 2, TotalPages(11, 10))
	require.Equal(t, 0, TotalPages(5, 0))
}

func TestCountByStatusUsesUnfilteredList(t *testing.T) {
	requests := sampleRequests()
	counts := CountByStatus(requests)
	require.Equal(t, 2, counts[string(models.StatusSourceReview)])
	require.Equal(t, 1, counts[string(models.StatusUserApproval)])
	require.Zero(t, counts[string(models.StatusDestinationApproval)])
	require.Equal(t, len(requests), counts[models.StatusFilterAll])
}

func TestCountByStatusEmptyListStillCarriesAllTotal(t *testing.T) {
	counts := CountByStatus(nil)
	require.Equal(t, 0, counts[models.StatusFilterAll])
	require.Contains(t, counts, models.StatusFilterAll)
}
