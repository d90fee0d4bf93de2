package service

import (
	"sort"
	"strings"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

// FilterRequests applies the list filters with AND semantics. The search term
// matches case-insensitively against the full name and as a substring of the
// national ID or personnel code. A status of "all" or "" matches every status;
// empty field filters match everything in their dimension.
func FilterRequests(requests []models.TransferAppealRequest, filter models.RequestFilter) []models.TransferAppealRequest {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.TransferAppealRequest, 0, len(requests))
	for _, request := range requests {
		if search != "" {
			nameMatch := strings.Contains(strings.ToLower(request.FullName), search)
			idMatch := strings.Contains(request.NationalID, search)
			codeMatch := strings.Contains(request.PersonnelCode, search)
			if !nameMatch && !idMatch && !codeMatch {
				continue
			}
		}
		if filter.Status != "" && filter.Status != models.StatusFilterAll &&
			string(request.CurrentRequestStatus) != filter.Status {
			continue
		}
		if filter.EmploymentField != "" && request.EmploymentField != filter.EmploymentField {
			continue
		}
		if filter.Gender != "" && request.Gender != filter.Gender {
			continue
		}
		if filter.DistrictCode != "" && request.DistrictCode != filter.DistrictCode {
			continue
		}
		out = append(out, request)
	}
	return out
}

// SortRequests orders the slice by the requested key. Only approvedScore is
// sortable; a missing score sorts as zero and the sort is stable so equal
// scores keep their incoming order. Any other key leaves the order untouched.
func SortRequests(requests []models.TransferAppealRequest, sortBy, sortOrder string) []models.TransferAppealRequest {
	if sortBy != "approvedScore" {
		return requests
	}
	score := func(r models.TransferAppealRequest) float64 {
		if r.ApprovedScore == nil {
			return 0
		}
		return *r.ApprovedScore
	}
	descending := strings.EqualFold(sortOrder, "desc")
	sorted := make([]models.TransferAppealRequest, len(requests))
	copy(sorted, requests)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return score(sorted[i]) > score(sorted[j])
		}
		return score(sorted[i]) < score(sorted[j])
	})
	return sorted
}

// TotalPages returns ceil(total/pageSize), zero for an empty list.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage confines the page number to [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate slices one page out of the list. The page number is clamped first
// so out-of-range input yields the nearest valid page instead of panicking.
func Paginate(requests []models.TransferAppealRequest, page, pageSize int) ([]models.TransferAppealRequest, int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	totalPages := TotalPages(len(requests), pageSize)
	page = ClampPage(page, totalPages)
	start := (page - 1) * pageSize
	if start >= len(requests) {
		return []models.TransferAppealRequest{}, page
	}
	end := start + pageSize
	if end > len(requests) {
		end = len(requests)
	}
	return requests[start:end], page
}

// CountByStatus tallies requests per status over the unfiltered list, feeding
// the stat tiles above the table. The "all" key always carries the unfiltered
// total, backing the tile that clears the status filter.
func CountByStatus(requests []models.TransferAppealRequest) map[string]int {
	counts := make(map[string]int, len(models.AllRequestStatuses())+1)
	for _, request := range requests {
		counts[string(request.CurrentRequestStatus)]++
	}
	counts[models.StatusFilterAll] = len(requests)
	return counts
}
