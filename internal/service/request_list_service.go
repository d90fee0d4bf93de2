package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	"github.com/parsa-edu/transfer-appeal-api/internal/repository"
)

type requestLister interface {
	List(ctx context.Context, filter repository.ServerFilter) ([]models.TransferAppealRequest, error)
	FilterHelpers(ctx context.Context) (*models.FilterHelpers, error)
}

// RequestListServiceConfig tunes list behaviour.
type RequestListServiceConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// RequestListService assembles the document-review table: filtered, sorted
// and paged rows plus the per-status tallies over the unfiltered list.
type RequestListService struct {
	repo   requestLister
	logger *zap.Logger
	cfg    RequestListServiceConfig
}

// NewRequestListService constructs the service.
func NewRequestListService(repo requestLister, logger *zap.Logger, cfg RequestListServiceConfig) *RequestListService {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &RequestListService{repo: repo, logger: logger, cfg: cfg}
}

// List runs the query pipeline for one actor. The employment-field, gender and
// district filters narrow the database query; search, status filtering,
// sorting and paging run in memory over the narrowed set.
func (s *RequestListService) List(ctx context.Context, query dto.RequestListQuery, actor models.UserRole) (*dto.RequestListResponse, *models.Pagination, error) {
	requests, err := s.repo.List(ctx, repository.ServerFilter{
		EmploymentField: query.EmploymentField,
		Gender:          query.Gender,
		DistrictCode:    query.DistrictCode,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load transfer appeal requests: %w", err)
	}

	statusCounts := CountByStatus(requests)

	filtered := FilterRequests(requests, models.RequestFilter{
		Search:          query.Search,
		Status:          query.Status,
		EmploymentField: query.EmploymentField,
		Gender:          query.Gender,
		DistrictCode:    query.DistrictCode,
	})
	filtered = SortRequests(filtered, query.SortBy, query.SortOrder)

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}
	page, currentPage := Paginate(filtered, query.Page, pageSize)

	items := make([]dto.RequestListItem, 0, len(page))
	for i := range page {
		items = append(items, BuildRequestListItem(&page[i], actor))
	}

	pagination := &models.Pagination{
		Page:       currentPage,
		PageSize:   pageSize,
		TotalCount: len(filtered),
		TotalPages: TotalPages(len(filtered), pageSize),
	}
	return &dto.RequestListResponse{Requests: items, StatusCounts: statusCounts}, pagination, nil
}

// FilterHelpers returns the distinct values backing the filter dropdowns.
func (s *RequestListService) FilterHelpers(ctx context.Context) (*models.FilterHelpers, error) {
	helpers, err := s.repo.FilterHelpers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load filter helpers: %w", err)
	}
	return helpers, nil
}

// BuildRequestListItem projects a request onto one table row for the acting
// role: status presentation, gated rank display and per-row action flags.
func BuildRequestListItem(request *models.TransferAppealRequest, actor models.UserRole) dto.RequestListItem {
	status := request.CurrentRequestStatus
	item := dto.RequestListItem{
		ID:                        request.ID,
		PersonnelCode:             request.PersonnelCode,
		NationalID:                request.NationalID,
		FullName:                  request.FullName,
		Phone:                     request.Phone,
		Gender:                    request.Gender,
		DistrictCode:              request.DistrictCode,
		EmploymentField:           request.EmploymentField,
		Status:                    status,
		StatusText:                status.Text(),
		StatusColor:               status.Color(),
		StatusIcon:                status.Icon(),
		ApprovedScore:             request.ApprovedScore,
		RankDisplay:               RankDisplay(request),
		GroupKey:                  request.GroupKey,
		SourceOpinionTransferType: request.SourceOpinionTransferType,
		CanReviewDocuments:        models.CanPerformDocumentReview(status) && models.CanSaveDocumentReview(actor),
		CanSubmitSourceOpinion:    models.ShouldShowSourceOpinionButtons(status) && models.CanSubmitSourceOpinion(actor),
		SelectedReasons:           request.SelectedReasons,
		CreatedAt:                 request.CreatedAt,
		UpdatedAt:                 request.UpdatedAt,
	}
	if item.SelectedReasons == nil {
		item.SelectedReasons = []models.SelectedReason{}
	}
	return item
}

// RankDisplay renders the in-group rank when the status allows it, "-"
// otherwise or when the figures are missing.
func RankDisplay(request *models.TransferAppealRequest) string {
	if !models.CanShowRank(request.CurrentRequestStatus) {
		return "-"
	}
	if request.RankInGroup == nil || request.TotalInGroup == nil {
		return "-"
	}
	return fmt.Sprintf("%d از %d", *request.RankInGroup, *request.TotalInGroup)
}
