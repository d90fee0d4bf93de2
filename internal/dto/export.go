package dto

import (
	"time"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

// CreateExportRequest starts an asynchronous export of the filtered request
// list. The filter mirrors RequestListQuery so the export covers exactly the
// rows the operator sees.
type CreateExportRequest struct {
	Format          models.ExportFormat `json:"format"`
	Search          string              `json:"search"`
	Status          string              `json:"status"`
	EmploymentField string              `json:"employmentField"`
	Gender          string              `json:"gender"`
	DistrictCode    string              `json:"districtCode"`
	SortBy          string              `json:"sortBy"`
	SortOrder       string              `json:"sortOrder"`
}

// ExportJobResponse acknowledges job creation.
type ExportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ExportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ExportStatusResponse exposes job progress and, once finished, the signed
// download URL.
type ExportStatusResponse struct {
	ID           string              `json:"id"`
	Type         models.ExportType   `json:"type"`
	Status       models.ExportStatus `json:"status"`
	Progress     int                 `json:"progress"`
	ResultURL    *string             `json:"result_url,omitempty"`
	ErrorMessage *string             `json:"error_message,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	FinishedAt   *time.Time          `json:"finished_at,omitempty"`
}
