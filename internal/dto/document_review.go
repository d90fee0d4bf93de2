package dto

import (
	"time"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

// RequestListQuery mirrors the supported list filters and paging knobs.
type RequestListQuery struct {
	Search          string
	Status          string
	EmploymentField string
	Gender          string
	DistrictCode    string
	SortBy          string
	SortOrder       string
	Page            int
	PageSize        int
}

// RequestListItem is one row of the document-review table.
type RequestListItem struct {
	ID                        string                  `json:"id"`
	PersonnelCode             string                  `json:"personnel_code"`
	NationalID                string                  `json:"national_id"`
	FullName                  string                  `json:"full_name"`
	Phone                     string                  `json:"phone"`
	Gender                    string                  `json:"gender"`
	DistrictCode              string                  `json:"district_code"`
	EmploymentField           string                  `json:"employment_field"`
	Status                    models.RequestStatus    `json:"status"`
	StatusText                string                  `json:"status_text"`
	StatusColor               string                  `json:"status_color"`
	StatusIcon                string                  `json:"status_icon"`
	ApprovedScore             *float64                `json:"approved_score,omitempty"`
	RankDisplay               string                  `json:"rank_display"`
	GroupKey                  string                  `json:"group_key"`
	SourceOpinionTransferType *models.TransferType    `json:"source_opinion_transfer_type,omitempty"`
	CanReviewDocuments        bool                    `json:"can_review_documents"`
	CanSubmitSourceOpinion    bool                    `json:"can_submit_source_opinion"`
	SelectedReasons           []models.SelectedReason `json:"selected_reasons"`
	CreatedAt                 time.Time               `json:"created_at"`
	UpdatedAt                 time.Time               `json:"updated_at"`
}

// RequestListResponse wraps the paged rows with per-status tallies over the
// unfiltered list.
type RequestListResponse struct {
	Requests     []RequestListItem `json:"requests"`
	StatusCounts map[string]int    `json:"status_counts"`
}

// ReasonReviewDraft is the typed per-reason buffer entry: decision plus
// expert comment.
type ReasonReviewDraft struct {
	Status  models.ReviewStatus `json:"status"`
	Comment string              `json:"comment"`
}

// SaveReviewRequest persists a batch of per-reason decisions for a request.
type SaveReviewRequest struct {
	RequestID string                       `json:"requestId" binding:"required"`
	Reviews   map[string]ReasonReviewDraft `json:"reviews" binding:"required"`
}

// AutoDecision reports a server-made final decision after all reasons were
// reviewed.
type AutoDecision struct {
	Made        bool                 `json:"made"`
	FinalStatus models.RequestStatus `json:"final_status,omitempty"`
	Message     string               `json:"message,omitempty"`
}

// SaveReviewResponse returns the save outcome and the updated request row.
type SaveReviewResponse struct {
	Message        string           `json:"message"`
	UpdatedRequest *RequestListItem `json:"updated_request,omitempty"`
	AutoDecision   AutoDecision     `json:"auto_decision"`
}
