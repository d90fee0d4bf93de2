package models

import "time"

// TransferType is the permanent/temporary choice attached to an approving
// source opinion.
type TransferType string

const (
	TransferPermanent TransferType = "permanent"
	TransferTemporary TransferType = "temporary"
)

// Valid reports membership in the transfer type set.
func (t TransferType) Valid() bool {
	return t == TransferPermanent || t == TransferTemporary
}

// TransferAppealRequest is a personnel record's application to transfer,
// carrying a workflow status and zero or more selected eligibility reasons.
// Status transitions happen only through service operations.
type TransferAppealRequest struct {
	ID                        string        `db:"id" json:"id"`
	PersonnelCode             string        `db:"personnel_code" json:"personnel_code"`
	NationalID                string        `db:"national_id" json:"national_id"`
	FullName                  string        `db:"full_name" json:"full_name"`
	Phone                     string        `db:"phone" json:"phone"`
	Gender                    string        `db:"gender" json:"gender"`
	DistrictCode              string        `db:"district_code" json:"district_code"`
	EmploymentField           string        `db:"employment_field" json:"employment_field"`
	CurrentRequestStatus      RequestStatus `db:"current_request_status" json:"current_request_status"`
	ApprovedScore             *float64      `db:"approved_score" json:"approved_score,omitempty"`
	RankInGroup               *int          `db:"rank_in_group" json:"rank_in_group,omitempty"`
	TotalInGroup              *int          `db:"total_in_group" json:"total_in_group,omitempty"`
	GroupKey                  string        `db:"group_key" json:"group_key"`
	SourceOpinionTransferType *TransferType `db:"source_opinion_transfer_type" json:"source_opinion_transfer_type,omitempty"`
	CreatedAt                 time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt                 time.Time     `db:"updated_at" json:"updated_at"`

	SelectedReasons []SelectedReason `db:"-" json:"selected_reasons"`
}

// SelectedReason is an eligibility clause the applicant self-declared. Its
// review decision is independent of the parent request status.
type SelectedReason struct {
	ID            string       `db:"id" json:"id"`
	RequestID     string       `db:"request_id" json:"request_id"`
	ReasonID      string       `db:"reason_id" json:"reason_id"`
	ReasonTitle   string       `db:"reason_title" json:"reason_title"`
	ReasonCode    string       `db:"reason_code" json:"reason_code"`
	ReviewStatus  ReviewStatus `db:"review_status" json:"review_status"`
	ExpertComment *string      `db:"expert_comment" json:"expert_comment,omitempty"`
	ReviewedAt    *time.Time   `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewerRole  *string      `db:"reviewer_role" json:"reviewer_role,omitempty"`
}

// RequestFilter constrains the in-memory request list query. Empty values
// match everything in their dimension; Status additionally treats "all" as
// match-everything. All dimensions are AND-combined.
type RequestFilter struct {
	Search          string
	Status          string
	EmploymentField string
	Gender          string
	DistrictCode    string
}

// RequestListQuery combines filtering with sorting and pagination intent.
type RequestListQuery struct {
	Filter    RequestFilter
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}
