package models

import "time"

// TransferRequestDirection distinguishes requests arriving at a district from
// those leaving it.
type TransferRequestDirection string

const (
	TransferRequestIncoming TransferRequestDirection = "in"
	TransferRequestOutgoing TransferRequestDirection = "out"
)

// TransferRequestStatus is the simple tri-state of the school-to-school
// transfer-request sub-workflow, separate from the appeal status set.
type TransferRequestStatus string

const (
	TransferRequestPending  TransferRequestStatus = "pending"
	TransferRequestApproved TransferRequestStatus = "approved"
	TransferRequestRejected TransferRequestStatus = "rejected"
)

var transferRequestStatusText = map[TransferRequestStatus]string{
	TransferRequestPending:  "در انتظار پاسخ",
	TransferRequestApproved: "موافقت شده",
	TransferRequestRejected: "مخالفت شده",
}

// Text returns the localized label, "-" when unknown.
func (s TransferRequestStatus) Text() string {
	if t, ok := transferRequestStatusText[s]; ok {
		return t
	}
	return "-"
}

// TransferRequest is one school-to-school transfer request row.
type TransferRequest struct {
	ID                  string                   `db:"id" json:"id"`
	Direction           TransferRequestDirection `db:"direction" json:"direction"`
	Status              TransferRequestStatus    `db:"status" json:"status"`
	FullName            string                   `db:"full_name" json:"full_name"`
	NationalID          string                   `db:"national_id" json:"national_id"`
	Phone               string                   `db:"phone" json:"phone"`
	FromDistrict        string                   `db:"from_district" json:"from_district"`
	ToDistrict          string                   `db:"to_district" json:"to_district"`
	Description         string                   `db:"description" json:"description"`
	ResponseDescription *string                  `db:"response_description" json:"response_description,omitempty"`
	RespondedBy         *string                  `db:"responded_by" json:"responded_by,omitempty"`
	RespondedAt         *time.Time               `db:"responded_at" json:"responded_at,omitempty"`
	CreatedAt           time.Time                `db:"created_at" json:"created_at"`
}

// RequiresPIIMasking reports whether identity fields must be hidden: outgoing
// requests keep the counterpart's identity private until a decision is made.
func (r TransferRequest) RequiresPIIMasking() bool {
	return r.Direction == TransferRequestOutgoing && r.Status == TransferRequestPending
}
