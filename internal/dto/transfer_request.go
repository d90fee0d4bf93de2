package dto

import (
	"time"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

// TransferRequestItem is one row of the transfer-requests list with the PII
// masking rule already applied.
type TransferRequestItem struct {
	ID                  string                          `json:"id"`
	Direction           models.TransferRequestDirection `json:"direction"`
	Status              models.TransferRequestStatus    `json:"status"`
	StatusText          string                          `json:"status_text"`
	FullName            string                          `json:"full_name"`
	NationalID          string                          `json:"national_id"`
	Phone               string                          `json:"phone"`
	FromDistrict        string                          `json:"from_district"`
	ToDistrict          string                          `json:"to_district"`
	Description         string                          `json:"description"`
	ResponseDescription *string                         `json:"response_description,omitempty"`
	PIIMasked           bool                            `json:"pii_masked"`
	CreatedAt           time.Time                       `json:"created_at"`
	RespondedAt         *time.Time                      `json:"responded_at,omitempty"`
}

// RespondTransferRequest carries the decision on a pending transfer request.
type RespondTransferRequest struct {
	Action              string `json:"action" binding:"required"`
	ResponseDescription string `json:"responseDescription"`
}
