package dto

import "github.com/parsa-edu/transfer-appeal-api/internal/models"

// OpinionContextQuery identifies the personnel record and intended action for
// assembling the opinion dialog payload.
type OpinionContextQuery struct {
	PersonnelCode string
	Action        models.OpinionAction
}

// OpinionContext is everything the opinion dialog needs on open: ranking
// stats (best-effort), the configured reason lists, the reasons already
// approved on the record, and the clause conditions those reasons carry.
type OpinionContext struct {
	Stats              *models.PersonnelStats   `json:"stats,omitempty"`
	StatsUnavailable   bool                     `json:"stats_unavailable,omitempty"`
	ApprovalReasons    []models.TransferReason  `json:"approval_reasons"`
	RejectionReasons   []models.TransferReason  `json:"rejection_reasons"`
	PreselectedReasons []string                 `json:"preselected_reasons"`
	ClauseConditions   []models.ClauseCondition `json:"clause_conditions"`
	PreviousOpinions   []models.SourceOpinion   `json:"previous_opinions"`
}

// SubmitOpinionRequest carries a source opinion submission.
type SubmitOpinionRequest struct {
	PersonnelCode        string               `json:"personnelCode" binding:"required"`
	Action               models.OpinionAction `json:"action" binding:"required"`
	ReasonIDs            []string             `json:"reasonIds"`
	Comment              string               `json:"comment"`
	TransferType         *models.TransferType `json:"sourceOpinionTransferType,omitempty"`
	AcceptedConditionIDs []string             `json:"acceptedConditionIds"`
}

// SubmitOpinionResponse returns the submission outcome.
type SubmitOpinionResponse struct {
	Message string               `json:"message"`
	Status  models.RequestStatus `json:"status"`
}

// ConditionsByClausesRequest resolves the clause conditions attached to a set
// of selected reasons.
type ConditionsByClausesRequest struct {
	SelectedClauses []string             `json:"selectedClauses" binding:"required"`
	ConditionType   models.ConditionType `json:"conditionType" binding:"required"`
}
