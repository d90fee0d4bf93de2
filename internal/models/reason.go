package models

import "time"

// ReasonKind partitions the configured transfer reasons into approval and
// rejection lists.
type ReasonKind string

const (
	ReasonKindApproval  ReasonKind = "approval"
	ReasonKindRejection ReasonKind = "rejection"
)

// TransferReason is a configured eligibility clause applicants may declare
// and reviewers decide on.
type TransferReason struct {
	ID        string     `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Code      string     `db:"code" json:"code"`
	Kind      ReasonKind `db:"kind" json:"kind"`
	SortOrder int        `db:"sort_order" json:"sort_order"`
	Active    bool       `db:"active" json:"active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// ConditionType selects which side of a clause its conditions apply to.
type ConditionType string

const (
	ConditionTypeApproval  ConditionType = "approval"
	ConditionTypeRejection ConditionType = "rejection"
)

// Valid reports membership in the condition type set.
func (t ConditionType) Valid() bool {
	return t == ConditionTypeApproval || t == ConditionTypeRejection
}

// ClauseCondition is a prerequisite attached to a transfer reason. Every
// condition surfaced for a set of reasons must be explicitly accepted before
// a source opinion referencing those reasons can be submitted.
type ClauseCondition struct {
	ID            string        `db:"id" json:"id"`
	ReasonID      string        `db:"reason_id" json:"reason_id"`
	ConditionType ConditionType `db:"condition_type" json:"condition_type"`
	Title         string        `db:"title" json:"title"`
	Description   string        `db:"description" json:"description"`
	SortOrder     int           `db:"sort_order" json:"sort_order"`
}

// FilterHelpers carries the distinct filter values the list UI offers.
type FilterHelpers struct {
	EmploymentFields []string `json:"employment_fields"`
	Genders          []string `json:"genders"`
	Districts        []string `json:"districts"`
}
