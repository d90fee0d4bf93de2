package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// OpinionAction is the approve/reject stance of a source opinion.
type OpinionAction string

const (
	OpinionApprove OpinionAction = "approve"
	OpinionReject  OpinionAction = "reject"
)

// Valid reports membership in the opinion action set.
func (a OpinionAction) Valid() bool {
	return a == OpinionApprove || a == OpinionReject
}

// StringList stores a JSON array of strings in a single column.
type StringList []string

// Value marshals the list for persistence.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSON array payload into the list.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("unmarshal string list: %w", err)
	}
	return nil
}

// SourceOpinion records the originating district's stance on a transfer
// together with the reasons and accepted clause conditions backing it.
type SourceOpinion struct {
	ID                   string        `db:"id" json:"id"`
	RequestID            string        `db:"request_id" json:"request_id"`
	PersonnelCode        string        `db:"personnel_code" json:"personnel_code"`
	Action               OpinionAction `db:"action" json:"action"`
	ReasonIDs            StringList    `db:"reason_ids" json:"reason_ids"`
	AcceptedConditionIDs StringList    `db:"accepted_condition_ids" json:"accepted_condition_ids"`
	Comment              string        `db:"comment" json:"comment"`
	TransferType         *TransferType `db:"transfer_type" json:"transfer_type,omitempty"`
	CreatedBy            string        `db:"created_by" json:"created_by"`
	CreatedAt            time.Time     `db:"created_at" json:"created_at"`
}
