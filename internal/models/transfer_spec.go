package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MaxDestinationPriorities is the fixed number of destination choices an
// applicant ranks on the transfer form.
const MaxDestinationPriorities = 7

// DestinationPriority is one ranked destination choice.
type DestinationPriority struct {
	Priority     int    `json:"priority"`
	DistrictCode string `json:"districtCode"`
	DistrictName string `json:"districtName"`
	TransferType string `json:"transferType"`
}

// DestinationPriorities stores the ranked choices as a JSON column.
type DestinationPriorities []DestinationPriority

// Value marshals the priorities for persistence.
func (p DestinationPriorities) Value() (driver.Value, error) {
	if p == nil {
		p = DestinationPriorities{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal destination priorities: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSON payload into the priorities.
func (p *DestinationPriorities) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for DestinationPriorities", value)
	}
	if len(data) == 0 {
		*p = nil
		return nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("unmarshal destination priorities: %w", err)
	}
	return nil
}

// CulturalCouple captures the cultural-couple declaration on the transfer form.
type CulturalCouple struct {
	IsCulturalCouple    bool   `json:"isCulturalCouple"`
	SpousePersonnelCode string `json:"spousePersonnelCode,omitempty"`
	SpouseDistrictCode  string `json:"spouseDistrictCode,omitempty"`
}

// Value marshals the declaration for persistence.
func (c CulturalCouple) Value() (driver.Value, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal cultural couple: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSON payload into the declaration.
func (c *CulturalCouple) Scan(value interface{}) error {
	if value == nil {
		*c = CulturalCouple{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for CulturalCouple", value)
	}
	if len(data) == 0 {
		*c = CulturalCouple{}
		return nil
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("unmarshal cultural couple: %w", err)
	}
	return nil
}

// TransferApplicantSpec is the full transfer form record backing a request,
// fetched per row when assembling spreadsheet exports.
type TransferApplicantSpec struct {
	ID                    string                `db:"id" json:"id"`
	NationalID            string                `db:"national_id" json:"national_id"`
	PersonnelCode         string                `db:"personnel_code" json:"personnel_code"`
	EmploymentField       string                `db:"employment_field" json:"employment_field"`
	Gender                string                `db:"gender" json:"gender"`
	DistrictCode          string                `db:"district_code" json:"district_code"`
	DestinationPriorities DestinationPriorities `db:"destination_priorities" json:"destination_priorities"`
	CulturalCouple        CulturalCouple        `db:"cultural_couple" json:"cultural_couple"`
	ApprovedClauses       StringList            `db:"approved_clauses" json:"approved_clauses"`
	CreatedAt             time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time             `db:"updated_at" json:"updated_at"`
}
