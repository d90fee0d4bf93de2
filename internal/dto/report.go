package dto

// DistrictReportRow aggregates request counts for one district.
type DistrictReportRow struct {
	DistrictCode  string         `json:"district_code"`
	TotalRequests int            `json:"total_requests"`
	ByStatus      map[string]int `json:"by_status"`
	ByGender      map[string]int `json:"by_gender"`
}

// SmartSchoolReport is the server-aggregated statistics payload backing the
// reports page; clients only format it.
type SmartSchoolReport struct {
	TotalRequests int                 `json:"total_requests"`
	ByStatus      map[string]int      `json:"by_status"`
	ByField       map[string]int      `json:"by_field"`
	ByGender      map[string]int      `json:"by_gender"`
	Districts     []DistrictReportRow `json:"districts"`
	Cached        bool                `json:"-"`
}
