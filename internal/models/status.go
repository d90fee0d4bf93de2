package models

// RequestStatus enumerates the transfer-appeal workflow states. The set is
// closed: values outside it still render (as the unknown bucket) but never
// satisfy any gating predicate.
type RequestStatus string

const (
	StatusUserNoAction                  RequestStatus = "user_no_action"
	StatusAwaitingUserApproval          RequestStatus = "awaiting_user_approval"
	StatusUserApproval                  RequestStatus = "user_approval"
	StatusSourceReview                  RequestStatus = "source_review"
	StatusExceptionEligibilityApproval  RequestStatus = "exception_eligibility_approval"
	StatusExceptionEligibilityRejection RequestStatus = "exception_eligibility_rejection"
	StatusSourceApproval                RequestStatus = "source_approval"
	StatusSourceRejection               RequestStatus = "source_rejection"
	StatusProvinceReview                RequestStatus = "province_review"
	StatusProvinceApproval              RequestStatus = "province_approval"
	StatusProvinceRejection             RequestStatus = "province_rejection"
	StatusDestinationReview             RequestStatus = "destination_review"
	StatusDestinationApproval           RequestStatus = "destination_approval"
	StatusDestinationRejection          RequestStatus = "destination_rejection"
)

// StatusFilterAll matches every status when used as a list filter value.
const StatusFilterAll = "all"

// UnknownStatusText is the fallback label for unrecognised statuses.
const UnknownStatusText = "نامشخص"

type statusInfo struct {
	text  string
	color string
	icon  string
}

var statusTable = map[RequestStatus]statusInfo{
	StatusUserNoAction:                  {"بدون اقدام کاربر", "gray", "minus-circle"},
	StatusAwaitingUserApproval:          {"در انتظار تأیید کاربر", "yellow", "clock"},
	StatusUserApproval:                  {"تأیید کاربر", "blue", "user-check"},
	StatusSourceReview:                  {"در حال بررسی مبدأ", "yellow", "search"},
	StatusExceptionEligibilityApproval:  {"تأیید مشمولیت استثنا", "green", "shield-check"},
	StatusExceptionEligibilityRejection: {"رد مشمولیت استثنا", "red", "shield-x"},
	StatusSourceApproval:                {"موافقت مبدأ", "green", "check-circle"},
	StatusSourceRejection:               {"مخالفت مبدأ", "red", "x-circle"},
	StatusProvinceReview:                {"در حال بررسی استان", "yellow", "search"},
	StatusProvinceApproval:              {"موافقت استان", "green", "check-circle"},
	StatusProvinceRejection:             {"مخالفت استان", "red", "x-circle"},
	StatusDestinationReview:             {"در حال بررسی مقصد", "yellow", "search"},
	StatusDestinationApproval:           {"موافقت مقصد", "green", "check-circle"},
	StatusDestinationRejection:          {"مخالفت مقصد", "red", "x-circle"},
}

// AllRequestStatuses returns the members of the closed status set in
// workflow order.
func AllRequestStatuses() []RequestStatus {
	return []RequestStatus{
		StatusUserNoAction,
		StatusAwaitingUserApproval,
		StatusUserApproval,
		StatusSourceReview,
		StatusExceptionEligibilityApproval,
		StatusExceptionEligibilityRejection,
		StatusSourceApproval,
		StatusSourceRejection,
		StatusProvinceReview,
		StatusProvinceApproval,
		StatusProvinceRejection,
		StatusDestinationReview,
		StatusDestinationApproval,
		StatusDestinationRejection,
	}
}

// Known reports whether the status belongs to the closed set.
func (s RequestStatus) Known() bool {
	_, ok := statusTable[s]
	return ok
}

// Text returns the localized label, falling back for unknown values so that
// display never errors on unexpected data.
func (s RequestStatus) Text() string {
	if info, ok := statusTable[s]; ok {
		return info.text
	}
	return UnknownStatusText
}

// Color returns the presentation color token for the status.
func (s RequestStatus) Color() string {
	if info, ok := statusTable[s]; ok {
		return info.color
	}
	return "gray"
}

// Icon returns the presentation icon token for the status.
func (s RequestStatus) Icon() string {
	if info, ok := statusTable[s]; ok {
		return info.icon
	}
	return "help-circle"
}

// ParseRequestStatus accepts any string; unknown values round-trip unchanged
// so rendering stays defensive while gating treats them as no-ops.
func ParseRequestStatus(raw string) RequestStatus {
	return RequestStatus(raw)
}

// ReviewStatus tracks per-reason review decisions independent of the parent
// request status.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

var reviewStatusText = map[ReviewStatus]string{
	ReviewPending:  "در انتظار بررسی",
	ReviewApproved: "تأیید شده",
	ReviewRejected: "رد شده",
}

// Text returns the localized review decision label, "-" when unknown.
func (s ReviewStatus) Text() string {
	if t, ok := reviewStatusText[s]; ok {
		return t
	}
	return "-"
}

// Valid reports membership in the review decision set.
func (s ReviewStatus) Valid() bool {
	_, ok := reviewStatusText[s]
	return ok
}

// DecisionText summarises the final decision of a request for exports: the
// terminal approve/reject statuses map to their labels, everything else
// reads as still in progress.
func DecisionText(s RequestStatus) string {
	switch s {
	case StatusSourceApproval, StatusProvinceApproval, StatusDestinationApproval, StatusExceptionEligibilityApproval:
		return s.Text()
	case StatusSourceRejection, StatusProvinceRejection, StatusDestinationRejection, StatusExceptionEligibilityRejection:
		return s.Text()
	default:
		return "در حال بررسی"
	}
}
