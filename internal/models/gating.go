package models

// Role-gated action predicates. All predicates are pure functions of their
// inputs: a missing or unrecognised status yields false, never a panic.

var documentReviewStatuses = map[RequestStatus]struct{}{
	StatusUserApproval:                  {},
	StatusSourceReview:                  {},
	StatusExceptionEligibilityApproval:  {},
	StatusExceptionEligibilityRejection: {},
}

var sourceOpinionStatuses = map[RequestStatus]struct{}{
	StatusExceptionEligibilityApproval: {},
	StatusProvinceApproval:             {},
}

var rankDisplayStatuses = map[RequestStatus]struct{}{
	StatusUserApproval:                  {},
	StatusSourceReview:                  {},
	StatusExceptionEligibilityApproval:  {},
	StatusExceptionEligibilityRejection: {},
	StatusSourceApproval:                {},
	StatusProvinceApproval:              {},
}

// CanPerformDocumentReview reports whether a request in the given status
// accepts per-reason document review decisions.
func CanPerformDocumentReview(status RequestStatus) bool {
	_, ok := documentReviewStatuses[status]
	return ok
}

// DocumentReviewStatuses returns the statuses that accept document review,
// in workflow order. Used to compose the disabled-action message.
func DocumentReviewStatuses() []RequestStatus {
	return []RequestStatus{
		StatusUserApproval,
		StatusSourceReview,
		StatusExceptionEligibilityApproval,
		StatusExceptionEligibilityRejection,
	}
}

// ShouldShowSourceOpinionButtons reports whether the source-opinion
// approve/reject actions apply to a request in the given status.
func ShouldShowSourceOpinionButtons(status RequestStatus) bool {
	_, ok := sourceOpinionStatuses[status]
	return ok
}

// CanShowRank reports whether group ranking figures may be displayed for a
// request in the given status.
func CanShowRank(status RequestStatus) bool {
	_, ok := rankDisplayStatuses[status]
	return ok
}

// CanSaveDocumentReview reports whether the acting role may persist document
// review decisions. Transfer experts and the system administrator observe the
// review but only the originating reviewer roles may save it.
func CanSaveDocumentReview(role UserRole) bool {
	switch role {
	case RoleDistrictTransferExpert, RoleProvinceTransferExpert, RoleSystemAdmin:
		return false
	default:
		return role != ""
	}
}

// CanSubmitSourceOpinion reports whether the acting role may submit a source
// opinion. District and province transfer experts are excluded from this
// action regardless of request status.
func CanSubmitSourceOpinion(role UserRole) bool {
	switch role {
	case RoleDistrictTransferExpert, RoleProvinceTransferExpert:
		return false
	default:
		return role != ""
	}
}
