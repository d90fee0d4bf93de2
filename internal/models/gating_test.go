package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanPerformDocumentReview(t *testing.T) {
	allowed := []RequestStatus{
		StatusUserApproval,
		StatusSourceReview,
		StatusExceptionEligibilityApproval,
		StatusExceptionEligibilityRejection,
	}
	for _, status := range allowed {
		assert.True(t, CanPerformDocumentReview(status), "expected %s to allow review", status)
	}
	for _, status := range AllRequestStatuses() {
		inAllowed := false
		for _, a := range allowed {
			if a == status {
				inAllowed = true
			}
		}
		if !inAllowed {
			assert.False(t, CanPerformDocumentReview(status), "expected %s to block review", status)
		}
	}
	assert.False(t, CanPerformDocumentReview(""))
	assert.False(t, CanPerformDocumentReview("made_up"))
}

func TestCanPerformDocumentReviewIsDeterministic(t *testing.T) {
	// purity: same status always yields the same answer
	for i := 0; i < 3; i++ {
		assert.True(t, CanPerformDocumentReview(StatusUserApproval))
		assert.False(t, CanPerformDocumentReview(StatusProvinceReview))
	}
}

func TestShouldShowSourceOpinionButtons(t *testing.T) {
	assert.True(t, ShouldShowSourceOpinionButtons(StatusExceptionEligibilityApproval))
	assert.True(t, ShouldShowSourceOpinionButtons(StatusProvinceApproval))
	assert.False(t, ShouldShowSourceOpinionButtons(StatusUserApproval))
	assert.False(t, ShouldShowSourceOpinionButtons(StatusSourceApproval))
	assert.False(t, ShouldShowSourceOpinionButtons(""))
}

func TestCanSaveDocumentReviewRoleGate(t *testing.T) {
	assert.False(t, CanSaveDocumentReview(RoleDistrictTransferExpert))
	assert.False(t, CanSaveDocumentReview(RoleProvinceTransferExpert))
	assert.False(t, CanSaveDocumentReview(RoleSystemAdmin))
	assert.False(t, CanSaveDocumentReview(""))
	assert.True(t, CanSaveDocumentReview(RoleDistrictReviewExpert))
	assert.True(t, CanSaveDocumentReview(RoleSchoolPrincipal))
}

func TestCanSubmitSourceOpinionRoleGate(t *testing.T) {
	assert.False(t, CanSubmitSourceOpinion(RoleDistrictTransferExpert))
	assert.False(t, CanSubmitSourceOpinion(RoleProvinceTransferExpert))
	assert.False(t, CanSubmitSourceOpinion(""))
	// systemAdmin is only excluded from saving reviews, not from opinions
	assert.True(t, CanSubmitSourceOpinion(RoleSystemAdmin))
	assert.True(t, CanSubmitSourceOpinion(RoleDistrictReviewExpert))
}

func TestCanShowRank(t *testing.T) {
	assert.True(t, CanShowRank(StatusSourceApproval))
	assert.True(t, CanShowRank(StatusUserApproval))
	assert.False(t, CanShowRank(StatusUserNoAction))
	assert.False(t, CanShowRank(StatusDestinationRejection))
}

func TestDocumentReviewStatusLabels(t *testing.T) {
	statuses := DocumentReviewStatuses()
	assert.Len(t, statuses, 4)
	for _, s := range statuses {
		assert.NotEqual(t, UnknownStatusText, s.Text())
	}
}
