package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusVocabularyCoversClosedSet(t *testing.T) {
	for _, status := range AllRequestStatuses() {
		require.True(t, status.Known(), "status %s missing from vocabulary", status)
		assert.NotEqual(t, UnknownStatusText, status.Text(), "status %s has no label", status)
		assert.NotEmpty(t, status.Color())
		assert.NotEmpty(t, status.Icon())
	}
}

func TestStatusUnknownFallsBackGracefully(t *testing.T) {
	bogus := ParseRequestStatus("mystery_state")
	assert.False(t, bogus.Known())
	assert.Equal(t, UnknownStatusText, bogus.Text())
	assert.Equal(t, "gray", bogus.Color())
	assert.Equal(t, "help-circle", bogus.Icon())
	// the raw value round-trips for display
	assert.Equal(t, "mystery_state", string(bogus))
}

func TestReviewStatusText(t *testing.T) {
	assert.Equal(t, "در انتظار بررسی", ReviewPending.Text())
	assert.Equal(t, "تأیید شده", ReviewApproved.Text())
	assert.Equal(t, "رد شده", ReviewRejected.Text())
	assert.Equal(t, "-", ReviewStatus("bogus").Text())
	assert.False(t, ReviewStatus("bogus").Valid())
}

func TestDecisionText(t *testing.T) {
	assert.Equal(t, StatusSourceApproval.Text(), DecisionText(StatusSourceApproval))
	assert.Equal(t, StatusProvinceRejection.Text(), DecisionText(StatusProvinceRejection))
	assert.Equal(t, "در حال بررسی", DecisionText(StatusSourceReview))
	assert.Equal(t, "در حال بررسی", DecisionText(RequestStatus("whatever")))
}
