package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmittedOnlyMovesToAssigned(t *testing.T) {
	sm := NewStateMachine()

	assert.True(t, sm.CanTransition(StatusSubmitted, StatusAssigned))
	assert.False(t, sm.CanTransition(StatusSubmitted, StatusAccepted))
	assert.False(t, sm.CanTransition(StatusSubmitted, StatusApproved))
}

func TestReviewStatusesAreInterchangeable(t *testing.T) {
	sm := NewStateMachine()

	reviewStatuses := []string{StatusUnderReview, StatusApproved, StatusRejected}
	for _, from := range reviewStatuses {
		for _, to := range reviewStatuses {
			assert.True(t, sm.CanTransition(from, to), "%s -> %s should be allowed", from, to)
		}
	}
}

func TestAcceptedIsTerminal(t *testing.T) {
	sm := NewStateMachine()

	for _, to := range []string{StatusSubmitted, StatusAssigned, StatusUnderReview, StatusApproved, StatusRejected, StatusAccepted} {
		assert.False(t, sm.CanTransition(StatusAccepted, to))
	}
	assert.Empty(t, sm.GetAllowedTransitions(StatusAccepted))
}

func TestRejectedCannotBeAcceptedDirectly(t *testing.T) {
	sm := NewStateMachine()

	assert.False(t, sm.CanTransition(StatusRejected, StatusAccepted))
	// but can be reopened for review first
	assert.True(t, sm.CanTransition(StatusRejected, StatusUnderReview))
	assert.True(t, sm.CanTransition(StatusUnderReview, StatusAccepted))
}

func TestAcceptAllowedWithoutPriorApproval(t *testing.T) {
	sm := NewStateMachine()

	assert.True(t, sm.CanTransition(StatusAssigned, StatusAccepted))
}

func TestUnknownStatus(t *testing.T) {
	sm := NewStateMachine()

	assert.False(t, sm.CanTransition("Bogus", StatusAssigned))
	assert.Empty(t, sm.GetAllowedTransitions("Bogus"))
}

func TestIsReviewStatus(t *testing.T) {
	assert.True(t, IsReviewStatus(StatusUnderReview))
	assert.True(t, IsReviewStatus(StatusApproved))
	assert.True(t, IsReviewStatus(StatusRejected))
	assert.False(t, IsReviewStatus(StatusAccepted))
	assert.False(t, IsReviewStatus(StatusSubmitted))
	assert.False(t, IsReviewStatus("Bogus"))
}
