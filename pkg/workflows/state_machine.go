package workflows

// Proposal lifecycle statuses
const (
	StatusSubmitted   = "Submitted"
	StatusAssigned    = "Assigned"
	StatusUnderReview = "Under Review"
	StatusApproved    = "Approved"
	StatusRejected    = "Rejected"
	StatusAccepted    = "Accepted"
)

// StateMachine enforces proposal status transitions. Review outcomes
// (Under Review, Approved, Rejected) stay interchangeable once a proposal is
// assigned; Accepted is terminal, and a rejected proposal cannot be accepted
// without first being moved back to a review status.
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewStateMachine creates a new state machine with allowed transitions
func NewStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			StatusSubmitted:   {StatusAssigned},
			StatusAssigned:    {StatusUnderReview, StatusApproved, StatusRejected, StatusAccepted},
			StatusUnderReview: {StatusUnderReview, StatusApproved, StatusRejected, StatusAccepted},
			StatusApproved:    {StatusUnderReview, StatusApproved, StatusRejected, StatusAccepted},
			StatusRejected:    {StatusUnderReview, StatusApproved, StatusRejected},
			StatusAccepted:    {},
		},
	}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}

// IsReviewStatus reports whether s is one of the agency review outcomes
func IsReviewStatus(s string) bool {
	return s == StatusUnderReview || s == StatusApproved || s == StatusRejected
}
