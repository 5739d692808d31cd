package domain

import "time"

// SessionState is the single-user, single-plan context of the client:
// the plan currently displayed and the prompt that originally produced it.
type SessionState struct {
	// OriginalPrompt is the prompt of the first generation.
	// Iterative updates never change it.
	OriginalPrompt string

	// CurrentPlan is the last successfully generated plan, nil when none.
	CurrentPlan PlanDocument

	// UpdatedAt is when CurrentPlan was last replaced.
	UpdatedAt time.Time
}

// HasBaseline reports whether there is a plan an update can build on.
func (s SessionState) HasBaseline() bool {
	return len(s.CurrentPlan) > 0
}

// IsEmpty reports whether the session holds neither a plan nor a prompt.
func (s SessionState) IsEmpty() bool {
	return !s.HasBaseline() && s.OriginalPrompt == ""
}

// Clone returns a copy whose plan shares no state with the receiver.
func (s SessionState) Clone() SessionState {
	return SessionState{
		OriginalPrompt: s.OriginalPrompt,
		CurrentPlan:    s.CurrentPlan.Clone(),
		UpdatedAt:      s.UpdatedAt,
	}
}

// UpdateState is the phase of a single generation attempt.
type UpdateState int

const (
	// UpdateIdle means no generation is running.
	UpdateIdle UpdateState = iota
	// UpdateValidating means preconditions are being checked.
	UpdateValidating
	// UpdateRequesting means a request is in flight to the generation service.
	UpdateRequesting
)

// String returns the string representation.
func (s UpdateState) String() string {
	switch s {
	case UpdateIdle:
		return "idle"
	case UpdateValidating:
		return "validating"
	case UpdateRequesting:
		return "requesting"
	default:
		return "unknown"
	}
}
