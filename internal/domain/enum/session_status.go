package enum

// SessionStatus represents the lifecycle state of a table session
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

var sessionTransitions = transitionTable[SessionStatus]{
	SessionStatusActive: {SessionStatusCompleted, SessionStatusCancelled},
}

func (s SessionStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known session status
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusActive, SessionStatusCompleted, SessionStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a session may move from s to next
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	return sessionTransitions.allows(s, next)
}

// Predecessors returns the statuses a session may reach s from
func (s SessionStatus) Predecessors() []SessionStatus {
	return sessionTransitions.predecessors(s)
}

// IsTerminal reports whether no further transition is possible
func (s SessionStatus) IsTerminal() bool {
	return len(sessionTransitions[s]) == 0
}

// SessionMode selects how a session's duration is decided
type SessionMode string

const (
	// SessionModeOpen sessions run until ended
	SessionModeOpen SessionMode = "open"
	// SessionModePlanned sessions carry a pre-committed duration
	SessionModePlanned SessionMode = "planned"
)

// IsValid reports whether m is a known session mode
func (m SessionMode) IsValid() bool {
	return m == SessionModeOpen || m == SessionModePlanned
}
