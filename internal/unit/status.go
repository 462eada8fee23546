package unit

// Status is the per-run progress of a unit.
type Status int32

const (
	// StatusPending indicates the unit has not been reached yet.
	StatusPending Status = iota
	// StatusGenerating indicates an initial candidate is being requested.
	StatusGenerating
	// StatusRepairing indicates the unit is inside the repair loop.
	StatusRepairing
	// StatusPassed indicates the final artifact passed validation.
	StatusPassed
	// StatusFailed indicates the unit exhausted its budget or a collaborator failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusGenerating:
		return "generating"
	case StatusRepairing:
		return "repairing"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are expected.
func (s Status) Terminal() bool {
	return s == StatusPassed || s == StatusFailed
}
