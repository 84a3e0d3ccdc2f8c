package trainer

// State is the position of a Trainer in its step cycle.
type State int

// Trainer states.
const (
	Idle          State = iota // No step has run yet.
	Evaluating                 // Computing cost and gradient at the current parameters.
	StepSearching              // Halving the step factor until the cost improves.
	Accepted                   // The last step moved the parameters.
	Plateaued                  // The last step found no improving step size.
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Evaluating:
		return "evaluating"
	case StepSearching:
		return "searching"
	case Accepted:
		return "accepted"
	case Plateaued:
		return "plateaued"
	default:
		return "unknown"
	}
}
