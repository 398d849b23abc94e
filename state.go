package stance

// State is the per-step state of the quasi-rigid contact model. The model is
// memoryless, so State carries nothing between steps; it exists to satisfy
// the contract shared with stateful contact models.
type State struct{}

// NewState returns a fresh State for the current step.
func NewState() State {
	return State{}
}

// ZeroState returns the zero State. It matches NewState; both are kept for
// parity with stateful models.
func ZeroState() State {
	return State{}
}

// Valid always reports true: an empty state cannot be malformed.
func (State) Valid() bool {
	return true
}
