package intake

// Phase is the position of a form in its submission lifecycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// State is a snapshot of a form. Error is set only in PhaseFailed; Message holds the
// backend acknowledgement only in PhaseSucceeded.
type State struct {
	Phase   Phase
	Error   string
	Message string
	Input   Input
}

// The functions below are the transition table. They never touch the network or timers.

func changed(s State) State {
	s.Error = ""
	if s.Phase == PhaseFailed {
		s.Phase = PhaseIdle
	}
	return s
}

func rejected(s State, reason string) State {
	s.Phase = PhaseFailed
	s.Error = reason
	s.Message = ""
	return s
}

func submitting(s State) State {
	s.Phase = PhaseSubmitting
	s.Error = ""
	s.Message = ""
	return s
}

// acknowledged clears every field, attachments included.
func acknowledged(message string) State {
	return State{Phase: PhaseSucceeded, Message: message}
}

func reverted(s State) State {
	s.Phase = PhaseIdle
	s.Message = ""
	return s
}
