package game

// Phase is the current state of the session state machine.
//
//	READY -> PLAYING <-> PAUSED
//	PLAYING -> GAME_OVER
//	any -> READY (Reset)
type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "READY"
	case PhasePlaying:
		return "PLAYING"
	case PhasePaused:
		return "PAUSED"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// CanStart reports whether Start is accepted in this phase.
func (p Phase) CanStart() bool {
	return p == PhaseReady || p == PhaseGameOver
}
