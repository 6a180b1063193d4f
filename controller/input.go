package controller

// EdgeKind identifies a discrete input action delivered as started/canceled
// edges rather than a continuous axis.
type EdgeKind uint8

const (
	EdgeSprint EdgeKind = iota
	EdgeCrouch
	EdgeJump
	EdgeAutoRun
)

// EdgePhase is the transition a discrete input reported.
type EdgePhase uint8

const (
	PhaseStarted EdgePhase = iota
	PhaseCanceled
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeSprint:
		return "sprint"
	case EdgeCrouch:
		return "crouch"
	case EdgeJump:
		return "jump"
	case EdgeAutoRun:
		return "auto-run"
	}
	return "unknown"
}
