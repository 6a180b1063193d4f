package controller

const (
	// GroundStickVelocity is the small downward velocity applied while
	// grounded so the mover's downward probe keeps detecting ground.
	GroundStickVelocity = -2.0

	// JumpClearanceScale shortens the jump headroom check relative to the
	// stand-up check, so low tunnels that forbid standing still allow hops.
	JumpClearanceScale = 0.9

	// AutoRunReverseThreshold is the forward-axis value at or below which an
	// explicit backward press overrides auto-run.
	AutoRunReverseThreshold = -0.1

	// PitchLimit bounds the camera pitch in degrees.
	PitchLimit = 90.0
)
