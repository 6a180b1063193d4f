package controller

import "github.com/go-gl/mathgl/mgl32"

// MovementState holds the mutable per-actor movement data. A single Controller
// owns exactly one instance for its attach lifetime; input callbacks and ticks
// mutate the same record and must run on the same goroutine.
type MovementState struct {
	// VerticalVel is the signed vertical speed. While grounded it is floored
	// at GroundStickVelocity whenever negative; an upward velocity is kept so
	// a same-tick jump impulse survives the grounded report.
	VerticalVel float32

	// MoveInput is the last received move axes, each component in [-1, 1].
	MoveInput mgl32.Vec2
	// LookInput is the most recent raw look delta. It is consumed by the next
	// tick and then stale until new input arrives.
	LookInput mgl32.Vec2

	// Yaw is the body's heading in degrees, wrapped to [-180, 180].
	Yaw float32
	// Pitch is the camera pitch in degrees, always within [-PitchLimit, PitchLimit].
	Pitch float32

	// JumpCount is how many jumps happened since last grounded. Never exceeds
	// the configured maximum after a successful jump.
	JumpCount int
	// CoyoteTimer counts down the post-ground jump grace. It may decay below
	// zero while airborne; only its positivity is read.
	CoyoteTimer float32

	SprintHeld bool
	CrouchHeld bool
	AutoRun    bool

	// Crouching is derived each grounded tick from CrouchHeld and the ceiling
	// check. It is not a source of truth of its own.
	Crouching bool

	// Height, CenterOffset and EyeOffset are the smoothed capsule geometry
	// approaching the crouch or stand targets. Written only by the crouch
	// resolver.
	Height       float32
	CenterOffset mgl32.Vec3
	EyeOffset    mgl32.Vec3
}
