package controller

import "github.com/stride-sim/stride/oerror"

// Config holds the movement tuning for a controller. It is immutable for the
// controller's lifetime.
type Config struct {
	// WalkSpeed is the planar speed while walking, in units per second.
	WalkSpeed float32
	// SprintMultiplier scales WalkSpeed while sprint is held.
	SprintMultiplier float32
	// AirControlMultiplier attenuates player-directed planar movement while
	// airborne. Must lie in [0, 1].
	AirControlMultiplier float32

	// CrouchSpeed is the planar speed while crouching.
	CrouchSpeed float32
	// CrouchHeight is the capsule height while fully crouched. Must be below
	// the mover's standing height.
	CrouchHeight float32
	// CrouchTransitionRate controls how quickly the capsule geometry
	// approaches its crouch or stand target, per second.
	CrouchTransitionRate float32

	// JumpHeight is the apex height a single jump reaches under Gravity.
	JumpHeight float32
	// MaxJumps bounds how many jumps may happen without re-grounding.
	MaxJumps int
	// Gravity is the vertical acceleration, a negative scalar.
	Gravity float32
	// CoyoteTime is the grace period after leaving the ground during which a
	// jump is still accepted as if grounded.
	CoyoteTime float32

	// LookSensitivity scales raw look deltas into degrees.
	LookSensitivity float32
	// EyeHeightRatio places the camera at this fraction of the capsule
	// height. Must lie in (0, 1].
	EyeHeightRatio float32
}

// DefaultConfig returns a workable tuning for a human-sized actor.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:            5,
		SprintMultiplier:     1.6,
		AirControlMultiplier: 0.5,
		CrouchSpeed:          2.5,
		CrouchHeight:         0.9,
		CrouchTransitionRate: 10,
		JumpHeight:           1.2,
		MaxJumps:             2,
		Gravity:              -20,
		CoyoteTime:           0.15,
		LookSensitivity:      0.1,
		EyeHeightRatio:       0.9,
	}
}

// Validate rejects configurations that would produce NaNs or nonsense at
// runtime, such as non-negative gravity or a zero jump allowance.
func (c Config) Validate() error {
	if c.WalkSpeed <= 0 {
		return oerror.New("controller: walk speed must be positive, got %v", c.WalkSpeed)
	}
	if c.SprintMultiplier <= 0 {
		return oerror.New("controller: sprint multiplier must be positive, got %v", c.SprintMultiplier)
	}
	if c.AirControlMultiplier < 0 || c.AirControlMultiplier > 1 {
		return oerror.New("controller: air control multiplier must lie in [0, 1], got %v", c.AirControlMultiplier)
	}
	if c.CrouchSpeed <= 0 {
		return oerror.New("controller: crouch speed must be positive, got %v", c.CrouchSpeed)
	}
	if c.CrouchHeight <= 0 {
		return oerror.New("controller: crouch height must be positive, got %v", c.CrouchHeight)
	}
	if c.CrouchTransitionRate <= 0 {
		return oerror.New("controller: crouch transition rate must be positive, got %v", c.CrouchTransitionRate)
	}
	if c.JumpHeight <= 0 {
		return oerror.New("controller: jump height must be positive, got %v", c.JumpHeight)
	}
	if c.MaxJumps < 1 {
		return oerror.New("controller: max jumps must be at least 1, got %d", c.MaxJumps)
	}
	if c.Gravity >= 0 {
		return oerror.New("controller: gravity must be negative, got %v", c.Gravity)
	}
	if c.CoyoteTime < 0 {
		return oerror.New("controller: coyote time must not be negative, got %v", c.CoyoteTime)
	}
	if c.LookSensitivity <= 0 {
		return oerror.New("controller: look sensitivity must be positive, got %v", c.LookSensitivity)
	}
	if c.EyeHeightRatio <= 0 || c.EyeHeightRatio > 1 {
		return oerror.New("controller: eye height ratio must lie in (0, 1], got %v", c.EyeHeightRatio)
	}
	return nil
}
