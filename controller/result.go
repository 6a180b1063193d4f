package controller

import "github.com/go-gl/mathgl/mgl32"

// TickResult captures the outcome of a single controller tick.
type TickResult struct {
	// Displacement is what was submitted to the mover this tick.
	Displacement mgl32.Vec3
	// Velocity is the combined planar and vertical velocity before the dt
	// scale, in units per second.
	Velocity mgl32.Vec3

	Grounded  bool
	Crouching bool

	Height    float32
	EyeOffset mgl32.Vec3
	Yaw       float32
	Pitch     float32

	JumpCount   int
	CoyoteTimer float32
}
