package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/stride-sim/stride/game"
)

var up = mgl32.Vec3{0, 1, 0}

// updateTimers refreshes the grounded-derived bookkeeping. Grounded resets the
// jump allowance and the coyote grace and floors a falling vertical velocity
// at the ground-stick bias; airborne only decays the coyote timer. The timer
// is left unclamped below zero, only its sign is read.
func (c *Controller) updateTimers(grounded bool, dt float32) {
	s := &c.state
	if grounded {
		s.JumpCount = 0
		s.CoyoteTimer = c.conf.CoyoteTime
		if s.VerticalVel < 0 {
			s.VerticalVel = GroundStickVelocity
		}
		return
	}
	s.CoyoteTimer -= dt
}

// resolveCrouch derives the crouch state and eases the capsule geometry
// towards it. It runs only while grounded; mid-air the geometry is frozen and
// a crouch toggled there takes effect after landing.
func (c *Controller) resolveCrouch(grounded bool, dt float32) {
	if !grounded {
		return
	}
	s := &c.state

	// A ceiling within standing height forces the crouch regardless of the
	// held flag: the actor cannot stand up into geometry.
	ceiling := c.Rays.Obstructed(c.Mover.Position(), up, c.standingHeight)
	s.Crouching = s.CrouchHeld || ceiling

	targetHeight := c.standingHeight
	if s.Crouching {
		targetHeight = c.conf.CrouchHeight
	}
	targetCenter := mgl32.Vec3{0, targetHeight / 2, 0}
	targetEye := mgl32.Vec3{0, targetHeight * c.conf.EyeHeightRatio, 0}

	t := game.Clamp32(dt*c.conf.CrouchTransitionRate, 0, 1)
	s.Height = game.Lerp32(s.Height, targetHeight, t)
	s.CenterOffset = game.LerpVec3(s.CenterOffset, targetCenter, t)
	s.EyeOffset = game.LerpVec3(s.EyeOffset, targetEye, t)

	c.Mover.SetHeight(s.Height)
	c.Mover.SetCenter(s.CenterOffset)
	c.Camera.SetLocalPosition(s.EyeOffset)
}

// applyLook integrates the latched look delta: yaw onto the body, clamped
// pitch onto the camera. The delta is consumed and stays stale until the host
// feeds a new one.
func (c *Controller) applyLook() {
	s := &c.state

	s.Yaw = game.WrapYawDelta(s.Yaw + s.LookInput.X()*c.conf.LookSensitivity)
	s.Pitch = game.Clamp32(s.Pitch-s.LookInput.Y()*c.conf.LookSensitivity, -PitchLimit, PitchLimit)
	s.LookInput = mgl32.Vec2{}

	c.Camera.SetLocalRotation(s.Pitch)
}

// integrateMotion selects the planar speed, applies auto-run and air control,
// integrates gravity and submits the combined displacement to the mover. It
// returns the displacement and the pre-dt velocity.
func (c *Controller) integrateMotion(grounded bool, dt float32) (mgl32.Vec3, mgl32.Vec3) {
	s := &c.state

	// Crouch speed wins over sprint.
	targetSpeed := c.conf.WalkSpeed
	if s.Crouching {
		targetSpeed = c.conf.CrouchSpeed
	} else if s.SprintHeld {
		targetSpeed = c.conf.WalkSpeed * c.conf.SprintMultiplier
	}

	// Auto-run sustains full forward input but yields to an explicit
	// backward press.
	effForward := s.MoveInput.Y()
	if s.AutoRun && effForward > AutoRunReverseThreshold {
		effForward = 1
	}

	forward, right := game.YawVectors(s.Yaw)
	planar := right.Mul(s.MoveInput.X()).Add(forward.Mul(effForward))
	if !grounded {
		planar = planar.Mul(c.conf.AirControlMultiplier)
	}
	planar = planar.Mul(targetSpeed)

	// Gravity integrates every tick, grounded included; the timer tracker's
	// ground-stick floor keeps it from accumulating.
	s.VerticalVel += c.conf.Gravity * dt

	velocity := planar.Add(mgl32.Vec3{0, s.VerticalVel, 0})
	displacement := velocity.Mul(dt)
	c.Mover.Move(displacement)
	return displacement, velocity
}

// Jump evaluates a jump-intent rising edge. It may be invoked between ticks;
// it mutates the same state the next tick reads. An ineligible jump is a
// silent no-op.
func (c *Controller) Jump() bool {
	s := &c.state

	if s.CoyoteTimer <= 0 && s.JumpCount >= c.conf.MaxJumps {
		return false
	}
	// The headroom check is intentionally shorter than the stand-up check so
	// jumping stays possible in low tunnels.
	if c.Rays.Obstructed(c.Mover.Position(), up, c.standingHeight*JumpClearanceScale) {
		return false
	}

	// Exact impulse to reach the configured apex: v² = 2·g·h.
	s.VerticalVel = math32.Sqrt(c.conf.JumpHeight * 2 * math32.Abs(c.conf.Gravity))
	s.JumpCount++
	// Consume the grace immediately so a coyote jump cannot chain into a
	// double jump in the same instant.
	s.CoyoteTimer = 0
	return true
}
