package controller

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/stride-sim/stride/assert"
	"github.com/stride-sim/stride/game"
	"github.com/stride-sim/stride/oerror"
)

// Controller drives a first-person capsule actor: it turns per-tick input and
// environment queries into mover displacements, a smoothly animated crouch
// posture and a camera pose, while gating jumps on coyote time, the jump
// allowance and headroom.
type Controller struct {
	Mover  Mover
	Rays   ObstructionQuery
	Camera CameraSink

	conf           Config
	standingHeight float32
	state          MovementState
}

// New attaches a controller to its collaborators. The mover's current height
// is captured as the standing height for the session. Nil collaborators are a
// host bug and panic; invalid numeric configuration returns an error.
func New(conf Config, mover Mover, rays ObstructionQuery, cam CameraSink) (*Controller, error) {
	assert.IsTrue(mover != nil, "controller: mover must be non-nil")
	assert.IsTrue(rays != nil, "controller: obstruction query must be non-nil")
	assert.IsTrue(cam != nil, "controller: camera sink must be non-nil")

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	standing := mover.Height()
	if standing <= 0 {
		return nil, oerror.New("controller: mover reports non-positive standing height %v", standing)
	}
	if conf.CrouchHeight >= standing {
		return nil, oerror.New("controller: crouch height %v must be below standing height %v", conf.CrouchHeight, standing)
	}

	c := &Controller{
		Mover:          mover,
		Rays:           rays,
		Camera:         cam,
		conf:           conf,
		standingHeight: standing,
	}
	c.state = MovementState{
		Height:       standing,
		CenterOffset: mgl32.Vec3{0, standing / 2, 0},
		EyeOffset:    mgl32.Vec3{0, standing * conf.EyeHeightRatio, 0},
	}
	cam.SetLocalPosition(c.state.EyeOffset)
	return c, nil
}

// State exposes the controller's movement state for hosts and tests. The
// record is owned by the controller; mutate it only from the tick goroutine.
func (c *Controller) State() *MovementState {
	return &c.state
}

// Config returns the tuning the controller was built with.
func (c *Controller) Config() Config {
	return c.conf
}

// StandingHeight returns the capsule height captured from the mover at attach.
func (c *Controller) StandingHeight() float32 {
	return c.standingHeight
}

// SetMoveAxes latches the continuous move axes, clamped to [-1, 1].
func (c *Controller) SetMoveAxes(axes mgl32.Vec2) {
	c.state.MoveInput = mgl32.Vec2{
		game.Clamp32(axes.X(), -1, 1),
		game.Clamp32(axes.Y(), -1, 1),
	}
}

// SetLookDelta latches the raw look delta consumed by the next tick.
func (c *Controller) SetLookDelta(delta mgl32.Vec2) {
	c.state.LookInput = delta
}

// HandleEdge applies a discrete input transition. Sprint and crouch latch
// their held flags, auto-run toggles on its started edge, and a jump started
// edge is evaluated immediately against the current state.
func (c *Controller) HandleEdge(kind EdgeKind, phase EdgePhase) {
	switch kind {
	case EdgeSprint:
		c.state.SprintHeld = phase == PhaseStarted
	case EdgeCrouch:
		c.state.CrouchHeld = phase == PhaseStarted
	case EdgeAutoRun:
		if phase == PhaseStarted {
			c.state.AutoRun = !c.state.AutoRun
		}
	case EdgeJump:
		if phase == PhaseStarted {
			c.Jump()
		}
	}
}

// Tick advances the controller by one fixed step. The order is load-bearing:
// the crouch resolver decides Crouching before the motion integrator selects
// its speed.
func (c *Controller) Tick(dt float32) TickResult {
	grounded := c.Mover.Grounded()

	c.updateTimers(grounded, dt)
	c.resolveCrouch(grounded, dt)
	c.applyLook()
	displacement, velocity := c.integrateMotion(grounded, dt)

	s := &c.state
	return TickResult{
		Displacement: displacement,
		Velocity:     velocity,
		Grounded:     grounded,
		Crouching:    s.Crouching,
		Height:       s.Height,
		EyeOffset:    s.EyeOffset,
		Yaw:          s.Yaw,
		Pitch:        s.Pitch,
		JumpCount:    s.JumpCount,
		CoyoteTimer:  s.CoyoteTimer,
	}
}
