package controller

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/stride-sim/stride/game"
)

type mockMover struct {
	grounded bool
	pos      mgl32.Vec3
	height   float32
	center   mgl32.Vec3
	lastMove mgl32.Vec3
}

func (m *mockMover) Grounded() bool         { return m.grounded }
func (m *mockMover) Position() mgl32.Vec3   { return m.pos }
func (m *mockMover) Height() float32        { return m.height }
func (m *mockMover) SetHeight(h float32)    { m.height = h }
func (m *mockMover) SetCenter(c mgl32.Vec3) { m.center = c }
func (m *mockMover) Move(d mgl32.Vec3) {
	m.lastMove = d
	m.pos = m.pos.Add(d)
}

type mockRays struct {
	hit      bool
	lastDist float32
}

func (r *mockRays) Obstructed(origin, dir mgl32.Vec3, maxDist float32) bool {
	r.lastDist = maxDist
	return r.hit
}

type mockCamera struct {
	pos   mgl32.Vec3
	pitch float32
}

func (c *mockCamera) SetLocalPosition(pos mgl32.Vec3) { c.pos = pos }
func (c *mockCamera) SetLocalRotation(pitch float32)  { c.pitch = pitch }

func testConfig() Config {
	return Config{
		WalkSpeed:            4,
		SprintMultiplier:     1.5,
		AirControlMultiplier: 0.5,
		CrouchSpeed:          2,
		CrouchHeight:         0.9,
		CrouchTransitionRate: 8,
		JumpHeight:           1.2,
		MaxJumps:             2,
		Gravity:              -20,
		CoyoteTime:           0.2,
		LookSensitivity:      0.1,
		EyeHeightRatio:       0.9,
	}
}

func newTestController(t *testing.T, conf Config) (*Controller, *mockMover, *mockRays, *mockCamera) {
	t.Helper()
	mover := &mockMover{grounded: true, height: 1.8}
	rays := &mockRays{}
	cam := &mockCamera{}

	c, err := New(conf, mover, rays, cam)
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	return c, mover, rays, cam
}

const dt = 0.05

func TestGroundedResetsTimersAndFloorsVelocity(t *testing.T) {
	c, mover, _, _ := newTestController(t, testConfig())
	s := c.State()
	s.JumpCount = 2
	s.CoyoteTimer = -0.3
	s.VerticalVel = -5

	c.Tick(dt)

	if s.JumpCount != 0 {
		t.Fatalf("expected jump count reset, got %d", s.JumpCount)
	}
	if s.CoyoteTimer != 0.2 {
		t.Fatalf("expected coyote timer refilled to 0.2, got %v", s.CoyoteTimer)
	}
	// The -2 floor applies before gravity integrates this tick.
	if want := float32(GroundStickVelocity) + c.Config().Gravity*dt; !game.Float32ApproxEq(s.VerticalVel, want) {
		t.Fatalf("expected vertical velocity %v, got %v", want, s.VerticalVel)
	}
	if !game.Float32ApproxEq(mover.lastMove.Y(), s.VerticalVel*dt) {
		t.Fatalf("expected displacement to carry vertical velocity, got %v", mover.lastMove)
	}
}

func TestGroundedKeepsUpwardVelocity(t *testing.T) {
	c, _, _, _ := newTestController(t, testConfig())
	s := c.State()
	s.VerticalVel = 6

	c.Tick(dt)

	// A same-tick jump impulse must survive a grounded report.
	if want := float32(6) + c.conf.Gravity*dt; !game.Float32ApproxEq(s.VerticalVel, want) {
		t.Fatalf("expected upward velocity kept at %v, got %v", want, s.VerticalVel)
	}
}

func TestCoyoteTimerDecaysUnclamped(t *testing.T) {
	c, mover, _, _ := newTestController(t, testConfig())
	mover.grounded = false
	s := c.State()
	s.CoyoteTimer = 0.1

	prev := s.CoyoteTimer
	for i := 0; i < 4; i++ {
		c.Tick(dt)
		if got := s.CoyoteTimer; !game.Float32ApproxEq(got, prev-dt) {
			t.Fatalf("tick %d: expected coyote timer %v, got %v", i, prev-dt, got)
		}
		prev = s.CoyoteTimer
	}
	if s.CoyoteTimer >= 0 {
		t.Fatalf("expected timer to decay below zero, got %v", s.CoyoteTimer)
	}
}

func TestJumpImpulseMatchesConfiguredApex(t *testing.T) {
	c, _, _, _ := newTestController(t, testConfig())
	c.Tick(dt)

	if !c.Jump() {
		t.Fatal("expected grounded jump to be eligible")
	}
	want := math32.Sqrt(1.2 * 2 * 20)
	if got := c.State().VerticalVel; math32.Abs(got-want) > 1e-4 {
		t.Fatalf("expected jump impulse %v, got %v", want, got)
	}
}

func TestJumpCountBoundedByMaxJumps(t *testing.T) {
	c, mover, _, _ := newTestController(t, testConfig())
	c.Tick(dt)
	mover.grounded = false

	if !c.Jump() {
		t.Fatal("expected first jump to succeed")
	}
	c.Tick(dt)
	if !c.Jump() {
		t.Fatal("expected second jump to succeed")
	}
	c.Tick(dt)

	before := c.State().VerticalVel
	if c.Jump() {
		t.Fatal("expected third jump to be refused")
	}
	if got := c.State().VerticalVel; got != before {
		t.Fatalf("refused jump must not change velocity: %v != %v", got, before)
	}
	if got := c.State().JumpCount; got != 2 {
		t.Fatalf("expected jump count capped at 2, got %d", got)
	}
}

func TestCoyoteGraceWindow(t *testing.T) {
	conf := testConfig()
	conf.MaxJumps = 1

	// Inside the grace window: airborne for 0.15s of a 0.2s grace.
	c, mover, _, _ := newTestController(t, conf)
	c.Tick(dt)
	mover.grounded = false
	for i := 0; i < 3; i++ {
		c.Tick(dt)
	}
	if !c.Jump() {
		t.Fatal("expected jump at t=0.15 to be eligible")
	}

	// Past the window with the allowance already spent.
	c, mover, _, _ = newTestController(t, conf)
	c.Tick(dt)
	if !c.Jump() {
		t.Fatal("expected grounded jump to succeed")
	}
	mover.grounded = false
	for i := 0; i < 5; i++ {
		c.Tick(dt)
	}
	if c.Jump() {
		t.Fatal("expected jump at t=0.25 with spent allowance to be refused")
	}
}

func TestCeilingForcesCrouch(t *testing.T) {
	c, _, rays, _ := newTestController(t, testConfig())
	rays.hit = true

	c.Tick(dt)
	if !c.State().Crouching {
		t.Fatal("expected ceiling to force crouch without the held flag")
	}

	// Releasing crouch must not stand the actor up under the obstruction.
	c.HandleEdge(EdgeCrouch, PhaseStarted)
	c.HandleEdge(EdgeCrouch, PhaseCanceled)
	c.Tick(dt)
	if !c.State().Crouching {
		t.Fatal("expected crouch to persist while obstructed")
	}

	rays.hit = false
	c.Tick(dt)
	if c.State().Crouching {
		t.Fatal("expected crouch to clear once the obstruction is gone")
	}
}

func TestCrouchGeometryConvergesWithoutOvershoot(t *testing.T) {
	c, mover, _, cam := newTestController(t, testConfig())
	c.HandleEdge(EdgeCrouch, PhaseStarted)

	s := c.State()
	prev := s.Height
	for i := 0; i < 100; i++ {
		c.Tick(dt)
		if s.Height > prev {
			t.Fatalf("tick %d: height increased from %v to %v", i, prev, s.Height)
		}
		if s.Height < c.conf.CrouchHeight {
			t.Fatalf("tick %d: height %v overshot target %v", i, s.Height, c.conf.CrouchHeight)
		}
		prev = s.Height
	}
	if math32.Abs(s.Height-c.conf.CrouchHeight) > 1e-3 {
		t.Fatalf("expected height to converge to %v, got %v", c.conf.CrouchHeight, s.Height)
	}

	// The mover and camera follow the smoothed geometry, feet anchored.
	if !game.Float32ApproxEq(mover.height, s.Height) {
		t.Fatalf("mover height %v does not follow state %v", mover.height, s.Height)
	}
	if !game.Float32ApproxEq(mover.center.Y(), s.Height/2) {
		t.Fatalf("expected center at half height, got %v", mover.center)
	}
	if !game.Float32ApproxEq(cam.pos.Y(), s.Height*c.conf.EyeHeightRatio) {
		t.Fatalf("expected eye at height ratio, got %v", cam.pos)
	}
}

func TestCrouchFrozenWhileAirborne(t *testing.T) {
	c, mover, _, _ := newTestController(t, testConfig())
	mover.grounded = false
	c.HandleEdge(EdgeCrouch, PhaseStarted)

	for i := 0; i < 10; i++ {
		c.Tick(dt)
	}
	if got := c.State().Height; got != c.StandingHeight() {
		t.Fatalf("expected geometry frozen mid-air, got height %v", got)
	}

	// The latched flag takes effect on landing.
	mover.grounded = true
	c.Tick(dt)
	if got := c.State().Height; got >= c.StandingHeight() {
		t.Fatalf("expected crouch to start after landing, got height %v", got)
	}
}

func TestAutoRunForwardThreshold(t *testing.T) {
	c, mover, _, _ := newTestController(t, testConfig())
	c.HandleEdge(EdgeAutoRun, PhaseStarted)

	c.Tick(dt)
	if want := c.conf.WalkSpeed * dt; !game.Float32ApproxEq(mover.lastMove.Z(), want) {
		t.Fatalf("expected auto-run displacement %v, got %v", want, mover.lastMove.Z())
	}

	// An explicit backward press below the threshold overrides auto-run.
	c.SetMoveAxes(mgl32.Vec2{0, -0.5})
	c.Tick(dt)
	if want := -0.5 * c.conf.WalkSpeed * dt; !game.Float32ApproxEq(mover.lastMove.Z(), want) {
		t.Fatalf("expected backward displacement %v, got %v", want, mover.lastMove.Z())
	}

	// The toggled flag clears on a second started edge.
	c.SetMoveAxes(mgl32.Vec2{})
	c.HandleEdge(EdgeAutoRun, PhaseStarted)
	c.Tick(dt)
	if !game.Float32ApproxEq(mover.lastMove.Z(), 0) {
		t.Fatalf("expected no displacement after toggle off, got %v", mover.lastMove.Z())
	}
}

func TestAirControlScalesPlanarDisplacement(t *testing.T) {
	conf := testConfig()

	grounded, groundedMover, _, _ := newTestController(t, conf)
	grounded.SetMoveAxes(mgl32.Vec2{0, 1})
	grounded.Tick(dt)

	airborne, airborneMover, _, _ := newTestController(t, conf)
	airborneMover.grounded = false
	airborne.SetMoveAxes(mgl32.Vec2{0, 1})
	airborne.Tick(dt)

	groundedHz := math32.Sqrt(game.Vec3HzDistSqr(groundedMover.lastMove))
	airborneHz := math32.Sqrt(game.Vec3HzDistSqr(airborneMover.lastMove))
	if want := groundedHz * conf.AirControlMultiplier; !game.Float32ApproxEq(airborneHz, want) {
		t.Fatalf("expected airborne displacement %v, got %v", want, airborneHz)
	}
}

func TestCrouchSpeedWinsOverSprint(t *testing.T) {
	c, mover, _, _ := newTestController(t, testConfig())
	c.HandleEdge(EdgeCrouch, PhaseStarted)
	c.HandleEdge(EdgeSprint, PhaseStarted)
	c.SetMoveAxes(mgl32.Vec2{0, 1})

	c.Tick(dt)
	if want := c.conf.CrouchSpeed * dt; !game.Float32ApproxEq(mover.lastMove.Z(), want) {
		t.Fatalf("expected crouch speed displacement %v, got %v", want, mover.lastMove.Z())
	}
}

func TestPitchClampIdempotent(t *testing.T) {
	c, _, _, cam := newTestController(t, testConfig())
	s := c.State()

	for i := 0; i < 5; i++ {
		c.SetLookDelta(mgl32.Vec2{0, 10000})
		c.Tick(dt)
	}
	if s.Pitch != -PitchLimit {
		t.Fatalf("expected pitch clamped at %v, got %v", -float32(PitchLimit), s.Pitch)
	}

	for i := 0; i < 5; i++ {
		c.SetLookDelta(mgl32.Vec2{0, -10000})
		c.Tick(dt)
	}
	if s.Pitch != PitchLimit {
		t.Fatalf("expected pitch clamped at %v, got %v", float32(PitchLimit), s.Pitch)
	}
	if cam.pitch != s.Pitch {
		t.Fatalf("camera pitch %v does not follow state %v", cam.pitch, s.Pitch)
	}
}

func TestYawWrapsAcrossBoundary(t *testing.T) {
	c, _, _, _ := newTestController(t, testConfig())
	s := c.State()

	c.SetLookDelta(mgl32.Vec2{1750, 0})
	c.Tick(dt)
	if !game.Float32ApproxEq(s.Yaw, 175) {
		t.Fatalf("expected yaw 175, got %v", s.Yaw)
	}

	c.SetLookDelta(mgl32.Vec2{100, 0})
	c.Tick(dt)
	if !game.Float32ApproxEq(s.Yaw, -175) {
		t.Fatalf("expected yaw wrapped to -175, got %v", s.Yaw)
	}

	// The planar basis is unchanged by the wrap.
	forward, _ := game.YawVectors(s.Yaw)
	wrappedForward, _ := game.YawVectors(185)
	if !game.Float32ApproxEq(forward.X(), wrappedForward.X()) || !game.Float32ApproxEq(forward.Z(), wrappedForward.Z()) {
		t.Fatalf("expected identical basis across the wrap, got %v vs %v", forward, wrappedForward)
	}
}

func TestLookDeltaConsumedOncePerTick(t *testing.T) {
	c, _, _, _ := newTestController(t, testConfig())
	c.SetLookDelta(mgl32.Vec2{10, 0})

	c.Tick(dt)
	if got := c.State().Yaw; !game.Float32ApproxEq(got, 1) {
		t.Fatalf("expected yaw 1 after one tick, got %v", got)
	}

	c.Tick(dt)
	if got := c.State().Yaw; !game.Float32ApproxEq(got, 1) {
		t.Fatalf("expected stale look delta to be ignored, yaw is %v", got)
	}
}

func TestJumpHeadroomShorterThanStandCheck(t *testing.T) {
	c, _, rays, _ := newTestController(t, testConfig())
	c.Tick(dt)

	rays.hit = true
	if c.Jump() {
		t.Fatal("expected jump under a ceiling to be refused")
	}
	if want := c.StandingHeight() * JumpClearanceScale; !game.Float32ApproxEq(rays.lastDist, want) {
		t.Fatalf("expected headroom check of %v, got %v", want, rays.lastDist)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero gravity", func(c *Config) { c.Gravity = 0 }},
		{"positive gravity", func(c *Config) { c.Gravity = 9.8 }},
		{"zero max jumps", func(c *Config) { c.MaxJumps = 0 }},
		{"air control above one", func(c *Config) { c.AirControlMultiplier = 1.5 }},
		{"zero eye ratio", func(c *Config) { c.EyeHeightRatio = 0 }},
		{"negative coyote time", func(c *Config) { c.CoyoteTime = -0.1 }},
		{"crouch above standing", func(c *Config) { c.CrouchHeight = 2.5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conf := testConfig()
			tc.mutate(&conf)
			_, err := New(conf, &mockMover{height: 1.8}, &mockRays{}, &mockCamera{})
			if err == nil {
				t.Fatal("expected a configuration error")
			}
		})
	}
}

func TestEdgeKindStrings(t *testing.T) {
	cases := map[EdgeKind]string{
		EdgeSprint:   "sprint",
		EdgeCrouch:   "crouch",
		EdgeJump:     "jump",
		EdgeAutoRun:  "auto-run",
		EdgeKind(99): "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("EdgeKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestNilMoverPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a nil mover")
		}
	}()
	_, _ = New(testConfig(), nil, &mockRays{}, &mockCamera{})
}
