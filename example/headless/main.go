package main

import (
	"log"
	"os"

	"github.com/restartfu/gophig"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/stride-sim/stride"
	"github.com/stride-sim/stride/controller"
	"github.com/stride-sim/stride/replay"
	"github.com/stride-sim/stride/world"
)

const tickRate = 1.0 / 60.0

func main() {
	cfg := readConfig()

	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{ForceColors: true}
	lg.Level = logrus.DebugLevel

	if cfg.Debug.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Debug.SentryDSN}); err != nil {
			lg.Warnf("sentry init failed: %v", err)
		}
	}
	if cfg.Debug.Profile {
		if cfg.Debug.ProfileAddr != "" {
			viewer.SetConfiguration(viewer.WithAddr(cfg.Debug.ProfileAddr))
		}
		go func() {
			defer sentry.Recover()
			statsview.New().Start()
		}()
	}

	w, err := world.LoadArena(cfg.Arena.Path)
	if err != nil {
		lg.Warnf("falling back to built-in arena: %v", err)
		w = defaultArena()
	}
	lg.Infof("arena %q loaded with %d boxes", w.Name(), len(w.Boxes()))

	rig, err := stride.NewRig(cfg.controllerConfig(), w, cfg.Actor.Width, cfg.Actor.Height)
	if err != nil {
		lg.Fatalf("unable to build rig: %v", err)
	}

	rec := replay.NewRecorder(rig.Controller)
	runScript(lg, rig, rec)

	// Re-run the captured trace on a fresh rig to prove the run is
	// deterministic.
	trace := rec.Trace()
	diverged := replay.Verify(trace, func() *controller.Controller {
		fresh, err := stride.NewRig(cfg.controllerConfig(), w, cfg.Actor.Width, cfg.Actor.Height)
		if err != nil {
			lg.Fatalf("unable to rebuild rig: %v", err)
		}
		return fresh.Controller
	}, lg)
	if diverged >= 0 {
		lg.Errorf("replay diverged at tick %d of %d", diverged, len(trace.Frames))
		return
	}
	lg.Infof("replay of %d ticks verified deterministic", len(trace.Frames))
}

// runScript walks the actor through the arena: settle, walk, sprint, jump,
// double jump, then crouch through the tunnel.
func runScript(lg *logrus.Logger, rig *stride.Rig, rec *replay.Recorder) {
	step := func(n int) {
		for i := 0; i < n; i++ {
			rec.Tick(tickRate)
		}
	}

	// Let the body settle onto the floor.
	step(30)

	rec.SetMoveAxes(mgl32.Vec2{0, 1})
	step(120)
	lg.Infof("walked to %v", rig.Body.Position())

	rec.HandleEdge(controller.EdgeSprint, controller.PhaseStarted)
	step(120)
	rec.HandleEdge(controller.EdgeSprint, controller.PhaseCanceled)
	lg.Infof("sprinted to %v", rig.Body.Position())

	rec.HandleEdge(controller.EdgeJump, controller.PhaseStarted)
	step(20)
	rec.HandleEdge(controller.EdgeJump, controller.PhaseStarted)
	step(120)
	lg.Infof("after double jump: %v (grounded=%v)", rig.Body.Position(), rig.Body.Grounded())

	rec.HandleEdge(controller.EdgeCrouch, controller.PhaseStarted)
	step(180)
	rec.HandleEdge(controller.EdgeCrouch, controller.PhaseCanceled)
	step(60)
	lg.Infof("after tunnel: %v (height=%.2f)", rig.Body.Position(), rig.Controller.State().Height)

	eye, dir := rig.EyeWorldPose()
	lg.Infof("eye at %v looking %v", eye, dir)
}

// defaultArena is used when no arena file could be read: a large floor with a
// wall and a low tunnel.
func defaultArena() *world.World {
	boxes := []world.Box{
		box(-50, -1, -50, 50, 0, 50, world.LayerAll),
		box(-50, 0, 20, 50, 4, 21, world.LayerAll),
		box(-2, 1.2, 8, 2, 4, 14, world.LayerAll),
	}
	return world.New("builtin", mgl32.Vec3{0, 0.5, 0}, boxes)
}

func box(minX, minY, minZ, maxX, maxY, maxZ float32, layers world.Layer) world.Box {
	return world.Box{Bounds: cube.Box(minX, minY, minZ, maxX, maxY, maxZ), Layers: layers}
}

type config struct {
	Movement struct {
		WalkSpeed            float32
		SprintMultiplier     float32
		AirControlMultiplier float32
		CrouchSpeed          float32
		CrouchHeight         float32
		CrouchTransitionRate float32
		JumpHeight           float32
		MaxJumps             int
		Gravity              float32
		CoyoteTime           float32
		LookSensitivity      float32
		EyeHeightRatio       float32
	}
	Actor struct {
		Width  float32
		Height float32
	}
	Arena struct {
		Path string
	}
	Debug struct {
		Profile     bool
		ProfileAddr string
		SentryDSN   string
	}
}

func (c config) controllerConfig() controller.Config {
	return controller.Config{
		WalkSpeed:            c.Movement.WalkSpeed,
		SprintMultiplier:     c.Movement.SprintMultiplier,
		AirControlMultiplier: c.Movement.AirControlMultiplier,
		CrouchSpeed:          c.Movement.CrouchSpeed,
		CrouchHeight:         c.Movement.CrouchHeight,
		CrouchTransitionRate: c.Movement.CrouchTransitionRate,
		JumpHeight:           c.Movement.JumpHeight,
		MaxJumps:             c.Movement.MaxJumps,
		Gravity:              c.Movement.Gravity,
		CoyoteTime:           c.Movement.CoyoteTime,
		LookSensitivity:      c.Movement.LookSensitivity,
		EyeHeightRatio:       c.Movement.EyeHeightRatio,
	}
}

func readConfig() config {
	var c config
	if _, err := os.Stat("config.toml"); os.IsNotExist(err) {
		c = defaultConfig()
		if err := gophig.SetConfComplex("config.toml", gophig.TOMLMarshaler{}, c, 0777); err != nil {
			log.Fatalf("error creating config: %v", err)
		}
		return c
	}
	if err := gophig.GetConfComplex("config.toml", gophig.TOMLMarshaler{}, &c); err != nil {
		log.Fatalf("error reading config: %v", err)
	}
	return c
}

func defaultConfig() config {
	var c config
	def := controller.DefaultConfig()
	c.Movement.WalkSpeed = def.WalkSpeed
	c.Movement.SprintMultiplier = def.SprintMultiplier
	c.Movement.AirControlMultiplier = def.AirControlMultiplier
	c.Movement.CrouchSpeed = def.CrouchSpeed
	c.Movement.CrouchHeight = def.CrouchHeight
	c.Movement.CrouchTransitionRate = def.CrouchTransitionRate
	c.Movement.JumpHeight = def.JumpHeight
	c.Movement.MaxJumps = def.MaxJumps
	c.Movement.Gravity = def.Gravity
	c.Movement.CoyoteTime = def.CoyoteTime
	c.Movement.LookSensitivity = def.LookSensitivity
	c.Movement.EyeHeightRatio = def.EyeHeightRatio
	c.Actor.Width = 0.6
	c.Actor.Height = 1.8
	c.Arena.Path = "arena.yml"
	c.Debug.ProfileAddr = "localhost:18066"
	return c
}
