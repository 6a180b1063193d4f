// Package stride implements a first-person capsule movement controller: a
// fixed-tick state machine for walking, sprinting, crouching and jumping,
// driven by host-supplied input edges and backed by opaque physics and camera
// collaborators. The controller package is the core; world, phys and camera
// provide a ready-made environment, kinematic body and camera sink.
package stride

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/stride-sim/stride/camera"
	"github.com/stride-sim/stride/controller"
	"github.com/stride-sim/stride/phys"
	"github.com/stride-sim/stride/world"
)

// Rig bundles a controller with a kinematic body and camera placed in a world.
type Rig struct {
	World      *world.World
	Body       *phys.Body
	Camera     *camera.Camera
	Controller *controller.Controller
}

// NewRig spawns a capsule of the given dimensions at the world's spawn point
// and attaches a controller to it.
func NewRig(conf controller.Config, w *world.World, width, height float32) (*Rig, error) {
	body := phys.NewBody(w, w.Spawn(), width, height)
	cam := &camera.Camera{}

	ctrl, err := controller.New(conf, body, body, cam)
	if err != nil {
		return nil, err
	}

	return &Rig{
		World:      w,
		Body:       body,
		Camera:     cam,
		Controller: ctrl,
	}, nil
}

// EyeWorldPose returns the camera's current world position and view direction.
func (r *Rig) EyeWorldPose() (pos, dir mgl32.Vec3) {
	return r.Camera.WorldPose(r.Body.Position(), r.Controller.State().Yaw)
}
