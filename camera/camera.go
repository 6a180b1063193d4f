package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/stride-sim/stride/game"
)

// Camera is a first-person camera sink. The controller writes the eye offset
// and pitch; the host supplies the body's feet position and yaw when it needs
// a world-space pose.
type Camera struct {
	localPos mgl32.Vec3
	pitch    float32
}

// SetLocalPosition sets the camera's position relative to the body's feet.
func (c *Camera) SetLocalPosition(pos mgl32.Vec3) {
	c.localPos = pos
}

// SetLocalRotation sets the camera's pitch in degrees. The camera carries no
// yaw of its own, the body does.
func (c *Camera) SetLocalRotation(pitchDegrees float32) {
	c.pitch = pitchDegrees
}

// LocalPosition returns the camera's position relative to the body's feet.
func (c *Camera) LocalPosition() mgl32.Vec3 {
	return c.localPos
}

// Pitch returns the camera's pitch in degrees.
func (c *Camera) Pitch() float32 {
	return c.pitch
}

// WorldPose composes the camera's world position and view direction from the
// body's feet position and yaw.
func (c *Camera) WorldPose(feet mgl32.Vec3, yaw float32) (pos, dir mgl32.Vec3) {
	return feet.Add(c.localPos), game.DirectionVector(yaw, c.pitch)
}
