package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/stride-sim/stride/game"
)

func TestCameraHoldsLocalTransform(t *testing.T) {
	c := &Camera{}
	c.SetLocalPosition(mgl32.Vec3{0, 1.62, 0})
	c.SetLocalRotation(-30)

	if got := c.LocalPosition(); got != (mgl32.Vec3{0, 1.62, 0}) {
		t.Fatalf("unexpected local position %v", got)
	}
	if got := c.Pitch(); got != -30 {
		t.Fatalf("unexpected pitch %v", got)
	}
}

func TestWorldPoseComposesFeetAndYaw(t *testing.T) {
	c := &Camera{}
	c.SetLocalPosition(mgl32.Vec3{0, 1.62, 0})
	c.SetLocalRotation(-30)

	pos, dir := c.WorldPose(mgl32.Vec3{1, 0, 2}, 90)
	if pos != (mgl32.Vec3{1, 1.62, 2}) {
		t.Fatalf("unexpected eye position %v", pos)
	}
	if want := game.DirectionVector(90, -30); dir != want {
		t.Fatalf("unexpected view direction %v, want %v", dir, want)
	}
	// Negative pitch looks up.
	if dir.Y() <= 0 {
		t.Fatalf("expected an upward view component, got %v", dir)
	}
}
