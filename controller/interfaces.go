package controller

import "github.com/go-gl/mathgl/mgl32"

// Mover bridges the physics body the controller drives. Move resolves
// collisions internally; Grounded reports the contact state resulting from the
// previous move.
type Mover interface {
	Grounded() bool
	Move(delta mgl32.Vec3)
	Position() mgl32.Vec3
	Height() float32
	SetHeight(height float32)
	SetCenter(center mgl32.Vec3)
}

// ObstructionQuery bridges ceiling checks: it reports whether geometry lies
// along a ray. dir is expected to be normalized.
type ObstructionQuery interface {
	Obstructed(origin, dir mgl32.Vec3, maxDist float32) bool
}

// CameraSink receives the eye transform computed by the controller. Rotation
// is pitch-only; yaw belongs to the body.
type CameraSink interface {
	SetLocalPosition(pos mgl32.Vec3)
	SetLocalRotation(pitchDegrees float32)
}
