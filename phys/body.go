package phys

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/stride-sim/stride/game"
	"github.com/stride-sim/stride/world"
)

// Body is a kinematic capsule approximated as an axis-aligned box. It resolves
// requested displacements against the static world one axis at a time and
// tracks ground contact for the controller.
type Body struct {
	w *world.World

	pos    mgl32.Vec3
	width  float32
	height float32
	center mgl32.Vec3

	onGround                     bool
	collideX, collideY, collideZ bool
}

// NewBody creates a body with its feet at the given position.
func NewBody(w *world.World, feet mgl32.Vec3, width, height float32) *Body {
	return &Body{
		w:      w,
		pos:    feet,
		width:  width,
		height: height,
		center: mgl32.Vec3{0, height / 2, 0},
	}
}

// Grounded reports whether the body ended its last move resting on geometry.
func (b *Body) Grounded() bool {
	return b.onGround
}

// Position returns the body's feet position.
func (b *Body) Position() mgl32.Vec3 {
	return b.pos
}

// Height returns the current capsule height.
func (b *Body) Height() float32 {
	return b.height
}

// SetHeight updates the capsule height.
func (b *Body) SetHeight(height float32) {
	b.height = height
}

// Center returns the capsule center offset relative to the feet.
func (b *Body) Center() mgl32.Vec3 {
	return b.center
}

// SetCenter updates the capsule center offset relative to the feet.
func (b *Body) SetCenter(center mgl32.Vec3) {
	b.center = center
}

// Collisions reports which axes were clipped during the last move.
func (b *Body) Collisions() (x, y, z bool) {
	return b.collideX, b.collideY, b.collideZ
}

// BoundingBox returns the body's box translated to the current position. The
// feet-anchored box is shifted so its vertical middle sits at the center
// offset, which matters mid-crouch when the center has not converged yet.
func (b *Body) BoundingBox() cube.BBox {
	feet := b.pos.Add(b.center).Sub(mgl32.Vec3{0, b.height / 2, 0})
	return game.AABBFromDimensions(b.width, b.height).
		Translate(feet).
		GrowVec3(mgl32.Vec3{-1e-4, 0, -1e-4})
}

// Move resolves the requested displacement against the world and updates the
// body's position and ground contact. The vertical axis is resolved first so
// landing on a ledge does not also cancel horizontal motion.
func (b *Body) Move(delta mgl32.Vec3) {
	bb := b.BoundingBox()
	boxes := b.w.NearbyBoxes(bb.Extend(delta), world.LayerWorld)

	yVel := mgl32.Vec3{0, delta.Y()}
	xVel := mgl32.Vec3{delta.X()}
	zVel := mgl32.Vec3{0, 0, delta.Z()}

	for i := len(boxes) - 1; i >= 0; i-- {
		yVel = game.BBClipCollide(boxes[i], bb, yVel, false, nil)
	}
	bb = bb.Translate(yVel)

	for i := len(boxes) - 1; i >= 0; i-- {
		xVel = game.BBClipCollide(boxes[i], bb, xVel, false, nil)
	}
	bb = bb.Translate(xVel)

	for i := len(boxes) - 1; i >= 0; i-- {
		zVel = game.BBClipCollide(boxes[i], bb, zVel, false, nil)
	}

	moved := yVel.Add(xVel).Add(zVel)
	b.pos = b.pos.Add(moved)

	b.collideX = math32.Abs(delta.X()-moved.X()) >= 1e-5
	b.collideY = math32.Abs(delta.Y()-moved.Y()) >= 1e-5
	b.collideZ = math32.Abs(delta.Z()-moved.Z()) >= 1e-5

	b.onGround = (b.collideY && delta.Y() < 0) ||
		(b.onGround && !b.collideY && math32.Abs(delta.Y()) <= 1e-5)
}

// obstructionSkin offsets obstruction rays past any surface the origin rests
// on, so standing on obstacle-layer geometry does not read as an overhead
// obstruction.
const obstructionSkin = 1e-3

// Obstructed reports whether geometry on the obstacle layer lies along the
// given ray. It satisfies the controller's obstruction query.
func (b *Body) Obstructed(origin, dir mgl32.Vec3, maxDist float32) bool {
	if maxDist <= obstructionSkin {
		return false
	}
	return b.w.Raycast(origin.Add(dir.Mul(obstructionSkin)), dir, maxDist-obstructionSkin, world.LayerObstacle)
}

// Teleport places the body's feet at the given position and clears contact
// state. Intended for spawning and tests.
func (b *Body) Teleport(feet mgl32.Vec3) {
	b.pos = feet
	b.onGround = false
	b.collideX, b.collideY, b.collideZ = false, false, false
}
