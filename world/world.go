package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/stride-sim/stride/game"
)

// MaxSearchBoxes caps how many boxes a spatial query may return. Queries stop
// collecting once the cap is reached.
const MaxSearchBoxes = 1024

// Layer is a bitmask describing which queries a box participates in.
type Layer uint32

const (
	// LayerWorld marks geometry the kinematic body collides with.
	LayerWorld Layer = 1 << iota
	// LayerObstacle marks geometry that blocks standing up or jumping.
	LayerObstacle
)

// LayerAll matches every box regardless of its layers.
const LayerAll = LayerWorld | LayerObstacle

// Box is a static axis-aligned box placed in the world.
type Box struct {
	Bounds cube.BBox
	Layers Layer
}

// World is a static set of axis-aligned boxes a capsule actor moves through.
// It is read-only after construction and safe for concurrent queries.
type World struct {
	name  string
	spawn mgl32.Vec3
	boxes []Box
}

// New creates a world from the given boxes.
func New(name string, spawn mgl32.Vec3, boxes []Box) *World {
	return &World{name: name, spawn: spawn, boxes: boxes}
}

// Name returns the world's display name.
func (w *World) Name() string {
	return w.name
}

// Spawn returns the feet position actors should start at.
func (w *World) Spawn() mgl32.Vec3 {
	return w.spawn
}

// Boxes returns all boxes in the world.
func (w *World) Boxes() []Box {
	return w.boxes
}

// NearbyBoxes returns the bounds of every box on the given layers that
// intersects the search bounds.
func (w *World) NearbyBoxes(bb cube.BBox, mask Layer) []cube.BBox {
	found := make([]cube.BBox, 0, 8)
	for _, box := range w.boxes {
		if box.Layers&mask == 0 {
			continue
		}
		if !box.Bounds.IntersectsWith(bb) {
			continue
		}

		found = append(found, box.Bounds)
		if len(found) >= MaxSearchBoxes {
			break
		}
	}
	return found
}

// Raycast reports whether a ray from origin along dir hits any box on the
// given layers within maxDist. dir is expected to be normalized.
func (w *World) Raycast(origin, dir mgl32.Vec3, maxDist float32, mask Layer) bool {
	end := origin.Add(dir.Mul(maxDist))
	searchBB := cube.Box(
		math32.Min(origin.X(), end.X()), math32.Min(origin.Y(), end.Y()), math32.Min(origin.Z(), end.Z()),
		math32.Max(origin.X(), end.X()), math32.Max(origin.Y(), end.Y()), math32.Max(origin.Z(), end.Z()),
	).Grow(1e-3)

	for _, bb := range w.NearbyBoxes(searchBB, mask) {
		if game.RayIntersectsBB(bb, origin, dir, maxDist) {
			return true
		}
	}
	return false
}
