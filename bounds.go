package cull

import (
	"fmt"
	"math"

	"github.com/bretbouchard/blender-gsd-sub013/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// InstanceBounds is the per-object bounding proxy fed to the culling
// pipeline: a world-space bounding sphere, an AABB and a precomputed
// on-screen size estimate. The engine never mutates it and holds no
// reference to it after a batch returns.
//
// ID is a stable external key; uniqueness within a batch is the caller's
// responsibility.
type InstanceBounds struct {
	ID       string
	Position mgl64.Vec3
	Radius   float64
	Min      mgl64.Vec3
	Max      mgl64.Vec3
	// ScreenSize is the fraction of the viewport the bounding sphere is
	// estimated to cover, nominally in [0, 1]. See Manager.EstimateScreenSize.
	ScreenSize float64
}

// AABB returns the instance's bounding box as a geom.AABB.
func (b InstanceBounds) AABB() geom.AABB {
	return geom.AABB{Min: b.Min, Max: b.Max}
}

// Validate checks the instance for malformed geometry: non-finite
// coordinates, negative radius or an inverted AABB. Malformed instances
// fail the whole batch rather than being silently culled or kept, since
// either default would corrupt the scene statistics.
func (b InstanceBounds) Validate() error {
	if !geom.IsFinite(b.Position) {
		return fmt.Errorf("instance %q: non-finite position %v: %w", b.ID, b.Position, geom.ErrInvalidArgument)
	}
	if math.IsNaN(b.Radius) || math.IsInf(b.Radius, 0) || b.Radius < 0 {
		return fmt.Errorf("instance %q: radius %v (need finite >= 0): %w", b.ID, b.Radius, geom.ErrInvalidArgument)
	}
	if !b.AABB().Valid() {
		return fmt.Errorf("instance %q: malformed bounding box min=%v max=%v: %w", b.ID, b.Min, b.Max, geom.ErrInvalidArgument)
	}
	if math.IsNaN(b.ScreenSize) || math.IsInf(b.ScreenSize, 0) || b.ScreenSize < 0 {
		return fmt.Errorf("instance %q: screen size %v (need finite >= 0): %w", b.ID, b.ScreenSize, geom.ErrInvalidArgument)
	}
	return nil
}
