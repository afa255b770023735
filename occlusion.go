package cull

import (
	"fmt"
	"math"

	"github.com/bretbouchard/blender-gsd-sub013/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultOcclusionResolution is the depth buffer edge length used by
// NewOcclusionCuller when callers have no reason to pick another.
const DefaultOcclusionResolution = 256

// defaultFarDistance normalizes depth values into [0, 1]. 1.0 means "at
// or beyond the far plane". Override with SetFarDistance when the scene
// scale differs.
const defaultFarDistance = 1000.0

// OcclusionCuller is an approximate hierarchical-Z prepass: occluders are
// splatted into a coarse square depth grid once per frame, then candidate
// instances are tested against it. It is not a substitute for the
// frustum/distance pipeline and is meant to run on its survivors.
//
// BuildDepthBuffer must fully complete before any IsOccluded call against
// that buffer generation; single writer, then many readers.
type OcclusionCuller struct {
	resolution int
	depth      []float64
	far        float64
	built      bool

	// Camera basis captured at build time, so queries project into the
	// same screen space the occluders were splatted into.
	forward mgl64.Vec3
	up      mgl64.Vec3
	right   mgl64.Vec3
	halfTan float64
}

// NewOcclusionCuller allocates a resolution x resolution depth grid.
func NewOcclusionCuller(resolution int) (*OcclusionCuller, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("occlusion resolution %d (need > 0): %w", resolution, geom.ErrInvalidArgument)
	}
	return &OcclusionCuller{
		resolution: resolution,
		depth:      make([]float64, resolution*resolution),
		far:        defaultFarDistance,
	}, nil
}

// Resolution returns the depth grid edge length.
func (oc *OcclusionCuller) Resolution() int {
	return oc.resolution
}

// SetFarDistance changes the distance mapped to depth 1.0.
func (oc *OcclusionCuller) SetFarDistance(far float64) error {
	if math.IsNaN(far) || math.IsInf(far, 0) || far <= 0 {
		return fmt.Errorf("far distance %v (need finite > 0): %w", far, geom.ErrInvalidArgument)
	}
	oc.far = far
	return nil
}

// reset re-initializes every cell to the far value.
func (oc *OcclusionCuller) reset() {
	for i := range oc.depth {
		oc.depth[i] = 1.0
	}
}

// BuildDepthBuffer resets the grid to far (1.0) and splats each
// occluder's bounding sphere into it: the sphere is projected into
// normalized screen space using the given camera pose and its footprint
// rectangle is written with min(existing, normalized distance).
// Occluders behind the camera are skipped.
//
// forward, up and right follow the same orthonormal-basis precondition as
// geom.FrustumFromCamera. fovDeg is applied on both axes since the grid
// is square.
func (oc *OcclusionCuller) BuildDepthBuffer(occluders []InstanceBounds, cameraPosition, forward, up, right mgl64.Vec3, fovDeg float64) error {
	if !geom.IsFinite(cameraPosition) || !geom.IsFinite(forward) || !geom.IsFinite(up) || !geom.IsFinite(right) {
		return fmt.Errorf("non-finite camera pose: %w", geom.ErrInvalidArgument)
	}
	if math.IsNaN(fovDeg) || fovDeg <= 0 || fovDeg >= 180 {
		return fmt.Errorf("fov %v degrees outside (0, 180): %w", fovDeg, geom.ErrInvalidArgument)
	}
	for i := range occluders {
		if err := occluders[i].Validate(); err != nil {
			return fmt.Errorf("occluder batch: %w", err)
		}
	}

	oc.reset()
	oc.forward = forward
	oc.up = up
	oc.right = right
	oc.halfTan = math.Tan(mgl64.DegToRad(fovDeg) / 2)

	for i := range occluders {
		footprint, ok := oc.project(occluders[i], cameraPosition)
		if !ok {
			continue
		}
		depth := oc.normalizedDepth(occluders[i].Position, cameraPosition)
		for y := footprint.y0; y <= footprint.y1; y++ {
			for x := footprint.x0; x <= footprint.x1; x++ {
				cell := y*oc.resolution + x
				oc.depth[cell] = math.Min(oc.depth[cell], depth)
			}
		}
	}

	oc.built = true
	return nil
}

// IsOccluded reports whether the instance is hidden behind the occluders
// splatted by the last BuildDepthBuffer call. It is conservative: true
// only when every texel of the instance's footprint holds a strictly
// nearer occluder depth. Returns false when no buffer has been built, or
// when the instance is behind the camera or off screen.
//
// cameraPosition must be the pose the buffer was built from; the culler
// deliberately does not re-project occluders per query.
func (oc *OcclusionCuller) IsOccluded(b InstanceBounds, cameraPosition mgl64.Vec3) bool {
	if !oc.built {
		return false
	}
	footprint, ok := oc.project(b, cameraPosition)
	if !ok {
		return false
	}
	depth := oc.normalizedDepth(b.Position, cameraPosition)
	for y := footprint.y0; y <= footprint.y1; y++ {
		for x := footprint.x0; x <= footprint.x1; x++ {
			if depth <= oc.depth[y*oc.resolution+x] {
				return false
			}
		}
	}
	return true
}

// normalizedDepth maps the Euclidean camera distance into [0, 1], with
// 1.0 at or beyond the far distance.
func (oc *OcclusionCuller) normalizedDepth(position, cameraPosition mgl64.Vec3) float64 {
	return math.Min(position.Sub(cameraPosition).Len()/oc.far, 1.0)
}

// cellRect is an inclusive texel range of the depth grid.
type cellRect struct {
	x0, y0, x1, y1 int
}

// project maps the instance's bounding sphere into grid texels. ok is
// false when the sphere center is behind the camera or the footprint
// falls entirely outside the grid.
func (oc *OcclusionCuller) project(b InstanceBounds, cameraPosition mgl64.Vec3) (cellRect, bool) {
	v := b.Position.Sub(cameraPosition)
	z := v.Dot(oc.forward)
	if z <= 0 {
		return cellRect{}, false
	}

	// Normalized screen coordinates in [-1, 1], then sphere radius as a
	// screen-space extent at the same depth.
	ndcX := v.Dot(oc.right) / (z * oc.halfTan)
	ndcY := v.Dot(oc.up) / (z * oc.halfTan)
	ndcR := b.Radius / (z * oc.halfTan)

	res := float64(oc.resolution)
	x0 := int(math.Floor((ndcX - ndcR + 1) / 2 * res))
	x1 := int(math.Floor((ndcX + ndcR + 1) / 2 * res))
	y0 := int(math.Floor((ndcY - ndcR + 1) / 2 * res))
	y1 := int(math.Floor((ndcY + ndcR + 1) / 2 * res))

	if x1 < 0 || y1 < 0 || x0 >= oc.resolution || y0 >= oc.resolution {
		return cellRect{}, false
	}
	return cellRect{
		x0: max(x0, 0),
		y0: max(y0, 0),
		x1: min(x1, oc.resolution-1),
		y1: min(y1, oc.resolution-1),
	}, true
}
