package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Frustum plane indices, in the order produced by FrustumFromCamera.
const (
	FrustumNear = iota
	FrustumFar
	FrustumTop
	FrustumBottom
	FrustumLeft
	FrustumRight
)

// Frustum represents the six clipping planes of a camera view volume.
// Every plane normal is a unit vector pointing into the frustum, so a
// point is inside iff its signed distance to all six planes is >= 0.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromCamera builds a frustum from a camera pose and projection
// parameters. forward, up and right must be unit length and mutually
// orthogonal; that is not verified, and a skewed basis produces planes
// with undefined orientation. The side plane normals are re-normalized
// to absorb small input error.
//
// fovDeg is the vertical field of view in degrees, aspect is width over
// height. The near and far planes are offset along forward; the four
// side planes pass through the camera position with normals built from
// forward tilted by the half-FOV tangent (scaled by aspect for the
// horizontal pair).
func FrustumFromCamera(position, forward, up, right mgl64.Vec3, fovDeg, aspect, near, far float64) (Frustum, error) {
	if !IsFinite(position) || !IsFinite(forward) || !IsFinite(up) || !IsFinite(right) {
		return Frustum{}, fmt.Errorf("non-finite camera pose: %w", ErrInvalidArgument)
	}
	if math.IsNaN(fovDeg) || fovDeg <= 0 || fovDeg >= 180 {
		return Frustum{}, fmt.Errorf("fov %v degrees outside (0, 180): %w", fovDeg, ErrInvalidArgument)
	}
	if math.IsNaN(aspect) || math.IsInf(aspect, 0) || aspect <= 0 {
		return Frustum{}, fmt.Errorf("aspect ratio %v not positive: %w", aspect, ErrInvalidArgument)
	}
	if math.IsNaN(near) || math.IsNaN(far) || math.IsInf(near, 0) || math.IsInf(far, 0) {
		return Frustum{}, fmt.Errorf("non-finite clip distances: %w", ErrInvalidArgument)
	}
	if near <= 0 || near >= far {
		return Frustum{}, fmt.Errorf("clip distances near=%v far=%v (need 0 < near < far): %w", near, far, ErrInvalidArgument)
	}

	halfTan := math.Tan(mgl64.DegToRad(fovDeg) / 2)

	var f Frustum
	f.Planes[FrustumNear] = PlaneFromPointNormal(position.Add(forward.Mul(near)), forward)
	f.Planes[FrustumFar] = PlaneFromPointNormal(position.Add(forward.Mul(far)), forward.Mul(-1))

	// The side planes pass through the camera position, not the near plane.
	f.Planes[FrustumTop] = PlaneFromPointNormal(position, Normalize(forward.Sub(up.Mul(halfTan))))
	f.Planes[FrustumBottom] = PlaneFromPointNormal(position, Normalize(forward.Add(up.Mul(halfTan))))
	f.Planes[FrustumLeft] = PlaneFromPointNormal(position, Normalize(forward.Add(right.Mul(halfTan*aspect))))
	f.Planes[FrustumRight] = PlaneFromPointNormal(position, Normalize(forward.Sub(right.Mul(halfTan*aspect))))

	return f, nil
}

// ContainsPoint reports whether p is inside the frustum. The test
// short-circuits on the first plane with p on the outside half-space.
func (f *Frustum) ContainsPoint(p mgl64.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceTo(p) < 0 {
			return false
		}
	}
	return true
}

// ContainsSphere reports whether the sphere intersects the frustum.
// A sphere is rejected only when it lies entirely on the outside of one
// plane; a sphere straddling a plane is kept.
func (f *Frustum) ContainsSphere(center mgl64.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceTo(center) < -radius {
			return false
		}
	}
	return true
}

// ContainsBox is a conservative AABB-vs-frustum test: the box is rejected
// only when all eight corners are outside the same plane. Boxes near a
// frustum edge or corner can survive despite not intersecting the volume;
// callers must treat a true result as "potentially visible".
func (f *Frustum) ContainsBox(min, max mgl64.Vec3) bool {
	corners := AABB{Min: min, Max: max}.Corners()

	for i := range f.Planes {
		outside := 0
		for _, corner := range corners {
			if f.Planes[i].DistanceTo(corner) < 0 {
				outside++
			}
		}
		if outside == len(corners) {
			return false
		}
	}
	return true
}
