package geom

import "github.com/go-gl/mathgl/mgl64"

// Plane represents a plane in 3D space using the equation Normal·p + D = 0.
// Points with Normal·p + D >= 0 are on the positive (inside) half-space.
// Normal must be normalized.
type Plane struct {
	Normal mgl64.Vec3
	D      float64
}

// PlaneFromPointNormal builds the plane through point with the given normal,
// oriented so the normal points into the positive half-space.
func PlaneFromPointNormal(point, normal mgl64.Vec3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

// DistanceTo returns the signed distance from p to the plane.
// Positive means p is on the inside half-space.
func (pl Plane) DistanceTo(p mgl64.Vec3) float64 {
	return pl.Normal.Dot(p) + pl.D
}
