// Package geom provides the geometric primitives used by the culling
// pipeline: planes, axis-aligned bounding boxes and view frustums.
//
// All types are plain value types with no hidden state. A Frustum is
// immutable after construction; the containment tests never mutate it and
// are safe for concurrent use.
package geom

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidArgument is wrapped by every constructor error in this module
// (malformed camera parameters, inverted bounding boxes, non-finite
// coordinates). Check with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Normalize returns v scaled to unit length.
// The zero vector is returned unchanged.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	length := v.Len()
	if length == 0 {
		return v
	}
	return v.Mul(1.0 / length)
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}
