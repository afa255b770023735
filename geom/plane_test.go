package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPlaneFromPointNormal(t *testing.T) {
	tests := []struct {
		name   string
		point  mgl64.Vec3
		normal mgl64.Vec3
		probe  mgl64.Vec3
		want   float64
	}{
		{
			name:   "Point on the plane",
			point:  mgl64.Vec3{0, 2, 0},
			normal: mgl64.Vec3{0, 1, 0},
			probe:  mgl64.Vec3{5, 2, -3},
			want:   0,
		},
		{
			name:   "Point on the inside half-space",
			point:  mgl64.Vec3{0, 2, 0},
			normal: mgl64.Vec3{0, 1, 0},
			probe:  mgl64.Vec3{0, 5, 0},
			want:   3,
		},
		{
			name:   "Point on the outside half-space",
			point:  mgl64.Vec3{0, 2, 0},
			normal: mgl64.Vec3{0, 1, 0},
			probe:  mgl64.Vec3{0, -1, 0},
			want:   -3,
		},
		{
			name:   "Plane offset along -Z",
			point:  mgl64.Vec3{0, 0, -10},
			normal: mgl64.Vec3{0, 0, -1},
			probe:  mgl64.Vec3{0, 0, -15},
			want:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plane := PlaneFromPointNormal(tt.point, tt.normal)
			got := plane.DistanceTo(tt.probe)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("DistanceTo(%v) = %v, want %v", tt.probe, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		v    mgl64.Vec3
	}{
		{"Axis vector", mgl64.Vec3{0, 3, 0}},
		{"Diagonal", mgl64.Vec3{1, 1, 1}},
		{"Tiny", mgl64.Vec3{1e-8, 0, 2e-8}},
		{"Large", mgl64.Vec3{1e10, -2e10, 3e10}},
		{"Negative", mgl64.Vec3{-4, 2, -7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.v)
			if math.Abs(got.Len()-1.0) > 1e-6 {
				t.Errorf("Normalize(%v).Len() = %v, want 1", tt.v, got.Len())
			}
		})
	}

	t.Run("Zero vector unchanged", func(t *testing.T) {
		got := Normalize(mgl64.Vec3{})
		if got != (mgl64.Vec3{}) {
			t.Errorf("Normalize(zero) = %v, want zero vector", got)
		}
	})
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    mgl64.Vec3
		want bool
	}{
		{"Finite", mgl64.Vec3{1, -2, 3.5}, true},
		{"Zero", mgl64.Vec3{}, true},
		{"NaN component", mgl64.Vec3{0, math.NaN(), 0}, false},
		{"Positive infinity", mgl64.Vec3{math.Inf(1), 0, 0}, false},
		{"Negative infinity", mgl64.Vec3{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.v); got != tt.want {
				t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
