package cull

import (
	"errors"
	"testing"

	"github.com/bretbouchard/blender-gsd-sub013/geom"
	"github.com/go-gl/mathgl/mgl64"
)

func newTestOcclusionCuller(t *testing.T) *OcclusionCuller {
	t.Helper()
	oc, err := NewOcclusionCuller(64)
	if err != nil {
		t.Fatalf("NewOcclusionCuller: %v", err)
	}
	return oc
}

// buildTestBuffer splats the given occluders from the reference camera
// (origin, looking down -Z, fov 60).
func buildTestBuffer(t *testing.T, oc *OcclusionCuller, occluders ...InstanceBounds) {
	t.Helper()
	err := oc.BuildDepthBuffer(
		occluders,
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 0, -1},
		mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{1, 0, 0},
		60,
	)
	if err != nil {
		t.Fatalf("BuildDepthBuffer: %v", err)
	}
}

func TestNewOcclusionCullerInvalidResolution(t *testing.T) {
	for _, resolution := range []int{0, -1, -256} {
		if _, err := NewOcclusionCuller(resolution); !errors.Is(err, geom.ErrInvalidArgument) {
			t.Errorf("resolution %d: error %v should wrap geom.ErrInvalidArgument", resolution, err)
		}
	}
}

func TestIsOccludedWithoutBuffer(t *testing.T) {
	oc := newTestOcclusionCuller(t)
	if oc.IsOccluded(sphere("x", mgl64.Vec3{0, 0, -10}, 1, 0), mgl64.Vec3{0, 0, 0}) {
		t.Error("no depth buffer built, nothing can be occluded")
	}
}

func TestOcclusionScenario(t *testing.T) {
	oc := newTestOcclusionCuller(t)
	buildTestBuffer(t, oc, sphere("wall", mgl64.Vec3{0, 0, -5}, 1, 0))

	camera := mgl64.Vec3{0, 0, 0}

	if !oc.IsOccluded(sphere("behind", mgl64.Vec3{0, 0, -10}, 1, 0), camera) {
		t.Error("instance behind the occluder should be occluded")
	}
	if oc.IsOccluded(sphere("in-front", mgl64.Vec3{0, 0, -2}, 1, 0), camera) {
		t.Error("instance in front of the occluder should not be occluded")
	}
}

func TestIsOccludedOffScreen(t *testing.T) {
	oc := newTestOcclusionCuller(t)
	buildTestBuffer(t, oc, sphere("wall", mgl64.Vec3{0, 0, -5}, 1, 0))

	camera := mgl64.Vec3{0, 0, 0}

	tests := []struct {
		name     string
		instance InstanceBounds
	}{
		{"Behind the camera", sphere("x", mgl64.Vec3{0, 0, 10}, 1, 0)},
		{"Far off to the side", sphere("x", mgl64.Vec3{500, 0, -5}, 1, 0)},
		{"Outside the occluder footprint", sphere("x", mgl64.Vec3{4, 0, -10}, 0.5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if oc.IsOccluded(tt.instance, camera) {
				t.Error("instance with no nearer occluder over its footprint should not be occluded")
			}
		})
	}
}

// A footprint only partially covered by occluders is not occluded: the
// test is conservative over every covered texel.
func TestIsOccludedPartialCoverage(t *testing.T) {
	oc := newTestOcclusionCuller(t)
	// Small occluder: radius 0.2 at distance 5, footprint a few texels
	// around the center.
	buildTestBuffer(t, oc, sphere("pebble", mgl64.Vec3{0, 0, -5}, 0.2, 0))

	camera := mgl64.Vec3{0, 0, 0}

	// A large instance behind it spans far more texels than the pebble wrote.
	if oc.IsOccluded(sphere("boulder", mgl64.Vec3{0, 0, -10}, 3, 0), camera) {
		t.Error("instance larger than the occluder's footprint should not be occluded")
	}
	// A tiny instance directly behind the pebble is occluded.
	if !oc.IsOccluded(sphere("speck", mgl64.Vec3{0, 0, -10}, 0.05, 0), camera) {
		t.Error("tiny instance directly behind the occluder should be occluded")
	}
}

func TestBuildDepthBufferResetsPreviousFrame(t *testing.T) {
	oc := newTestOcclusionCuller(t)
	camera := mgl64.Vec3{0, 0, 0}
	probe := sphere("probe", mgl64.Vec3{0, 0, -10}, 0.5, 0)

	buildTestBuffer(t, oc, sphere("wall", mgl64.Vec3{0, 0, -5}, 1, 0))
	if !oc.IsOccluded(probe, camera) {
		t.Fatal("probe should start occluded")
	}

	// Next frame: the wall is gone.
	buildTestBuffer(t, oc)
	if oc.IsOccluded(probe, camera) {
		t.Error("rebuilding with no occluders must clear the previous depth")
	}
}

func TestBuildDepthBufferInvalidArguments(t *testing.T) {
	oc := newTestOcclusionCuller(t)
	camera := mgl64.Vec3{0, 0, 0}
	forward := mgl64.Vec3{0, 0, -1}
	up := mgl64.Vec3{0, 1, 0}
	right := mgl64.Vec3{1, 0, 0}

	t.Run("Bad fov", func(t *testing.T) {
		err := oc.BuildDepthBuffer(nil, camera, forward, up, right, 0)
		if !errors.Is(err, geom.ErrInvalidArgument) {
			t.Errorf("error %v should wrap geom.ErrInvalidArgument", err)
		}
	})

	t.Run("Malformed occluder", func(t *testing.T) {
		err := oc.BuildDepthBuffer(
			[]InstanceBounds{sphere("bad", mgl64.Vec3{0, 0, -5}, -1, 0)},
			camera, forward, up, right, 60,
		)
		if !errors.Is(err, geom.ErrInvalidArgument) {
			t.Errorf("error %v should wrap geom.ErrInvalidArgument", err)
		}
	})
}

func TestSetFarDistance(t *testing.T) {
	oc := newTestOcclusionCuller(t)

	if err := oc.SetFarDistance(0); !errors.Is(err, geom.ErrInvalidArgument) {
		t.Errorf("far 0: error %v should wrap geom.ErrInvalidArgument", err)
	}
	if err := oc.SetFarDistance(-5); !errors.Is(err, geom.ErrInvalidArgument) {
		t.Errorf("far -5: error %v should wrap geom.ErrInvalidArgument", err)
	}
	if err := oc.SetFarDistance(250); err != nil {
		t.Errorf("far 250: unexpected error %v", err)
	}

	// With a 250-unit far distance, an occluder at 200 still resolves to a
	// depth below 1.0 and occludes what's behind it.
	buildTestBuffer(t, oc, sphere("wall", mgl64.Vec3{0, 0, -200}, 5, 0))
	if !oc.IsOccluded(sphere("behind", mgl64.Vec3{0, 0, -240}, 1, 0), mgl64.Vec3{0, 0, 0}) {
		t.Error("instance behind the occluder should be occluded")
	}
}
