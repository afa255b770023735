// Package cull implements a 3D visibility culling engine: given a camera
// pose and a batch of object bounding proxies, it decides which objects
// are potentially visible and which can be skipped before instancing or
// rendering work.
//
// The pipeline applies distance, frustum and small-object tests in that
// fixed order, stopping at the first rejection per instance. An optional
// OcclusionCuller provides an approximate hierarchical-Z prepass over the
// survivors. All computation is synchronous and CPU-bound; batches can be
// sharded across workers because every instance's decision is independent
// given fixed manager state.
package cull

import (
	"fmt"
	"math"

	"github.com/bretbouchard/blender-gsd-sub013/geom"
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

// Manager orchestrates the culling pipeline. It holds the current config,
// frustum and camera position; CullInstances is a pure function of that
// state and the input batch.
//
// A Manager is not safe for concurrent mutation. Treat its state as
// read-only for the duration of a batch; updating the frustum or config
// between batches is the intended use.
type Manager struct {
	Config Config
	// Workers shards CullInstances batches across goroutines.
	// Values <= 1 run sequentially.
	Workers int

	frustum        *geom.Frustum
	cameraPosition mgl64.Vec3
}

// NewManager returns a manager with the given config, no frustum and the
// camera at the origin.
func NewManager(cfg Config) *Manager {
	return &Manager{Config: cfg, Workers: DEFAULT_WORKERS}
}

// SetConfig replaces the stage configuration for subsequent batches.
func (m *Manager) SetConfig(cfg Config) {
	m.Config = cfg
}

// SetFrustum replaces the current frustum. A nil frustum disables the
// frustum stage regardless of the config flag.
func (m *Manager) SetFrustum(f *geom.Frustum) {
	m.frustum = f
}

// Frustum returns the current frustum, or nil if none is set.
func (m *Manager) Frustum() *geom.Frustum {
	return m.frustum
}

// SetCameraPosition updates the camera position used by the distance
// stage and by EstimateScreenSize without rebuilding the frustum.
func (m *Manager) SetCameraPosition(p mgl64.Vec3) {
	m.cameraPosition = p
}

// CameraPosition returns the current camera position.
func (m *Manager) CameraPosition() mgl64.Vec3 {
	return m.cameraPosition
}

// SetFrustumFromCamera rebuilds the frustum from a camera pose and
// updates the camera position. On error the previous frustum and camera
// position are kept.
func (m *Manager) SetFrustumFromCamera(position, forward, up, right mgl64.Vec3, fovDeg, aspect, near, far float64) error {
	f, err := geom.FrustumFromCamera(position, forward, up, right, fovDeg, aspect, near, far)
	if err != nil {
		return err
	}
	m.frustum = &f
	m.cameraPosition = position
	return nil
}

// CullInstances runs every enabled stage over the batch, in input order,
// stopping at the first rejecting stage per instance. The whole call
// fails on the first malformed instance; no partial result is returned.
//
// With Workers > 1 the batch is sharded into contiguous chunks; results
// are merged back in input order, so the output is identical to a
// sequential run.
func (m *Manager) CullInstances(instances []InstanceBounds) (Result, error) {
	for i := range instances {
		if err := instances[i].Validate(); err != nil {
			return Result{}, fmt.Errorf("cull batch: %w", err)
		}
	}

	pipeline := m.stages()
	reasons := make([]Reason, len(instances))

	workers := max(DEFAULT_WORKERS, m.Workers)
	if workers > 1 && len(instances) > 1 {
		taskRange(workers, len(instances), func(start, end int) {
			for i := start; i < end; i++ {
				reasons[i] = classify(pipeline, instances[i])
			}
		})
	} else {
		for i := range instances {
			reasons[i] = classify(pipeline, instances[i])
		}
	}

	result := Result{
		Visible: make([]string, 0, len(instances)),
		Culled:  make(map[string]Reason),
		Stats:   Statistics{Total: len(instances)},
	}
	for i, b := range instances {
		if reasons[i] == "" {
			result.Visible = append(result.Visible, b.ID)
			continue
		}
		result.Culled[b.ID] = reasons[i]
		result.Stats.add(reasons[i])
	}
	return result, nil
}

// EstimateScreenSize returns the fraction of the viewport height the
// instance's bounding sphere covers, from the current camera position:
// the angular diameter 2*atan(radius/distance) in degrees over fovDeg.
// An instance at the camera position fills the screen (1.0).
//
// screenHeightPx cancels out of the fractional estimate; the parameter is
// kept so callers working in pixels pass their viewport without
// converting. The result is in the same fractional units as
// Config.MinScreenSize and scales inversely with distance, directly with
// radius.
func (m *Manager) EstimateScreenSize(b InstanceBounds, fovDeg, screenHeightPx float64) float64 {
	_ = screenHeightPx

	distance := m.distanceTo(b.Position)
	if distance == 0 {
		return 1.0
	}
	angularDeg := mgl64.RadToDeg(2 * math.Atan(b.Radius/distance))
	return angularDeg / fovDeg
}

// distanceTo is the Euclidean distance from the camera to position.
func (m *Manager) distanceTo(position mgl64.Vec3) float64 {
	return position.Sub(m.cameraPosition).Len()
}
