package main

import (
	"fmt"
	"log"

	cull "github.com/bretbouchard/blender-gsd-sub013"
	"github.com/go-gl/mathgl/mgl64"
)

// instance builds an InstanceBounds whose AABB matches its bounding sphere.
func instance(m *cull.Manager, id string, position mgl64.Vec3, radius float64) cull.InstanceBounds {
	r := mgl64.Vec3{radius, radius, radius}
	b := cull.InstanceBounds{
		ID:       id,
		Position: position,
		Radius:   radius,
		Min:      position.Sub(r),
		Max:      position.Add(r),
	}
	b.ScreenSize = m.EstimateScreenSize(b, 60, 1080)
	return b
}

func main() {
	cfg := cull.DefaultConfig()
	cfg.MaxDistance = 200
	cfg.MinScreenSize = 0.005

	manager := cull.NewManager(cfg)
	manager.Workers = 4

	// Camera at the origin looking down -Z.
	err := manager.SetFrustumFromCamera(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 0, -1},
		mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{1, 0, 0},
		60, 16.0/9.0, 0.1, 500,
	)
	if err != nil {
		log.Fatal(err)
	}

	instances := []cull.InstanceBounds{
		instance(manager, "crate", mgl64.Vec3{0, 0, -10}, 1),
		instance(manager, "tower", mgl64.Vec3{5, 10, -60}, 8),
		instance(manager, "behind-camera", mgl64.Vec3{0, 0, 20}, 1),
		instance(manager, "too-far", mgl64.Vec3{0, 0, -400}, 2),
		instance(manager, "pebble", mgl64.Vec3{2, 0, -150}, 0.05),
	}

	result, err := manager.CullInstances(instances)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("batch of %d: %d visible, %d culled\n",
		result.Stats.Total, len(result.Visible), len(result.Culled))
	for _, id := range result.Visible {
		fmt.Printf("  visible: %s\n", id)
	}
	for id, reason := range result.Culled {
		fmt.Printf("  culled:  %s (%s)\n", id, reason)
	}

	// Optional occlusion prepass over the survivors: a large wall hides
	// everything directly behind it.
	occlusion, err := cull.NewOcclusionCuller(cull.DefaultOcclusionResolution)
	if err != nil {
		log.Fatal(err)
	}
	wall := instance(manager, "wall", mgl64.Vec3{0, 0, -5}, 4)
	err = occlusion.BuildDepthBuffer(
		[]cull.InstanceBounds{wall},
		manager.CameraPosition(),
		mgl64.Vec3{0, 0, -1},
		mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{1, 0, 0},
		60,
	)
	if err != nil {
		log.Fatal(err)
	}
	for _, b := range instances {
		if _, culled := result.Culled[b.ID]; culled {
			continue
		}
		if occlusion.IsOccluded(b, manager.CameraPosition()) {
			fmt.Printf("  occluded: %s\n", b.ID)
		}
	}

	// Hand-off record for the downstream geometry consumer.
	snapshot, err := cull.EncodeSnapshot(manager.Snapshot())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("snapshot: %s\n", snapshot)
}
