package cull

// stage is one test of the culling pipeline. The pipeline is an ordered
// list of stages rather than hardcoded branches so new stages (true
// backface culling, occlusion) can slot in without touching the batch
// loop. Order is fixed: distance, frustum, small object.
type stage struct {
	reason Reason
	reject func(InstanceBounds) bool
}

// stages builds the pipeline for one batch from the manager state.
// Disabled stages are omitted entirely, as is the frustum stage when no
// frustum is set (config enables but data absent means the stage no-ops;
// callers build the manager incrementally and rely on that). The frustum
// is copied so the pipeline stays valid if the manager is updated while
// a batch is mid-flight on another goroutine.
func (m *Manager) stages() []stage {
	pipeline := make([]stage, 0, 3)

	if m.Config.EnableDistanceCulling {
		camera := m.cameraPosition
		maxDistance := m.Config.MaxDistance
		pipeline = append(pipeline, stage{
			reason: ReasonDistance,
			reject: func(b InstanceBounds) bool {
				return b.Position.Sub(camera).Len() > maxDistance
			},
		})
	}

	if m.Config.EnableFrustumCulling && m.frustum != nil {
		frustum := *m.frustum
		pipeline = append(pipeline, stage{
			reason: ReasonFrustum,
			reject: func(b InstanceBounds) bool {
				return !frustum.ContainsSphere(b.Position, b.Radius)
			},
		})
	}

	if m.Config.EnableSmallObjectCulling {
		minSize := m.Config.MinScreenSize
		pipeline = append(pipeline, stage{
			reason: ReasonSmallObject,
			reject: func(b InstanceBounds) bool {
				return b.ScreenSize < minSize
			},
		})
	}

	// EnableBackfaceCulling is reserved; no stage yet.
	return pipeline
}

// classify runs the pipeline over one instance and returns the reason of
// the first rejecting stage, or "" if the instance passed every stage.
func classify(pipeline []stage, b InstanceBounds) Reason {
	for _, s := range pipeline {
		if s.reject(b) {
			return s.reason
		}
	}
	return ""
}
