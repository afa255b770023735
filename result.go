package cull

// Reason tags the culling stage that rejected an instance. An instance is
// only ever tagged with the first stage that rejected it.
type Reason string

const (
	ReasonDistance    Reason = "distance"
	ReasonFrustum     Reason = "frustum"
	ReasonSmallObject Reason = "small_object"
)

// Statistics aggregates per-stage counts for one batch. An instance
// culled at stage N increments only that stage's counter.
type Statistics struct {
	Total             int `json:"total"`
	FrustumCulled     int `json:"frustum_culled"`
	DistanceCulled    int `json:"distance_culled"`
	SmallObjectCulled int `json:"small_object_culled"`
}

func (s *Statistics) add(reason Reason) {
	switch reason {
	case ReasonFrustum:
		s.FrustumCulled++
	case ReasonDistance:
		s.DistanceCulled++
	case ReasonSmallObject:
		s.SmallObjectCulled++
	}
}

// Result is the outcome of one CullInstances batch.
// len(Visible) + len(Culled) == Stats.Total always holds.
type Result struct {
	// Visible lists the ids that passed every enabled stage, in input order.
	Visible []string `json:"visible"`
	// Culled maps each rejected id to the first stage that rejected it.
	Culled map[string]Reason `json:"culled"`
	Stats  Statistics        `json:"statistics"`
}
