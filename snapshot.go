package cull

import (
	"encoding/json"
	"fmt"

	"github.com/bretbouchard/blender-gsd-sub013/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// SnapshotVersion identifies the snapshot record layout.
const SnapshotVersion = "1.0"

// FrustumSnapshot is the wire form of a frustum: six planes as
// [nx, ny, nz, d] rows in the geom plane order.
type FrustumSnapshot struct {
	Planes [6][4]float64 `json:"planes"`
}

// Snapshot is a versioned, transport-neutral record of manager state,
// handed off to the consumer that owns the renderable scene (originally a
// procedural-geometry layer). New optional keys may be added in later
// versions; consumers should ignore keys they do not know.
type Snapshot struct {
	Version        string           `json:"version"`
	Config         Config           `json:"config"`
	Frustum        *FrustumSnapshot `json:"frustum"`
	CameraPosition [3]float64       `json:"camera_position"`
}

// Snapshot captures the manager's config, frustum (null when unset) and
// camera position. Restoring the record with ManagerFromSnapshot yields
// an equivalent manager, so the record round-trips field for field.
func (m *Manager) Snapshot() Snapshot {
	s := Snapshot{
		Version:        SnapshotVersion,
		Config:         m.Config,
		CameraPosition: [3]float64(m.cameraPosition),
	}
	if m.frustum != nil {
		fs := &FrustumSnapshot{}
		for i, plane := range m.frustum.Planes {
			fs.Planes[i] = [4]float64{plane.Normal.X(), plane.Normal.Y(), plane.Normal.Z(), plane.D}
		}
		s.Frustum = fs
	}
	return s
}

// ManagerFromSnapshot rebuilds a manager from a snapshot record.
func ManagerFromSnapshot(s Snapshot) (*Manager, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %q (want %q): %w", s.Version, SnapshotVersion, geom.ErrInvalidArgument)
	}

	m := NewManager(s.Config)
	m.cameraPosition = mgl64.Vec3(s.CameraPosition)
	if s.Frustum != nil {
		var f geom.Frustum
		for i, row := range s.Frustum.Planes {
			f.Planes[i] = geom.Plane{
				Normal: mgl64.Vec3{row[0], row[1], row[2]},
				D:      row[3],
			}
		}
		m.frustum = &f
	}
	return m, nil
}

// EncodeSnapshot serializes a snapshot to JSON.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a JSON snapshot record.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
