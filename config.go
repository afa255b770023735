package cull

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the enable switches and thresholds for each culling stage.
// It is treated as immutable for the duration of a batch; swap it between
// passes with Manager.SetConfig.
type Config struct {
	EnableFrustumCulling     bool `json:"enable_frustum_culling" yaml:"enable_frustum_culling"`
	EnableDistanceCulling    bool `json:"enable_distance_culling" yaml:"enable_distance_culling"`
	EnableSmallObjectCulling bool `json:"enable_small_object_culling" yaml:"enable_small_object_culling"`
	// EnableBackfaceCulling is accepted and serialized but no backface
	// stage exists yet; the flag is a no-op.
	EnableBackfaceCulling bool `json:"enable_backface_culling" yaml:"enable_backface_culling"`

	// MaxDistance is the distance culling threshold in scene units.
	// Instances strictly farther than this from the camera are culled.
	MaxDistance float64 `json:"max_distance" yaml:"max_distance"`
	// MinScreenSize is the small-object threshold as a viewport fraction.
	// Instances with ScreenSize strictly below it are culled.
	MinScreenSize float64 `json:"min_screen_size" yaml:"min_screen_size"`
	// SmallObjectThreshold is reserved; the current pipeline does not
	// read it. Carried for forward compatibility.
	SmallObjectThreshold float64 `json:"small_object_threshold" yaml:"small_object_threshold"`
}

// DefaultConfig returns a configuration with all implemented stages
// enabled and permissive thresholds.
func DefaultConfig() Config {
	return Config{
		EnableFrustumCulling:     true,
		EnableDistanceCulling:    true,
		EnableSmallObjectCulling: true,
		MaxDistance:              500.0,
		MinScreenSize:            0.01,
		SmallObjectThreshold:     0.1,
	}
}

// LoadConfig reads a YAML config preset from path. Keys absent from the
// file keep their DefaultConfig value, so presets only need to list what
// they change.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
