package navmesh

import (
	"fmt"
	"io/ioutil"

	"github.com/fatih/structs"
	"github.com/arl/math32"
	yaml "gopkg.in/yaml.v2"
)

// Config holds every tunable of a build. Builder.Build calls Validate on
// its Config, which clamps out-of-range fields in place; nothing else in
// the pipeline modifies it. Field-for-field, this is the configuration table of
// section 6 of the specification; units are annotated per field.
type Config struct {
	// CellSize is the xz sampling resolution, in world units.
	CellSize float32 `yaml:"cell_size"`
	// CellHeight is the y sampling resolution, in world units.
	CellHeight float32 `yaml:"cell_height"`

	// MinTraversableHeight is the minimum vertical clearance, in voxels,
	// for a floor to be considered walkable. Must be >= 1.
	MinTraversableHeight int32 `yaml:"min_traversable_height"`
	// MaxTraversableStep is the maximum legal step, in voxels, between the
	// floors of two neighbor spans. Must be >= 0.
	MaxTraversableStep int32 `yaml:"max_traversable_step"`
	// MaxTraversableSlopeDeg is the maximum walkable floor slope, in
	// degrees, clamped to [0, 85].
	MaxTraversableSlopeDeg float32 `yaml:"max_traversable_slope"`
	// ClipLedges enables the ledge-span filter.
	ClipLedges bool `yaml:"clip_ledges"`

	// TraversableAreaBorderSize is the minimum distance, in voxels, any
	// walkable span must keep from an obstruction. Must be >= 0.
	TraversableAreaBorderSize int32 `yaml:"traversable_area_border_size"`
	// SmoothingThreshold, 0..4, is the border distance at or below which
	// spans are left unchanged by the single distance-field smoothing pass.
	// 0 disables smoothing.
	SmoothingThreshold int32 `yaml:"smoothing_threshold"`
	// UseConservativeExpansion enables the narrow-neck prevention rule in
	// watershed region growth.
	UseConservativeExpansion bool `yaml:"use_conservative_expansion"`
	// MinUnconnectedRegionSize culls island regions with a span count
	// below this threshold.
	MinUnconnectedRegionSize int32 `yaml:"min_unconnected_region_size"`
	// MergeRegionSize merges regions at or below this span count into a
	// mergeable neighbor.
	MergeRegionSize int32 `yaml:"merge_region_size"`

	// MaxEdgeLength subdivides null-region contour edges longer than this,
	// in voxels. 0 disables subdivision.
	MaxEdgeLength int32 `yaml:"max_edge_length"`
	// EdgeMaxDeviation is the max perpendicular deviation, in world units,
	// tolerated when fitting a null-region edge during simplification.
	EdgeMaxDeviation float32 `yaml:"edge_max_deviation"`
	// MaxVertsPerPoly caps the vertex count of a convex polygon. Must be
	// >= 3.
	MaxVertsPerPoly int32 `yaml:"max_verts_per_poly"`

	// ContourSampleDistance is the detail-mesh sampling step, in world
	// units. 0 disables detail sampling (the polygon's own vertices become
	// the detail vertices).
	ContourSampleDistance float32 `yaml:"contour_sample_distance"`
	// ContourMaxDeviation bounds the detail surface's deviation from the
	// open heightfield, in world units.
	ContourMaxDeviation float32 `yaml:"contour_max_deviation"`
}

// DefaultConfig returns reasonable tuning values for a human-scale agent,
// matching the constants a sample build typically starts from.
func DefaultConfig() Config {
	return Config{
		CellSize:                  0.3,
		CellHeight:                0.2,
		MinTraversableHeight:      10, // 2.0 world units / 0.2 cell height
		MaxTraversableStep:        4,  // 0.9 world units / 0.2, rounded down
		MaxTraversableSlopeDeg:    45,
		ClipLedges:                true,
		TraversableAreaBorderSize: 2, // 0.6 world units / 0.3 cell size
		SmoothingThreshold:        4,
		UseConservativeExpansion:  true,
		MinUnconnectedRegionSize:  8,
		MergeRegionSize:           20,
		MaxEdgeLength:             40, // 12 world units / 0.3
		EdgeMaxDeviation:          1.3,
		MaxVertsPerPoly:           6,
		ContourSampleDistance:     6,
		ContourMaxDeviation:       1,
	}
}

// Validate clamps every field to its documented valid range and rejects the
// configuration outright only when a value cannot be made sensible by
// clamping (per section 6's "invalid geometry... yields a rejected build",
// extended here to configuration values with no meaningful clamp, such as a
// non-positive cell size).
func (c *Config) Validate() error {
	if c.CellSize <= 0 || c.CellHeight <= 0 {
		return fmt.Errorf("%w: cell_size and cell_height must be positive", ErrConfigInvalid)
	}
	if c.MaxVertsPerPoly < 3 {
		return fmt.Errorf("%w: max_verts_per_poly must be >= 3", ErrConfigInvalid)
	}
	if c.MinTraversableHeight < 1 {
		c.MinTraversableHeight = 1
	}
	if c.MaxTraversableStep < 0 {
		c.MaxTraversableStep = 0
	}
	if c.MaxTraversableSlopeDeg < 0 {
		c.MaxTraversableSlopeDeg = 0
	} else if c.MaxTraversableSlopeDeg > 85 {
		c.MaxTraversableSlopeDeg = 85
	}
	if c.TraversableAreaBorderSize < 0 {
		c.TraversableAreaBorderSize = 0
	}
	if c.SmoothingThreshold < 0 {
		c.SmoothingThreshold = 0
	} else if c.SmoothingThreshold > 4 {
		c.SmoothingThreshold = 4
	}
	if c.MinUnconnectedRegionSize < 0 {
		c.MinUnconnectedRegionSize = 0
	}
	if c.MergeRegionSize < 0 {
		c.MergeRegionSize = 0
	}
	if c.MaxEdgeLength < 0 {
		c.MaxEdgeLength = 0
	}
	if c.ContourSampleDistance < 0 {
		c.ContourSampleDistance = 0
	}
	return nil
}

// walkableThreshold returns cos(MaxTraversableSlopeDeg), the per-triangle
// slope test threshold used by MarkWalkableTriangles.
func (c *Config) walkableThreshold() float32 {
	return math32.Cos(c.MaxTraversableSlopeDeg / 180 * math32.Pi)
}

// Fields returns the configuration as a string-keyed map, for diagnostic
// dumps and CLI summaries.
func (c Config) Fields() map[string]interface{} {
	return structs.Map(&c)
}

// LoadConfig reads a YAML-encoded Config from path.
func LoadConfig(path string) (Config, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteConfig writes cfg as YAML to path.
func WriteConfig(path string, cfg Config) error {
	buf, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, buf, 0644)
}
