package navmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quad appends a 4-vertex floor rectangle at height y, spanning
// [x0,x0+w]x[z0,z0+d], as two triangles, to verts/tris. The triangles are
// wound so that triNormal's (v1-v0)x(v2-v0) points up (+y).
func quad(verts []float32, tris []int32, x0, y, z0, w, d float32) ([]float32, []int32) {
	base := int32(len(verts) / 3)
	verts = append(verts,
		x0, y, z0,
		x0+w, y, z0,
		x0+w, y, z0+d,
		x0, y, z0+d,
	)
	tris = append(tris, base, base+2, base+1, base, base+3, base+2)
	return verts, tris
}

func flatSquareConfig() Config {
	cfg := DefaultConfig()
	cfg.CellSize = 1
	cfg.CellHeight = 1
	cfg.MaxTraversableSlopeDeg = 45
	cfg.MaxTraversableStep = 1
	cfg.MinTraversableHeight = 2
	cfg.TraversableAreaBorderSize = 0
	cfg.MinUnconnectedRegionSize = 0
	cfg.MergeRegionSize = 0
	cfg.SmoothingThreshold = 0
	cfg.ContourSampleDistance = 0
	cfg.MaxVertsPerPoly = 6
	return cfg
}

func TestBuildFlatSquare(t *testing.T) {
	var verts []float32
	var tris []int32
	verts, tris = quad(verts, tris, 0, 0, 0, 4, 4)

	b := NewBuilder(flatSquareConfig())
	b.KeepDiagnostics = true

	mesh, runID, stats, diag, err := b.Build(verts, tris)
	require.NoError(t, err)
	require.NotEmpty(t, runID)
	require.NotNil(t, diag)

	require.Len(t, diag.Poly.Polys, 1)
	assert.Len(t, diag.Poly.Polys[0].Verts, 4)

	regions := map[uint16]bool{}
	for _, s := range diag.Open.Spans {
		if s.Region != NullRegion {
			regions[s.Region] = true
		}
	}
	assert.Len(t, regions, 1)

	// ContourSampleDistance == 0 disables detail subdivision: the detail
	// mesh reuses the polygon's own 4 vertices.
	require.Len(t, diag.Detail.Submeshes, 1)
	assert.Equal(t, int32(4), diag.Detail.Submeshes[0].VertCount)

	assert.NotEmpty(t, mesh.Tris)
	assert.Greater(t, stats.Total.Nanoseconds(), int64(-1))
}

func TestBuildStepIsTraversableLedgeIsNot(t *testing.T) {
	var stepVerts []float32
	var stepTris []int32
	stepVerts, stepTris = quad(stepVerts, stepTris, 0, 0, 0, 4, 4)
	stepVerts, stepTris = quad(stepVerts, stepTris, 4, 1, 0, 4, 4)

	cfg := flatSquareConfig()
	cfg.MaxTraversableStep = 1
	b := NewBuilder(cfg)
	b.KeepDiagnostics = true
	_, _, _, diag, err := b.Build(stepVerts, stepTris)
	require.NoError(t, err)

	stepRegions := map[uint16]bool{}
	for _, s := range diag.Open.Spans {
		if s.Region != NullRegion {
			stepRegions[s.Region] = true
		}
	}
	assert.Len(t, stepRegions, 1, "a 1-voxel step at max_step=1 should stay one region")

	cfg.MaxTraversableStep = 0
	cfg.ClipLedges = true
	b2 := NewBuilder(cfg)
	b2.KeepDiagnostics = true
	_, _, _, diag2, err := b2.Build(stepVerts, stepTris)
	require.NoError(t, err)

	ledgeRegions := map[uint16]bool{}
	for _, s := range diag2.Open.Spans {
		if s.Region != NullRegion {
			ledgeRegions[s.Region] = true
		}
	}
	assert.Len(t, ledgeRegions, 2, "a 1-voxel step at max_step=0 should split into two regions")
}

func TestBuildNarrowCorridor(t *testing.T) {
	var verts []float32
	var tris []int32
	verts, tris = quad(verts, tris, 0, 0, 0, 1, 20)

	cfg := flatSquareConfig()
	cfg.TraversableAreaBorderSize = 0
	b := NewBuilder(cfg)
	b.KeepDiagnostics = true

	_, _, _, diag, err := b.Build(verts, tris)
	require.NoError(t, err)

	regions := map[uint16]bool{}
	for _, s := range diag.Open.Spans {
		if s.Region != NullRegion {
			regions[s.Region] = true
		}
	}
	assert.Len(t, regions, 1)
}

func TestBuildEncompassedNullHole(t *testing.T) {
	// A 6x6 floor built from four strips around a 2x2 hole centered at
	// (2,2)-(4,4): north strip, south strip, and the two side strips that
	// fill the remaining band at the hole's height.
	var verts []float32
	var tris []int32
	verts, tris = quad(verts, tris, 0, 0, 0, 6, 2) // south band, z in [0,2]
	verts, tris = quad(verts, tris, 0, 0, 4, 6, 2) // north band, z in [4,6]
	verts, tris = quad(verts, tris, 0, 0, 2, 2, 2) // west band, z in [2,4]
	verts, tris = quad(verts, tris, 4, 0, 2, 2, 2) // east band, z in [2,4]

	cfg := flatSquareConfig()
	cfg.TraversableAreaBorderSize = 0
	b := NewBuilder(cfg)
	b.KeepDiagnostics = true

	_, _, _, diag, err := b.Build(verts, tris)
	require.NoError(t, err)

	regions := map[uint16]bool{}
	for _, s := range diag.Open.Spans {
		if s.Region != NullRegion {
			regions[s.Region] = true
		}
	}
	assert.Len(t, regions, 1)
	assert.Len(t, diag.Contour.Contours, 2,
		"the outer boundary and the hole's boundary are traced as two contours of the one region")
	total := 0
	for _, c := range diag.Contour.Contours {
		total += len(c.Verts)
	}
	assert.GreaterOrEqual(t, total, 8,
		"the outer loop and the hole loop together keep at least eight vertices")
}

func TestMarkWalkableTriangles45DegreeSlope(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTraversableSlopeDeg = 45

	// A triangle tilted about 40deg from horizontal, safely under the
	// configured 45deg limit. The exact boundary isn't tested here: the
	// threshold comparison is strict and computed via a different path
	// (math32.Cos) than the triangle's own normal, so an exact-45deg
	// triangle's pass/fail outcome isn't predictable without running it.
	verts := []float32{
		0, 0, 0,
		0, 0.643, 0.766,
		1, 0, 0,
	}
	tris := []int32{0, 1, 2}
	flags := make([]uint8, 1)

	MarkWalkableTriangles(&cfg, verts, tris, flags)
	assert.NotEqual(t, uint8(0), flags[0]&FlagWalkable)
}

func TestBuildRejectsInvalidTriangleCount(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	_, _, _, _, err := b.Build([]float32{0, 0, 0, 1, 0, 0, 0, 0, 1}, []int32{0, 1})
	assert.Error(t, err)
}
