package navmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArea2WindingSign(t *testing.T) {
	ccw := xzPoint{0, 0}
	a := xzPoint{4, 0}
	b := xzPoint{0, 4}
	assert.Greater(t, area2(ccw, a, b), int32(0), "a counter-clockwise triple (x right, z up) has positive area2")
	assert.Less(t, area2(ccw, b, a), int32(0))
	assert.Equal(t, int32(0), area2(ccw, a, xzPoint{8, 0}), "collinear points have zero area2")
}

func TestIntersectXZCrossingSegments(t *testing.T) {
	a, b := xzPoint{0, 0}, xzPoint{4, 4}
	c, d := xzPoint{0, 4}, xzPoint{4, 0}
	assert.True(t, intersectXZ(a, b, c, d))
}

func TestIntersectXZSharedEndpointCountsAsIntersection(t *testing.T) {
	// Segments meeting only at a shared endpoint are not a "proper"
	// crossing, but intersectXZ still reports true for any shared point;
	// removeIntersectingNullSegments is responsible for excluding these by
	// comparing endpoints before calling it.
	a, b := xzPoint{0, 0}, xzPoint{4, 0}
	c, d := xzPoint{4, 0}, xzPoint{4, 4}
	assert.True(t, intersectXZ(a, b, c, d))
}

func TestIntersectXZParallelNonTouchingSegments(t *testing.T) {
	a, b := xzPoint{0, 0}, xzPoint{4, 0}
	c, d := xzPoint{0, 1}, xzPoint{4, 1}
	assert.False(t, intersectXZ(a, b, c, d))
}

func TestDistPointToSegSqClampsToEndpoint(t *testing.T) {
	p := xzPoint{-2, 0}
	a := xzPoint{0, 0}
	b := xzPoint{4, 0}
	assert.InDelta(t, 4, distPointToSegSq(p, a, b), 1e-6)
}

func TestDistPointToSegSqPerpendicular(t *testing.T) {
	p := xzPoint{2, 3}
	a := xzPoint{0, 0}
	b := xzPoint{4, 0}
	assert.InDelta(t, 9, distPointToSegSq(p, a, b), 1e-6)
}

// squareContour builds a raw contour walking a 4x4 null-region square
// counter-clockwise (x right, z up): four corners, one
// per side, every edge bordering NullRegion.
func squareContour() []ContourVertex {
	return []ContourVertex{
		{X: 0, Y: 0, Z: 0, Region: NullRegion},
		{X: 4, Y: 0, Z: 0, Region: NullRegion},
		{X: 4, Y: 0, Z: 4, Region: NullRegion},
		{X: 0, Y: 0, Z: 4, Region: NullRegion},
	}
}

func TestSimplifyContourNoConnectionsKeepsExtremePoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EdgeMaxDeviation = 100
	cfg.MaxEdgeLength = 0

	simplified := simplifyContour(squareContour(), &cfg, 1)
	require.GreaterOrEqual(t, len(simplified), 2)

	// No interior vertex should appear since a very generous error bound
	// means the square's 4 corners collapse to the 2 extreme ones plus
	// whatever corners fall outside the chord's tolerance.
	for _, v := range simplified {
		found := false
		for _, raw := range squareContour() {
			if raw.X == v.X && raw.Z == v.Z {
				found = true
			}
		}
		assert.True(t, found, "simplified vertex must come from the raw contour")
	}
}

func TestSimplifyContourTightErrorBoundKeepsAllCorners(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EdgeMaxDeviation = 0
	cfg.MaxEdgeLength = 0

	simplified := simplifyContour(squareContour(), &cfg, 1)
	assert.Len(t, simplified, 4, "zero error tolerance on a null-region boundary must retain every corner")
}

func TestRemoveVerticalSegmentsCollapsesDuplicateXZ(t *testing.T) {
	verts := []ContourVertex{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 4, Z: 0}, // same xz as previous, different height
		{X: 4, Y: 0, Z: 0},
		{X: 4, Y: 0, Z: 4},
	}
	out := removeVerticalSegments(verts)
	assert.Len(t, out, 3)
}

func TestRecoverContourInsertsFarthestPoint(t *testing.T) {
	raw := []ContourVertex{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 4},
		{X: 4, Y: 0, Z: 0},
	}
	verts := []ContourVertex{raw[0], raw[2]}
	out := recoverContour(raw, verts)
	require.Len(t, out, 3)
	assert.Equal(t, raw[1], out[2])
}
