package navmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircumCircleOfRightTriangle(t *testing.T) {
	// Right triangle with legs on the axes: circumcenter sits at the
	// midpoint of the hypotenuse, radius half the hypotenuse length.
	p1 := dvert{X: 0, Y: 0, Z: 0}
	p2 := dvert{X: 4, Y: 0, Z: 0}
	p3 := dvert{X: 0, Y: 0, Z: 4}

	center, radius, ok := circumCircle(p1, p2, p3)
	require.True(t, ok)
	assert.InDelta(t, 2, center.X, 1e-3)
	assert.InDelta(t, 2, center.Z, 1e-3)
	assert.InDelta(t, 2*math32Sqrt2, radius, 1e-2)
}

var math32Sqrt2 = float32(1.4142135)

func TestCircumCircleCollinearPointsRejected(t *testing.T) {
	p1 := dvert{X: 0, Y: 0, Z: 0}
	p2 := dvert{X: 1, Y: 0, Z: 0}
	p3 := dvert{X: 2, Y: 0, Z: 0}

	_, _, ok := circumCircle(p1, p2, p3)
	assert.False(t, ok)
}

func TestDistancePtSeg2dOnSegment(t *testing.T) {
	p := dvert{X: 1, Y: 0, Z: 0}
	a := dvert{X: 0, Y: 0, Z: 0}
	b := dvert{X: 2, Y: 0, Z: 0}
	assert.InDelta(t, 0, distancePtSeg2d(p, a, b), 1e-6)
}

func TestDistancePtSeg2dClampsToEndpoint(t *testing.T) {
	p := dvert{X: -1, Y: 0, Z: 0}
	a := dvert{X: 0, Y: 0, Z: 0}
	b := dvert{X: 2, Y: 0, Z: 0}
	assert.InDelta(t, 1, distancePtSeg2d(p, a, b), 1e-6)
}

func TestTriangulateHullSquare(t *testing.T) {
	verts := []dvert{
		{X: 0, Y: 0, Z: 0},
		{X: 4, Y: 0, Z: 0},
		{X: 4, Y: 0, Z: 4},
		{X: 0, Y: 0, Z: 4},
	}
	hull := []int32{0, 1, 2, 3}

	tris := triangulateHull(verts, hull)
	require.Len(t, tris, 2)

	seen := make(map[int32]bool)
	for _, tri := range tris {
		for _, idx := range tri {
			seen[idx] = true
		}
	}
	assert.Len(t, seen, 4)
}

func TestOverlapSegSeg2dCrossingSegments(t *testing.T) {
	a := dvert{X: 0, Y: 0, Z: 0}
	b := dvert{X: 4, Y: 0, Z: 4}
	c := dvert{X: 0, Y: 0, Z: 4}
	d := dvert{X: 4, Y: 0, Z: 0}
	assert.True(t, overlapSegSeg2d(a, b, c, d))
}

func TestOverlapSegSeg2dParallelSegmentsDoNotCross(t *testing.T) {
	a := dvert{X: 0, Y: 0, Z: 0}
	b := dvert{X: 4, Y: 0, Z: 0}
	c := dvert{X: 0, Y: 0, Z: 1}
	d := dvert{X: 4, Y: 0, Z: 1}
	assert.False(t, overlapSegSeg2d(a, b, c, d))
}
