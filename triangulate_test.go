package navmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cwSquare is wound clockwise under this package's xz convention (x right,
// z up): consecutive triples evaluate to a negative area2.
func cwSquare() []xzPoint {
	return []xzPoint{{0, 0}, {0, 4}, {4, 4}, {4, 0}}
}

func TestTriangulatePolygonConvexSquare(t *testing.T) {
	tris, ok := TriangulatePolygon(cwSquare())
	require.True(t, ok)
	require.Len(t, tris, 2)

	seen := make(map[int32]bool)
	for _, tri := range tris {
		for _, idx := range tri {
			seen[idx] = true
		}
	}
	assert.Len(t, seen, 4)
}

func TestTriangulatePolygonConcaveLShape(t *testing.T) {
	// An L-shape, clockwise: a 4x4 square with its top-right 2x2 quadrant
	// notched out.
	poly := []xzPoint{
		{0, 0}, {0, 4}, {2, 4}, {2, 2}, {4, 2}, {4, 0},
	}
	tris, ok := TriangulatePolygon(poly)
	require.True(t, ok)
	assert.Len(t, tris, len(poly)-2)

	seen := make(map[int32]bool)
	for _, tri := range tris {
		for _, idx := range tri {
			seen[idx] = true
		}
	}
	assert.Len(t, seen, len(poly), "every vertex must appear in some triangle")
}

func TestTriangulatePolygonDegenerateTooFewVertices(t *testing.T) {
	_, ok := TriangulatePolygon([]xzPoint{{0, 0}, {1, 1}})
	assert.False(t, ok)
}

func TestDiagonalieRingRejectsEdgeCrossingDiagonal(t *testing.T) {
	poly := []xzPoint{{0, 0}, {0, 4}, {2, 4}, {2, 2}, {4, 2}, {4, 0}}
	n := int32(len(poly))
	ring := make([]int32, n)
	for i := range ring {
		ring[i] = int32(i)
	}
	// The diagonal from the notch's inner corner (index 3) to the opposite
	// corner (index 0) stays inside the L and crosses no boundary edge.
	assert.True(t, diagonalieRing(3, 0, n, ring, poly))
	// The diagonal from 1 to 4 cuts straight across the notch, crossing
	// the notch edge from index 2 to index 3.
	assert.False(t, diagonalieRing(1, 4, n, ring, poly))
}
