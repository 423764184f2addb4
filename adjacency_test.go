package navmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// twoTrianglesSharingAnEdge builds a PolyMeshField with two triangles
// (0,1,2) and (1,3,2) sharing the edge 1-2, the minimal case that exercises
// both the v0<v1 and v0>v1 passes of buildPolyAdjacency.
func twoTrianglesSharingAnEdge() *PolyMeshField {
	pm := &PolyMeshField{
		Verts: []MeshVertex{
			{X: 0, Y: 0, Z: 0},
			{X: 4, Y: 0, Z: 0},
			{X: 4, Y: 0, Z: 4},
			{X: 0, Y: 0, Z: 4},
		},
		Polys: []Polygon{
			{Verts: []int32{0, 1, 2}, Neighbors: []int32{noNeighbor, noNeighbor, noNeighbor}},
			{Verts: []int32{1, 3, 2}, Neighbors: []int32{noNeighbor, noNeighbor, noNeighbor}},
		},
	}
	return pm
}

func TestBuildPolyAdjacencyMarksSharedEdge(t *testing.T) {
	pm := twoTrianglesSharingAnEdge()
	buildPolyAdjacency(pm)

	// Triangle 0's edge 1 runs from vert 1 to vert 2, shared with triangle
	// 1's edge 2 (vert 2 to vert 1, the opposite direction).
	assert.Equal(t, int32(1), pm.Polys[0].Neighbors[1])
	assert.Equal(t, int32(0), pm.Polys[1].Neighbors[2])
}

func TestBuildPolyAdjacencyLeavesBoundaryEdgesUnset(t *testing.T) {
	pm := twoTrianglesSharingAnEdge()
	buildPolyAdjacency(pm)

	assert.Equal(t, int32(noNeighbor), pm.Polys[0].Neighbors[0])
	assert.Equal(t, int32(noNeighbor), pm.Polys[0].Neighbors[2])
	assert.Equal(t, int32(noNeighbor), pm.Polys[1].Neighbors[0])
	assert.Equal(t, int32(noNeighbor), pm.Polys[1].Neighbors[1])
}

func TestBuildPolyAdjacencyEmptyMeshIsNoop(t *testing.T) {
	pm := &PolyMeshField{}
	assert.NotPanics(t, func() { buildPolyAdjacency(pm) })
}
