package navmesh

import assert "github.com/arl/assertgo"

// MeshVertex is one deduplicated vertex of a PolyMeshField, in voxel space.
type MeshVertex struct{ X, Y, Z int32 }

// Polygon is one convex cell of a PolyMeshField: Verts are global indices
// into PolyMeshField.Verts, clockwise; Neighbors is parallel to Verts and
// holds the polygon index sharing each edge, or noNeighbor.
type Polygon struct {
	Verts     []int32
	Neighbors []int32
	Region    uint16
}

const noNeighbor = -1

// PolyMeshField is the convex-polygon mesh built from a ContourSet.
type PolyMeshField struct {
	BoundedField
	BorderSize      int32
	MaxVertsPerPoly int32
	Verts           []MeshVertex
	Polys           []Polygon
}

const vertexBucketCount = 1 << 12

// vertexHash mixes x and z with large multiplicative constants into a
// bucket index; y is deliberately excluded since two vertices within 2
// voxels of y are still considered the same vertex (see addVertex).
// Grounded on the teacher's recast/mesh.go computeVertexHash.
func vertexHash(x, z int32) int32 {
	const h1, h3 int64 = 0x8da6b343, 0xcb1ab31f
	n := uint32(h1*int64(x) + h3*int64(z))
	return int32(n & uint32(vertexBucketCount-1))
}

// BuildPolyMeshField triangulates and merges every contour of cset into
// convex polygons, then recovers polygon adjacency, per section 4.4.
func BuildPolyMeshField(ctx *BuildContext, cfg *Config, cset *ContourSet) (*PolyMeshField, error) {
	assert.True(ctx != nil, "ctx should not be nil")
	assert.True(cset != nil, "cset should not be nil")

	ctx.StartTimer(TimerBuildPolyMesh)
	defer ctx.StopTimer(TimerBuildPolyMesh)

	var totalRawVerts int64
	for _, cont := range cset.Contours {
		totalRawVerts += int64(len(cont.RawVerts))
	}
	if totalRawVerts > maxVertsPerContourCap {
		return nil, fail(ctx, "polymesh", ErrCapacityOverrun, "aggregate source vertex count %d exceeds %#x", totalRawVerts, maxVertsPerContourCap)
	}

	pm := &PolyMeshField{
		BoundedField:    cset.BoundedField,
		BorderSize:      cset.BorderSize,
		MaxVertsPerPoly: cfg.MaxVertsPerPoly,
	}

	firstVert := make([]int32, vertexBucketCount)
	for i := range firstVert {
		firstVert[i] = -1
	}
	var nextVert []int32

	addVertex := func(v MeshVertex) int32 {
		bucket := vertexHash(v.X, v.Z)
		for i := firstVert[bucket]; i != -1; i = nextVert[i] {
			ev := pm.Verts[i]
			if ev.X == v.X && ev.Z == v.Z && iAbs(ev.Y-v.Y) <= 2 {
				return i
			}
		}
		idx := int32(len(pm.Verts))
		pm.Verts = append(pm.Verts, v)
		nextVert = append(nextVert, firstVert[bucket])
		firstVert[bucket] = idx
		return idx
	}

	for _, cont := range cset.Contours {
		if len(cont.Verts) < 3 {
			continue
		}
		projected := make([]xzPoint, len(cont.Verts))
		for i, v := range cont.Verts {
			projected[i] = xzPoint{v.X, v.Z}
		}

		tris, ok := TriangulatePolygon(projected)
		if !ok {
			ctx.Errorf("polymesh: region %d failed ear-clip triangulation, contour dropped", cont.Region)
			continue
		}
		if len(tris) == 0 {
			continue
		}

		localPolys := make([][]int32, len(tris))
		for i, t := range tris {
			localPolys[i] = []int32{t[0], t[1], t[2]}
		}
		localPolys = mergeContourPolygons(localPolys, cont.Verts, pm.MaxVertsPerPoly)

		for _, lp := range localPolys {
			verts := make([]int32, len(lp))
			for i, localIdx := range lp {
				cv := cont.Verts[localIdx]
				verts[i] = addVertex(MeshVertex{cv.X, cv.Y, cv.Z})
			}
			neighbors := make([]int32, len(verts))
			for i := range neighbors {
				neighbors[i] = noNeighbor
			}
			pm.Polys = append(pm.Polys, Polygon{Verts: verts, Neighbors: neighbors, Region: cont.Region})
		}
	}

	ctx.StartTimer(TimerBuildPolyMeshAdjacency)
	buildPolyAdjacency(pm)
	ctx.StopTimer(TimerBuildPolyMeshAdjacency)

	return pm, nil
}

// mergeContourPolygons repeatedly merges the pair of polygons sharing the
// longest edge into one, as long as the merge stays within maxVertsPerPoly
// and yields a convex result, per section 4.4's "Triangle-to-polygon
// merging".
func mergeContourPolygons(polys [][]int32, verts []ContourVertex, maxVertsPerPoly int32) [][]int32 {
	for {
		bestLen := int32(-1)
		bestA, bestB := -1, -1
		var bestEa, bestEb int32
		for a := 0; a < len(polys); a++ {
			for b := a + 1; b < len(polys); b++ {
				ea, eb, length, ok := mergeCandidate(polys[a], polys[b], verts, maxVertsPerPoly)
				if ok && length > bestLen {
					bestLen, bestA, bestB, bestEa, bestEb = length, a, b, ea, eb
				}
			}
		}
		if bestA == -1 {
			return polys
		}
		polys[bestA] = mergePolygonsAt(polys[bestA], polys[bestB], bestEa, bestEb)
		polys = append(polys[:bestB], polys[bestB+1:]...)
	}
}

// mergeCandidate reports the shared edge (if any) between pa and pb, its
// squared length, and whether merging across it is legal: within the
// vertex cap and convex at both former shared-edge endpoints. Grounded on
// the teacher's recast/mesh.go getPolyMergeValue.
func mergeCandidate(pa, pb []int32, verts []ContourVertex, maxVertsPerPoly int32) (ea, eb, lengthSq int32, ok bool) {
	na := int32(len(pa))
	nb := int32(len(pb))
	if na+nb-2 > maxVertsPerPoly {
		return 0, 0, 0, false
	}

	ea, eb = -1, -1
	for i := int32(0); i < na && ea == -1; i++ {
		va0, va1 := pa[i], pa[(i+1)%na]
		if va0 > va1 {
			va0, va1 = va1, va0
		}
		for j := int32(0); j < nb; j++ {
			vb0, vb1 := pb[j], pb[(j+1)%nb]
			if vb0 > vb1 {
				vb0, vb1 = vb1, vb0
			}
			if va0 == vb0 && va1 == vb1 {
				ea, eb = i, j
				break
			}
		}
	}
	if ea == -1 || eb == -1 {
		return 0, 0, 0, false
	}

	pt := func(localIdx int32) xzPoint {
		v := verts[localIdx]
		return xzPoint{v.X, v.Z}
	}

	va, vb, vc := pa[(ea+na-1)%na], pa[ea], pb[(eb+2)%nb]
	if !leftXZ(pt(va), pt(vb), pt(vc)) {
		return 0, 0, 0, false
	}
	va, vb, vc = pb[(eb+nb-1)%nb], pb[eb], pa[(ea+2)%na]
	if !leftXZ(pt(va), pt(vb), pt(vc)) {
		return 0, 0, 0, false
	}

	a, b := pt(pa[ea]), pt(pa[(ea+1)%na])
	dx, dz := a.X-b.X, a.Z-b.Z
	return ea, eb, dx*dx + dz*dz, true
}

func mergePolygonsAt(pa, pb []int32, ea, eb int32) []int32 {
	na, nb := int32(len(pa)), int32(len(pb))
	merged := make([]int32, 0, na+nb-2)
	for i := int32(0); i < na-1; i++ {
		merged = append(merged, pa[(ea+1+i)%na])
	}
	for i := int32(0); i < nb-1; i++ {
		merged = append(merged, pb[(eb+1+i)%nb])
	}
	return merged
}
