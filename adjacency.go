package navmesh

// meshEdge is one candidate shared edge between two polygons, keyed by its
// lower-indexed vertex per Eric Lengyel's two-pass edge-table algorithm
// (http://www.terathon.com/code/edges.php), the same one the teacher's
// recast/mesh.go buildMeshAdjacency implements.
type meshEdge struct {
	v0, v1       int32
	poly0, poly1 int32
	edge0, edge1 int32
}

// buildPolyAdjacency recovers, for every polygon edge, the neighboring
// polygon sharing it (if any), per section 4.4's "Adjacency recovery". The
// first pass catalogs every edge where v0 < v1, the directed traversal
// guaranteeing each undirected edge is recorded once; the second pass walks
// edges where v0 > v1 and matches them against the chain rooted at v1.
func buildPolyAdjacency(pm *PolyMeshField) {
	nverts := int32(len(pm.Verts))
	if nverts == 0 {
		return
	}

	firstEdge := make([]int32, nverts)
	for i := range firstEdge {
		firstEdge[i] = -1
	}
	var edges []meshEdge
	var nextEdge []int32

	for pi := range pm.Polys {
		poly := pm.Polys[pi].Verts
		n := int32(len(poly))
		for j := int32(0); j < n; j++ {
			v0, v1 := poly[j], poly[(j+1)%n]
			if v0 < v1 {
				idx := int32(len(edges))
				edges = append(edges, meshEdge{v0: v0, v1: v1, poly0: int32(pi), edge0: j, poly1: int32(pi), edge1: 0})
				nextEdge = append(nextEdge, firstEdge[v0])
				firstEdge[v0] = idx
			}
		}
	}

	for pi := range pm.Polys {
		poly := pm.Polys[pi].Verts
		n := int32(len(poly))
		for j := int32(0); j < n; j++ {
			v0, v1 := poly[j], poly[(j+1)%n]
			if v0 > v1 {
				for e := firstEdge[v1]; e != -1; e = nextEdge[e] {
					if edges[e].v1 == v0 && edges[e].poly0 == edges[e].poly1 {
						edges[e].poly1 = int32(pi)
						edges[e].edge1 = j
						break
					}
				}
			}
		}
	}

	for _, e := range edges {
		if e.poly0 != e.poly1 {
			pm.Polys[e.poly0].Neighbors[e.edge0] = e.poly1
			pm.Polys[e.poly1].Neighbors[e.edge1] = e.poly0
		}
	}
}
