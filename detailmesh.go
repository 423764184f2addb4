package navmesh

import (
	assert "github.com/arl/assertgo"
	"github.com/arl/math32"
)

// DetailVertex is one vertex of a DetailMesh, in world space.
type DetailVertex struct{ X, Y, Z float32 }

// DetailTriangle is one triangle of a DetailMesh: A, B, C index DetailMesh.Verts,
// Region is the polygon region that generated it.
type DetailTriangle struct {
	A, B, C int32
	Region  uint16
}

// DetailSubmesh records the vertex and triangle range, within DetailMesh's
// flat arrays, contributed by one source polygon.
type DetailSubmesh struct {
	VertBase, VertCount int32
	TriBase, TriCount   int32
}

// DetailMesh is the per-polygon height-sampled surface built over a
// PolyMeshField, per section 4.5.
type DetailMesh struct {
	Verts     []DetailVertex
	Tris      []DetailTriangle
	Submeshes []DetailSubmesh
}

const (
	detailMaxVerts        = 127
	detailMaxTris         = 255
	detailMaxVertsPerEdge = 32
)

func voxelToWorld(v MeshVertex, chf *OpenHeightfield) dvert {
	return dvert{
		X: chf.BMin[0] + float32(v.X)*chf.CellSize,
		Y: chf.BMin[1] + float32(v.Y)*chf.CellHeight + chf.CellHeight,
		Z: chf.BMin[2] + float32(v.Z)*chf.CellSize,
	}
}

// BuildDetailMesh samples floor height across every polygon of pm and
// triangulates the result into a surface mesh, per section 4.5.
func BuildDetailMesh(ctx *BuildContext, cfg *Config, chf *OpenHeightfield, pm *PolyMeshField) (*DetailMesh, error) {
	assert.True(ctx != nil, "ctx should not be nil")
	assert.True(chf != nil, "chf should not be nil")
	assert.True(pm != nil, "pm should not be nil")

	ctx.StartTimer(TimerBuildDetailMesh)
	defer ctx.StopTimer(TimerBuildDetailMesh)

	dm := &DetailMesh{}
	if len(pm.Verts) == 0 || len(pm.Polys) == 0 {
		return dm, nil
	}

	sampleDist := cfg.ContourSampleDistance
	sampleMaxError := cfg.ContourMaxDeviation
	heightSearchRadius := iMax(1, int32(math32.Ceil(cfg.EdgeMaxDeviation/chf.CellSize)))

	for pi := range pm.Polys {
		poly := pm.Polys[pi]
		voxelVerts := make([]MeshVertex, len(poly.Verts))
		for i, vi := range poly.Verts {
			voxelVerts[i] = pm.Verts[vi]
		}

		xmin, xmax, ymin, ymax := polyBounds(voxelVerts, chf)
		hp := &heightPatch{xmin: xmin, ymin: ymin, width: xmax - xmin, height: ymax - ymin}
		if hp.width <= 0 || hp.height <= 0 {
			ctx.Warningf("detailmesh: polygon %d has a degenerate height-patch window, skipped", pi)
			continue
		}
		hp.data = make([]uint16, hp.width*hp.height)

		ctx.StartTimer(TimerBuildDetailMeshSample)
		buildHeightPatch(chf, voxelVerts, poly.Region, hp)

		in := make([]dvert, len(voxelVerts))
		for i, v := range voxelVerts {
			in[i] = voxelToWorld(v, chf)
		}

		verts, tris := buildPolyDetail(ctx, in, sampleDist, sampleMaxError, heightSearchRadius, chf, hp)
		ctx.StopTimer(TimerBuildDetailMeshSample)

		if len(verts) < 3 || len(tris) == 0 {
			ctx.Warningf("detailmesh: polygon %d produced fewer than 3 detail vertices, skipped", pi)
			continue
		}

		base := int32(len(dm.Verts))
		for _, v := range verts {
			dm.Verts = append(dm.Verts, DetailVertex{v.X, v.Y, v.Z})
		}
		triBase := int32(len(dm.Tris))
		for _, t := range tris {
			dm.Tris = append(dm.Tris, DetailTriangle{A: base + t[0], B: base + t[1], C: base + t[2], Region: poly.Region})
		}
		dm.Submeshes = append(dm.Submeshes, DetailSubmesh{
			VertBase: base, VertCount: int32(len(verts)),
			TriBase: triBase, TriCount: int32(len(tris)),
		})
	}

	return dm, nil
}

// buildPolyDetail builds one polygon's detail surface: it tessellates the
// outline into edge samples within sampleMaxError, triangulates the
// resulting hull, and — unless the polygon is too small a sliver to
// bother — inserts interior grid samples one at a time, by decreasing
// deviation from the current mesh, until every remaining sample is within
// sampleMaxError or the vertex budget is exhausted. Grounded on the
// teacher's buildPolyDetail.
func buildPolyDetail(ctx *BuildContext, in []dvert, sampleDist, sampleMaxError float32, heightSearchRadius int32, chf *OpenHeightfield, hp *heightPatch) ([]dvert, [][3]int32) {
	nin := int32(len(in))
	verts := append([]dvert{}, in...)

	minExtent := polyMinExtent(verts)

	var hull []int32
	if sampleDist > 0 {
		hull = tessellateEdges(&verts, in, sampleDist, sampleMaxError, heightSearchRadius, chf, hp)
	} else {
		hull = make([]int32, nin)
		for i := range hull {
			hull[i] = int32(i)
		}
	}

	if minExtent < sampleDist*2 {
		return verts, triangulateHull(verts, hull)
	}

	tris := triangulateHull(verts, hull)
	if len(tris) == 0 {
		ctx.Warningf("detailmesh: could not triangulate polygon outline (%d verts)", len(verts))
		return verts, tris
	}

	if sampleDist > 0 {
		verts, tris = insertInteriorSamples(in, verts, hull, tris, sampleDist, sampleMaxError, heightSearchRadius, chf, hp)
	}

	if len(tris) > detailMaxTris {
		ctx.Errorf("detailmesh: shrinking triangle count from %d to max %d", len(tris), detailMaxTris)
		tris = tris[:detailMaxTris]
	}
	return verts, tris
}

// tessellateEdges walks the polygon's boundary edges in a canonical
// (lexicographically ordered) direction so two polygons sharing an edge
// tessellate it identically, subdividing each into edge samples and
// keeping only those whose removal would exceed sampleMaxError. New
// samples are appended to verts; the returned hull lists, in winding
// order, every original and newly added vertex on the boundary.
func tessellateEdges(verts *[]dvert, in []dvert, sampleDist, sampleMaxError float32, heightSearchRadius int32, chf *OpenHeightfield, hp *heightPatch) []int32 {
	nin := int32(len(in))
	var hull []int32

	j := nin - 1
	for i := int32(0); i < nin; i++ {
		vj, vi := in[j], in[i]
		swapped := false
		if math32.Abs(vj.X-vi.X) < 1e-6 {
			if vj.Z > vi.Z {
				vj, vi = vi, vj
				swapped = true
			}
		} else if vj.X > vi.X {
			vj, vi = vi, vj
			swapped = true
		}

		dx, dy, dz := vi.X-vj.X, vi.Y-vj.Y, vi.Z-vj.Z
		d := math32.Sqrt(dx*dx + dz*dz)
		nn := 1 + int32(math32.Floor(d/sampleDist))
		if nn >= detailMaxVertsPerEdge {
			nn = detailMaxVertsPerEdge - 1
		}
		if int32(len(*verts))+nn >= detailMaxVerts {
			nn = detailMaxVerts - 1 - int32(len(*verts))
		}
		if nn < 1 {
			nn = 1
		}

		edge := make([]dvert, nn+1)
		for k := int32(0); k <= nn; k++ {
			u := float32(k) / float32(nn)
			pos := dvert{X: vj.X + dx*u, Y: vj.Y + dy*u, Z: vj.Z + dz*u}
			pos.Y = sampleHeight(pos.X, pos.Y, pos.Z, chf.CellSize, chf.CellHeight, heightSearchRadius, hp)
			edge[k] = pos
		}

		idx := []int32{0, nn}
		for k := 0; k < len(idx)-1; {
			a, b := idx[k], idx[k+1]
			va, vb := edge[a], edge[b]
			maxd := float32(0)
			maxi := int32(-1)
			for m := a + 1; m < b; m++ {
				dev := distancePtSeg3d(edge[m], va, vb)
				if dev > maxd {
					maxd, maxi = dev, m
				}
			}
			if maxi != -1 && maxd > sampleMaxError*sampleMaxError {
				idx = append(idx, 0)
				copy(idx[k+2:], idx[k+1:])
				idx[k+1] = maxi
			} else {
				k++
			}
		}

		hull = append(hull, j)
		if swapped {
			for k := len(idx) - 2; k > 0; k-- {
				*verts = append(*verts, edge[idx[k]])
				hull = append(hull, int32(len(*verts))-1)
			}
		} else {
			for k := 1; k < len(idx)-1; k++ {
				*verts = append(*verts, edge[idx[k]])
				hull = append(hull, int32(len(*verts))-1)
			}
		}
		j = i
	}
	return hull
}

// insertInteriorSamples seeds a sampleDist-spaced grid of candidate
// interior points, then repeatedly inserts whichever untried candidate
// deviates most from the current triangulation (full Delaunay rebuild
// each insertion — this is O(n^2) but n is capped at detailMaxVerts),
// stopping once the worst remaining deviation is within sampleMaxError or
// the vertex budget runs out.
func insertInteriorSamples(in []dvert, verts []dvert, hull []int32, tris [][3]int32, sampleDist, sampleMaxError float32, heightSearchRadius int32, chf *OpenHeightfield, hp *heightPatch) ([]dvert, [][3]int32) {
	bmin, bmax := in[0], in[0]
	for _, v := range in[1:] {
		if v.X < bmin.X {
			bmin.X = v.X
		}
		if v.Z < bmin.Z {
			bmin.Z = v.Z
		}
		if v.X > bmax.X {
			bmax.X = v.X
		}
		if v.Z > bmax.Z {
			bmax.Z = v.Z
		}
	}

	type sample struct {
		pt    dvert
		added bool
	}
	var samples []sample

	x0 := int32(math32.Floor(bmin.X / sampleDist))
	x1 := int32(math32.Ceil(bmax.X / sampleDist))
	z0 := int32(math32.Floor(bmin.Z / sampleDist))
	z1 := int32(math32.Ceil(bmax.Z / sampleDist))
	for z := z0; z < z1; z++ {
		for x := x0; x < x1; x++ {
			pt := dvert{X: float32(x) * sampleDist, Y: (bmax.Y + bmin.Y) * 0.5, Z: float32(z) * sampleDist}
			if distToPoly(in, pt) > -sampleDist/2 {
				continue
			}
			pt.Y = sampleHeight(pt.X, pt.Y, pt.Z, chf.CellSize, chf.CellHeight, heightSearchRadius, hp)
			samples = append(samples, sample{pt: pt})
		}
	}

	for iter := 0; iter < len(samples); iter++ {
		if len(verts) >= detailMaxVerts {
			break
		}

		bestd := float32(0)
		besti := -1
		var bestpt dvert
		for i := range samples {
			if samples[i].added {
				continue
			}
			pt := samples[i].pt
			pt.X += jitterX(int64(i)) * chf.CellSize * 0.1
			pt.Z += jitterY(int64(i)) * chf.CellSize * 0.1
			d := distToTriMesh(pt, verts, tris)
			if d < 0 {
				continue
			}
			if d > bestd {
				bestd, besti, bestpt = d, i, pt
			}
		}

		if besti == -1 || bestd <= sampleMaxError {
			break
		}
		samples[besti].added = true
		verts = append(verts, bestpt)
		tris = delaunayHull(verts, hull)
	}

	return verts, tris
}

// distToPoly returns the squared xz distance from p to the nearest edge of the
// closed polygon poly, negated when p's projection lies inside it.
func distToPoly(poly []dvert, p dvert) float32 {
	dmin := float32(1e30)
	inside := false
	n := len(poly)
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := poly[i], poly[j]
		if (vi.Z > p.Z) != (vj.Z > p.Z) &&
			p.X < (vj.X-vi.X)*(p.Z-vi.Z)/(vj.Z-vi.Z)+vi.X {
			inside = !inside
		}
		d := distancePtSeg2d(p, vj, vi)
		if d < dmin {
			dmin = d
		}
		j = i
	}
	if inside {
		return -dmin
	}
	return dmin
}
