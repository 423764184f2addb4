package navmesh

import "github.com/arl/math32"

// dvert is one vertex of a detail mesh under construction, in world space.
type dvert struct{ X, Y, Z float32 }

func vdot2(a, b dvert) float32    { return a.X*b.X + a.Z*b.Z }
func vdistSq2(p, q dvert) float32 { dx, dz := q.X-p.X, q.Z-p.Z; return dx*dx + dz*dz }
func vdist2(p, q dvert) float32   { return math32.Sqrt(vdistSq2(p, q)) }

func vcross2(p1, p2, p3 dvert) float32 {
	u1, v1 := p2.X-p1.X, p2.Z-p1.Z
	u2, v2 := p3.X-p1.X, p3.Z-p1.Z
	return u1*v2 - v1*u2
}

func vsub(a, b dvert) dvert { return dvert{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func vadd(a, b dvert) dvert { return dvert{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// distancePtSeg2d is the squared xz distance from pt to segment (p,q).
func distancePtSeg2d(pt, p, q dvert) float32 {
	pqx, pqz := q.X-p.X, q.Z-p.Z
	dx, dz := pt.X-p.X, pt.Z-p.Z
	d := pqx*pqx + pqz*pqz
	t := pqx*dx + pqz*dz
	if d > 0 {
		t /= d
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	dx = p.X + t*pqx - pt.X
	dz = p.Z + t*pqz - pt.Z
	return dx*dx + dz*dz
}

// distancePtSeg3d is the squared 3D distance from pt to segment (p,q),
// used to measure edge-sampling deviation along the true 3D chord.
func distancePtSeg3d(pt, p, q dvert) float32 {
	pqx, pqy, pqz := q.X-p.X, q.Y-p.Y, q.Z-p.Z
	dx, dy, dz := pt.X-p.X, pt.Y-p.Y, pt.Z-p.Z
	d := pqx*pqx + pqy*pqy + pqz*pqz
	t := pqx*dx + pqy*dy + pqz*dz
	if d > 0 {
		t /= d
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	dx = p.X + t*pqx - pt.X
	dy = p.Y + t*pqy - pt.Y
	dz = p.Z + t*pqz - pt.Z
	return dx*dx + dy*dy + dz*dz
}

// distPtTri returns the vertical distance from p to the plane of triangle
// (a,b,c) if p's xz projection lies inside the triangle, else
// math32.MaxFloat32.
func distPtTri(p, a, b, c dvert) float32 {
	v0 := vsub(c, a)
	v1 := vsub(b, a)
	v2 := vsub(p, a)

	dot00 := vdot2(v0, v0)
	dot01 := vdot2(v0, v1)
	dot02 := vdot2(v0, v2)
	dot11 := vdot2(v1, v1)
	dot12 := vdot2(v1, v2)

	invDenom := 1 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	const eps = 1e-4
	if u >= -eps && v >= -eps && u+v <= 1+eps {
		y := a.Y + v0.Y*u + v1.Y*v
		return math32.Abs(y - p.Y)
	}
	return math32.MaxFloat32
}

// distToTriMesh returns the minimum distPtTri over every triangle of a
// mesh, or -1 if p's xz projection misses every triangle.
func distToTriMesh(p dvert, verts []dvert, tris [][3]int32) float32 {
	dmin := math32.MaxFloat32
	for _, t := range tris {
		d := distPtTri(p, verts[t[0]], verts[t[1]], verts[t[2]])
		if d < dmin {
			dmin = d
		}
	}
	if dmin == math32.MaxFloat32 {
		return -1
	}
	return dmin
}

// circumCircle returns the xz-projected circumcenter and circumradius of
// p1, p2, p3, computed relative to p1 for numerical precision. ok is false
// for a collinear (degenerate) triple. Grounded on the teacher's
// recast/meshdetail.go circumCircle.
func circumCircle(p1, p2, p3 dvert) (center dvert, radius float32, ok bool) {
	const eps float32 = 1e-6
	v1 := dvert{}
	v2 := vsub(p2, p1)
	v3 := vsub(p3, p1)

	cp := vcross2(v1, v2, v3)
	if math32.Abs(cp) <= eps {
		return p1, 0, false
	}

	v1Sq, v2Sq, v3Sq := vdot2(v1, v1), vdot2(v2, v2), vdot2(v3, v3)
	c := dvert{
		X: (v1Sq*(v2.Z-v3.Z) + v2Sq*(v3.Z-v1.Z) + v3Sq*(v1.Z-v2.Z)) / (2 * cp),
		Z: (v1Sq*(v3.X-v2.X) + v2Sq*(v1.X-v3.X) + v3Sq*(v2.X-v1.X)) / (2 * cp),
	}
	r := vdist2(c, v1)
	return vadd(c, p1), r, true
}

// overlapSegSeg2d reports whether xz segments (a,b) and (c,d) cross.
func overlapSegSeg2d(a, b, c, d dvert) bool {
	a1 := vcross2(a, b, d)
	a2 := vcross2(a, b, c)
	if a1*a2 < 0 {
		a3 := vcross2(c, d, a)
		a4 := a3 + a2 - a1
		if a3*a4 < 0 {
			return true
		}
	}
	return false
}

const (
	edgeUndef int32 = -1
	edgeHull  int32 = -2
)

// delaunayEdge is one candidate edge of an incremental Delaunay
// triangulation: leftFace/rightFace are edgeUndef until completeFacet
// resolves them, or edgeHull if the edge bounds the outer hull.
type delaunayEdge struct {
	v0, v1              int32
	leftFace, rightFace int32
}

func findDelaunayEdge(edges []delaunayEdge, s, t int32) int32 {
	for i, e := range edges {
		if (e.v0 == s && e.v1 == t) || (e.v0 == t && e.v1 == s) {
			return int32(i)
		}
	}
	return edgeUndef
}

func addDelaunayEdge(edges *[]delaunayEdge, s, t, l, r int32) int32 {
	if findDelaunayEdge(*edges, s, t) != edgeUndef {
		return edgeUndef
	}
	*edges = append(*edges, delaunayEdge{v0: s, v1: t, leftFace: l, rightFace: r})
	return int32(len(*edges))
}

func updateLeftFace(e *delaunayEdge, s, t, f int32) {
	if e.v0 == s && e.v1 == t && e.leftFace == edgeUndef {
		e.leftFace = f
	} else if e.v1 == s && e.v0 == t && e.rightFace == edgeUndef {
		e.rightFace = f
	}
}

func overlapDelaunayEdges(pts []dvert, edges []delaunayEdge, s1, t1 int32) bool {
	for _, e := range edges {
		if e.v0 == s1 || e.v0 == t1 || e.v1 == s1 || e.v1 == t1 {
			continue
		}
		if overlapSegSeg2d(pts[e.v0], pts[e.v1], pts[s1], pts[t1]) {
			return true
		}
	}
	return false
}

// completeFacet resolves the undefined side of edges[e] by finding the
// best point to its left under a circumcircle (Delaunay) criterion,
// falling back to overlap tests to break near-cocircular ties, then adds
// the two new edges of the resulting triangle (or marks the edge a hull
// edge if no point qualifies). Grounded on the teacher's completeFacet.
func completeFacet(pts []dvert, edges *[]delaunayEdge, e int32, nfaces *int32) {
	const eps float32 = 1e-5

	edge := &(*edges)[e]
	var s, t int32
	switch {
	case edge.leftFace == edgeUndef:
		s, t = edge.v0, edge.v1
	case edge.rightFace == edgeUndef:
		s, t = edge.v1, edge.v0
	default:
		return
	}

	npts := int32(len(pts))
	best := npts
	var center dvert
	r := float32(-1)
	for u := int32(0); u < npts; u++ {
		if u == s || u == t {
			continue
		}
		if vcross2(pts[s], pts[t], pts[u]) <= eps {
			continue
		}
		if r < 0 {
			best = u
			center, r, _ = circumCircle(pts[s], pts[t], pts[u])
			continue
		}
		d := vdist2(center, pts[u])
		const tol = 0.001
		switch {
		case d > r*(1+tol):
		case d < r*(1-tol):
			best = u
			center, r, _ = circumCircle(pts[s], pts[t], pts[u])
		default:
			if overlapDelaunayEdges(pts, *edges, s, u) || overlapDelaunayEdges(pts, *edges, t, u) {
				continue
			}
			best = u
			center, r, _ = circumCircle(pts[s], pts[t], pts[u])
		}
	}

	if best < npts {
		updateLeftFace(&(*edges)[e], s, t, *nfaces)

		if i := findDelaunayEdge(*edges, best, s); i == edgeUndef {
			addDelaunayEdge(edges, best, s, *nfaces, edgeUndef)
		} else {
			updateLeftFace(&(*edges)[i], best, s, *nfaces)
		}

		if i := findDelaunayEdge(*edges, t, best); i == edgeUndef {
			addDelaunayEdge(edges, t, best, *nfaces, edgeUndef)
		} else {
			updateLeftFace(&(*edges)[i], t, best, *nfaces)
		}

		*nfaces++
	} else {
		updateLeftFace(&(*edges)[e], s, t, edgeHull)
	}
}

// delaunayHull triangulates pts (xz projection) starting from its convex
// hull, completing every interior edge via completeFacet. Grounded on the
// teacher's delaunayHull.
func delaunayHull(pts []dvert, hull []int32) [][3]int32 {
	var edges []delaunayEdge
	var nfaces int32

	j := int32(len(hull)) - 1
	for i := int32(0); i < int32(len(hull)); i++ {
		addDelaunayEdge(&edges, hull[j], hull[i], edgeHull, edgeUndef)
		j = i
	}

	for cur := int32(0); cur < int32(len(edges)); cur++ {
		if edges[cur].leftFace == edgeUndef {
			completeFacet(pts, &edges, cur, &nfaces)
		}
		if edges[cur].rightFace == edgeUndef {
			completeFacet(pts, &edges, cur, &nfaces)
		}
	}

	tris := make([][3]int32, nfaces)
	for i := range tris {
		tris[i] = [3]int32{-1, -1, -1}
	}
	for _, e := range edges {
		if e.rightFace >= 0 {
			t := &tris[e.rightFace]
			switch {
			case t[0] == -1:
				t[0], t[1] = e.v0, e.v1
			case t[0] == e.v1:
				t[2] = e.v0
			case t[1] == e.v0:
				t[2] = e.v1
			}
		}
		if e.leftFace >= 0 {
			t := &tris[e.leftFace]
			switch {
			case t[0] == -1:
				t[0], t[1] = e.v1, e.v0
			case t[0] == e.v0:
				t[2] = e.v1
			case t[1] == e.v1:
				t[2] = e.v0
			}
		}
	}

	out := tris[:0]
	for _, t := range tris {
		if t[0] != -1 && t[1] != -1 && t[2] != -1 {
			out = append(out, t)
		}
	}
	return out
}

// polyMinExtent returns the xz distance from the edge farthest from its
// opposing vertices, the smallest such distance over every edge: a rough
// "is this polygon a sliver" measure used to skip internal sampling on
// degenerate polygons.
func polyMinExtent(verts []dvert) float32 {
	n := int32(len(verts))
	minDist := float32(1e30)
	for i := int32(0); i < n; i++ {
		ni := (i + 1) % n
		var maxEdgeDist float32
		for j := int32(0); j < n; j++ {
			if j == i || j == ni {
				continue
			}
			d := distancePtSeg2d(verts[j], verts[i], verts[ni])
			if d > maxEdgeDist {
				maxEdgeDist = d
			}
		}
		if maxEdgeDist < minDist {
			minDist = maxEdgeDist
		}
	}
	return math32.Sqrt(minDist)
}

func ringStep(i, n int32) int32 {
	if i+1 < n {
		return i + 1
	}
	return 0
}

func ringStepBack(i, n int32) int32 {
	if i-1 >= 0 {
		return i - 1
	}
	return n - 1
}

// triangulateHull triangulates the convex hull of verts by a greedy
// shortest-perimeter fan: starting from the hull's tightest ear, it
// repeatedly extends whichever side (left or right) yields the shorter
// new-triangle perimeter. Used instead of delaunayHull when there are no
// interior points to place, since it handles long thin hulls more
// gracefully. Grounded on the teacher's triangulateHull.
func triangulateHull(verts []dvert, hull []int32) [][3]int32 {
	n := int32(len(hull))
	start, left, right := int32(0), int32(1), n-1

	dmin := float32(1e30)
	for i := int32(0); i < n; i++ {
		pi, ni := ringStepBack(i, n), ringStep(i, n)
		pv, cv, nv := verts[hull[pi]], verts[hull[i]], verts[hull[ni]]
		d := vdist2(pv, cv) + vdist2(cv, nv) + vdist2(nv, pv)
		if d < dmin {
			start, left, right, dmin = i, ni, pi, d
		}
	}

	tris := [][3]int32{{hull[start], hull[left], hull[right]}}

	for ringStep(left, n) != right {
		nleft, nright := ringStep(left, n), ringStepBack(right, n)
		dleft := vdist2(verts[hull[left]], verts[hull[nleft]]) + vdist2(verts[hull[nleft]], verts[hull[right]])
		dright := vdist2(verts[hull[right]], verts[hull[nright]]) + vdist2(verts[hull[left]], verts[hull[nright]])
		if dleft < dright {
			tris = append(tris, [3]int32{hull[left], hull[nleft], hull[right]})
			left = nleft
		} else {
			tris = append(tris, [3]int32{hull[left], hull[nright], hull[right]})
			right = nright
		}
	}
	return tris
}

// jitterX and jitterY perturb an interior sample's xz position by less
// than a tenth of a cell, breaking the ties a perfectly regular sampling
// grid would otherwise hand the triangulator.
func jitterX(i int64) float32 {
	return (float32((i*0x8da6b343)&0xffff)/65535*2 - 1)
}

func jitterY(i int64) float32 {
	return (float32((i*0xd8163841)&0xffff)/65535*2 - 1)
}
