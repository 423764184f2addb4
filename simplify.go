package navmesh

// simpVertex is a simplified-contour vertex in progress: it carries the
// index of the raw vertex it was copied from, so later passes can walk the
// source contour between two simplified vertices. Grounded on the teacher's
// recast/contour.go simplifyContour, which packs the same source index into
// its flat int32 quads; this module keeps it as a struct field instead.
type simpVertex struct {
	X, Y, Z     int32
	sourceIndex int32
}

func (v simpVertex) pt() xzPoint { return xzPoint{v.X, v.Z} }

// simplifyContour reduces a raw traced contour to a minimal vertex set
// within the configured error bounds, per section 4.3's "Simplification".
func simplifyContour(raw []ContourVertex, cfg *Config, cellSize float32) []ContourVertex {
	n := int32(len(raw))
	if n == 0 {
		return nil
	}

	hasConnections := false
	for _, v := range raw {
		if v.Region != NullRegion {
			hasConnections = true
			break
		}
	}

	var simp []simpVertex
	if hasConnections {
		for i := int32(0); i < n; i++ {
			ii := (i + 1) % n
			if raw[i].Region != raw[ii].Region {
				simp = append(simp, simpVertex{raw[i].X, raw[i].Y, raw[i].Z, i})
			}
		}
	}
	if len(simp) == 0 {
		lo, hi := int32(0), int32(0)
		for i := int32(1); i < n; i++ {
			if raw[i].X < raw[lo].X || (raw[i].X == raw[lo].X && raw[i].Z < raw[lo].Z) {
				lo = i
			}
			if raw[i].X > raw[hi].X || (raw[i].X == raw[hi].X && raw[i].Z > raw[hi].Z) {
				hi = i
			}
		}
		simp = append(simp,
			simpVertex{raw[lo].X, raw[lo].Y, raw[lo].Z, lo},
			simpVertex{raw[hi].X, raw[hi].Y, raw[hi].Z, hi})
	}

	maxErrorVoxels := cfg.EdgeMaxDeviation / cellSize
	maxErrorSq := maxErrorVoxels * maxErrorVoxels

	simp = fitNullRegionDeviation(raw, simp, n, maxErrorSq)

	if cfg.MaxEdgeLength > 0 {
		simp = subdivideNullRegionEdges(raw, simp, n, cfg.MaxEdgeLength)
	}

	out := make([]ContourVertex, len(simp))
	for i, v := range simp {
		nextSrc := (v.sourceIndex + 1) % n
		out[i] = ContourVertex{X: v.X, Y: v.Y, Z: v.Z, Region: raw[nextSrc].Region}
	}
	return out
}

// fitNullRegionDeviation is the Douglas-Peucker-style pass: for every
// simplified edge whose following source segment runs along a null-region
// boundary, the farthest source vertex beyond maxErrorSq is inserted,
// repeating until every such segment is within tolerance.
func fitNullRegionDeviation(raw []ContourVertex, simp []simpVertex, n int32, maxErrorSq float32) []simpVertex {
	for i := 0; i < len(simp); {
		ii := (i + 1) % len(simp)
		a, b := simp[i], simp[ii]

		ax, az := a.X, a.Z
		bx, bz := b.X, b.Z
		var ci, cinc, end int32
		if bx > ax || (bx == ax && bz > az) {
			cinc = 1
			ci = (a.sourceIndex + cinc) % n
			end = b.sourceIndex
		} else {
			cinc = n - 1
			ci = (b.sourceIndex + cinc) % n
			end = a.sourceIndex
			ax, bx = bx, ax
			az, bz = bz, az
		}

		maxi := int32(-1)
		var maxd float32
		if raw[ci].Region == NullRegion {
			seg := xzPoint{ax, az}
			segB := xzPoint{bx, bz}
			for ci != end {
				d := distPointToSegSq(xzPoint{raw[ci].X, raw[ci].Z}, seg, segB)
				if d > maxd {
					maxd, maxi = d, ci
				}
				ci = (ci + cinc) % n
			}
		}

		if maxi != -1 && maxd > maxErrorSq {
			v := simpVertex{raw[maxi].X, raw[maxi].Y, raw[maxi].Z, maxi}
			simp = insertAfter(simp, i, v)
		} else {
			i++
		}
	}
	return simp
}

// subdivideNullRegionEdges is the max-edge-length pass: any simplified edge
// whose following source segment is null-region and whose xz length²
// exceeds maxEdgeLength² gets its source midpoint (by index count) inserted.
func subdivideNullRegionEdges(raw []ContourVertex, simp []simpVertex, n int32, maxEdgeLength int32) []simpVertex {
	for i := 0; i < len(simp); {
		ii := (i + 1) % len(simp)
		a, b := simp[i], simp[ii]
		ci := (a.sourceIndex + 1) % n

		maxi := int32(-1)
		if raw[ci].Region == NullRegion {
			dx := float32(b.X - a.X)
			dz := float32(b.Z - a.Z)
			if dx*dx+dz*dz > float32(maxEdgeLength*maxEdgeLength) {
				var cnt int32
				if b.sourceIndex < a.sourceIndex {
					cnt = b.sourceIndex + n - a.sourceIndex
				} else {
					cnt = b.sourceIndex - a.sourceIndex
				}
				if cnt > 1 {
					if b.X > a.X || (b.X == a.X && b.Z > a.Z) {
						maxi = (a.sourceIndex + cnt/2) % n
					} else {
						maxi = (a.sourceIndex + (cnt+1)/2) % n
					}
				}
			}
		}

		if maxi != -1 {
			v := simpVertex{raw[maxi].X, raw[maxi].Y, raw[maxi].Z, maxi}
			simp = insertAfter(simp, i, v)
		} else {
			i++
		}
	}
	return simp
}

func insertAfter(simp []simpVertex, i int, v simpVertex) []simpVertex {
	simp = append(simp, simpVertex{})
	copy(simp[i+2:], simp[i+1:])
	simp[i+1] = v
	return simp
}

// removeVerticalSegments collapses any pair of consecutive simplified
// vertices sharing (x,z): the triangulator downstream cannot handle
// zero-length xz edges.
func removeVerticalSegments(verts []ContourVertex) []ContourVertex {
	n := len(verts)
	if n < 2 {
		return verts
	}
	out := make([]ContourVertex, 0, n)
	for i, v := range verts {
		next := verts[(i+1)%n]
		if v.X == next.X && v.Z == next.Z {
			continue
		}
		out = append(out, v)
	}
	return out
}

// removeIntersectingNullSegments deletes any null-region edge that is
// crossed by another (non-null) edge elsewhere in the same contour: left in
// place, it would feed a self-intersecting polygon to the triangulator.
func removeIntersectingNullSegments(ctx *BuildContext, raw []ContourVertex, verts []ContourVertex, cellSize float32) []ContourVertex {
	n := len(verts)
	if n < 4 {
		return verts
	}

	isNullEdge := make([]bool, n)
	for i, v := range verts {
		isNullEdge[i] = v.Region == NullRegion
	}

	toDelete := make([]bool, n)
	for i := 0; i < n; i++ {
		if !isNullEdge[i] {
			continue
		}
		a, b := xzPoint{verts[i].X, verts[i].Z}, xzPoint{verts[(i+1)%n].X, verts[(i+1)%n].Z}
		for j := 0; j < n; j++ {
			if j == i || isNullEdge[j] {
				continue
			}
			c, d := xzPoint{verts[j].X, verts[j].Z}, xzPoint{verts[(j+1)%n].X, verts[(j+1)%n].Z}
			if (a == c || a == d || b == c || b == d) {
				continue
			}
			if intersectXZ(a, b, c, d) {
				toDelete[i] = true
				break
			}
		}
	}

	any := false
	for _, d := range toDelete {
		if d {
			any = true
			break
		}
	}
	if !any {
		return verts
	}

	out := make([]ContourVertex, 0, n)
	for i, v := range verts {
		if toDelete[i] {
			ctx.Warningf("contour: deleted null-region segment at vertex %d, crossed by another edge", i)
			continue
		}
		out = append(out, v)
	}
	return out
}

// recoverContour tries to rescue a contour that simplified to fewer than 3
// vertices by inserting the raw vertex farthest from the current chord,
// preserving clockwise order; if that still doesn't reach 3, the caller
// discards the contour.
func recoverContour(raw []ContourVertex, verts []ContourVertex) []ContourVertex {
	n := int32(len(raw))
	if n < 3 {
		return verts
	}
	if len(verts) == 0 {
		verts = []ContourVertex{raw[0], raw[n/3], raw[2*n/3]}
		return verts
	}

	a := xzPoint{verts[0].X, verts[0].Z}
	b := xzPoint{verts[len(verts)-1].X, verts[len(verts)-1].Z}
	var best int32 = -1
	var bestD float32
	for i := int32(0); i < n; i++ {
		p := xzPoint{raw[i].X, raw[i].Z}
		d := distPointToSegSq(p, a, b)
		if d > bestD {
			bestD, best = d, i
		}
	}
	if best == -1 {
		return verts
	}
	out := make([]ContourVertex, 0, len(verts)+1)
	out = append(out, verts...)
	out = append(out, raw[best])
	return out
}
