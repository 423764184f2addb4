package navmesh

// ringNext and ringPrev index a logical ring of length n, wrapping at the
// ends — the "mutable ring" section 4.4 describes the ear-clip operating on.
func ringNext(i, n int32) int32 {
	if i+1 < n {
		return i + 1
	}
	return 0
}

func ringPrev(i, n int32) int32 {
	if i-1 >= 0 {
		return i - 1
	}
	return n - 1
}

// inConeRing reports whether the diagonal from ring position i to ring
// position j lies strictly inside the polygon's internal angle at i,
// handling the reflex-vertex case by flipping the test. Grounded on the
// teacher's recast/mesh.go inCone5.
func inConeRing(i, j, n int32, ring []int32, poly []xzPoint) bool {
	pi := poly[ring[i]]
	pj := poly[ring[j]]
	pi1 := poly[ring[ringNext(i, n)]]
	pin1 := poly[ring[ringPrev(i, n)]]

	if leftOnXZ(pin1, pi, pi1) {
		return leftXZ(pi, pj, pin1) && leftXZ(pj, pi, pi1)
	}
	return !(leftOnXZ(pi, pj, pi1) && leftOnXZ(pj, pi, pin1))
}

// diagonalieRing reports whether the segment from ring position i to ring
// position j crosses no ring edge it isn't incident to. Grounded on the
// teacher's recast/mesh.go diagonalie.
func diagonalieRing(i, j, n int32, ring []int32, poly []xzPoint) bool {
	d0 := poly[ring[i]]
	d1 := poly[ring[j]]
	for k := int32(0); k < n; k++ {
		k1 := ringNext(k, n)
		if k == i || k1 == i || k == j || k1 == j {
			continue
		}
		p0 := poly[ring[k]]
		p1 := poly[ring[k1]]
		if vequalXZ(d0, p0) || vequalXZ(d1, p0) || vequalXZ(d0, p1) || vequalXZ(d1, p1) {
			continue
		}
		if intersectXZ(d0, d1, p0, p1) {
			return false
		}
	}
	return true
}

func validPartition(i, j, n int32, ring []int32, poly []xzPoint) bool {
	return inConeRing(i, j, n, ring, poly) && diagonalieRing(i, j, n, ring, poly)
}

// TriangulatePolygon ear-clips the clockwise, possibly concave polygon poly
// (vertices in xz projection) into clockwise triangles of indices into
// poly, per section 4.4's ear-clipping variant: each step removes the
// flagged center whose partition edge has the shortest squared length,
// ties broken by the lowest index. Returns ok=false if no flagged center
// remains before the ring reaches 3 vertices.
func TriangulatePolygon(poly []xzPoint) (tris [][3]int32, ok bool) {
	n := int32(len(poly))
	if n < 3 {
		return nil, false
	}

	ring := make([]int32, n)
	for i := range ring {
		ring[i] = int32(i)
	}
	flagged := make([]bool, n)
	for i := int32(0); i < n; i++ {
		i1 := ringNext(i, n)
		i2 := ringNext(i1, n)
		flagged[i1] = validPartition(i, i2, n, ring, poly)
	}

	for n > 3 {
		minLen := int32(-1)
		mini := int32(-1)
		for i := int32(0); i < n; i++ {
			i1 := ringNext(i, n)
			if !flagged[i1] {
				continue
			}
			p0 := poly[ring[i]]
			p2 := poly[ring[ringNext(i1, n)]]
			dx := p2.X - p0.X
			dz := p2.Z - p0.Z
			length := dx*dx + dz*dz
			if minLen < 0 || length < minLen {
				minLen, mini = length, i
			}
		}
		if mini == -1 {
			return tris, false
		}

		i := mini
		i1 := ringNext(i, n)
		i2 := ringNext(i1, n)
		tris = append(tris, [3]int32{ring[i], ring[i1], ring[i2]})

		n--
		for k := i1; k < n; k++ {
			ring[k] = ring[k+1]
			flagged[k] = flagged[k+1]
		}

		if i1 >= n {
			i1 = 0
		}
		i = ringPrev(i1, n)
		flagged[i] = validPartition(ringPrev(i, n), i1, n, ring, poly)
		flagged[i1] = validPartition(i, ringNext(i1, n), n, ring, poly)
	}

	tris = append(tris, [3]int32{ring[0], ring[1], ring[2]})
	return tris, true
}
