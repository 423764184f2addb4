package navmesh

// xzPoint is a vertex projected onto the xz plane, the projection every
// contour, triangulation and adjacency predicate in this file operates on.
type xzPoint struct{ X, Z int32 }

// area2 is twice the signed area of triangle (a,b,c): positive when the
// triangle winds counter-clockwise, negative when clockwise, zero when
// collinear. Grounded on the teacher's recast/contour.go area2.
func area2(a, b, c xzPoint) int32 {
	return (b.X-a.X)*(c.Z-a.Z) - (c.X-a.X)*(b.Z-a.Z)
}

// leftXZ reports whether c lies strictly left of the directed line a->b.
func leftXZ(a, b, c xzPoint) bool { return area2(a, b, c) < 0 }

// leftOnXZ reports whether c lies left of or on the directed line a->b.
func leftOnXZ(a, b, c xzPoint) bool { return area2(a, b, c) <= 0 }

func collinearXZ(a, b, c xzPoint) bool { return area2(a, b, c) == 0 }

func xorb(x, y bool) bool { return x != y }

// intersectPropXZ reports whether segments ab and cd properly intersect:
// they share a point interior to both segments.
func intersectPropXZ(a, b, c, d xzPoint) bool {
	if collinearXZ(a, b, c) || collinearXZ(a, b, d) || collinearXZ(c, d, a) || collinearXZ(c, d, b) {
		return false
	}
	return xorb(leftXZ(a, b, c), leftXZ(a, b, d)) && xorb(leftXZ(c, d, a), leftXZ(c, d, b))
}

// betweenXZ reports whether a, b, c are collinear and c lies on the closed
// segment ab.
func betweenXZ(a, b, c xzPoint) bool {
	if !collinearXZ(a, b, c) {
		return false
	}
	if a.X != b.X {
		return (a.X <= c.X && c.X <= b.X) || (a.X >= c.X && c.X >= b.X)
	}
	return (a.Z <= c.Z && c.Z <= b.Z) || (a.Z >= c.Z && c.Z >= b.Z)
}

// intersectXZ reports whether segments ab and cd intersect, properly or
// improperly (sharing an endpoint or collinear overlap).
func intersectXZ(a, b, c, d xzPoint) bool {
	if intersectPropXZ(a, b, c, d) {
		return true
	}
	return betweenXZ(a, b, c) || betweenXZ(a, b, d) || betweenXZ(c, d, a) || betweenXZ(c, d, b)
}

func vequalXZ(a, b xzPoint) bool { return a.X == b.X && a.Z == b.Z }

// distPointToSegSq returns the squared perpendicular distance from point p
// to segment ab, projected onto the xz plane.
func distPointToSegSq(p, a, b xzPoint) float32 {
	pqx := float32(b.X - a.X)
	pqz := float32(b.Z - a.Z)
	dx := float32(p.X - a.X)
	dz := float32(p.Z - a.Z)
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
	dx = float32(a.X) + t*pqx - float32(p.X)
	dz = float32(a.Z) + t*pqz - float32(p.Z)
	return dx*dx + dz*dz
}
