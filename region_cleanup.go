package navmesh

// CleanupNullRegionBorders walks every null-region contour with the
// robot-on-the-floor edge walk and repairs the border so that no non-null
// region fully encompasses a null region, per section 4.2.6. *nextID is
// advanced whenever a region is split off during repair.
func CleanupNullRegionBorders(ctx *BuildContext, chf *OpenHeightfield, coords []spanCoord, nextID *uint16) {
	visited := make([]bool, len(chf.Spans))

	for i := range chf.Spans {
		if chf.Spans[i].Region != NullRegion || visited[i] {
			continue
		}
		startDir := firstBoundaryDir(chf, coords, uint32(i))
		if startDir < 0 {
			visited[i] = true
			continue
		}
		walkNullContourAndRepair(chf, coords, uint32(i), startDir, visited, nextID)
	}
}

// firstBoundaryDir returns the first direction, scanning clockwise from 0,
// in which span i's edge is not shared with another null-region span, or -1
// if every neighbor is null (an interior null span, not on any boundary).
func firstBoundaryDir(chf *OpenHeightfield, coords []spanCoord, i uint32) int32 {
	c := coords[i]
	s := &chf.Spans[i]
	for dir := int32(0); dir < 4; dir++ {
		ni, ok := chf.neighborSpan(c.x, c.y, s, dir)
		if !ok || chf.Spans[ni].Region != NullRegion {
			return dir
		}
	}
	return -1
}

// step records one same-region move made during a contour walk: the span
// the walk arrived at, the neighbor it stepped in from, and that span's
// region id at the time of the step.
type step struct {
	i, prev uint32
	region  uint16
}

// walkNullContourAndRepair performs one robot-on-the-floor walk around the
// null-region contour starting at (span i, direction dir), classifying the
// regions it touches and the sharpness of each turn, then applies the
// short-wrap and dangerous-corner repairs and, if the contour turns out to
// be fully encompassed by one region, splits that region.
func walkNullContourAndRepair(chf *OpenHeightfield, coords []spanCoord, i uint32, dir int32, visited []bool, nextID *uint16) {
	const maxIters = 65535

	startI, startDir := i, dir
	seenRegions := map[uint16]bool{}
	var acute, obtuse int
	consecutiveTurns := 0

	var backTwo, backOne step

	for iter := 0; iter < maxIters; iter++ {
		visited[i] = true
		c := coords[i]
		s := &chf.Spans[i]

		ni, ok := chf.neighborSpan(c.x, c.y, s, dir)
		solid := !ok || chf.Spans[ni].Region != NullRegion
		if solid {
			if ok {
				seenRegions[chf.Spans[ni].Region] = true
			}
			consecutiveTurns++
			if consecutiveTurns > 1 {
				acute++
			} else {
				obtuse++
			}
			dir = rotateCW(dir)
		} else {
			backTwo = backOne
			backOne = step{i: i, prev: ni, region: chf.Spans[i].Region}
			i = ni
			dir = rotateCCW(dir)
			consecutiveTurns = 0
		}

		if i == startI && dir == startDir {
			break
		}
	}

	applyCornerRepairs(chf, coords, backTwo, backOne, seenRegions)

	encompassed := len(seenRegions) == 1 && obtuse > acute
	if encompassed {
		var ref uint16
		for r := range seenRegions {
			ref = r
		}
		splitEncompassingRegion(chf, coords, ref, nextID)
	}
}

// applyCornerRepairs implements the two narrow-boundary fixes of section
// 4.2.6: when the walk's last two recorded same-region steps indicate a
// dangerously thin wrap around the boundary, reassign one of them to
// whichever alternative region has majority support in its 8-neighborhood.
func applyCornerRepairs(chf *OpenHeightfield, coords []spanCoord, backTwo, backOne step, seen map[uint16]bool) {
	if backOne.i == 0 && backTwo.i == 0 {
		return
	}
	if backTwo.region == 0 || backOne.region == 0 {
		return
	}
	if backTwo.region == backOne.region {
		// Short-wrap: both recent steps share the reference region but the
		// boundary pinches close to itself here. Reassign backOne to the
		// majority alternative in its 8-neighborhood, if any exists.
		if alt, ok := majorityNeighborRegion(chf, coords, backOne.i, backOne.region); ok {
			chf.Spans[backOne.i].Region = alt
		}
		return
	}
	// Dangerous corner: backTwo matches the reference region, backOne does
	// not. Reassign whichever of the two has the most neighbors in the
	// other's region.
	votesForTwo := countNeighborsInRegion(chf, coords, backTwo.i, backOne.region)
	votesForOne := countNeighborsInRegion(chf, coords, backOne.i, backTwo.region)
	if votesForTwo > votesForOne {
		chf.Spans[backTwo.i].Region = backOne.region
	} else if votesForOne > 0 {
		chf.Spans[backOne.i].Region = backTwo.region
	}
}

func countNeighborsInRegion(chf *OpenHeightfield, coords []spanCoord, i uint32, region uint16) int {
	c := coords[i]
	s := &chf.Spans[i]
	count := 0
	for dir := int32(0); dir < 4; dir++ {
		if ni, ok := chf.neighborSpan(c.x, c.y, s, dir); ok && chf.Spans[ni].Region == region {
			count++
		}
		if di, ok := chf.diagNeighborSpan(c.x, c.y, s, dir); ok && chf.Spans[di].Region == region {
			count++
		}
	}
	return count
}

func majorityNeighborRegion(chf *OpenHeightfield, coords []spanCoord, i uint32, exclude uint16) (uint16, bool) {
	c := coords[i]
	s := &chf.Spans[i]
	votes := map[uint16]int{}
	consider := func(r uint16) {
		if r != NullRegion && r != exclude {
			votes[r]++
		}
	}
	for dir := int32(0); dir < 4; dir++ {
		if ni, ok := chf.neighborSpan(c.x, c.y, s, dir); ok {
			consider(chf.Spans[ni].Region)
		}
		if di, ok := chf.diagNeighborSpan(c.x, c.y, s, dir); ok {
			consider(chf.Spans[di].Region)
		}
	}
	var best uint16
	bestCount := 0
	for r, n := range votes {
		if n > bestCount {
			best, bestCount = r, n
		}
	}
	return best, bestCount > 0
}

// splitEncompassingRegion carves a new region id out of ref by flooding
// away from the null-region border it shares, so ref no longer fully
// surrounds the null region. The flood front is the set of ref-region spans
// not directly adjacent to any null-region span; everything reachable from
// there, staying within ref, is relabeled with the new id.
func splitEncompassingRegion(chf *OpenHeightfield, coords []spanCoord, ref uint16, nextID *uint16) {
	var seeds []uint32
	for i := range chf.Spans {
		if chf.Spans[i].Region != ref {
			continue
		}
		c := coords[i]
		s := &chf.Spans[i]
		touchesBorder := false
		for dir := int32(0); dir < 4; dir++ {
			if ni, ok := chf.neighborSpan(c.x, c.y, s, dir); !ok || chf.Spans[ni].Region == NullRegion {
				touchesBorder = true
				break
			}
		}
		if !touchesBorder {
			seeds = append(seeds, uint32(i))
		}
	}
	if len(seeds) == 0 {
		return
	}

	newID := *nextID
	*nextID++
	stack := append([]uint32(nil), seeds...)
	for _, i := range seeds {
		chf.Spans[i].Region = newID
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := coords[i]
		s := &chf.Spans[i]
		for dir := int32(0); dir < 4; dir++ {
			ni, ok := chf.neighborSpan(c.x, c.y, s, dir)
			if ok && chf.Spans[ni].Region == ref {
				chf.Spans[ni].Region = newID
				stack = append(stack, ni)
			}
		}
	}
}
