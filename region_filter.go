package navmesh

// FilterSmallRegions implements section 4.2.7: regions with no connection to
// any other region are discarded outright if they are smaller than
// cfg.MinUnconnectedRegionSize; the remaining regions at or below
// cfg.MergeRegionSize spans are merged into whichever neighbor they share the most
// boundary with. Region ids are then compacted to a dense 1..N range.
func FilterSmallRegions(ctx *BuildContext, cfg *Config, chf *OpenHeightfield, coords []spanCoord, nextID uint16) error {
	ctx.StartTimer(TimerBuildRegionsFilter)
	defer ctx.StopTimer(TimerBuildRegionsFilter)

	if nextID <= 1 {
		return nil
	}

	regions := make([]*Region, nextID)
	for id := uint16(1); id < nextID; id++ {
		regions[id] = &Region{ID: id}
	}

	for i := range chf.Spans {
		id := chf.Spans[i].Region
		if id == NullRegion {
			continue
		}
		regions[id].SpanCount++
		c := coords[i]
		s := &chf.Spans[i]
		for dir := int32(0); dir < 4; dir++ {
			ni, ok := chf.neighborSpan(c.x, c.y, s, dir)
			if !ok {
				continue
			}
			nid := chf.Spans[ni].Region
			if nid != NullRegion && nid != id {
				regions[id].addOverlap(nid)
			}
		}
	}

	// Discard small, unconnected regions.
	for id := uint16(1); id < nextID; id++ {
		r := regions[id]
		if r.SpanCount == 0 {
			continue
		}
		if len(r.Overlaps) == 0 && r.SpanCount < int32(cfg.MinUnconnectedRegionSize) {
			clearRegion(chf, id)
			r.SpanCount = 0
			r.Overlaps = nil
		}
	}

	// Merge small regions into their largest shared-boundary neighbor,
	// smallest region first, re-evaluating connections after each merge.
	for {
		var smallestID uint16
		smallest := int32(1 << 30)
		for id := uint16(1); id < nextID; id++ {
			r := regions[id]
			if r.SpanCount == 0 || r.SpanCount > int32(cfg.MergeRegionSize) {
				continue
			}
			if r.SpanCount < smallest {
				smallest, smallestID = r.SpanCount, id
			}
		}
		if smallestID == 0 {
			break
		}
		r := regions[smallestID]
		target := largestNeighborBySharedBoundary(chf, coords, regions, smallestID)
		if target == NullRegion {
			// No mergeable neighbor; leave it as-is so it isn't retried
			// forever.
			r.SpanCount = int32(cfg.MergeRegionSize) + 1
			continue
		}
		mergeRegionInto(chf, regions, smallestID, target)
	}

	return compactRegionIDs(ctx, chf, regions, nextID)
}

func clearRegion(chf *OpenHeightfield, id uint16) {
	for i := range chf.Spans {
		if chf.Spans[i].Region == id {
			chf.Spans[i].Region = NullRegion
		}
	}
}

// largestNeighborBySharedBoundary counts, for each span of region id, how
// many of its edges border each distinct neighbor region, and returns the
// neighbor with the most shared edges (0 if region id has no neighbors).
func largestNeighborBySharedBoundary(chf *OpenHeightfield, coords []spanCoord, regions []*Region, id uint16) uint16 {
	votes := map[uint16]int32{}
	for i := range chf.Spans {
		if chf.Spans[i].Region != id {
			continue
		}
		c := coords[i]
		s := &chf.Spans[i]
		for dir := int32(0); dir < 4; dir++ {
			ni, ok := chf.neighborSpan(c.x, c.y, s, dir)
			if !ok {
				continue
			}
			nid := chf.Spans[ni].Region
			if nid != NullRegion && nid != id && regions[nid].SpanCount > 0 {
				votes[nid]++
			}
		}
	}
	var best uint16
	var bestVotes int32
	for nid, v := range votes {
		if v > bestVotes {
			best, bestVotes = nid, v
		}
	}
	return best
}

func mergeRegionInto(chf *OpenHeightfield, regions []*Region, from, into uint16) {
	for i := range chf.Spans {
		if chf.Spans[i].Region == from {
			chf.Spans[i].Region = into
		}
	}
	regions[into].SpanCount += regions[from].SpanCount
	for _, o := range regions[from].Overlaps {
		if o != into {
			regions[into].addOverlap(o)
		}
	}
	regions[from].SpanCount = 0
	regions[from].Overlaps = nil
}

// compactRegionIDs renumbers the surviving regions to a dense 1..N range so
// downstream stages (contour tracing, poly mesh regions) never see gaps.
func compactRegionIDs(ctx *BuildContext, chf *OpenHeightfield, regions []*Region, nextID uint16) error {
	remap := make([]uint16, nextID)
	next := uint16(1)
	for id := uint16(1); id < nextID; id++ {
		if regions[id].SpanCount > 0 {
			remap[id] = next
			next++
		}
	}
	for i := range chf.Spans {
		id := chf.Spans[i].Region
		if id != NullRegion {
			chf.Spans[i].Region = remap[id]
		}
	}
	chf.MaxRegions = next - 1
	ctx.Progressf("regions: %d after filter/merge", chf.MaxRegions)
	return nil
}
