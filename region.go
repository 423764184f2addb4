package navmesh

import assert "github.com/arl/assertgo"

// minBorderDistance is the algorithmic floor folded into the watershed's
// min_d threshold alongside the configured traversable area border size.
// The specification names this quantity without exposing it as a tunable;
// one voxel keeps region cores at least one ring away from any border span
// even when TraversableAreaBorderSize is 0.
const minBorderDistance = 1

// Region is the builder-local bookkeeping the watershed and its
// post-processors attach to each assigned region id.
type Region struct {
	ID          uint16
	SpanCount   int32
	Connections []uint16 // neighbor region ids; not filled by this package
	Overlaps    []uint16 // ids of regions adjacent across an axis edge (FilterSmallRegions fills it)
	Remap       bool
}

func (r *Region) addOverlap(id uint16) {
	for _, o := range r.Overlaps {
		if o == id {
			return
		}
	}
	r.Overlaps = append(r.Overlaps, id)
}

type spanCoord struct{ x, y int32 }

func spanCoords(chf *OpenHeightfield) []spanCoord {
	coords := make([]spanCoord, len(chf.Spans))
	for y := int32(0); y < chf.Height; y++ {
		for x := int32(0); x < chf.Width; x++ {
			c := chf.Cells[x+y*chf.Width]
			for i := c.Index; i < c.Index+uint32(c.Count); i++ {
				coords[i] = spanCoord{x, y}
			}
		}
	}
	return coords
}

// BuildRegions grows watershed regions over chf per section 4.2.5, then
// runs the null-region border cleanup (4.2.6) and small-region filter/merge
// (4.2.7). chf must already have a distance field (BuildDistanceField).
func BuildRegions(ctx *BuildContext, cfg *Config, chf *OpenHeightfield) error {
	assert.True(ctx != nil, "ctx should not be nil")
	assert.True(chf != nil, "chf should not be nil")

	ctx.StartTimer(TimerBuildRegions)
	defer ctx.StopTimer(TimerBuildRegions)

	coords := spanCoords(chf)
	nextID := uint16(1)

	d := (int32(chf.MaxDistance) - 1) &^ 1
	minD := cfg.TraversableAreaBorderSize + minBorderDistance

	ctx.StartTimer(TimerBuildRegionsWatershed)
	for d > minD {
		var working []uint32
		for i := range chf.Spans {
			if chf.Spans[i].Region == NullRegion && int32(chf.Spans[i].DistToBorder) >= d {
				working = append(working, uint32(i))
			}
		}

		expandRegions(chf, coords, working, cfg.UseConservativeExpansion, int(4+2*cfg.TraversableAreaBorderSize))

		fillTo := iMax(d-2, minD)
		nextID = floodNewRegions(chf, coords, working, nextID, fillTo)

		d = iMax(d-2, 0)
	}
	ctx.StopTimer(TimerBuildRegionsWatershed)

	// Final unbounded expansion: assign every span still unassigned to
	// whichever neighbor region is closest, repeating until no progress.
	var remaining []uint32
	for i := range chf.Spans {
		if chf.Spans[i].Region == NullRegion {
			remaining = append(remaining, uint32(i))
		}
	}
	expandRegions(chf, coords, remaining, cfg.UseConservativeExpansion, -1)

	chf.MaxRegions = nextID - 1

	CleanupNullRegionBorders(ctx, chf, coords, &nextID)
	return FilterSmallRegions(ctx, cfg, chf, coords, nextID)
}

// expandRegions repeatedly assigns unassigned spans in working to the
// neighbor region that minimizes DistToRegionCore+2, for at most maxPasses
// passes (or until convergence if maxPasses < 0).
func expandRegions(chf *OpenHeightfield, coords []spanCoord, working []uint32, conservative bool, maxPasses int) {
	pass := 0
	for {
		if maxPasses >= 0 && pass >= maxPasses {
			return
		}
		pass++
		changed := 0
		var stillUnassigned []uint32
		for _, i := range working {
			if chf.Spans[i].Region != NullRegion {
				continue
			}
			s := &chf.Spans[i]
			c := coords[i]
			bestRegion := NullRegion
			bestDist := int32(1 << 30)
			for dir := int32(0); dir < 4; dir++ {
				ni, ok := chf.neighborSpan(c.x, c.y, s, dir)
				if !ok {
					continue
				}
				ns := &chf.Spans[ni]
				if ns.Region == NullRegion {
					continue
				}
				if conservative {
					nc := coords[ni]
					sameRegionNeighbors := 0
					for dir2 := int32(0); dir2 < 4; dir2++ {
						nni, ok2 := chf.neighborSpan(nc.x, nc.y, ns, dir2)
						if ok2 && chf.Spans[nni].Region == ns.Region {
							sameRegionNeighbors++
						}
					}
					if sameRegionNeighbors < 2 {
						continue
					}
				}
				cand := int32(ns.DistToRegionCore) + 2
				if cand < bestDist {
					bestDist = cand
					bestRegion = ns.Region
				}
			}
			if bestRegion != NullRegion {
				s.Region = bestRegion
				s.DistToRegionCore = uint16(bestDist)
				changed++
			} else {
				stillUnassigned = append(stillUnassigned, i)
			}
		}
		working = stillUnassigned
		if changed == 0 || len(working) == 0 {
			return
		}
	}
}

// floodNewRegions floods a candidate region from every still-unassigned
// span in working, per the new-region phase of section 4.2.5. Flooded spans
// that touch another region (axis or diagonal) are rolled back to null; the
// candidate id is kept only if at least one span remains in it.
func floodNewRegions(chf *OpenHeightfield, coords []spanCoord, working []uint32, nextID uint16, fillTo int32) uint16 {
	for _, start := range working {
		if chf.Spans[start].Region != NullRegion {
			continue
		}

		candidateID := nextID
		count := 0
		stack := []uint32{start}
		chf.Spans[start].Region = candidateID

		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			s := &chf.Spans[i]
			c := coords[i]

			touchesOther := false
			for dir := int32(0); dir < 4; dir++ {
				if ni, ok := chf.neighborSpan(c.x, c.y, s, dir); ok {
					if nr := chf.Spans[ni].Region; nr != NullRegion && nr != candidateID {
						touchesOther = true
						break
					}
				}
				if di, ok := chf.diagNeighborSpan(c.x, c.y, s, dir); ok {
					if nr := chf.Spans[di].Region; nr != NullRegion && nr != candidateID {
						touchesOther = true
						break
					}
				}
			}
			if touchesOther {
				// This span is on a region border; roll it back to null.
				// It does not seed the new region, but the flood continues
				// from whatever is still on the stack.
				s.Region = NullRegion
				continue
			}
			count++

			for dir := int32(0); dir < 4; dir++ {
				ni, ok := chf.neighborSpan(c.x, c.y, s, dir)
				if !ok {
					continue
				}
				ns := &chf.Spans[ni]
				if ns.Region == NullRegion && int32(ns.DistToBorder) >= fillTo {
					ns.Region = candidateID
					stack = append(stack, ni)
				}
			}
		}

		if count > 0 {
			nextID++
		}
	}
	return nextID
}
