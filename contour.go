package navmesh

import assert "github.com/arl/assertgo"

// ContourVertex is one vertex of a raw or simplified contour, in voxel
// space. Region is the id of the region lying across the segment that
// starts at this vertex (the "outward" neighbor of that edge), matching the
// neighbor-region tag section 4.3 assigns during the robot-walk and later
// rewrites during simplification.
type ContourVertex struct {
	X, Y, Z int32
	Region  uint16
}

// Contour is one region's traced and simplified boundary.
type Contour struct {
	Region   uint16
	RawVerts []ContourVertex
	Verts    []ContourVertex
}

// ContourSet is every contour traced from an OpenHeightfield's regions.
type ContourSet struct {
	BoundedField
	BorderSize int32
	MaxError   float32
	Contours   []Contour
}

// BuildContours traces and simplifies the boundary of every region in chf,
// per section 4.3.
func BuildContours(ctx *BuildContext, cfg *Config, chf *OpenHeightfield) (*ContourSet, error) {
	assert.True(ctx != nil, "ctx should not be nil")
	assert.True(chf != nil, "chf should not be nil")

	ctx.StartTimer(TimerBuildContours)
	defer ctx.StopTimer(TimerBuildContours)

	coords := spanCoords(chf)
	flags := markContourFlags(chf, coords)

	cset := &ContourSet{
		BoundedField: chf.BoundedField,
		BorderSize:   chf.BorderSize,
		MaxError:     cfg.EdgeMaxDeviation,
	}

	w, h := chf.Width, chf.Height
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			for i := c.Index; i < c.Index+uint32(c.Count); i++ {
				if flags[i] == 0 {
					continue
				}
				if flags[i] == 0xf {
					ctx.Warningf("contour: discarding isolated span at (%d,%d), all four neighbors foreign", x, y)
					flags[i] = 0
					continue
				}

				region := chf.Spans[i].Region
				if region == NullRegion {
					flags[i] = 0
					continue
				}

				ctx.StartTimer(TimerBuildContoursTrace)
				raw := walkContour(chf, coords, i, flags)
				ctx.StopTimer(TimerBuildContoursTrace)

				if len(raw) < 3 {
					continue
				}

				ctx.StartTimer(TimerBuildContoursSimplify)
				simplified := simplifyContour(raw, cfg, chf.CellSize)
				simplified = removeVerticalSegments(simplified)
				simplified = removeIntersectingNullSegments(ctx, raw, simplified, chf.CellSize)
				ctx.StopTimer(TimerBuildContoursSimplify)

				if len(simplified) < 3 {
					simplified = recoverContour(raw, simplified)
				}
				if len(simplified) < 3 {
					ctx.Warningf("contour: region %d has fewer than 3 vertices after repair, discarding", region)
					continue
				}

				cset.Contours = append(cset.Contours, Contour{
					Region:   region,
					RawVerts: raw,
					Verts:    simplified,
				})
			}
		}
	}

	return cset, nil
}

// markContourFlags sets, per span, a 4-bit mask with one bit per direction
// that crosses into a different region (including the missing-neighbor
// case, treated as region NullRegion). A span whose own region is null
// carries no flags: null-region contours are handled separately by
// CleanupNullRegionBorders, not traced here.
func markContourFlags(chf *OpenHeightfield, coords []spanCoord) []uint8 {
	flags := make([]uint8, len(chf.Spans))
	for i := range chf.Spans {
		s := &chf.Spans[i]
		if s.Region == NullRegion {
			continue
		}
		c := coords[i]
		var same uint8
		for dir := int32(0); dir < 4; dir++ {
			var r uint16
			if ni, ok := chf.neighborSpan(c.x, c.y, s, dir); ok {
				r = chf.Spans[ni].Region
			}
			if r == s.Region {
				same |= 1 << uint(dir)
			}
		}
		flags[i] = same ^ 0xf
	}
	return flags
}

// cornerFloor is the height recorded for the vertex at the clockwise-forward
// corner of span i's edge in direction dir: the maximum floor among the
// span itself, its axis neighbor in dir, and the diagonal neighbor sharing
// that axis neighbor, tried via both the dir-then-rotated and
// rotated-then-dir orderings so a missing corner in one ordering doesn't
// silently drop the diagonal's contribution.
func cornerFloor(chf *OpenHeightfield, x, y int32, i uint32, dir int32) int32 {
	s := &chf.Spans[i]
	floor := int32(s.Floor)
	dirp := rotateCW(dir)

	if ai, ok := chf.neighborSpan(x, y, s, dir); ok {
		as := &chf.Spans[ai]
		floor = iMax(floor, int32(as.Floor))
		ax, ay := x+dirOffsetX[dir], y+dirOffsetY[dir]
		if ai2, ok2 := chf.neighborSpan(ax, ay, as, dirp); ok2 {
			floor = iMax(floor, int32(chf.Spans[ai2].Floor))
		}
	}
	if ai, ok := chf.neighborSpan(x, y, s, dirp); ok {
		as := &chf.Spans[ai]
		floor = iMax(floor, int32(as.Floor))
		ax, ay := x+dirOffsetX[dirp], y+dirOffsetY[dirp]
		if ai2, ok2 := chf.neighborSpan(ax, ay, as, dir); ok2 {
			floor = iMax(floor, int32(chf.Spans[ai2].Floor))
		}
	}
	return floor
}

// walkContour traces span i's region boundary with the robot-on-the-floor
// walk: at a flagged (boundary) edge, emit its clockwise-forward corner,
// clear the bit and rotate clockwise; at an unflagged (interior) edge, step
// to the neighbor and rotate counter-clockwise. Terminates when both the
// starting span and starting direction recur, or after 65535 iterations.
func walkContour(chf *OpenHeightfield, coords []spanCoord, startI uint32, flags []uint8) []ContourVertex {
	const maxIters = 65535

	var dir int32
	for flags[startI]&(1<<uint(dir)) == 0 {
		dir++
		if dir == 4 {
			return nil
		}
	}
	startDir := dir
	i := startI

	var verts []ContourVertex
	for iter := 0; iter < maxIters; iter++ {
		c := coords[i]
		x, y := c.x, c.y
		s := &chf.Spans[i]

		if flags[i]&(1<<uint(dir)) != 0 {
			floor := cornerFloor(chf, x, y, i, dir)
			px, pz := x, y
			switch dir {
			case 0:
				pz++
			case 1:
				px++
				pz++
			case 2:
				px++
			}

			var region uint16
			if ni, ok := chf.neighborSpan(x, y, s, dir); ok {
				region = chf.Spans[ni].Region
			}
			verts = append(verts, ContourVertex{X: px, Y: floor, Z: pz, Region: region})

			flags[i] &^= 1 << uint(dir)
			dir = rotateCW(dir)
		} else {
			ni, ok := chf.neighborSpan(x, y, s, dir)
			if !ok {
				break
			}
			i = ni
			dir = rotateCCW(dir)
		}

		if i == startI && dir == startDir {
			break
		}
	}
	return verts
}
