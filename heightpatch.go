package navmesh

import "github.com/arl/math32"

// heightPatch is a rectangular window of floor heights over an open
// heightfield, sized to a single polygon's xz bounds plus a 1-cell margin.
// data is row-major (width-fast), one cell per (x,z) column; a cell holds
// unsetHeight until buildHeightPatch fills it. Grounded on the teacher's
// recast/meshdetail.go HeightPatch/getHeightData.
type heightPatch struct {
	xmin, ymin    int32
	width, height int32
	data          []uint16
}

// heightSeed is one column queued for the height-patch flood fill.
type heightSeed struct {
	x, y int32
	i    uint32
}

// polyBounds returns the xz cell bounds of poly, expanded by one cell and
// clamped to the field, matching section 4.5's height-patch sizing rule.
func polyBounds(poly []MeshVertex, chf *OpenHeightfield) (xmin, xmax, ymin, ymax int32) {
	xmin, ymin = chf.Width, chf.Height
	xmax, ymax = 0, 0
	for _, v := range poly {
		xmin = iMin(xmin, v.X)
		xmax = iMax(xmax, v.X)
		ymin = iMin(ymin, v.Z)
		ymax = iMax(ymax, v.Z)
	}
	xmin = iMax(0, xmin-1)
	xmax = iMin(chf.Width, xmax+1)
	ymin = iMax(0, ymin-1)
	ymax = iMin(chf.Height, ymax+1)
	return
}

// bfsOffsets are the 9 candidate columns (self plus 8 neighbors) probed by
// seedHeightPatchAtCenter, matching the teacher's bsOffset table.
var bfsOffsets = [9][2]int32{
	{0, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0},
}

// buildHeightPatch fills hp with floor heights sampled from region's spans
// across hp's window, flood-filling outward from the spans that border a
// different region so the search never wanders onto an unrelated, possibly
// overlapping polygon. Grounded on the teacher's getHeightData.
func buildHeightPatch(chf *OpenHeightfield, poly []MeshVertex, region uint16, hp *heightPatch) {
	for i := range hp.data {
		hp.data[i] = unsetHeight
	}

	var queue []heightSeed
	empty := true

	for hy := int32(0); hy < hp.height; hy++ {
		y := hp.ymin + hy
		for hx := int32(0); hx < hp.width; hx++ {
			x := hp.xmin + hx
			c := chf.Cells[x+y*chf.Width]
			for i := c.Index; i < c.Index+uint32(c.Count); i++ {
				s := &chf.Spans[i]
				if s.Region != region {
					continue
				}
				hp.data[hx+hy*hp.width] = s.Floor
				empty = false

				border := false
				for dir := int32(0); dir < 4; dir++ {
					if ni, ok := chf.neighborSpan(x, y, s, dir); ok {
						if chf.Spans[ni].Region != region {
							border = true
							break
						}
					}
				}
				if border {
					queue = append(queue, heightSeed{x, y, i})
				}
				break
			}
		}
	}

	if empty {
		seedHeightPatchAtCenter(chf, poly, hp, &queue)
	}

	for head := 0; head < len(queue); head++ {
		q := queue[head]
		s := &chf.Spans[q.i]
		for dir := int32(0); dir < 4; dir++ {
			ni, ok := chf.neighborSpan(q.x, q.y, s, dir)
			if !ok {
				continue
			}
			ax := q.x + dirOffsetX[dir]
			ay := q.y + dirOffsetY[dir]
			hx := ax - hp.xmin
			hy := ay - hp.ymin
			if hx < 0 || hx >= hp.width || hy < 0 || hy >= hp.height {
				continue
			}
			if hp.data[hx+hy*hp.width] != unsetHeight {
				continue
			}
			hp.data[hx+hy*hp.width] = chf.Spans[ni].Floor
			queue = append(queue, heightSeed{ax, ay, ni})
		}
	}
}

// seedHeightPatchAtCenter is the fallback used when a polygon's own region
// contributes no span to the window (a merged polygon straddling contour
// simplification artifacts): it walks, span by span, from the column
// closest to a polygon vertex toward the polygon's xz centroid, recording
// the column it reaches as a usable seed. A direct-to-center move is not
// safe here: simplification can leave the straight line blocked, so the
// walk is a DFS that backtracks through visited columns instead. Grounded
// on the teacher's seedArrayWithPolyCenter.
func seedHeightPatchAtCenter(chf *OpenHeightfield, poly []MeshVertex, hp *heightPatch, queue *[]heightSeed) {
	startX, startY := int32(0), int32(0)
	startI := int32(-1)
	dmin := int32(unsetHeight)
	for _, v := range poly {
		for _, off := range bfsOffsets {
			ax := v.X + off[0]
			az := v.Z + off[1]
			if ax < hp.xmin || ax >= hp.xmin+hp.width || az < hp.ymin || az >= hp.ymin+hp.height {
				continue
			}
			c := chf.Cells[ax+az*chf.Width]
			for i := c.Index; i < c.Index+uint32(c.Count); i++ {
				d := iAbs(v.Y - int32(chf.Spans[i].Floor))
				if d < dmin {
					startX, startY, startI, dmin = ax, az, int32(i), d
				}
			}
		}
	}
	if startI == -1 {
		return
	}

	var pcx, pcy int32
	for _, v := range poly {
		pcx += v.X
		pcy += v.Z
	}
	pcx /= int32(len(poly))
	pcy /= int32(len(poly))

	visited := make(map[int64]bool)
	key := func(x, y int32) int64 { return int64(x)<<32 | int64(uint32(y)) }
	visited[key(startX, startY)] = true

	stack := []heightSeed{{startX, startY, uint32(startI)}}
	cx, cy, ci := startX, startY, uint32(startI)
	dirs := [4]int32{0, 1, 2, 3}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy, ci = top.x, top.y, top.i
		if cx == pcx && cy == pcy {
			break
		}

		var directDir int32
		if cx == pcx {
			if pcy > cy {
				directDir = 1
			} else {
				directDir = 3
			}
		} else {
			if pcx > cx {
				directDir = 2
			} else {
				directDir = 0
			}
		}
		dirs[directDir], dirs[3] = dirs[3], dirs[directDir]

		s := &chf.Spans[ci]
		for _, dir := range dirs {
			ni, ok := chf.neighborSpan(cx, cy, s, dir)
			if !ok {
				continue
			}
			nx := cx + dirOffsetX[dir]
			ny := cy + dirOffsetY[dir]
			if visited[key(nx, ny)] {
				continue
			}
			visited[key(nx, ny)] = true
			stack = append(stack, heightSeed{nx, ny, ni})
		}

		dirs[directDir], dirs[3] = dirs[3], dirs[directDir]
	}

	hx, hy := cx-hp.xmin, cy-hp.ymin
	if hx >= 0 && hx < hp.width && hy >= 0 && hy < hp.height {
		hp.data[hx+hy*hp.width] = chf.Spans[ci].Floor
		*queue = append(*queue, heightSeed{cx, cy, ci})
	}
}

// sampleHeight returns the floor height, in world units, that hp records
// nearest the world position (wx, wy, wz): wy (the height interpolated
// along the edge being sampled) is used only to pick the best candidate
// when the directly overlapping cell is unset and the search must spiral
// outward up to radius cells. Grounded on the teacher's getHeight.
func sampleHeight(wx, wy, wz float32, cellSize, cellHeight float32, radius int32, hp *heightPatch) float32 {
	ix := int32(math32.Floor(wx/cellSize + 0.01))
	iz := int32(math32.Floor(wz/cellSize + 0.01))
	ix = iClamp(ix-hp.xmin, 0, hp.width-1)
	iz = iClamp(iz-hp.ymin, 0, hp.height-1)
	h := hp.data[ix+iz*hp.width]

	if h == unsetHeight {
		x, z := int32(1), int32(0)
		dx, dz := int32(1), int32(0)
		maxSize := radius*2 + 1
		maxIter := maxSize*maxSize - 1
		nextRingStart, nextRingIters := int32(8), int32(16)
		dmin := float32(1e30)

		for i := int32(0); i < maxIter; i++ {
			nx, nz := ix+x, iz+z
			if nx >= 0 && nz >= 0 && nx < hp.width && nz < hp.height {
				nh := hp.data[nx+nz*hp.width]
				if nh != unsetHeight {
					d := math32.Abs(float32(nh)*cellHeight - wy)
					if d < dmin {
						h, dmin = nh, d
					}
				}
			}
			if i+1 == nextRingStart {
				if h != unsetHeight {
					break
				}
				nextRingStart += nextRingIters
				nextRingIters += 8
			}
			if (x == z) || (x < 0 && x == -z) || (x > 0 && x == 1-z) {
				dx, dz = -dz, dx
			}
			x += dx
			z += dz
		}
	}
	return float32(h) * cellHeight
}
