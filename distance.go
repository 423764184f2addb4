package navmesh

import assert "github.com/arl/assertgo"

// BuildDistanceField computes the border-distance field of chf (section
// 4.2.3): every span touching a missing axis or diagonal neighbor gets
// distance 0, every other span gets the graph distance to the nearest such
// border span, via two raster passes. It also applies smoothing (section
// 4.2.4) when cfg.SmoothingThreshold > 0, and records chf.MaxDistance.
func BuildDistanceField(ctx *BuildContext, cfg *Config, chf *OpenHeightfield) {
	assert.True(ctx != nil, "ctx should not be nil")
	assert.True(chf != nil, "chf should not be nil")

	ctx.StartTimer(TimerBuildDistanceField)
	defer ctx.StopTimer(TimerBuildDistanceField)

	src := rawBorderDistance(ctx, chf)
	if cfg.SmoothingThreshold > 0 {
		src = smoothDistanceField(ctx, chf, src, cfg.SmoothingThreshold)
	}

	var maxDist uint16
	for i := range src {
		chf.Spans[i].DistToBorder = src[i]
		if src[i] > maxDist {
			maxDist = src[i]
		}
	}
	chf.MaxDistance = maxDist
}

func isBorderSpan(chf *OpenHeightfield, x, y int32, s *OpenHeightSpan) bool {
	for dir := int32(0); dir < 4; dir++ {
		if getCon(s.Con, dir) == NotConnected {
			return true
		}
		if _, ok := chf.diagNeighborSpan(x, y, s, dir); !ok {
			return true
		}
	}
	return false
}

func rawBorderDistance(ctx *BuildContext, chf *OpenHeightfield) []uint16 {
	ctx.StartTimer(TimerBuildDistanceFieldDist)
	defer ctx.StopTimer(TimerBuildDistanceFieldDist)

	w, h := chf.Width, chf.Height
	src := make([]uint16, len(chf.Spans))
	for i := range src {
		src[i] = 0xffff
	}

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			for i := c.Index; i < c.Index+uint32(c.Count); i++ {
				s := &chf.Spans[i]
				if isBorderSpan(chf, x, y, s) {
					src[i] = 0
				}
			}
		}
	}

	update := func(i uint32, cand uint16) {
		if cand < src[i] {
			src[i] = cand
		}
	}

	// Forward pass: west and south axis neighbors, plus the southwest
	// (west-then-south) and southeast (south-then-east) diagonals; the
	// backward pass below covers the other four neighbors.
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			for i := c.Index; i < c.Index+uint32(c.Count); i++ {
				s := &chf.Spans[i]
				if ai, ok := chf.neighborSpan(x, y, s, 0); ok { // west
					update(i, src[ai]+2)
					ax, ay := x+dirOffsetX[0], y+dirOffsetY[0]
					as := &chf.Spans[ai]
					if aai, ok := chf.neighborSpan(ax, ay, as, 3); ok { // south from west
						update(i, src[aai]+3)
					}
				}
				if ai, ok := chf.neighborSpan(x, y, s, 3); ok { // south
					update(i, src[ai]+2)
					ax, ay := x+dirOffsetX[3], y+dirOffsetY[3]
					as := &chf.Spans[ai]
					if aai, ok := chf.neighborSpan(ax, ay, as, 2); ok { // east from south
						update(i, src[aai]+3)
					}
				}
			}
		}
	}

	// Backward pass: east and north axis neighbors, plus their cross
	// diagonals.
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			c := chf.Cells[x+y*w]
			for i := c.Index; i < c.Index+uint32(c.Count); i++ {
				s := &chf.Spans[i]
				if ai, ok := chf.neighborSpan(x, y, s, 2); ok { // east
					update(i, src[ai]+2)
					ax, ay := x+dirOffsetX[2], y+dirOffsetY[2]
					as := &chf.Spans[ai]
					if aai, ok := chf.neighborSpan(ax, ay, as, 1); ok { // north from east
						update(i, src[aai]+3)
					}
				}
				if ai, ok := chf.neighborSpan(x, y, s, 1); ok { // north
					update(i, src[ai]+2)
					ax, ay := x+dirOffsetX[1], y+dirOffsetY[1]
					as := &chf.Spans[ai]
					if aai, ok := chf.neighborSpan(ax, ay, as, 0); ok { // west from north
						update(i, src[aai]+3)
					}
				}
			}
		}
	}

	return src
}

// smoothDistanceField applies one box-blur pass over the distance field,
// per section 4.2.4: spans at or below threshold are pinned at threshold,
// spans above it become (sum+5)/9 of themselves and their eight neighbors,
// with missing axis neighbors contributing the span's own value doubled and
// missing diagonal neighbors contributing it once. All distances are
// replaced atomically after the full sweep.
func smoothDistanceField(ctx *BuildContext, chf *OpenHeightfield, src []uint16, threshold int32) []uint16 {
	ctx.StartTimer(TimerBuildDistanceFieldBlur)
	defer ctx.StopTimer(TimerBuildDistanceFieldBlur)

	w, h := chf.Width, chf.Height
	dst := make([]uint16, len(src))

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			for i := c.Index; i < c.Index+uint32(c.Count); i++ {
				cd := int32(src[i])
				if cd <= threshold {
					dst[i] = uint16(threshold)
					continue
				}
				s := &chf.Spans[i]
				sum := cd
				for dir := int32(0); dir < 4; dir++ {
					if ai, ok := chf.neighborSpan(x, y, s, dir); ok {
						sum += int32(src[ai])
						ax, ay := x+dirOffsetX[dir], y+dirOffsetY[dir]
						as := &chf.Spans[ai]
						dir2 := rotateCW(dir)
						if aai, ok := chf.neighborSpan(ax, ay, as, dir2); ok {
							sum += int32(src[aai])
						} else {
							sum += cd
						}
					} else {
						sum += cd * 2
					}
				}
				dst[i] = uint16((sum + 5) / 9)
			}
		}
	}
	return dst
}
