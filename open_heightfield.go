package navmesh

import assert "github.com/arl/assertgo"

// OpenColumn records where one (x,y) column's spans live in
// OpenHeightfield.Spans: Spans[Index : Index+uint32(Count)].
type OpenColumn struct {
	Index uint32
	Count uint8
}

// OpenHeightSpan is a walkable run in one column of an OpenHeightfield:
// Floor is the solid-surface top it rests on, Ceil is the height at which
// headroom runs out (unsetHeight if unbounded). Con packs the index, within
// each neighbor column, of the linked neighbor span in each of the four
// directions (NotConnected if none). Region is 0 (NullRegion) until the
// watershed assigns it. Flags is per-span scratch space; no stage in this
// package uses it (the contour walker and the null-border cleanup keep
// their own per-span slices), so it stays zero.
type OpenHeightSpan struct {
	Floor, Ceil        uint16
	Con                uint32
	Region             uint16
	DistToBorder       uint16
	DistToRegionCore   uint16
	Flags              uint32
}

func (s *OpenHeightSpan) height() int32 {
	if s.Ceil == unsetHeight {
		return int32(unsetHeight)
	}
	return int32(s.Ceil) - int32(s.Floor)
}

// OpenHeightfield is the inverted, neighbor-linked, region-tagged view of a
// SolidHeightfield that every stage past the voxelizer operates on.
type OpenHeightfield struct {
	BoundedField
	WalkableHeight int32
	WalkableClimb  int32
	BorderSize     int32
	MaxDistance    uint16
	MaxRegions     uint16

	Cells []OpenColumn
	Spans []OpenHeightSpan
}

// BuildOpenHeightfield inverts solid's walkable spans into open spans
// (section 4.2.1) and links axis neighbors (section 4.2.2).
func BuildOpenHeightfield(ctx *BuildContext, cfg *Config, solid *SolidHeightfield) (*OpenHeightfield, error) {
	assert.True(ctx != nil, "ctx should not be nil")
	assert.True(solid != nil, "solid should not be nil")

	ctx.StartTimer(TimerBuildOpenHeightfield)
	defer ctx.StopTimer(TimerBuildOpenHeightfield)

	w, h := solid.Width, solid.Height

	spanCount := int32(0)
	for i := int32(0); i < w*h; i++ {
		for s := solid.Spans[i]; s != nil; s = s.Next {
			if s.Flags&FlagWalkable != 0 {
				spanCount++
			}
		}
	}

	chf := &OpenHeightfield{
		BoundedField: BoundedField{
			Width: w, Height: h,
			CellSize: solid.CellSize, CellHeight: solid.CellHeight,
			BMin: solid.BMin, BMax: solid.BMax,
		},
		WalkableHeight: cfg.MinTraversableHeight,
		WalkableClimb:  cfg.MaxTraversableStep,
		BorderSize:     cfg.TraversableAreaBorderSize,
		Cells:          make([]OpenColumn, w*h),
		Spans:          make([]OpenHeightSpan, spanCount),
	}
	chf.BMax[1] += float32(cfg.MinTraversableHeight) * solid.CellHeight

	idx := uint32(0)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			col := x + y*w
			s := solid.Spans[col]
			if s == nil {
				continue
			}
			start := idx
			var count uint8
			for ; s != nil; s = s.Next {
				if s.Flags&FlagWalkable == 0 {
					continue
				}
				floor := s.Max
				ceil := unsetHeight
				if s.Next != nil {
					ceil = s.Next.Min
				}
				chf.Spans[idx] = OpenHeightSpan{
					Floor: floor,
					Ceil:  ceil,
					Con:   packedNotConnected(),
				}
				idx++
				count++
			}
			chf.Cells[col] = OpenColumn{Index: start, Count: count}
		}
	}

	linkOpenHeightfieldNeighbors(chf)

	return chf, nil
}

func packedNotConnected() uint32 {
	var con uint32
	for d := int32(0); d < 4; d++ {
		con = setCon(con, d, NotConnected)
	}
	return con
}

func linkOpenHeightfieldNeighbors(chf *OpenHeightfield) {
	w, h := chf.Width, chf.Height
	minH := int32(chf.WalkableHeight)
	maxStep := chf.WalkableClimb

	ceilOf := func(s *OpenHeightSpan) int32 {
		if s.Ceil == unsetHeight {
			return 1 << 30
		}
		return int32(s.Ceil)
	}

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := chf.Cells[x+y*w]
			for i := c.Index; i < c.Index+uint32(c.Count); i++ {
				s := &chf.Spans[i]
				for dir := int32(0); dir < 4; dir++ {
					nx := x + dirOffsetX[dir]
					ny := y + dirOffsetY[dir]
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					nc := chf.Cells[nx+ny*w]
					for k := nc.Index; k < nc.Index+uint32(nc.Count); k++ {
						ns := &chf.Spans[k]
						top := iMin(ceilOf(s), ceilOf(ns))
						bot := iMax(int32(s.Floor), int32(ns.Floor))
						if top-bot >= minH && iAbs(int32(ns.Floor)-int32(s.Floor)) <= maxStep {
							localIdx := int32(k - nc.Index)
							s.Con = setCon(s.Con, dir, localIdx)
							break
						}
					}
				}
			}
		}
	}
}

// neighborSpan returns the span linked from s in direction dir within
// column (x,y)'s neighbor, and ok=false if there is none.
func (chf *OpenHeightfield) neighborSpan(x, y int32, s *OpenHeightSpan, dir int32) (idx uint32, ok bool) {
	local := getCon(s.Con, dir)
	if local == NotConnected {
		return 0, false
	}
	nx := x + dirOffsetX[dir]
	ny := y + dirOffsetY[dir]
	nc := chf.Cells[nx+ny*chf.Width]
	return nc.Index + uint32(local), true
}

// diagNeighborSpan returns the span reached by first moving in direction
// dir then in direction dir+1 (mod 4), i.e. the diagonal neighbor sharing
// those two axis neighbors, and ok=false if either leg is missing.
func (chf *OpenHeightfield) diagNeighborSpan(x, y int32, s *OpenHeightSpan, dir int32) (idx uint32, ok bool) {
	axIdx, ok := chf.neighborSpan(x, y, s, dir)
	if !ok {
		return 0, false
	}
	ax := x + dirOffsetX[dir]
	ay := y + dirOffsetY[dir]
	axSpan := &chf.Spans[axIdx]
	dir2 := rotateCW(dir)
	return chf.neighborSpan(ax, ay, axSpan, dir2)
}
