package navmesh

// spansPerPool is the number of HeightSpans allocated per pool block, the
// same arena-block size the reference heightfield uses.
const spansPerPool = 2048

// HeightSpan is a vertically contiguous run of obstructed voxel cells in one
// column of a SolidHeightfield. Min and Max are inclusive height indices
// with Min <= Max. Spans in a column form a singly linked ascending list via
// Next; the column's spans are allocated out of SolidHeightfield's own
// freelist pool rather than individually, per the arena guidance of
// section 9 of the specification.
type HeightSpan struct {
	Min, Max uint16
	Flags    uint8
	Next     *HeightSpan
}

type spanPool struct {
	items [spansPerPool]HeightSpan
	next  *spanPool
}

// SolidHeightfield is the voxelizer's output: a width x height grid of
// columns, each holding an ascending list of solid spans.
type SolidHeightfield struct {
	BoundedField
	Spans []*HeightSpan

	pools    *spanPool
	poolNext int
	freelist *HeightSpan
}

// NewSolidHeightfield allocates a SolidHeightfield covering [bmin,bmax] at
// the given cell size/height.
func NewSolidHeightfield(width, height int32, bmin, bmax [3]float32, cellSize, cellHeight float32) *SolidHeightfield {
	return &SolidHeightfield{
		BoundedField: BoundedField{
			Width: width, Height: height,
			CellSize: cellSize, CellHeight: cellHeight,
			BMin: bmin, BMax: bmax,
		},
		Spans: make([]*HeightSpan, width*height),
	}
}

func (hf *SolidHeightfield) allocSpan() *HeightSpan {
	if hf.freelist != nil {
		s := hf.freelist
		hf.freelist = s.Next
		return s
	}
	if hf.pools == nil || hf.poolNext >= spansPerPool {
		hf.pools = &spanPool{next: hf.pools}
		hf.poolNext = 0
	}
	s := &hf.pools.items[hf.poolNext]
	hf.poolNext++
	return s
}

func (hf *SolidHeightfield) freeSpan(s *HeightSpan) {
	*s = HeightSpan{Next: hf.freelist}
	hf.freelist = s
}

// AddSpan inserts the voxel run [smin,smax] with the given flags into
// column (x,y), merging with any existing span it overlaps or abuts
// (separated by fewer than one empty cell), per the ADD semantics of
// section 4.1: the resulting span's flags are taken from whichever
// contributor owns the final top voxel, since slope-walkability is
// assessed at the top surface.
func (hf *SolidHeightfield) AddSpan(x, y int32, smin, smax uint16, flags uint8) bool {
	idx := x + y*hf.Width

	s := hf.allocSpan()
	s.Min = smin
	s.Max = smax
	s.Flags = flags
	s.Next = nil

	if hf.Spans[idx] == nil {
		hf.Spans[idx] = s
		return true
	}

	var prev *HeightSpan
	cur := hf.Spans[idx]

	for cur != nil {
		if cur.Min > s.Max+1 {
			// Current span is far enough above to stop; insert before it.
			break
		} else if cur.Max+1 < s.Min {
			// Current span is far enough below; continue up the list.
			prev = cur
			cur = cur.Next
		} else {
			// Overlap or abut: merge s into cur, then absorb every span
			// the merged range now overlaps. The top voxel's flags win.
			switch {
			case s.Max == cur.Max:
				s.Flags |= cur.Flags
			case cur.Max > s.Max:
				s.Flags = cur.Flags
			}
			if cur.Min < s.Min {
				s.Min = cur.Min
			}
			if cur.Max > s.Max {
				s.Max = cur.Max
			}

			next := cur.Next
			if prev != nil {
				prev.Next = next
			} else {
				hf.Spans[idx] = next
			}
			hf.freeSpan(cur)
			cur = next
		}
	}

	if prev != nil {
		s.Next = prev.Next
		prev.Next = s
	} else {
		s.Next = hf.Spans[idx]
		hf.Spans[idx] = s
	}
	return true
}
