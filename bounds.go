package navmesh

// dirOffsetX and dirOffsetY give the (width, depth) grid offset of each of
// the four cardinal directions, in the fixed order mandated by section 3 of
// the specification: 0 = (-1,0), 1 = (0,+1), 2 = (+1,0), 3 = (0,-1). This
// ordering is load-bearing: the watershed, contour walk, and adjacency code
// all rely on rotateCW/rotateCCW matching it exactly.
var dirOffsetX = [4]int32{-1, 0, 1, 0}
var dirOffsetY = [4]int32{0, 1, 0, -1}

// dirOffsetXf/dirOffsetYf are float32 parallels, used by a handful of
// corner-vertex computations where the surrounding arithmetic is already
// float32.
var dirOffsetXf = [4]float32{-1, 0, 1, 0}
var dirOffsetYf = [4]float32{0, 1, 0, -1}

// rotateCW returns the direction 90 degrees clockwise from d.
func rotateCW(d int32) int32 { return (d + 1) & 3 }

// rotateCCW returns the direction 90 degrees counter-clockwise from d.
func rotateCCW(d int32) int32 { return (d + 3) & 3 }

// BoundedField is the shared base of every voxel-grid stage structure: grid
// extents, cell size, and world bounds.
type BoundedField struct {
	Width, Height int32 // grid extents: Width along x, Height along z
	CellSize      float32
	CellHeight    float32
	BMin, BMax    [3]float32
}

// CalcGridSize returns the voxel grid dimensions that cover [bmin,bmax] at
// the given cell size.
func CalcGridSize(bmin, bmax [3]float32, cellSize float32) (width, height int32) {
	width = int32((bmax[0]-bmin[0])/cellSize + 0.5)
	height = int32((bmax[2]-bmin[2])/cellSize + 0.5)
	return width, height
}

// CalcBounds computes the axis-aligned world bounds of a flat vertex array.
func CalcBounds(verts []float32) (bmin, bmax [3]float32) {
	bmin = [3]float32{verts[0], verts[1], verts[2]}
	bmax = bmin
	for i := 3; i < len(verts); i += 3 {
		for k := 0; k < 3; k++ {
			if verts[i+k] < bmin[k] {
				bmin[k] = verts[i+k]
			}
			if verts[i+k] > bmax[k] {
				bmax[k] = verts[i+k]
			}
		}
	}
	return bmin, bmax
}

func iMin(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func iMax(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func iAbs(a int32) int32 {
	if a < 0 {
		return -a
	}
	return a
}

func iClamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func u16Min(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}

func u16Max(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}

// setCon packs the neighbor span index for direction dir into the 6 bits of
// con reserved for it.
func setCon(con uint32, dir int32, i int32) uint32 {
	shift := uint32(dir) * 6
	return (con &^ (uint32(0x3f) << shift)) | ((uint32(i) & 0x3f) << shift)
}

// getCon unpacks the neighbor span index for direction dir, or
// NotConnected if none is set.
func getCon(con uint32, dir int32) int32 {
	shift := uint32(dir) * 6
	return int32((con >> shift) & 0x3f)
}
