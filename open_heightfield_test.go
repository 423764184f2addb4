package navmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSquareOpenHeightfield(t *testing.T) *OpenHeightfield {
	t.Helper()
	verts, tris := quad(nil, nil, 0, 0, 0, 4, 4)

	cfg := flatSquareConfig()
	bmin, bmax := CalcBounds(verts)
	width, height := CalcGridSize(bmin, bmax, cfg.CellSize)
	solid := NewSolidHeightfield(width, height, bmin, bmax, cfg.CellSize, cfg.CellHeight)

	flags := make([]uint8, len(tris)/3)
	MarkWalkableTriangles(&cfg, verts, tris, flags)

	ctx := NewBuildContext()
	require.NoError(t, RasterizeTriangles(ctx, solid, verts, tris, flags))
	FilterLowHeightSpans(ctx, cfg.MinTraversableHeight, solid)

	chf, err := BuildOpenHeightfield(ctx, &cfg, solid)
	require.NoError(t, err)
	return chf
}

// TestOpenHeightfieldNeighborLinksAreSymmetric walks every span's linked
// axis neighbor and confirms the reverse direction links back to the
// originating span, per the open heightfield's neighbor invariant.
func TestOpenHeightfieldNeighborLinksAreSymmetric(t *testing.T) {
	chf := flatSquareOpenHeightfield(t)
	require.NotEmpty(t, chf.Spans)

	checked := 0
	for y := int32(0); y < chf.Height; y++ {
		for x := int32(0); x < chf.Width; x++ {
			col := chf.Cells[x+y*chf.Width]
			for i := col.Index; i < col.Index+uint32(col.Count); i++ {
				s := &chf.Spans[i]
				for dir := int32(0); dir < 4; dir++ {
					nIdx, ok := chf.neighborSpan(x, y, s, dir)
					if !ok {
						continue
					}
					nx := x + dirOffsetX[dir]
					ny := y + dirOffsetY[dir]
					back := rotateCW(rotateCW(dir)) // opposite direction
					backIdx, backOK := chf.neighborSpan(nx, ny, &chf.Spans[nIdx], back)
					require.True(t, backOK, "neighbor at (%d,%d) dir %d must link back", nx, ny, back)
					assert.Equal(t, i, backIdx, "reverse link must point back to the originating span")
					checked++
				}
			}
		}
	}
	assert.Greater(t, checked, 0, "a 4x4 flat floor must produce at least one neighbor link")
}
