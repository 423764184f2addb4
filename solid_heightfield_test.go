package navmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spansOf(hf *SolidHeightfield, x, y int32) []*HeightSpan {
	var out []*HeightSpan
	for s := hf.Spans[x+y*hf.Width]; s != nil; s = s.Next {
		out = append(out, s)
	}
	return out
}

func TestAddSpanNonOverlapping(t *testing.T) {
	hf := NewSolidHeightfield(4, 4, [3]float32{0, 0, 0}, [3]float32{4, 4, 4}, 1, 1)

	require.True(t, hf.AddSpan(1, 1, 0, 2, FlagWalkable))
	require.True(t, hf.AddSpan(1, 1, 10, 12, FlagWalkable))

	spans := spansOf(hf, 1, 1)
	require.Len(t, spans, 2)
	assert.Equal(t, uint16(0), spans[0].Min)
	assert.Equal(t, uint16(2), spans[0].Max)
	assert.Equal(t, uint16(10), spans[1].Min)
	assert.Equal(t, uint16(12), spans[1].Max)
}

func TestAddSpanMergesAbuttingSpans(t *testing.T) {
	hf := NewSolidHeightfield(4, 4, [3]float32{0, 0, 0}, [3]float32{4, 4, 4}, 1, 1)

	require.True(t, hf.AddSpan(2, 2, 0, 4, FlagWalkable))
	// next.min == curr.max + 1 must merge: separated by fewer than 2 units.
	require.True(t, hf.AddSpan(2, 2, 5, 8, 0))

	spans := spansOf(hf, 2, 2)
	require.Len(t, spans, 1)
	assert.Equal(t, uint16(0), spans[0].Min)
	assert.Equal(t, uint16(8), spans[0].Max)
}

func TestAddSpanKeepsSpansSeparatedByTwoOrMore(t *testing.T) {
	hf := NewSolidHeightfield(4, 4, [3]float32{0, 0, 0}, [3]float32{4, 4, 4}, 1, 1)

	require.True(t, hf.AddSpan(0, 0, 0, 4, FlagWalkable))
	require.True(t, hf.AddSpan(0, 0, 6, 8, FlagWalkable))

	spans := spansOf(hf, 0, 0)
	require.Len(t, spans, 2)
}

func TestAddSpanTopFlagsWin(t *testing.T) {
	hf := NewSolidHeightfield(4, 4, [3]float32{0, 0, 0}, [3]float32{4, 4, 4}, 1, 1)

	require.True(t, hf.AddSpan(0, 0, 0, 5, 0))
	// New span's top is higher, so its flags should win.
	require.True(t, hf.AddSpan(0, 0, 3, 9, FlagWalkable))

	spans := spansOf(hf, 0, 0)
	require.Len(t, spans, 1)
	assert.Equal(t, FlagWalkable, spans[0].Flags)

	hf2 := NewSolidHeightfield(4, 4, [3]float32{0, 0, 0}, [3]float32{4, 4, 4}, 1, 1)
	require.True(t, hf2.AddSpan(0, 0, 0, 9, FlagWalkable))
	// New span's top is lower, so the incumbent's flags are kept.
	require.True(t, hf2.AddSpan(0, 0, 3, 5, 0))
	spans2 := spansOf(hf2, 0, 0)
	require.Len(t, spans2, 1)
	assert.Equal(t, FlagWalkable, spans2[0].Flags)
}

func TestAddSpanAbsorbsMultipleSpans(t *testing.T) {
	hf := NewSolidHeightfield(4, 4, [3]float32{0, 0, 0}, [3]float32{4, 4, 4}, 1, 1)

	require.True(t, hf.AddSpan(0, 0, 0, 2, 0))
	require.True(t, hf.AddSpan(0, 0, 4, 6, 0))
	require.True(t, hf.AddSpan(0, 0, 8, 10, 0))
	require.True(t, hf.AddSpan(0, 0, 1, 9, FlagWalkable))

	spans := spansOf(hf, 0, 0)
	require.Len(t, spans, 1)
	assert.Equal(t, uint16(0), spans[0].Min)
	assert.Equal(t, uint16(10), spans[0].Max)
}
