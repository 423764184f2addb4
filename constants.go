package navmesh

const (
	// NullRegion is the reserved region id meaning "no region" / obstacle.
	NullRegion uint16 = 0

	// NotConnected marks a missing neighbor in a packed connection field.
	NotConnected int32 = 0x3f

	// NullIndex marks a missing vertex or polygon index.
	NullIndex uint16 = 0xffff

	// borderRegion flags a region that touches the tile border (reserved
	// high bit of a region id, unused by solo builds but kept so region ids
	// stay compatible with a future tiled extension without renumbering).
	borderRegion uint16 = 0x8000
	// regionIDMask masks off the border flag bit.
	regionIDMask uint16 = 0x7fff

	// areaBorderFlag tags a contour vertex lying on the outer area border.
	areaBorderFlag uint32 = 0x10000
	// borderVertexFlag tags a contour vertex that should be removed by
	// edge simplification once it is no longer needed to bound a region.
	borderVertexFlag uint32 = 0x20000
	// contourRegionMask masks the region id out of a packed contour tag.
	contourRegionMask uint32 = 0xffff

	// TessWallEdges simplifies edges bordering the null region.
	TessWallEdges uint8 = 0x01
	// TessAreaEdges simplifies edges bordering area-type changes.
	TessAreaEdges uint8 = 0x02

	// maxVertsPerContourCap bounds the aggregate source-vertex count per
	// distilled spec section 4.4's capacity-overrun rule: BuildPolyMeshField
	// fails with ErrCapacityOverrun above it. TriangulatePolygon keeps its
	// per-vertex flags in a separate slice, not in the vertex indices.
	maxVertsPerContourCap = 0x0FFFFFFF

	unsetHeight uint16 = 0xffff

	// FlagWalkable marks a solid-heightfield span, or the open span
	// derived from it, as walkable. It is the only span flag bit the
	// pipeline defines. FilterLowHangingObstacles sets it on a span just
	// below a walkable one; FilterLedgeSpans and FilterLowHeightSpans clear
	// it.
	FlagWalkable uint8 = 1

	diagonalFlag int32 = 1 << 30
)
