package navmesh

import (
	"time"

	"github.com/google/uuid"
)

// TriangleMesh is the navmesh a Builder produces: a flat world-space vertex
// array, a flat triangle index array (three int32s per triangle, indexing
// Verts), and one region id per triangle, parallel to the triangle array.
type TriangleMesh struct {
	Verts   []float32
	Tris    []int32
	Regions []uint16
}

// StageTiming is one phase's accumulated duration, taken from a
// BuildContext's timer ledger.
type StageTiming struct {
	Label    TimerLabel
	Duration time.Duration
}

// BuildStats summarizes one Builder.Build call: the total wall time, a
// per-phase breakdown, and every log message the build emitted.
type BuildStats struct {
	Total    time.Duration
	Phases   []StageTiming
	Messages []Message
}

// Diagnostics is the optional snapshot of every pipeline stage's
// intermediate structure, populated only when Builder.KeepDiagnostics is
// set before calling Build.
type Diagnostics struct {
	Solid   *SolidHeightfield
	Open    *OpenHeightfield
	Contour *ContourSet
	Poly    *PolyMeshField
	Detail  *DetailMesh
}

var timedPhases = []TimerLabel{
	TimerRasterizeTriangles,
	TimerFilterLowHangingObstacles,
	TimerFilterLedgeSpans,
	TimerFilterLowHeightSpans,
	TimerBuildOpenHeightfield,
	TimerBuildDistanceField,
	TimerBuildRegions,
	TimerBuildContours,
	TimerBuildPolyMesh,
	TimerBuildDetailMesh,
}

// Builder owns one run's configuration and state. A Builder is safe to
// reuse across calls to Build, each producing its own RunID and its own
// BuildContext, so concurrent Builds never share log or timer state.
type Builder struct {
	Config Config

	// KeepDiagnostics, if set before Build, causes Build to also return a
	// Diagnostics snapshot of every intermediate pipeline structure.
	KeepDiagnostics bool
}

// NewBuilder returns a Builder configured with cfg.
func NewBuilder(cfg Config) *Builder {
	return &Builder{Config: cfg}
}

// Build runs the full pipeline — voxelization, filtering, region growth,
// contour tracing, polygon meshing, and detail sampling — over the
// triangle soup (verts, tris) and returns the resulting navmesh, its build
// statistics, a fresh RunID, and (if KeepDiagnostics is set) a snapshot of
// every intermediate stage.
func (b *Builder) Build(verts []float32, tris []int32) (*TriangleMesh, string, BuildStats, *Diagnostics, error) {
	runID := uuid.NewString()

	ctx := NewBuildContext()
	ctx.StartTimer(TimerTotal)
	defer ctx.StopTimer(TimerTotal)

	if err := b.Config.Validate(); err != nil {
		return nil, runID, b.stats(ctx), nil, fail(ctx, "builder", ErrConfigInvalid, "%v", err)
	}
	if len(tris)%3 != 0 {
		return nil, runID, b.stats(ctx), nil, fail(ctx, "builder", ErrConfigInvalid, "triangle index count %d is not a multiple of 3", len(tris))
	}

	cfg := &b.Config

	bmin, bmax := CalcBounds(verts)
	width, height := CalcGridSize(bmin, bmax, cfg.CellSize)

	solid := NewSolidHeightfield(width, height, bmin, bmax, cfg.CellSize, cfg.CellHeight)

	flags := make([]uint8, len(tris)/3)
	MarkWalkableTriangles(cfg, verts, tris, flags)

	// RasterizeTriangles and the three filters below each start and stop
	// their own named timer; Build must not wrap them again or their
	// accumulated durations double-count.
	if err := RasterizeTriangles(ctx, solid, verts, tris, flags); err != nil {
		return nil, runID, b.stats(ctx), nil, err
	}

	FilterLowHangingObstacles(ctx, cfg.MaxTraversableStep, solid)

	if cfg.ClipLedges {
		FilterLedgeSpans(ctx, cfg.MinTraversableHeight, cfg.MaxTraversableStep, solid)
	}

	FilterLowHeightSpans(ctx, cfg.MinTraversableHeight, solid)

	chf, err := BuildOpenHeightfield(ctx, cfg, solid)
	if err != nil {
		return nil, runID, b.stats(ctx), nil, err
	}

	BuildDistanceField(ctx, cfg, chf)

	if err := BuildRegions(ctx, cfg, chf); err != nil {
		return nil, runID, b.stats(ctx), nil, err
	}

	cset, err := BuildContours(ctx, cfg, chf)
	if err != nil {
		return nil, runID, b.stats(ctx), nil, err
	}

	pm, err := BuildPolyMeshField(ctx, cfg, cset)
	if err != nil {
		return nil, runID, b.stats(ctx), nil, err
	}

	dm, err := BuildDetailMesh(ctx, cfg, chf, pm)
	if err != nil {
		return nil, runID, b.stats(ctx), nil, err
	}

	out := detailMeshToTriangleMesh(dm)

	var diag *Diagnostics
	if b.KeepDiagnostics {
		diag = &Diagnostics{Solid: solid, Open: chf, Contour: cset, Poly: pm, Detail: dm}
	}

	return out, runID, b.stats(ctx), diag, nil
}

func (b *Builder) stats(ctx *BuildContext) BuildStats {
	ctx.StopTimer(TimerTotal)
	stats := BuildStats{
		Total:    ctx.ElapsedTime(TimerTotal),
		Messages: ctx.Messages(),
	}
	for _, label := range timedPhases {
		stats.Phases = append(stats.Phases, StageTiming{Label: label, Duration: ctx.ElapsedTime(label)})
	}
	return stats
}

func detailMeshToTriangleMesh(dm *DetailMesh) *TriangleMesh {
	out := &TriangleMesh{
		Verts:   make([]float32, 0, len(dm.Verts)*3),
		Tris:    make([]int32, 0, len(dm.Tris)*3),
		Regions: make([]uint16, 0, len(dm.Tris)),
	}
	for _, v := range dm.Verts {
		out.Verts = append(out.Verts, v.X, v.Y, v.Z)
	}
	for _, t := range dm.Tris {
		out.Tris = append(out.Tris, t.A, t.B, t.C)
		out.Regions = append(out.Regions, t.Region)
	}
	return out
}
