package navmesh

import (
	"errors"
	"fmt"
)

// Build-fatal error classes, per the taxonomy in section 7 of the
// specification. Degenerate contours and triangulations are not part of
// this list: they are logged and the offending contour/polygon is skipped,
// the build itself still succeeds.
var (
	// ErrConfigInvalid means the configuration or input geometry failed
	// validation (mismatched vertex/index array shapes, or a configuration
	// value outside its valid range that cannot be clamped).
	ErrConfigInvalid = errors.New("navmesh: invalid configuration or input geometry")

	// ErrCapacityOverrun means an internal counter would overflow its
	// packed representation, e.g. more source vertices than a contour
	// triangulation's scratch index can address.
	ErrCapacityOverrun = errors.New("navmesh: capacity exceeded")

	// ErrStructuralAnomaly means an invariant the rest of the pipeline
	// depends on was violated badly enough that continuing would produce
	// meaningless output: more than one contour for a single non-null
	// region, or a contour belonging to the null region.
	ErrStructuralAnomaly = errors.New("navmesh: structural anomaly in intermediate data")

	// ErrOutOfMemory mirrors the reference pipeline's allocation-failure
	// return value. RasterizeTriangles returns it when
	// SolidHeightfield.AddSpan reports that a span could not be added;
	// AddSpan as written always succeeds.
	ErrOutOfMemory = errors.New("navmesh: could not allocate stage buffer")
)

// stageError wraps a sentinel error with the stage and message that
// produced it, so BuildContext log output and the returned error agree.
type stageError struct {
	stage string
	msg   string
	err   error
}

func (e *stageError) Error() string {
	if e.msg == "" {
		return e.stage + ": " + e.err.Error()
	}
	return e.stage + ": " + e.msg + ": " + e.err.Error()
}

func (e *stageError) Unwrap() error { return e.err }

func fail(ctx *BuildContext, stage string, sentinel error, format string, args ...interface{}) error {
	err := &stageError{stage: stage, err: sentinel, msg: fmt.Sprintf(format, args...)}
	ctx.Errorf("%s: %s", stage, err.msg)
	return err
}
