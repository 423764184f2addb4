package navmesh

import (
	"fmt"
	"time"
)

// LogCategory classifies a BuildContext log entry.
type LogCategory int

const (
	LogProgress LogCategory = 1 + iota
	LogWarning
	LogError
)

// TimerLabel identifies one timed phase of a build. Every stage and most of
// their sub-phases get their own label so BuildStats can report a
// per-phase breakdown, matching the reference pipeline's timer set.
type TimerLabel int

const (
	TimerTotal TimerLabel = iota
	TimerRasterizeTriangles
	TimerFilterLowHangingObstacles
	TimerFilterLedgeSpans
	TimerFilterLowHeightSpans
	TimerBuildOpenHeightfield
	TimerErodeArea
	TimerBuildDistanceField
	TimerBuildDistanceFieldDist
	TimerBuildDistanceFieldBlur
	TimerBuildRegions
	TimerBuildRegionsWatershed
	TimerBuildRegionsExpand
	TimerBuildRegionsFlood
	TimerBuildRegionsFilter
	TimerBuildContours
	TimerBuildContoursTrace
	TimerBuildContoursSimplify
	TimerBuildPolyMesh
	TimerBuildPolyMeshAdjacency
	TimerBuildDetailMesh
	TimerBuildDetailMeshSample
	numTimers
)

var timerLabelNames = [numTimers]string{
	TimerTotal:                     "Total",
	TimerRasterizeTriangles:        "RasterizeTriangles",
	TimerFilterLowHangingObstacles: "FilterLowHangingObstacles",
	TimerFilterLedgeSpans:          "FilterLedgeSpans",
	TimerFilterLowHeightSpans:      "FilterLowHeightSpans",
	TimerBuildOpenHeightfield:      "BuildOpenHeightfield",
	TimerErodeArea:                 "ErodeArea",
	TimerBuildDistanceField:        "BuildDistanceField",
	TimerBuildDistanceFieldDist:    "BuildDistanceFieldDist",
	TimerBuildDistanceFieldBlur:    "BuildDistanceFieldBlur",
	TimerBuildRegions:              "BuildRegions",
	TimerBuildRegionsWatershed:     "BuildRegionsWatershed",
	TimerBuildRegionsExpand:        "BuildRegionsExpand",
	TimerBuildRegionsFlood:         "BuildRegionsFlood",
	TimerBuildRegionsFilter:        "BuildRegionsFilter",
	TimerBuildContours:             "BuildContours",
	TimerBuildContoursTrace:        "BuildContoursTrace",
	TimerBuildContoursSimplify:     "BuildContoursSimplify",
	TimerBuildPolyMesh:             "BuildPolyMesh",
	TimerBuildPolyMeshAdjacency:    "BuildPolyMeshAdjacency",
	TimerBuildDetailMesh:           "BuildDetailMesh",
	TimerBuildDetailMeshSample:     "BuildDetailMeshSample",
}

// String returns the phase name a TimerLabel identifies, for logging.
func (l TimerLabel) String() string {
	if l < 0 || int(l) >= len(timerLabelNames) {
		return "Unknown"
	}
	return timerLabelNames[l]
}

const maxLogMessages = 1000

// Message is one entry of a BuildContext's log.
type Message struct {
	Category LogCategory
	Text     string
}

// BuildContext accumulates a build's log messages and per-phase timings. A
// value is passed as the first argument to every stage function, the same
// way the reference pipeline threads its own build context through. It
// provides no facility beyond a bounded in-memory log and timer ledger: no
// external logging backend is wired in, on purpose (see the ambient stack
// notes in SPEC_FULL.md).
type BuildContext struct {
	logEnabled   bool
	timerEnabled bool

	messages    [maxLogMessages]Message
	numMessages int

	startTime [numTimers]time.Time
	accTime   [numTimers]time.Duration
}

// NewBuildContext returns a BuildContext with logging and timers enabled.
func NewBuildContext() *BuildContext {
	return &BuildContext{logEnabled: true, timerEnabled: true}
}

// EnableLog toggles log collection.
func (ctx *BuildContext) EnableLog(state bool) { ctx.logEnabled = state }

// EnableTimer toggles timer collection.
func (ctx *BuildContext) EnableTimer(state bool) { ctx.timerEnabled = state }

// ResetLog discards all accumulated log messages.
func (ctx *BuildContext) ResetLog() {
	if ctx.logEnabled {
		ctx.numMessages = 0
	}
}

// ResetTimers zeroes all accumulated timer durations.
func (ctx *BuildContext) ResetTimers() {
	if ctx.timerEnabled {
		for i := range ctx.accTime {
			ctx.accTime[i] = 0
		}
	}
}

func (ctx *BuildContext) log(category LogCategory, format string, v ...interface{}) {
	if ctx.logEnabled && ctx.numMessages < maxLogMessages {
		ctx.messages[ctx.numMessages] = Message{Category: category, Text: fmt.Sprintf(format, v...)}
		ctx.numMessages++
	}
}

// Progressf logs a progress message.
func (ctx *BuildContext) Progressf(format string, v ...interface{}) { ctx.log(LogProgress, format, v...) }

// Warningf logs a warning message.
func (ctx *BuildContext) Warningf(format string, v ...interface{}) { ctx.log(LogWarning, format, v...) }

// Errorf logs an error message.
func (ctx *BuildContext) Errorf(format string, v ...interface{}) { ctx.log(LogError, format, v...) }

// Messages returns every log entry collected so far, oldest first.
func (ctx *BuildContext) Messages() []Message {
	out := make([]Message, ctx.numMessages)
	copy(out, ctx.messages[:ctx.numMessages])
	return out
}

// StartTimer starts (or resumes accumulating into) the named timer.
func (ctx *BuildContext) StartTimer(label TimerLabel) {
	if ctx.timerEnabled {
		ctx.startTime[label] = time.Now()
	}
}

// StopTimer stops the named timer and adds the elapsed time to its total.
func (ctx *BuildContext) StopTimer(label TimerLabel) {
	if ctx.timerEnabled {
		ctx.accTime[label] += time.Since(ctx.startTime[label])
	}
}

// ElapsedTime returns the accumulated duration of the named timer, or 0 if
// timers are disabled or it was never started.
func (ctx *BuildContext) ElapsedTime(label TimerLabel) time.Duration {
	if !ctx.timerEnabled {
		return 0
	}
	return ctx.accTime[label]
}
