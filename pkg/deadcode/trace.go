package deadcode

import (
	"time"

	"github.com/rs/zerolog"
)

// ZerologTracer reports pass timing and the final liveness census
// through a structured zerolog logger, for the --times configuration
// flag.
type ZerologTracer struct {
	Log zerolog.Logger
}

// NewZerologTracer builds a tracer writing to log.
func NewZerologTracer(log zerolog.Logger) *ZerologTracer {
	return &ZerologTracer{Log: log}
}

func (t *ZerologTracer) StageDone(stage string, nanos int64) {
	t.Log.Debug().
		Str("stage", stage).
		Dur("elapsed", time.Duration(nanos)).
		Msg("deadcode stage complete")
}

func (t *ZerologTracer) Summary(nv, dead, top int) {
	t.Log.Info().
		Int("vars", nv).
		Int("dead", dead).
		Int("top", top).
		Int("live", nv-dead-top).
		Msg("deadcode pass complete")
}

// timed runs f, reports its elapsed time to tracer under stage, and
// returns f's result.
func timed[T any](tracer Tracer, stage string, f func() T) T {
	start := time.Now()
	result := f()
	tracer.StageDone(stage, int64(time.Since(start)))
	return result
}

// timedVoid is timed for stages with no return value.
func timedVoid(tracer Tracer, stage string, f func()) {
	start := time.Now()
	f()
	tracer.StageDone(stage, int64(time.Since(start)))
}
