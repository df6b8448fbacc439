// Package reqctx carries the identity of one scan run through a context.
package reqctx

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key int

const runKey key = 0

// RunContext identifies one scan run
type RunContext struct {
	RunID     string
	StartTime time.Time
}

// WithRun attaches a new run identity to ctx
func WithRun(ctx context.Context) context.Context {
	return context.WithValue(ctx, runKey, &RunContext{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	})
}

// GetRun returns the run attached to ctx, or a placeholder when there is none
func GetRun(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runKey).(*RunContext); ok {
		return rc
	}
	return &RunContext{
		RunID:     "unknown",
		StartTime: time.Now(),
	}
}

// Logger returns the global logger tagged with the run ID of ctx
func Logger(ctx context.Context) zerolog.Logger {
	return log.With().Str("run_id", GetRun(ctx).RunID).Logger()
}

// Elapsed returns the time since the run started
func Elapsed(ctx context.Context) time.Duration {
	return time.Since(GetRun(ctx).StartTime)
}
