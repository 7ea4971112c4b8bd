package logger

import (
	"context"
	"log/slog"
	"time"
)

type PerformanceLogger struct {
	contextLogger *ContextLogger
	slowThreshold time.Duration
}

type Timer struct {
	ctx        context.Context
	operation  string
	startTime  time.Time
	perfLogger *PerformanceLogger
}

func NewPerformanceLogger(logger *slog.Logger, slowThreshold time.Duration) *PerformanceLogger {
	return &PerformanceLogger{
		contextLogger: NewContextLogger(logger),
		slowThreshold: slowThreshold,
	}
}

// StartTimer creates a new timer for measuring operation performance
func (pl *PerformanceLogger) StartTimer(ctx context.Context, operation string) *Timer {
	return &Timer{
		ctx:        ctx,
		operation:  operation,
		startTime:  time.Now(),
		perfLogger: pl,
	}
}

// End completes the timer, logs the duration and returns it.
func (t *Timer) End() time.Duration {
	duration := time.Since(t.startTime)
	t.perfLogger.contextLogger.LogDuration(t.ctx, t.operation, duration)
	t.perfLogger.LogSlowOperation(t.ctx, t.operation, duration)
	return duration
}

// EndWithError completes the timer and logs the error along with the duration.
func (t *Timer) EndWithError(err error) time.Duration {
	duration := time.Since(t.startTime)
	t.perfLogger.contextLogger.WithContext(t.ctx).WarnContext(t.ctx, "operation failed after duration",
		"operation", t.operation,
		"duration_ms", duration.Milliseconds(),
		"error", err,
	)
	return duration
}

// LogSlowOperation logs a warning when an operation exceeds the configured threshold
func (pl *PerformanceLogger) LogSlowOperation(ctx context.Context, operation string, duration time.Duration) {
	if pl.slowThreshold > 0 && duration > pl.slowThreshold {
		pl.contextLogger.WithContext(ctx).WarnContext(ctx, "slow operation detected",
			"operation", operation,
			"duration_ms", duration.Milliseconds(),
			"threshold_ms", pl.slowThreshold.Milliseconds(),
		)
	}
}
