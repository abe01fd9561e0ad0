package observability

import (
	"context"
	"log/slog"
	"time"
)

// TimeOperation runs fn and records how long it took under the operation tag:
// a duration sample, a run count and, when fn fails, an error count. The
// outcome is logged at debug level. logger and metrics may be nil.
func TimeOperation(ctx context.Context, logger *slog.Logger, metrics Metrics, operation string, fn func(ctx context.Context) error) error {
	started := time.Now()
	err := fn(ctx)
	elapsed := time.Since(started)

	if metrics != nil {
		tag := T(OperationKey, operation)
		metrics.Timing(MetricOperationDuration, elapsed, tag)
		metrics.Counter(MetricOperationTotal, 1, tag)
		if err != nil {
			metrics.Counter(MetricOperationErrors, 1, tag)
		}
	}

	if logger != nil {
		attrs := []any{OperationKey, operation, DurationKey, elapsed.Milliseconds()}
		if err != nil {
			logger.DebugContext(ctx, "operation failed", append(attrs, ErrorKey, err.Error())...)
		} else {
			logger.DebugContext(ctx, "operation completed", attrs...)
		}
	}
	return err
}
