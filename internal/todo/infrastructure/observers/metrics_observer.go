package observers

import (
	"context"

	"github.com/toropyga03/todo/internal/todo/domain/task"
	"github.com/toropyga03/todo/pkg/observability"
)

// MetricsObserver counts events by kind.
type MetricsObserver struct {
	metrics observability.Metrics
}

func NewMetricsObserver(metrics observability.Metrics) *MetricsObserver {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &MetricsObserver{metrics: metrics}
}

func (o *MetricsObserver) Update(ctx context.Context, event task.Event) error {
	o.metrics.Counter(observability.MetricEventsObserved, 1, observability.T("kind", event.Kind))
	return nil
}
