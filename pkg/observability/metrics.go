package observability

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"
)

// Metric names.
const (
	MetricOperationTotal    = "todo.operation.total"
	MetricOperationDuration = "todo.operation.duration"
	MetricOperationErrors   = "todo.operation.errors"

	MetricEventsObserved  = "todo.events.observed"
	MetricEventsPublished = "todo.events.published"
	MetricEventsFailed    = "todo.events.failed"

	MetricTasksTotal = "todo.tasks.total"
)

// Metrics records application metrics.
type Metrics interface {
	Counter(name string, value int64, tags ...Tag)
	Gauge(name string, value float64, tags ...Tag)
	Timing(name string, duration time.Duration, tags ...Tag)
}

// Tag is a metric label.
type Tag struct {
	Key   string
	Value string
}

func T(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) Counter(string, int64, ...Tag)        {}
func (NoopMetrics) Gauge(string, float64, ...Tag)        {}
func (NoopMetrics) Timing(string, time.Duration, ...Tag) {}

// CounterValue is one counter in a snapshot.
type CounterValue struct {
	Key   string
	Value int64
}

// InMemoryMetrics keeps every series in process for the lifetime of a run.
type InMemoryMetrics struct {
	mu     sync.Mutex
	series map[string]*series
}

type series struct {
	counted bool
	count   int64
	gauge   float64
	timings []time.Duration
}

func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{series: make(map[string]*series)}
}

func (m *InMemoryMetrics) Counter(name string, value int64, tags ...Tag) {
	m.update(name, tags, func(s *series) {
		s.counted = true
		s.count += value
	})
}

func (m *InMemoryMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.update(name, tags, func(s *series) { s.gauge = value })
}

func (m *InMemoryMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.update(name, tags, func(s *series) { s.timings = append(s.timings, duration) })
}

func (m *InMemoryMetrics) GetCounter(name string, tags ...Tag) int64 {
	return read(m, name, tags, func(s *series) int64 { return s.count })
}

func (m *InMemoryMetrics) GetGauge(name string, tags ...Tag) float64 {
	return read(m, name, tags, func(s *series) float64 { return s.gauge })
}

func (m *InMemoryMetrics) GetTimings(name string, tags ...Tag) []time.Duration {
	return read(m, name, tags, func(s *series) []time.Duration { return slices.Clone(s.timings) })
}

// Counters returns every counter sorted by key.
func (m *InMemoryMetrics) Counters() []CounterValue {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []CounterValue
	for key, s := range m.series {
		if s.counted {
			out = append(out, CounterValue{Key: key, Value: s.count})
		}
	}
	slices.SortFunc(out, func(a, b CounterValue) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

func (m *InMemoryMetrics) update(name string, tags []Tag, fn func(s *series)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := seriesKey(name, tags)
	s, ok := m.series[key]
	if !ok {
		s = &series{}
		m.series[key] = s
	}
	fn(s)
}

func read[V any](m *InMemoryMetrics, name string, tags []Tag, get func(s *series) V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	s, ok := m.series[seriesKey(name, tags)]
	if !ok {
		return zero
	}
	return get(s)
}

// seriesKey renders name and tags as "name:k1=v1:k2=v2" in the given tag order.
func seriesKey(name string, tags []Tag) string {
	var b strings.Builder
	b.WriteString(name)
	for _, t := range tags {
		b.WriteByte(':')
		b.WriteString(t.Key)
		b.WriteByte('=')
		b.WriteString(t.Value)
	}
	return b.String()
}
