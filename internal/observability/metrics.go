package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects and aggregates metrics for recognition calls.
type Metrics struct {
	mu sync.Mutex

	// Counters
	requestTotal  atomic.Int64
	requestFailed atomic.Int64
	entityTotal   atomic.Int64
	parseFailed   atomic.Int64

	cultureMetrics map[string]*CultureMetrics
	entityTypes    map[string]*EntityMetrics

	// Duration window (FIFO)
	durations    []time.Duration
	maxDurations int
}

// CultureMetrics represents metrics for the calls made in one culture.
type CultureMetrics struct {
	requestCount  atomic.Int64
	totalDuration atomic.Int64 // microseconds
	errorCount    atomic.Int64
}

// EntityMetrics counts the entities of one type.
type EntityMetrics struct {
	recognized  atomic.Int64
	parseFailed atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000
	}
	return &Metrics{
		cultureMetrics: make(map[string]*CultureMetrics),
		entityTypes:    make(map[string]*EntityMetrics),
		durations:      make([]time.Duration, 0, maxDurations),
		maxDurations:   maxDurations,
	}
}

var globalMetrics = NewMetrics(1000)

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records a recognition call.
func (m *Metrics) RecordRequest(culture string) {
	m.requestTotal.Add(1)
	m.culture(culture).requestCount.Add(1)
}

// RecordFailure records a call that returned an error.
func (m *Metrics) RecordFailure(culture string) {
	m.requestFailed.Add(1)
	m.culture(culture).errorCount.Add(1)
}

// RecordDuration records the duration of a call.
func (m *Metrics) RecordDuration(culture string, duration time.Duration) {
	m.mu.Lock()
	if len(m.durations) >= m.maxDurations {
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
	m.mu.Unlock()

	m.culture(culture).totalDuration.Add(duration.Microseconds())
}

// RecordEntity records one recognized entity of type entityType.
func (m *Metrics) RecordEntity(entityType string) {
	m.entityTotal.Add(1)
	m.entity(entityType).recognized.Add(1)
}

// RecordParseFailure records an extracted span its parser could not resolve.
func (m *Metrics) RecordParseFailure(entityType string) {
	m.parseFailed.Add(1)
	m.entity(entityType).parseFailed.Add(1)
}

func (m *Metrics) culture(culture string) *CultureMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	cm, ok := m.cultureMetrics[culture]
	if !ok {
		cm = &CultureMetrics{}
		m.cultureMetrics[culture] = cm
	}
	return cm
}

func (m *Metrics) entity(entityType string) *EntityMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	em, ok := m.entityTypes[entityType]
	if !ok {
		em = &EntityMetrics{}
		m.entityTypes[entityType] = em
	}
	return em
}

// Reset clears every counter and the duration window.
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)
	m.entityTotal.Store(0)
	m.parseFailed.Store(0)

	m.mu.Lock()
	m.cultureMetrics = make(map[string]*CultureMetrics)
	m.entityTypes = make(map[string]*EntityMetrics)
	m.durations = make([]time.Duration, 0, m.maxDurations)
	m.mu.Unlock()
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	cultures := make(map[string]*CultureMetricsSnapshot, len(m.cultureMetrics))
	for name, cm := range m.cultureMetrics {
		count := cm.requestCount.Load()
		var avg int64
		if count > 0 {
			avg = cm.totalDuration.Load() / count
		}
		cultures[name] = &CultureMetricsSnapshot{
			RequestCount:      count,
			ErrorCount:        cm.errorCount.Load(),
			AverageDurationUs: avg,
		}
	}
	entities := make(map[string]*EntityMetricsSnapshot, len(m.entityTypes))
	for name, em := range m.entityTypes {
		entities[name] = &EntityMetricsSnapshot{
			Recognized:  em.recognized.Load(),
			ParseFailed: em.parseFailed.Load(),
		}
	}

	return &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		EntityTotal:   m.entityTotal.Load(),
		ParseFailed:   m.parseFailed.Load(),
		Cultures:      cultures,
		EntityTypes:   entities,
		DurationCount: len(m.durations),
		DurationP50Us: percentile(m.durations, 0.50).Microseconds(),
		DurationP95Us: percentile(m.durations, 0.95).Microseconds(),
	}
}

func percentile(durations []time.Duration, q float64) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[int(q*float64(len(sorted)-1))]
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	RequestTotal  int64                              `json:"request_total" yaml:"request_total"`
	RequestFailed int64                              `json:"request_failed" yaml:"request_failed"`
	EntityTotal   int64                              `json:"entity_total" yaml:"entity_total"`
	ParseFailed   int64                              `json:"parse_failed" yaml:"parse_failed"`
	Cultures      map[string]*CultureMetricsSnapshot `json:"cultures" yaml:"cultures"`
	EntityTypes   map[string]*EntityMetricsSnapshot  `json:"entity_types" yaml:"entity_types"`
	DurationCount int                                `json:"duration_count" yaml:"duration_count"`
	DurationP50Us int64                              `json:"duration_p50_us" yaml:"duration_p50_us"`
	DurationP95Us int64                              `json:"duration_p95_us" yaml:"duration_p95_us"`
}

// CultureMetricsSnapshot represents metrics for a specific culture.
type CultureMetricsSnapshot struct {
	RequestCount      int64 `json:"request_count" yaml:"request_count"`
	ErrorCount        int64 `json:"error_count" yaml:"error_count"`
	AverageDurationUs int64 `json:"average_duration_us" yaml:"average_duration_us"`
}

// EntityMetricsSnapshot represents the counters of one entity type.
type EntityMetricsSnapshot struct {
	Recognized  int64 `json:"recognized" yaml:"recognized"`
	ParseFailed int64 `json:"parse_failed" yaml:"parse_failed"`
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.RequestTotal == 0 {
		return 100.0
	}
	return float64(s.RequestTotal-s.RequestFailed) / float64(s.RequestTotal) * 100.0
}
