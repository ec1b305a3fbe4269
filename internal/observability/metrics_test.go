package observability

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics(3)
	m.RecordRequest("en-us")
	m.RecordRequest("en-us")
	m.RecordRequest("zh-cn")
	m.RecordFailure("zh-cn")
	m.RecordEntity("date")
	m.RecordEntity("date")
	m.RecordEntity("time")
	m.RecordParseFailure("date")
	for _, d := range []time.Duration{4, 1, 3, 2} {
		m.RecordDuration("en-us", d*time.Millisecond)
	}

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.RequestTotal)
	assert.Equal(t, int64(1), s.RequestFailed)
	assert.Equal(t, int64(3), s.EntityTotal)
	assert.Equal(t, int64(1), s.ParseFailed)
	assert.Equal(t, 3, s.DurationCount, "window keeps the newest durations")
	assert.Equal(t, int64(2000), s.DurationP50Us)

	require.Contains(t, s.Cultures, "en-us")
	assert.Equal(t, int64(2), s.Cultures["en-us"].RequestCount)
	assert.Equal(t, int64(5000), s.Cultures["en-us"].AverageDurationUs)
	assert.Equal(t, int64(1), s.Cultures["zh-cn"].ErrorCount)

	assert.Equal(t, int64(2), s.EntityTypes["date"].Recognized)
	assert.Equal(t, int64(1), s.EntityTypes["date"].ParseFailed)
	assert.InDelta(t, 66.67, s.SuccessRate(), 0.01)

	m.Reset()
	assert.Equal(t, int64(0), m.Snapshot().RequestTotal)
	assert.Equal(t, 100.0, m.Snapshot().SuccessRate())
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics(10)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("en-us")
			m.RecordDuration("en-us", time.Millisecond)
			m.RecordEntity("date")
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	assert.Equal(t, int64(50), s.RequestTotal)
	assert.Equal(t, int64(50), s.EntityTypes["date"].Recognized)
	assert.Equal(t, 10, s.DurationCount)
}

func TestRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rc := NewRequestContextWithID(logger, "req-1", "datetime", "en-us")
	rc.Debug("recognized", slog.Int(LogFieldEntities, 2))

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"model_type":"datetime"`)
	assert.Contains(t, out, `"entity_count":2`)

	generated := NewRequestContext(nil, "datetime", "en-us")
	assert.Len(t, generated.RequestID, 36)
	assert.NotNil(t, generated.Logger)

	ctx := WithRequestContext(t.Context(), rc)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, rc, got)
}
