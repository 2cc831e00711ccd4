package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopLogger(_ *testing.T) {
	logger := NopLogger{}
	logger.Debug("debug", "key", "value")
	logger.Info("info", "key", "value")
	logger.Warn("warn", "key", "value")
	logger.Error("error", "key", "value")
}

func TestNilOptionsKeepDefaults(t *testing.T) {
	o := newOptions([]Option{nil, WithLogger(nil), WithClock(nil), WithTracer(nil), WithMetricsRecorder(nil), WithIDGenerator(nil), WithNamespace(""), WithDefaultCurrency("")})
	assert.Equal(t, DefaultNamespace, o.namespace)
	assert.Equal(t, DefaultCurrency, o.currency)
	assert.NotEmpty(t, o.newID())
	assert.Equal(t, time.UTC, o.clock.Now().Location())
}

func TestExpvarRecorder(t *testing.T) {
	rec := NewExpvarMetricsRecorder("rentledger_test_metrics")
	rec.Observe(context.Background(), "finance.load", true, 2*time.Millisecond)
	rec.Observe(context.Background(), "finance.load", false, time.Millisecond)
	rec.Observe(context.Background(), "", true, time.Millisecond)

	snap := rec.Snapshot()
	require.Contains(t, snap, "finance.load")
	assert.Equal(t, int64(1), snap["finance.load"].Succeeded)
	assert.Equal(t, int64(1), snap["finance.load"].Failed)
	assert.InDelta(t, 3.0, snap["finance.load"].TotalMS, 0.001)

	v := expvar.Get(rec.Name())
	require.NotNil(t, v)
	assert.Contains(t, v.String(), "finance.load")
}

func TestJSONTracerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)
	_, span := tracer.Start(context.Background(), "session.sign_in")
	span.End(nil)
	_, span = tracer.Start(context.Background(), "session.sign_out")
	span.End(errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var rec TraceRecord
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "error", rec.Status)
	assert.Equal(t, "boom", rec.Error)
	assert.Equal(t, "success", tracer.Records()[0].Status)
}

func TestPrometheusRecorder(t *testing.T) {
	rec := NewPrometheusMetricsRecorder()
	rec.Observe(context.Background(), "properties.add_unit", true, 5*time.Millisecond)
	rec.Observe(context.Background(), "properties.add_unit", false, 5*time.Millisecond)
	rec.Observe(context.Background(), "properties.add_unit", true, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.total.WithLabelValues("properties.add_unit", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.total.WithLabelValues("properties.add_unit", "error")))

	path := filepath.Join(t.TempDir(), "rentledger.prom")
	require.NoError(t, rec.WriteTextfile(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "rentledger_store_operations_total")
	assert.Contains(t, string(raw), "rentledger_store_operation_duration_seconds_bucket")
}
