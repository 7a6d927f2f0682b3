package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// assertBizMetricLine matches a Prometheus sample while tolerating the extra
// otel_scope labels added by the exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func newManualMetrics(t *testing.T) (BusinessMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	bm, err := NewBusinessMetrics(provider, "dv")
	require.NoError(t, err)
	return bm, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func attr(set attribute.Set, key string) string {
	v, _ := set.Value(attribute.Key(key))
	return v.AsString()
}

func TestObserve(t *testing.T) {
	bm, reader := newManualMetrics(t)
	ctx := context.Background()

	Observe(ctx, bm, "journal", "entry_create", time.Now().Add(-25*time.Millisecond), nil)
	Observe(ctx, bm, "journal", "entry_create", time.Now(), errors.New("boom"))
	Observe(ctx, bm, "journal", "entry_create", time.Now(), nil)

	data := collect(t, reader)

	counter, ok := data["dv_operations_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	counts := map[string]int64{}
	for _, dp := range counter.DataPoints {
		assert.Equal(t, "journal", attr(dp.Attributes, "domain"))
		assert.Equal(t, "entry_create", attr(dp.Attributes, "operation"))
		counts[attr(dp.Attributes, "status")] = dp.Value
	}
	assert.Equal(t, map[string]int64{"success": 2, "error": 1}, counts)

	histogram, ok := data["dv_operation_duration_seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	for _, dp := range histogram.DataPoints {
		if attr(dp.Attributes, "status") == "success" {
			assert.Equal(t, uint64(2), dp.Count)
			assert.GreaterOrEqual(t, dp.Sum, 0.025)
		}
	}
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()
	assert.IsType(t, &NoOpBusinessMetrics{}, noOp)

	assert.NotPanics(t, func() {
		noOp.RecordOperation(context.Background(), "auth", "signup", "success")
		noOp.RecordDuration(context.Background(), "auth", "signup", time.Second, "error")
		Observe(context.Background(), noOp, "activity", "complete", time.Now(), nil)
	})
}

func TestBusinessMetrics_PrometheusExport(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "auth", "signup", "success")
	bm.RecordOperation(ctx, "auth", "signup", "success")
	bm.RecordOperation(ctx, "auth", "signup", "error")
	bm.RecordOperation(ctx, "fieldcrypt", "decrypt_passthrough", "success")
	bm.RecordDuration(ctx, "auth", "signup", 50*time.Millisecond, "success")
	bm.RecordDuration(ctx, "auth", "signup", 60*time.Millisecond, "success")

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	output := w.Body.String()

	assertBizMetricLine(t, output, `integration_test_operations_total`,
		`domain="auth".*operation="signup".*status="success"`, `2`)
	assertBizMetricLine(t, output, `integration_test_operations_total`,
		`domain="auth".*operation="signup".*status="error"`, `1`)
	assertBizMetricLine(t, output, `integration_test_operations_total`,
		`domain="fieldcrypt".*operation="decrypt_passthrough".*status="success"`, `1`)
	assertBizMetricLine(t, output, `integration_test_operation_duration_seconds_count`,
		`domain="auth".*operation="signup".*status="success"`, `2`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, "success", StatusFor(nil))
	assert.Equal(t, "error", StatusFor(errors.New("boom")))
}
