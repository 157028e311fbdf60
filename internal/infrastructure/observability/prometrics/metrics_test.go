package prometrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
)

func TestCounterRegisteredOnce(t *testing.T) {
	r := New("minishop", "")
	a := r.Counter("usecase_requests_total", "help", "use_case", "outcome")
	b := r.Counter("usecase_requests_total", "help", "use_case", "outcome")

	a.Add(1, observability.L("use_case", "catalog.add"), observability.L("outcome", "success"))
	b.Bind(observability.L("use_case", "catalog.add"), observability.L("outcome", "success")).Add(2)

	count, err := testutil.GatherAndCount(r.Gatherer(), "minishop_usecase_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	cv := r.(*registry).counters["usecase_requests_total"]
	assert.InDelta(t, 3, testutil.ToFloat64(cv.WithLabelValues("catalog.add", "success")), 0.0001)
}

func TestGaugeSetAndDelete(t *testing.T) {
	r := New("minishop", "")
	g := r.Gauge("product_stock", "help", "product_id")

	g.Set(5, observability.L("product_id", "1"))
	g.Set(0, observability.L("product_id", "2"))

	count, err := testutil.GatherAndCount(r.Gatherer(), "minishop_product_stock")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	g.Delete(observability.L("product_id", "2"))
	count, err = testutil.GatherAndCount(r.Gatherer(), "minishop_product_stock")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWriteTextfile(t *testing.T) {
	r := New("minishop", "")
	r.Histogram("usecase_duration_seconds", "help", nil, "use_case").
		Observe(0.01, observability.L("use_case", "order.place"))

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, WriteTextfile(r, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `minishop_usecase_duration_seconds_count{use_case="order.place"} 1`)
}
