package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBeforeInitIsNoop(t *testing.T) {
	if fetchTotal != nil {
		t.Skip("collectors already initialized by another test")
	}
	assert.NotPanics(t, func() {
		ObserveFetch("2xx", time.Millisecond)
		ObserveExtract("markup")
		ObserveRender("ok")
		ObserveSite(false)
	})
}

func TestCollectors(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(extractTotal.WithLabelValues("regex"))
	ObserveExtract("regex")
	assert.Equal(t, before+1, testutil.ToFloat64(extractTotal.WithLabelValues("regex")))

	ObserveFetch("4xx", 10*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.ToFloat64(fetchTotal.WithLabelValues("4xx")), 1.0)

	ObserveSite(true)
	assert.GreaterOrEqual(t, testutil.ToFloat64(sitesTotal.WithLabelValues("failed")), 1.0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	Init()
	ObserveRender("cached")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "phonecrawl_render_total")
}
