package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/nest/internal/schema"
)

func TestCollectorObserve(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.Observe(&schema.Result{}, nil, 10*time.Millisecond)
	c.Observe(&schema.Result{Errors: schema.ValidationErrors{{Location: "root"}, {Location: "a"}}}, nil, 20*time.Millisecond)
	c.Observe(nil, errors.New("boom"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues(ResultValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues(ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues(ResultError)))

	// Error runs keep the last known violation count
	assert.Equal(t, 2.0, testutil.ToFloat64(c.violations))

	count, err := testutil.GatherAndCount(c.Registry(), "nest_validation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollectorNilRegistry(t *testing.T) {
	c := NewCollector(nil)
	require.NotNil(t, c.Registry())

	assert.Equal(t, 3, testutil.CollectAndCount(c.runs))
}

func TestHandler(t *testing.T) {
	c := NewCollector(nil)
	c.Observe(&schema.Result{}, nil, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `nest_validation_runs_total{result="valid"} 1`)
	assert.Contains(t, rec.Body.String(), "nest_validation_violations 0")
}
