package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/orders/{orderNumber}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := httpRequestsTotal.WithLabelValues("GET", "/orders/{orderNumber}", "404")
	before := counterValue(t, counter)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/1001", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/1002", nil))

	assert.Equal(t, before+2, counterValue(t, counter))
}

func TestRecordSubmission(t *testing.T) {
	counter := submissionsReceived.WithLabelValues("order", "created")
	before := counterValue(t, counter)
	RecordSubmission("order", "created")
	assert.Equal(t, before+1, counterValue(t, counter))

	failures := counterValue(t, notificationFailures)
	RecordNotificationFailure()
	assert.Equal(t, failures+1, counterValue(t, notificationFailures))
}
