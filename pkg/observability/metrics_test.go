package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// counterValue reads the current value of a labeled counter.
func counterValue(t *testing.T, cv *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("getting counter: %v", err)
	}
	m := &dto.Metric{}
	if err := c.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("reading counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

// histogramCount reads the sample count of a labeled histogram.
func histogramCount(t *testing.T, hv *prometheus.HistogramVec, labels ...string) uint64 {
	t.Helper()
	h, err := hv.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("getting histogram: %v", err)
	}
	m := &dto.Metric{}
	if err := h.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("reading histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMetricsMiddleware(t *testing.T) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	before := counterValue(t, RequestsTotal, http.MethodGet, "2xx")
	beforeHist := histogramCount(t, RequestDuration, http.MethodGet)

	r := httptest.NewRequest(http.MethodGet, "/api/owners", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if got := counterValue(t, RequestsTotal, http.MethodGet, "2xx"); got != before+1 {
		t.Errorf("requests_total = %v, want %v", got, before+1)
	}
	if got := histogramCount(t, RequestDuration, http.MethodGet); got != beforeHist+1 {
		t.Errorf("request_duration count = %d, want %d", got, beforeHist+1)
	}
}

func TestMetricsMiddleware_StatusClasses(t *testing.T) {
	tests := []struct {
		status int
		class  string
	}{
		{http.StatusCreated, "2xx"},
		{http.StatusNotFound, "4xx"},
		{http.StatusInternalServerError, "5xx"},
	}
	for _, tt := range tests {
		handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		before := counterValue(t, RequestsTotal, http.MethodPost, tt.class)

		r := httptest.NewRequest(http.MethodPost, "/api/owners", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if got := counterValue(t, RequestsTotal, http.MethodPost, tt.class); got != before+1 {
			t.Errorf("status %d: requests_total[%s] = %v, want %v", tt.status, tt.class, got, before+1)
		}
	}
}

func TestMetricsMiddleware_DefaultStatus(t *testing.T) {
	// A handler that writes a body without calling WriteHeader counts as 2xx.
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	before := counterValue(t, RequestsTotal, http.MethodGet, "2xx")

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if got := counterValue(t, RequestsTotal, http.MethodGet, "2xx"); got != before+1 {
		t.Errorf("requests_total = %v, want %v", got, before+1)
	}
}

func TestAuthCounters(t *testing.T) {
	before := counterValue(t, LoginAttemptsTotal, "success")
	LoginAttemptsTotal.WithLabelValues("success").Inc()
	if got := counterValue(t, LoginAttemptsTotal, "success"); got != before+1 {
		t.Errorf("login_attempts_total = %v, want %v", got, before+1)
	}

	beforeInvalid := counterValue(t, TokenValidationsTotal, "invalid")
	TokenValidationsTotal.WithLabelValues("invalid").Inc()
	if got := counterValue(t, TokenValidationsTotal, "invalid"); got != beforeInvalid+1 {
		t.Errorf("token_validations_total = %v, want %v", got, beforeInvalid+1)
	}
}
