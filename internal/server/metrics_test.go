package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/bigcalc/internal/logging"
)

// recordingLogger keeps the messages logged at each level.
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func newTestLogger() *recordingLogger { return &recordingLogger{} }

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+": "+msg)
}

func (l *recordingLogger) Debug(msg string, _ ...logging.Field)          { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...logging.Field)           { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...logging.Field)           { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ error, _ ...logging.Field) { l.add("error", msg) }

func (l *recordingLogger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Exposition(t *testing.T) {
	m := NewMetrics()
	body := scrape(t, m)

	for _, name := range []string{
		"bigcalc_active_requests 0",
		`bigcalc_requests_total{code="200",path="/eval"} 0`,
		"go_goroutines",
	} {
		assert.Contains(t, body, name)
	}
}

func TestMetrics_ActiveRequests(t *testing.T) {
	m := NewMetrics()
	m.IncrementActiveRequests()
	m.IncrementActiveRequests()
	assert.Contains(t, scrape(t, m), "bigcalc_active_requests 2")
	m.DecrementActiveRequests()
	assert.Contains(t, scrape(t, m), "bigcalc_active_requests 1")
}

func TestMetrics_ObserveEvaluation(t *testing.T) {
	m := NewMetrics()
	m.ObserveEvaluation("mul", "bigz", nil, 128)
	m.ObserveEvaluation("mul", "bigz", nil, 64)
	m.ObserveEvaluation("div", "stdlib", errors.New("division by zero"), 999)
	m.ObserveRequest("/eval", http.StatusOK, time.Millisecond)
	m.ObserveRequest("/eval", http.StatusBadRequest, time.Millisecond)

	body := scrape(t, m)
	for _, want := range []string{
		`bigcalc_evaluations_total{engine="bigz",op="mul",outcome="success"} 2`,
		`bigcalc_evaluations_total{engine="stdlib",op="div",outcome="error"} 1`,
		"bigcalc_result_bits_count 2", // failures carry no size
		"bigcalc_result_bits_sum 192",
		`bigcalc_requests_total{code="400",path="/eval"} 1`,
		`bigcalc_request_duration_seconds_count{path="/eval"} 2`,
	} {
		assert.Contains(t, body, want)
	}
}

func TestMetrics_Isolated(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.ObserveEvaluation("add", "bigz", nil, 1)
	assert.NotContains(t, scrape(t, b), `op="add"`, "metrics of one server leaked into another")
}

func TestMetricsMiddleware(t *testing.T) {
	s := &Server{metrics: NewMetrics()}
	var during string
	h := s.metricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		during = scrape(t, s.metrics)
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/engines", http.NoBody))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, during, "bigcalc_active_requests 1")
	after := scrape(t, s.metrics)
	assert.Contains(t, after, "bigcalc_active_requests 0")
	assert.Contains(t, after, `bigcalc_requests_total{code="418",path="/engines"} 1`)
}

func TestHandleMetrics(t *testing.T) {
	tests := []struct {
		method string
		code   int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodPost, http.StatusMethodNotAllowed},
		{http.MethodPut, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			logger := newTestLogger()
			s := &Server{metrics: NewMetrics(), logger: logger}
			rec := httptest.NewRecorder()
			s.handleMetrics(rec, httptest.NewRequest(tt.method, "/metrics", http.NoBody))

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "bigcalc_")
			} else {
				assert.Equal(t, []string{"debug: request failed"}, logger.Entries())
			}
		})
	}
}
