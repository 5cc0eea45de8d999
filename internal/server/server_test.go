package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/bigcalc/internal/bigz"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/logging"
)

func newTestServer(t *testing.T, cfg config.AppConfig) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	s := NewServer(engine.NewDefaultFactory(), cfg, WithLogger(logging.NewLogger(&logs, "server")))
	return s, &logs
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleEval_JSON(t *testing.T) {
	s, logs := newTestServer(t, config.AppConfig{})
	rec := get(t, s.Handler(), "/eval?op=mul&a=12&b=-7")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	var resp EvalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "mul", resp.Op)
	assert.Equal(t, []string{"12", "-7"}, resp.Operands)
	assert.Equal(t, "-84", resp.Result)
	assert.Equal(t, "bigz", resp.Engine)
	assert.Equal(t, 10, resp.Base)
	assert.Len(t, resp.Digest, 16)
	assert.Nil(t, resp.Value, "the value is only sent as msgpack")

	assert.Contains(t, logs.String(), `"path":"/eval"`)
	assert.Contains(t, logs.String(), `"status":200`)
}

func TestHandleEval_Bases(t *testing.T) {
	s, _ := newTestServer(t, config.AppConfig{})
	rec := get(t, s.Handler(), "/eval?op=add&a=ff&b=1&base=16&outbase=2&sign=true")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp EvalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "+100000000", resp.Result)
	assert.Equal(t, 2, resp.Base)
}

func TestHandleEval_AllEngines(t *testing.T) {
	s, _ := newTestServer(t, config.AppConfig{})
	rec := get(t, s.Handler(), "/eval?op=modexp&a=4&b=13&m=497&engine=all")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp EvalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "445", resp.Result)
	assert.Equal(t, "all", resp.Engine)
}

func TestHandleEval_Msgpack(t *testing.T) {
	s, _ := newTestServer(t, config.AppConfig{})
	rec := get(t, s.Handler(), "/eval?op=pow&a=2&b=100", "Accept", "application/msgpack")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msgpack", rec.Header().Get("Content-Type"))

	var resp EvalResponse
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1267650600228229401496703205376", resp.Result)
	require.NotNil(t, resp.Value)
	assert.Equal(t, 101, resp.Value.BitLen())

	want, err := bigz.Default().FromString(resp.Result, 10, bigz.Strict)
	require.NoError(t, err)
	assert.Zero(t, resp.Value.Cmp(want))
}

func TestHandleEval_Errors(t *testing.T) {
	s, _ := newTestServer(t, config.AppConfig{MaxOperandDigits: 10})
	h := s.Handler()

	tests := []struct {
		name    string
		target  string
		code    int
		message string
	}{
		{"missing op", "/eval?a=1", http.StatusBadRequest, `"op"`},
		{"unknown op", "/eval?op=frob&a=1", http.StatusBadRequest, "unknown operation"},
		{"arity", "/eval?op=add&a=1", http.StatusBadRequest, "wrong number of operands"},
		{"bad base", "/eval?op=neg&a=1&base=x", http.StatusBadRequest, `"base"`},
		{"base range", "/eval?op=neg&a=1&base=40", http.StatusBadRequest, "base must be between 2 and 36"},
		{"bad sign", "/eval?op=neg&a=1&sign=maybe", http.StatusBadRequest, `"sign"`},
		{"operand too long", "/eval?op=neg&a=12345678901", http.StatusBadRequest, "the limit is 10"},
		{"unknown engine", "/eval?op=neg&a=1&engine=abacus", http.StatusBadRequest, "unknown engine"},
		{"division by zero", "/eval?op=div&a=1&b=0", http.StatusUnprocessableEntity, "division by zero"},
		{"bad digit", "/eval?op=neg&a=12z", http.StatusUnprocessableEntity, "invalid operand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			assert.Equal(t, tt.code, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, http.StatusText(tt.code), resp.Error)
			assert.Contains(t, resp.Message, tt.message)
		})
	}
}

func TestHandleEval_EngineErrors(t *testing.T) {
	s, _ := newTestServer(t, config.AppConfig{})
	h := s.Handler()

	tests := []struct {
		name    string
		target  string
		code    int
		message string
	}{
		{"stdlib division by zero", "/eval?op=div&a=1&b=0&engine=stdlib", http.StatusUnprocessableEntity, "division by zero"},
		{"stdlib negative sqrt", "/eval?op=sqrt&a=-4&engine=stdlib", http.StatusUnprocessableEntity, "negative value"},
		{"stdlib negative exponent", "/eval?op=pow&a=2&b=-1&engine=stdlib", http.StatusUnprocessableEntity, "negative exponent"},
		{"stdlib not invertible", "/eval?op=modinv&a=2&b=4&engine=stdlib", http.StatusUnprocessableEntity, "not invertible"},
		{"huge power on every engine", "/eval?op=pow&a=3&b=1000000000000&engine=all", http.StatusRequestEntityTooLarge, "memory error"},
		{"huge shift on stdlib", "/eval?op=ash&a=1&b=67108864&engine=stdlib", http.StatusRequestEntityTooLarge, "memory error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			rec := get(t, h, tt.target)
			assert.Equal(t, tt.code, rec.Code)
			assert.Less(t, time.Since(start), 5*time.Second)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Message, tt.message)
		})
	}
}

func TestHandleEval_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, config.AppConfig{})
	req := httptest.NewRequest(http.MethodPost, "/eval?op=neg&a=1", http.NoBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusGatewayTimeout, statusForError(context.DeadlineExceeded))
	assert.Equal(t, http.StatusServiceUnavailable, statusForError(context.Canceled))
	assert.Equal(t, http.StatusUnprocessableEntity, statusForError(bigz.ErrNotInvertible))
	assert.Equal(t, http.StatusInternalServerError, statusForError(assert.AnError))
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t, config.AppConfig{})
	rec := get(t, s.Handler(), "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, resp.Engines, "bigz")
	assert.Contains(t, resp.Engines, "stdlib")
	assert.NotZero(t, resp.HeapAlloc)
}

func TestHandleEngines(t *testing.T) {
	s, _ := newTestServer(t, config.AppConfig{})
	rec := get(t, s.Handler(), "/engines")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp EnginesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Operations, len(engine.Ops))
	assert.Equal(t, "add", resp.Operations[0].Name)
}

func TestHandler_MetricsAfterEval(t *testing.T) {
	s, _ := newTestServer(t, config.AppConfig{})
	h := s.Handler()
	get(t, h, "/eval?op=add&a=1&b=2")

	body := get(t, h, "/metrics").Body.String()
	assert.True(t, strings.Contains(body, `bigcalc_evaluations_total{engine="bigz",op="add",outcome="success"} 1`), body)
	assert.Contains(t, body, `bigcalc_requests_total{code="200",path="/eval"} 1`)
}

func TestNewServer_Defaults(t *testing.T) {
	s := NewServer(engine.NewDefaultFactory(), config.AppConfig{}, WithLogger(newTestLogger()))
	assert.Equal(t, ":8080", s.httpServer.Addr)
	assert.Equal(t, config.DefaultTimeout, s.cfg.Timeout)
	assert.Equal(t, config.DefaultMaxOperandDigits, s.security.MaxOperandDigits)

	custom := SecurityConfig{MaxOperandDigits: 3}
	s = NewServer(engine.NewDefaultFactory(), config.AppConfig{Port: "9090"}, WithSecurityConfig(custom), WithLogger(newTestLogger()))
	assert.Equal(t, ":9090", s.httpServer.Addr)
	assert.Equal(t, 3, s.security.MaxOperandDigits)
}

func TestServer_Shutdown(t *testing.T) {
	s := NewServer(engine.NewDefaultFactory(), config.AppConfig{Port: "0"}, WithLogger(newTestLogger()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Shutdown(ctx))
}
