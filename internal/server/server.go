// Package server exposes the evaluation engines over HTTP.
//
// Endpoints:
//
//	GET /eval?op=mul&a=12&b=-7[&m=][&base=10][&outbase=10][&engine=bigz][&sign=true]
//	GET /engines
//	GET /health
//	GET /metrics
//
// /eval answers JSON, or MessagePack when the request carries
// "Accept: application/msgpack".
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/bigcalc/internal/bigz"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

const (
	// ReadTimeout bounds the time to read a request.
	ReadTimeout = 10 * time.Second
	// WriteTimeout bounds the time to write a response. It leaves room for
	// the evaluation timeout.
	WriteTimeout = 10 * time.Minute
	// IdleTimeout bounds keep-alive connections.
	IdleTimeout = 2 * time.Minute
	// ShutdownTimeout is the grace period for in-flight requests.
	ShutdownTimeout = 30 * time.Second

	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
)

// operandParams are the query parameters holding the operands, in order.
var operandParams = []string{"a", "b", "m"}

// EvalResponse is the body of a successful /eval response.
type EvalResponse struct {
	Op         string    `json:"op" msgpack:"op"`
	Operands   []string  `json:"operands" msgpack:"operands"`
	Result     string    `json:"result" msgpack:"result"`
	Value      *bigz.Int `json:"-" msgpack:"value,omitempty"`
	Base       int       `json:"base" msgpack:"base"`
	Engine     string    `json:"engine" msgpack:"engine"`
	DurationMS float64   `json:"duration_ms" msgpack:"duration_ms"`
	Digest     string    `json:"digest" msgpack:"digest"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error   string `json:"error" msgpack:"error"`
	Message string `json:"message" msgpack:"message"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status     string   `json:"status"`
	Uptime     string   `json:"uptime"`
	Engines    []string `json:"engines"`
	HeapAlloc  uint64   `json:"heap_alloc_bytes"`
	NumGC      uint32   `json:"num_gc"`
	CPUPercent float64  `json:"host_cpu_percent"`
	MemPercent float64  `json:"host_mem_percent"`
}

// EnginesResponse is the body of /engines.
type EnginesResponse struct {
	Engines    []string        `json:"engines"`
	Operations []engine.OpSpec `json:"operations"`
}

// Server is the HTTP front end of the evaluation engines.
type Server struct {
	factory    engine.Factory
	cfg        config.AppConfig
	security   SecurityConfig
	httpServer *http.Server
	logger     logging.Logger
	metrics    *Metrics
	memory     *metrics.MemoryCollector
	startTime  time.Time
	shutdown   chan os.Signal
}

// Option configures a Server.
type Option func(*Server)

// WithLogger replaces the default zerolog logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSecurityConfig replaces the default security configuration.
func WithSecurityConfig(sc SecurityConfig) Option {
	return func(s *Server) { s.security = sc }
}

// NewServer creates a server for the engines of factory. cfg provides the
// port, the default engine, the timeout and the operand limit.
func NewServer(factory engine.Factory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:   factory,
		cfg:       cfg,
		security:  DefaultSecurityConfig(),
		logger:    logging.NewDefaultLogger(),
		metrics:   NewMetrics(),
		memory:    metrics.NewMemoryCollector(),
		startTime: time.Now(),
		shutdown:  make(chan os.Signal, 1),
	}
	if cfg.MaxOperandDigits > 0 {
		s.security.MaxOperandDigits = cfg.MaxOperandDigits
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.Timeout <= 0 {
		s.cfg.Timeout = config.DefaultTimeout
	}
	if s.cfg.Port == "" {
		s.cfg.Port = config.DefaultPort
	}

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort("", s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}
	return s
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return s.loggingMiddleware(s.metricsMiddleware(SecurityMiddleware(s.security, h)))
	}
	mux.HandleFunc("/eval", wrap(s.handleEval))
	mux.HandleFunc("/engines", wrap(s.handleEngines))
	mux.HandleFunc("/health", wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(s.shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-s.shutdown:
		s.logger.Info("shutting down", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		s.logger.Info("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.code),
			logging.Duration("duration", time.Since(start)))
	}
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, rec.code, time.Since(start))
	}
}

// parseEvalRequest builds an engine request from the query string.
func (s *Server) parseEvalRequest(r *http.Request) (engine.Request, string, error) {
	q := r.URL.Query()
	req := engine.Request{Op: q.Get("op")}
	for _, name := range operandParams {
		if v, ok := q[name]; ok {
			req.Operands = append(req.Operands, v[0])
		}
	}
	for name, dst := range map[string]*int{"base": &req.InputBase, "outbase": &req.OutputBase} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return engine.Request{}, "", apperrors.ValidationError{Field: name, Message: "must be an integer"}
			}
			*dst = n
		}
	}
	if v := q.Get("sign"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return engine.Request{}, "", apperrors.ValidationError{Field: "sign", Message: "must be a boolean"}
		}
		req.ForceSign = b
	}
	if req.Op == "" {
		return engine.Request{}, "", apperrors.ValidationError{Field: "op", Message: "is required"}
	}
	if err := validateOperands(s.security, req.Operands); err != nil {
		return engine.Request{}, "", err
	}
	if _, err := req.Validate(); err != nil {
		return engine.Request{}, "", err
	}

	selection := q.Get("engine")
	if selection == "" {
		selection = s.cfg.Engine
	}
	if selection == "" {
		selection = "bigz"
	}
	return req.Normalize(), strings.ToLower(selection), nil
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	req, selection, err := s.parseEvalRequest(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	evaluators, err := orchestration.GetEvaluatorsToRun(selection, s.factory)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()
	results := orchestration.ExecuteEvaluations(ctx, evaluators, req, orchestration.NullProgressReporter{}, nil)

	var value *bigz.Int
	for _, res := range results {
		bits := 0
		if res.Err == nil {
			if value, err = bigz.Default().FromString(res.Result, req.OutputBase, bigz.Strict); err == nil {
				bits = value.BitLen()
			}
		}
		s.metrics.ObserveEvaluation(req.Op, res.Name, res.Err, bits)
	}

	for _, res := range results {
		if res.Err != nil {
			s.writeError(w, r, statusForError(res.Err), res.Err)
			return
		}
	}
	if !orchestration.Consistent(results) {
		s.logger.Warn("engines disagree", logging.String("request", req.String()), logging.String("engines", selection))
		s.writeError(w, r, http.StatusInternalServerError, errors.New("engines returned different results"))
		return
	}

	first := results[0]
	resp := EvalResponse{
		Op:         req.Op,
		Operands:   req.Operands,
		Result:     first.Result,
		Value:      value,
		Base:       req.OutputBase,
		Engine:     selection,
		DurationMS: float64(first.Duration.Microseconds()) / 1000,
		Digest:     fmt.Sprintf("%016x", first.Digest),
	}
	s.writeResponse(w, r, http.StatusOK, resp)
}

// statusForError maps an evaluation error to an HTTP status.
func statusForError(err error) int {
	var memErr apperrors.MemoryError
	switch {
	case errors.As(err, &memErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.Is(err, engine.ErrOperand),
		errors.Is(err, bigz.ErrDivisionByZero),
		errors.Is(err, bigz.ErrNegativeExponent),
		errors.Is(err, bigz.ErrNegativeValue),
		errors.Is(err, bigz.ErrNotInvertible),
		errors.Is(err, bigz.ErrDomain),
		errors.Is(err, bigz.ErrSyntax):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) handleEngines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	s.writeJSON(w, http.StatusOK, EnginesResponse{Engines: s.factory.List(), Operations: engine.Ops})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	snap := s.memory.Snapshot()
	host := sysmon.Sample()
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Uptime:     time.Since(s.startTime).Truncate(time.Second).String(),
		Engines:    s.factory.List(),
		HeapAlloc:  snap.HeapAlloc,
		NumGC:      snap.NumGC,
		CPUPercent: host.CPUPercent,
		MemPercent: host.MemPercent,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func wantsMsgpack(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack)
}

func (s *Server) writeResponse(w http.ResponseWriter, r *http.Request, code int, body any) {
	if !wantsMsgpack(r) {
		s.writeJSON(w, code, body)
		return
	}
	data, err := msgpack.Marshal(body)
	if err != nil {
		s.logger.Error("msgpack encoding failed", err)
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError), Message: err.Error()})
		return
	}
	w.Header().Set("Content-Type", contentTypeMsgpack)
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write failed", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("json encoding failed", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	s.logger.Debug("request failed", logging.String("path", r.URL.Path), logging.Int("status", code), logging.Err(err))
	s.writeResponse(w, r, code, ErrorResponse{Error: http.StatusText(code), Message: err.Error()})
}
