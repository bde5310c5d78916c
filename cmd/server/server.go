package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/baditaflorin/go_palindrome/internal/adapters/cache"
	"github.com/baditaflorin/go_palindrome/internal/adapters/metrics"
	"github.com/baditaflorin/go_palindrome/internal/adapters/normalizer"
	"github.com/baditaflorin/go_palindrome/internal/benchmark"
	"github.com/baditaflorin/go_palindrome/internal/config"
	"github.com/baditaflorin/go_palindrome/internal/core/domain"
	"github.com/baditaflorin/go_palindrome/internal/core/evaluator"
	"github.com/baditaflorin/go_palindrome/internal/core/strategy"
	"github.com/baditaflorin/go_palindrome/internal/ports"
	"github.com/baditaflorin/go_palindrome/internal/warmup"
)

// CheckRequest asks for one evaluation. An empty Strategy uses the server default.
type CheckRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy,omitempty"`
}

// CheckResponse is the evaluation plus the server-wide evaluation count.
type CheckResponse struct {
	domain.EvaluationResult
	CheckCount uint64 `json:"check_count"`
}

// StrategyRequest changes the default strategy.
type StrategyRequest struct {
	Name string `json:"name"`
}

// StrategyInfo describes one available strategy.
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// BenchmarkRequest asks for a timing comparison.
type BenchmarkRequest struct {
	Text       string   `json:"text"`
	Iterations int      `json:"iterations,omitempty"`
	Warmup     int      `json:"warmup,omitempty"`
	Strategies []string `json:"strategies,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// server owns one evaluator per strategy plus the swappable default evaluator.
type server struct {
	logger     ports.Logger
	normalizer ports.Normalizer
	config     config.Config

	// defaultEval serves requests that do not name a strategy
	defaultEval *evaluator.Evaluator
	byName      map[string]*evaluator.Evaluator
	cacheSize   int

	metricsHandler fasthttp.RequestHandler
}

func newServer(cfg config.Config, log ports.Logger, registry *prometheus.Registry) (*server, error) {
	normType, err := normalizer.ParseNormalizerType(cfg.Evaluator.Normalizer)
	if err != nil {
		return nil, err
	}
	norm := normalizer.NewNormalizerFactory().CreateNormalizer(normType)

	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return nil, err
	}

	s := &server{
		logger:         log,
		normalizer:     norm,
		config:         cfg,
		byName:         make(map[string]*evaluator.Evaluator),
		cacheSize:      cfg.Evaluator.CacheSize,
		metricsHandler: fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	}

	warm := warmup.NewManager(log, warmup.DefaultWarmupConfig())
	warm.RegisterNormalizer(norm)

	for _, st := range strategy.All() {
		wrapped, err := s.wrap(st)
		if err != nil {
			return nil, err
		}
		eval, err := evaluator.NewEvaluator(wrapped, log, norm, recorder)
		if err != nil {
			return nil, err
		}
		s.byName[st.Name()] = eval
		warm.RegisterStrategy(st)
	}

	initial, err := strategy.Lookup(cfg.Evaluator.Strategy)
	if err != nil {
		return nil, err
	}
	wrapped, err := s.wrap(initial)
	if err != nil {
		return nil, err
	}
	s.defaultEval, err = evaluator.NewEvaluator(wrapped, log, norm, recorder)
	if err != nil {
		return nil, err
	}

	if cfg.Evaluator.WarmUp {
		warm.WarmUp(context.Background())
	}
	return s, nil
}

func (s *server) wrap(st ports.Strategy) (ports.Strategy, error) {
	if s.cacheSize <= 0 {
		return st, nil
	}
	cached, err := cache.NewCachedStrategy(st, s.cacheSize)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

// checkCount sums evaluations across every evaluator.
func (s *server) checkCount() uint64 {
	total := s.defaultEval.CheckCount()
	for _, e := range s.byName {
		total += e.CheckCount()
	}
	return total
}

// handle is the main fasthttp request handler
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	requestID := string(ctx.Request.Header.Peek("X-Request-ID"))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Response.Header.Set("X-Request-ID", requestID)

	switch string(ctx.Path()) {
	case "/metrics":
		s.metricsHandler(ctx)
	case "/health":
		s.handleHealthCheck(ctx)
	case "/strategies":
		s.handleStrategies(ctx)
	case "/strategy":
		s.handleSetStrategy(ctx)
	case "/check":
		s.handleCheck(ctx)
	case "/benchmark":
		s.handleBenchmark(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"check_count": s.checkCount(),
	})
}

// handleStrategies lists the available strategies
func (s *server) handleStrategies(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	current := s.defaultEval.Strategy().Name()
	infos := make([]StrategyInfo, 0, len(s.byName))
	for _, st := range strategy.All() {
		infos = append(infos, StrategyInfo{
			Name:        st.Name(),
			Description: st.Description(),
			Default:     st.Name() == current,
		})
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, infos)
}

// handleSetStrategy swaps the default strategy
func (s *server) handleSetStrategy(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() && !ctx.IsPut() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req StrategyRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	st, err := strategy.Lookup(req.Name)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, err.Error())
		return
	}
	wrapped, err := s.wrap(st)
	if err == nil {
		err = s.defaultEval.SetStrategy(wrapped)
	}
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.writeJSONError(ctx, err.Error())
		return
	}

	s.logger.Info("Default strategy changed", "strategy", st.Name())
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, StrategyInfo{Name: st.Name(), Description: st.Description(), Default: true})
}

// handleCheck evaluates one text
func (s *server) handleCheck(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req CheckRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if !s.checkTextLength(ctx, req.Text) {
		return
	}

	eval := s.defaultEval
	if req.Strategy != "" {
		st, err := strategy.Lookup(req.Strategy)
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			s.writeJSONError(ctx, err.Error())
			return
		}
		eval = s.byName[st.Name()]
	}

	result := eval.Evaluate(req.Text)
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, CheckResponse{
		EvaluationResult: result,
		CheckCount:       s.checkCount(),
	})
}

// handleBenchmark times strategies on one text
func (s *server) handleBenchmark(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req BenchmarkRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if !s.checkTextLength(ctx, req.Text) {
		return
	}

	cfg := s.config.Benchmark
	if req.Iterations > 0 {
		cfg.Iterations = req.Iterations
	}
	if req.Warmup > 0 {
		cfg.WarmupIterations = req.Warmup
	}
	limit := s.config.Server.MaxBenchmarkIterations
	if cfg.Iterations > limit || cfg.WarmupIterations > limit {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Too many iterations requested")
		return
	}

	strategies, err := strategy.LookupAll(req.Strategies)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, err.Error())
		return
	}

	harness, err := benchmark.NewHarness(cfg, s.logger, s.normalizer)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), s.config.Server.WriteTimeout)
	defer cancel()

	report, err := harness.Run(c, req.Text, strategies...)
	if err != nil {
		status := fasthttp.StatusBadRequest
		if errors.Is(err, context.DeadlineExceeded) {
			status = fasthttp.StatusGatewayTimeout
		}
		ctx.SetStatusCode(status)
		s.writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"report":    report,
		"agreement": report.Agreement(),
	})
}

// checkTextLength rejects text over the configured limit with 413 and reports whether it passed
func (s *server) checkTextLength(ctx *fasthttp.RequestCtx, text string) bool {
	if limit := s.config.Server.MaxTextLength; len(text) > limit {
		ctx.SetStatusCode(fasthttp.StatusRequestEntityTooLarge)
		s.writeJSONError(ctx, fmt.Sprintf("Text too long: %d bytes (limit %d)", len(text), limit))
		return false
	}
	return true
}

// writeJSONResponse writes a JSON response
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}
