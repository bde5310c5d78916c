package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_palindrome/internal/adapters/logger"
	"github.com/baditaflorin/go_palindrome/internal/config"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *server {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())

	s, err := newServer(cfg, logger.NewNopLogger(), prometheus.NewRegistry())
	require.NoError(t, err)
	return s
}

func do(s *server, method, path, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != "" {
		req.SetBodyString(body)
		req.Header.SetContentType("application/json")
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	s.handle(ctx)
	return ctx
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := do(s, fasthttp.MethodGet, "/health", "")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	assert.NotEmpty(t, ctx.Response.Header.Peek("X-Request-ID"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, nil)

	var req fasthttp.Request
	req.SetRequestURI("/health")
	req.Header.Set("X-Request-ID", "abc-123")
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	s.handle(ctx)

	assert.Equal(t, "abc-123", string(ctx.Response.Header.Peek("X-Request-ID")))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantStrategy string
		palindrome   bool
		normalized   string
	}{
		{"default strategy", `{"text":"A man a plan a canal Panama"}`, fasthttp.StatusOK, "twopointer", true, "amanaplanacanalpanama"},
		{"named strategy", `{"text":"Hello World","strategy":"linkedlist"}`, fasthttp.StatusOK, "linkedlist", false, "helloworld"},
		{"case-insensitive name", `{"text":"level","strategy":"  Stack "}`, fasthttp.StatusOK, "stack", true, "level"},
		{"empty text", `{"text":""}`, fasthttp.StatusOK, "twopointer", true, ""},
		{"unknown strategy", `{"text":"level","strategy":"bogus"}`, fasthttp.StatusBadRequest, "", false, ""},
		{"malformed body", `{"text":`, fasthttp.StatusBadRequest, "", false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			ctx := do(s, fasthttp.MethodPost, "/check", tc.body)
			require.Equal(t, tc.wantStatus, ctx.Response.StatusCode())

			if tc.wantStatus != fasthttp.StatusOK {
				var e ErrorResponse
				require.NoError(t, json.Unmarshal(ctx.Response.Body(), &e))
				assert.NotEmpty(t, e.Error)
				return
			}

			var resp CheckResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
			assert.Equal(t, tc.wantStrategy, resp.Strategy)
			assert.Equal(t, tc.palindrome, resp.IsPalindrome)
			assert.Equal(t, tc.normalized, resp.Normalized)
			assert.Equal(t, uint64(1), resp.CheckCount)
		})
	}
}

func TestCheckCountAccumulates(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Evaluator.CacheSize = 8 })

	var resp CheckResponse
	for i, name := range []string{"", "deque", "recursive", ""} {
		ctx := do(s, fasthttp.MethodPost, "/check", `{"text":"madam","strategy":"`+name+`"}`)
		require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, uint64(i+1), resp.CheckCount)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	for _, tc := range []struct{ method, path string }{
		{fasthttp.MethodGet, "/check"},
		{fasthttp.MethodGet, "/benchmark"},
		{fasthttp.MethodGet, "/strategy"},
		{fasthttp.MethodPost, "/strategies"},
	} {
		ctx := do(s, tc.method, tc.path, "")
		assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode(), "%s %s", tc.method, tc.path)
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := do(s, fasthttp.MethodGet, "/nope", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestStrategiesAndSwitch(t *testing.T) {
	s := newTestServer(t, nil)

	ctx := do(s, fasthttp.MethodGet, "/strategies", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var infos []StrategyInfo
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &infos))
	require.Len(t, infos, 7)
	assert.Equal(t, "twopointer", infos[0].Name)
	assert.True(t, infos[0].Default)

	ctx = do(s, fasthttp.MethodPost, "/strategy", `{"name":"queuestack"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	ctx = do(s, fasthttp.MethodPost, "/check", `{"text":"No lemon, no melon"}`)
	var resp CheckResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "queuestack", resp.Strategy)
	assert.True(t, resp.IsPalindrome)

	ctx = do(s, fasthttp.MethodPost, "/strategy", `{"name":"bogus"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "queuestack", s.defaultEval.Strategy().Name())
}

func TestBenchmark(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := do(s, fasthttp.MethodPost, "/benchmark",
		`{"text":"Was it a car or a cat I saw?","iterations":20,"warmup":2,"strategies":["stack","twopointer"]}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var body struct {
		Report struct {
			Normalized string `json:"normalized"`
			Entries    []struct {
				Rank         int    `json:"rank"`
				Strategy     string `json:"strategy"`
				IsPalindrome bool   `json:"is_palindrome"`
				Iterations   int    `json:"iterations"`
			} `json:"entries"`
		} `json:"report"`
		Agreement bool `json:"agreement"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.True(t, body.Agreement)
	assert.Equal(t, "wasitacaroracatisaw", body.Report.Normalized)
	require.Len(t, body.Report.Entries, 2)
	for i, e := range body.Report.Entries {
		assert.Equal(t, i+1, e.Rank)
		assert.True(t, e.IsPalindrome)
		assert.Equal(t, 20, e.Iterations)
	}
}

func TestBenchmarkLimits(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Server.MaxBenchmarkIterations = 100 })

	ctx := do(s, fasthttp.MethodPost, "/benchmark", `{"text":"level","iterations":1000}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = do(s, fasthttp.MethodPost, "/benchmark", `{"text":"level","iterations":10,"strategies":["nope"]}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	do(s, fasthttp.MethodPost, "/check", `{"text":"madam"}`)

	ctx := do(s, fasthttp.MethodGet, "/metrics", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.True(t, strings.Contains(string(ctx.Response.Body()), "palindrome_evaluations_total"))
}

func TestTextLengthLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Server.MaxTextLength = 64 })
	long := strings.Repeat("a", 65)

	for _, tc := range []struct{ path, body string }{
		{"/check", `{"text":"` + long + `","strategy":"reverse"}`},
		{"/benchmark", `{"text":"` + long + `","iterations":1,"strategies":["reverse"]}`},
	} {
		ctx := do(s, fasthttp.MethodPost, tc.path, tc.body)
		assert.Equal(t, fasthttp.StatusRequestEntityTooLarge, ctx.Response.StatusCode(), tc.path)

		var e ErrorResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &e))
		assert.Contains(t, e.Error, "limit 64")
	}
	assert.Equal(t, uint64(0), s.checkCount())

	ctx := do(s, fasthttp.MethodPost, "/check", `{"text":"`+strings.Repeat("a", 64)+`","strategy":"reverse"}`)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
}
