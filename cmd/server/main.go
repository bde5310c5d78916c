package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_palindrome/internal/adapters/logger"
	"github.com/baditaflorin/go_palindrome/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	readTimeout := flag.Duration("read-timeout", 0, "HTTP read timeout (overrides config)")
	writeTimeout := flag.Duration("write-timeout", 0, "HTTP write timeout (overrides config)")
	maxRequestSize := flag.Int("max-request-size", 0, "Maximum request size in bytes (overrides config)")
	maxTextLength := flag.Int("max-text-length", 0, "Maximum text length in bytes per request (overrides config)")
	concurrency := flag.Int("concurrency", -1, "Maximum number of concurrent requests (0 = fasthttp default)")
	strategyName := flag.String("strategy", "", "Default strategy (overrides config)")
	normalizerName := flag.String("normalizer", "", "Normalizer: default, optimized or folding (overrides config)")
	cacheSize := flag.Int("cache-size", -1, "LRU verdict cache size per strategy (0 disables)")
	warmUp := flag.Bool("warm-up", false, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, *port, *readTimeout, *writeTimeout, *maxRequestSize, *maxTextLength, *concurrency, *strategyName, *normalizerName, *cacheSize, *warmUp, *logFile)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	baseLogger, err := config.NewLogger(cfg.Log, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.FromExisting(baseLogger)
	defer log.Close()

	log.Info("Starting palindrome HTTP server",
		"port", cfg.Server.Port,
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", cfg.Server.MaxRequestSize,
		"max_text_length", cfg.Server.MaxTextLength,
		"concurrency", cfg.Server.Concurrency,
		"strategy", cfg.Evaluator.Strategy,
		"normalizer", cfg.Evaluator.Normalizer,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv, err := newServer(cfg, log, registry)
	if err != nil {
		log.Error("Failed to initialize evaluators", "error", err)
		os.Exit(1)
	}
	log.Info("Evaluators initialized successfully",
		"warm_up", cfg.Evaluator.WarmUp,
		"cpus", runtime.NumCPU(),
	)

	server := &fasthttp.Server{
		Handler:               srv.handle,
		Name:                  "PalindromeServer",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		Concurrency:           cfg.Server.Concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		log.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

// applyFlags overlays explicitly set command-line values on the loaded configuration
func applyFlags(cfg *config.Config, port int, readTimeout, writeTimeout time.Duration, maxRequestSize, maxTextLength, concurrency int,
	strategyName, normalizerName string, cacheSize int, warmUp bool, logFile string) {
	if port > 0 {
		cfg.Server.Port = port
	}
	if readTimeout > 0 {
		cfg.Server.ReadTimeout = readTimeout
	}
	if writeTimeout > 0 {
		cfg.Server.WriteTimeout = writeTimeout
	}
	if maxRequestSize > 0 {
		cfg.Server.MaxRequestSize = maxRequestSize
	}
	if maxTextLength > 0 {
		cfg.Server.MaxTextLength = maxTextLength
	}
	if concurrency >= 0 {
		cfg.Server.Concurrency = concurrency
	}
	if strategyName != "" {
		cfg.Evaluator.Strategy = strategyName
	}
	if normalizerName != "" {
		cfg.Evaluator.Normalizer = normalizerName
	}
	if cacheSize >= 0 {
		cfg.Evaluator.CacheSize = cacheSize
	}
	if warmUp {
		cfg.Evaluator.WarmUp = true
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
}
