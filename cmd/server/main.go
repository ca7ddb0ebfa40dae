package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_verse_similarity/internal/adapters/httpapi"
	"github.com/baditaflorin/go_verse_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_verse_similarity/internal/config"
	"github.com/baditaflorin/go_verse_similarity/pkg/verse"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	readTimeout := flag.Duration("read-timeout", 0, "HTTP read timeout (overrides config)")
	writeTimeout := flag.Duration("write-timeout", 0, "HTTP write timeout (overrides config)")
	maxRequestSize := flag.Int("max-request-size", 0, "Maximum request size in bytes (overrides config)")
	concurrency := flag.Int("concurrency", -1, "Maximum number of concurrent requests (overrides config)")
	threshold := flag.Float64("threshold", -1, "Word similarity threshold in [0,1] (overrides config)")
	window := flag.Int("window", -1, "Alignment window size (overrides config)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.LookupEnv)
	applyFlags(cfg, *port, *readTimeout, *writeTimeout, *maxRequestSize, *concurrency, *threshold, *window, *logFile)
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "warm-up" {
			cfg.Server.WarmUp = *warmUp
		}
	})
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewServerLogger(cfg.Server.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting verse similarity HTTP server",
		"port", cfg.Server.Port,
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", cfg.Server.MaxRequestSize,
		"concurrency", cfg.Server.Concurrency,
		"threshold", cfg.Engine.Threshold,
		"window", cfg.Engine.Window,
		"use_external_asr", cfg.Features.UseExternalASR,
		"apply_diacritization", cfg.Features.ApplyDiacritization,
	)

	vs, err := verse.New(
		verse.WithThreshold(cfg.Engine.Threshold),
		verse.WithWindow(cfg.Engine.Window),
		verse.WithServiceLogger(log),
		verse.WithWarmUp(cfg.Server.WarmUp),
	)
	if err != nil {
		log.Error("Failed to initialize verse similarity", "error", err)
		log.Close()
		os.Exit(1)
	}
	log.Info("Verse comparator initialized",
		"warm_up", cfg.Server.WarmUp,
		"cpus", runtime.NumCPU(),
	)

	handler := httpapi.NewHandler(vs, log, cfg.Features, cfg.Server.BatchWorkers)

	server := &fasthttp.Server{
		Handler:               handler.HandleRequest,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		Concurrency:           cfg.Server.Concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

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

// applyFlags copies command-line overrides onto cfg. Zero or negative
// sentinels mean the flag was not given.
func applyFlags(cfg *config.Config, port int, readTimeout, writeTimeout time.Duration, maxRequestSize, concurrency int, threshold float64, window int, logFile string) {
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
	if concurrency >= 0 {
		cfg.Server.Concurrency = concurrency
	}
	if threshold >= 0 {
		cfg.Engine.Threshold = threshold
	}
	if window >= 0 {
		cfg.Engine.Window = window
	}
	if logFile != "" {
		cfg.Server.LogFile = logFile
	}
}
