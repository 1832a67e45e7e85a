// Command quotesynth generates deterministic synthetic motor-insurance
// quote records. The same seed and count always produce the same records,
// whatever the worker count, so batches are reproducible end to end.
//
// Batch mode (the default) streams records to a file, stdout or Postgres:
//
//	quotesynth -n 100000 -seed 42 -format jsonl -o quotes.jsonl
//
// Serve mode exposes the asynchronous run API and Prometheus metrics:
//
//	quotesynth -serve-addr :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quotesynth/internal/blob"
	"quotesynth/internal/calibration"
	"quotesynth/internal/engine"
	"quotesynth/internal/metrics"
	"quotesynth/internal/render"
	"quotesynth/internal/runs"
	"quotesynth/internal/sink"
	"quotesynth/pkg/quote"
)

const progressEvery = 10000

var exitFunc = os.Exit

func main() {
	exitFunc(cli(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	count       int
	seed        uint64
	out         string
	format      string
	pretty      bool
	workers     int
	pack        string
	reference   string
	sinkName    string
	metricsAddr string
	serveAddr   string
	quiet       bool
}

// cli parses arguments and dispatches to batch or serve mode. Exit codes:
// 0 success, 1 runtime failure, 2 flag or configuration error.
func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("quotesynth", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	fs.IntVar(&cfg.count, "n", 1, "number of records to generate")
	fs.Uint64Var(&cfg.seed, "seed", 1, "root seed; same seed and count reproduce the batch")
	fs.StringVar(&cfg.out, "o", "", "output path (default stdout)")
	fs.StringVar(&cfg.format, "format", "jsonl", "output format: jsonl, json, csv or parquet")
	fs.BoolVar(&cfg.pretty, "pretty", false, "indent output (json format only)")
	fs.IntVar(&cfg.workers, "workers", 0, "generation workers (default GOMAXPROCS)")
	fs.StringVar(&cfg.pack, "calibration", "", "SQLite calibration pack path (default built-in pack)")
	fs.StringVar(&cfg.reference, "reference-date", "", "reference date, RFC 3339 (default built-in anchor)")
	fs.StringVar(&cfg.sinkName, "sink", "file", "record sink: file or postgres")
	fs.StringVar(&cfg.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.StringVar(&cfg.serveAddr, "serve-addr", "", "serve the run API on this address instead of generating a batch")
	fs.BoolVar(&cfg.quiet, "quiet", false, "suppress progress logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if cfg.quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	app, code := setup(cfg, logger, stderr)
	if code != 0 {
		return code
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.serveAddr != "" {
		return serve(ctx, cfg, app, logger)
	}
	return batch(ctx, cfg, app, logger, stdout)
}

// application holds the wired components a mode runs with.
type application struct {
	engine   *engine.Engine
	recorder *metrics.PromRecorder
	format   render.Format
	sink     sink.Driver
}

func setup(cfg config, logger *slog.Logger, stderr io.Writer) (application, int) {
	fail := func(format string, args ...any) (application, int) {
		fmt.Fprintf(stderr, "quotesynth: "+format+"\n", args...)
		return application{}, 2
	}

	if cfg.count < 0 {
		return fail("-n must not be negative, got %d", cfg.count)
	}

	format, err := render.ParseFormat(cfg.format)
	if err != nil {
		return fail("%v", err)
	}
	if cfg.pretty && format != render.FormatJSON {
		return fail("-pretty applies to the json format only")
	}

	var sinkDriver sink.Driver
	switch cfg.sinkName {
	case "", "file":
		sinkDriver = sink.DriverFile
	case "postgres":
		sinkDriver = sink.DriverPostgres
	default:
		return fail("unknown sink %q (want file or postgres)", cfg.sinkName)
	}

	tables := calibration.Builtin()
	if cfg.pack != "" {
		tables, err = calibration.LoadSQLite(cfg.pack)
		if err != nil {
			return fail("load calibration pack: %v", err)
		}
		logger.Info("calibration pack loaded", "path", cfg.pack)
	}

	opts := []engine.Option{}
	var recorder *metrics.PromRecorder
	if cfg.metricsAddr != "" || cfg.serveAddr != "" {
		recorder = metrics.NewPromRecorder()
		opts = append(opts, engine.WithRecorder(recorder))
	}
	if cfg.reference != "" {
		ref, err := time.Parse(time.RFC3339, cfg.reference)
		if err != nil {
			return fail("invalid -reference-date: %v", err)
		}
		opts = append(opts, engine.WithReference(ref.UTC()))
	}

	return application{
		engine:   engine.New(tables, opts...),
		recorder: recorder,
		format:   format,
		sink:     sinkDriver,
	}, 0
}

// batch generates the requested records straight into the configured sink.
func batch(ctx context.Context, cfg config, app application, logger *slog.Logger, stdout io.Writer) int {
	if cfg.metricsAddr != "" {
		startMetricsListener(cfg.metricsAddr, app.recorder, logger)
	}

	out, err := sink.Open(ctx, sink.Spec{
		Driver: app.sink,
		Path:   cfg.out,
		Format: app.format,
		Pretty: cfg.pretty,
		Out:    stdout,
	})
	if err != nil {
		logger.Error("open sink", "error", err)
		return 2
	}

	logger.Info("generating",
		"records", cfg.count,
		"seed", cfg.seed,
		"format", string(app.format),
		"reference", app.engine.Reference().Format(time.RFC3339),
	)

	start := time.Now()
	emitted := 0
	err = app.engine.Stream(ctx, cfg.seed, cfg.count, cfg.workers, func(q quote.Quote) error {
		if err := out.Write(ctx, q); err != nil {
			return err
		}
		emitted++
		if emitted%progressEvery == 0 {
			logger.Info("progress", "records", emitted)
		}
		return nil
	})
	if cerr := out.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		logger.Error("generation failed", "error", err, "records", emitted)
		return 1
	}

	elapsed := time.Since(start)
	rate := 0.0
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(emitted) / s
	}
	logger.Info("done",
		"records", emitted,
		"elapsed", elapsed.Round(time.Millisecond).String(),
		"records_per_sec", int(rate),
	)
	return 0
}

// serve runs the asynchronous run API until the context is cancelled.
func serve(ctx context.Context, cfg config, app application, logger *slog.Logger) int {
	store, err := blob.Open(ctx)
	if err != nil {
		logger.Error("open artifact store", "error", err)
		return 2
	}

	worker := runs.NewWorker(app.engine, store, runs.SlogAudit{Logger: logger},
		runs.WithRunGauge(app.recorder))
	worker.Start()

	runHandler := runs.NewHandler(worker, store)
	mux := http.NewServeMux()
	mux.Handle("/api/v1/runs", runHandler)
	mux.Handle("/api/v1/runs/", runHandler)
	mux.Handle("/metrics", app.recorder.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	srv := &http.Server{
		Addr:              cfg.serveAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("serving", "addr", cfg.serveAddr, "blob_driver", string(store.Driver()))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", "error", err)
		}
		if err := worker.Stop(shutdownCtx); err != nil {
			logger.Warn("worker shutdown", "error", err)
		}
		return 0
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "error", err)
			return 1
		}
		return 0
	}
}

func startMetricsListener(addr string, recorder *metrics.PromRecorder, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics listener", "error", err)
		}
	}()
	logger.Info("metrics listening", "addr", addr)
}
