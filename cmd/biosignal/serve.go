package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-biosignal/internal/transport"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

func runServe(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	fs := newFlagSet("serve", stderr, &common)
	printUpdates := fs.Bool("print", false, "also print updates to stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := common.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	codec, err := transport.CodecByName(cfg.NATS.Codec)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := pipeline.NewMetrics(reg)

	runner, err := pipeline.NewRunner(cfg.Pipeline, pipeline.WithLogger(logger), pipeline.WithMetrics(metrics))
	if err != nil {
		return err
	}

	sub := transport.NewSubscriber(cfg.NATS.Subject, runner, logger,
		transport.WithMalformedCounter(metrics.MalformedPackets()))
	nc, err := transport.Connect(cfg.NATS.URL, transport.ConnectOptions{
		Name:        "biosignal-serve",
		Logger:      logger,
		OnReconnect: sub.Reconnected,
	})
	if err != nil {
		return err
	}
	defer func() { _ = nc.Drain() }()

	rec, closeRec, err := openFilteredRecorder(cfg, logger)
	if err != nil {
		return err
	}

	var out io.Writer
	if *printUpdates {
		out = stdout
	}
	s := &sink{
		logger: logger,
		out:    out,
		rec:    rec,
		pub:    transport.NewPublisher(nc, cfg.NATS.Prefix, codec, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !nc.IsConnected() {
			http.Error(w, "nats disconnected", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		defer stop()
		return runSession(gctx, runner, s, func(ctx context.Context) error {
			return sub.Run(ctx, nc)
		})
	})

	err = g.Wait()
	logger.Info("serve stopped", zap.Uint64("malformed_packets", sub.Malformed()))
	return errors.Join(err, closeRec())
}
