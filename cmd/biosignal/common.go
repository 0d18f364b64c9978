package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-biosignal/internal/config"
	"github.com/cwbudde/algo-biosignal/internal/record"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

// commonFlags are shared by every pipeline command.
type commonFlags struct {
	configPath string
	envFile    string
	logLevel   string
	logDev     bool
	record     string
}

func newFlagSet(name string, stderr io.Writer, c *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.envFile, "env", ".env", "dotenv file with BIOSIGNAL_* overrides (ignored when missing)")
	fs.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	fs.BoolVar(&c.logDev, "log-dev", false, "human-readable development logging")
	fs.StringVar(&c.record, "record", "", "write filtered channels to this EDF file")
	return fs
}

// load resolves the configuration and builds the logger. Flags override
// the configuration file.
func (c *commonFlags) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.configPath, c.envFile)
	if err != nil {
		return cfg, nil, err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.logDev {
		cfg.Log.Development = true
	}
	if c.record != "" {
		cfg.Record.Path = c.record
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

func newLogger(l config.Log) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if l.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(l.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}

	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// openFilteredRecorder creates the EDF output configured in cfg, or
// returns nil when recording is disabled.
func openFilteredRecorder(cfg config.Config, logger *zap.Logger) (*record.Recorder, func() error, error) {
	if cfg.Record.Path == "" {
		return nil, func() error { return nil }, nil
	}
	f, err := os.Create(cfg.Record.Path)
	if err != nil {
		return nil, nil, err
	}
	rec, err := record.NewFilteredRecorder(f, record.Header{
		PatientID:   cfg.Record.PatientID,
		RecordingID: "biosignal filtered",
		Start:       time.Now(),
		SampleRate:  int(cfg.Pipeline.SampleRate),
	})
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	logger.Info("recording filtered channels", zap.String("path", cfg.Record.Path))

	closeFn := func() error {
		err := rec.Close()
		logger.Info("recording closed",
			zap.String("path", cfg.Record.Path),
			zap.Int("records", rec.Records()),
			zap.Int("discarded", rec.Pending()),
		)
		return errors.Join(err, f.Close())
	}
	return rec, closeFn, nil
}

// runSession runs the pipeline, drains its events into sink and feeds it
// from produce. The runner is closed when produce returns.
func runSession(ctx context.Context, runner *pipeline.Runner, sink *sink, produce func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runner.Run(gctx)
	})
	g.Go(func() error {
		return sink.drain(runner.Events())
	})
	g.Go(func() error {
		defer runner.Close()
		err := produce(gctx)
		if errors.Is(err, pipeline.ErrClosed) {
			return nil
		}
		return err
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
