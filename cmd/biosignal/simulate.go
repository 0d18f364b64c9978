package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	biosig "github.com/cwbudde/algo-biosignal/dsp/signal"
	"github.com/cwbudde/algo-biosignal/internal/record"
	"github.com/cwbudde/algo-biosignal/internal/transport"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

func runSimulate(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	fs := newFlagSet("simulate", stderr, &common)
	duration := fs.Duration("duration", 30*time.Second, "length of the synthetic stream")
	heartRate := fs.Float64("heart-rate", 0, "ECG heart rate in BPM (default from config)")
	realtime := fs.Bool("realtime", false, "pace samples at the sample rate instead of as fast as possible")
	rawRecord := fs.String("raw-record", "", "also write the raw ADC stream to this EDF file (replayable)")
	publishRaw := fs.Bool("publish-raw", false, "publish raw packets to the NATS raw subject instead of processing locally")
	quiet := fs.Bool("quiet", false, "do not print updates")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := common.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if *heartRate > 0 {
		cfg.Synth.HeartRate = *heartRate
	}
	synth, err := biosig.NewSynth(cfg.Synth,
		core.WithSampleRate(cfg.Pipeline.SampleRate),
		core.WithResolutionBits(cfg.Pipeline.ResolutionBits),
	)
	if err != nil {
		return err
	}
	total := int(duration.Seconds() * cfg.Pipeline.SampleRate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := &synthSource{synth: synth, total: total}
	if *rawRecord != "" {
		closeRaw, err := src.recordTo(*rawRecord, cfg.Pipeline)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeRaw(); err != nil {
				logger.Error("closing raw recording", zap.Error(err))
			}
		}()
	}

	var tick <-chan time.Time
	if *realtime {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / cfg.Pipeline.SampleRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	logger.Info("simulating",
		zap.Int("samples", total),
		zap.Float64("heart_rate", cfg.Synth.HeartRate),
		zap.Bool("realtime", *realtime),
	)

	if *publishRaw {
		return publishSynth(ctx, cfg.NATS.URL, cfg.NATS.Prefix, src, tick, logger)
	}

	runner, err := pipeline.NewRunner(cfg.Pipeline, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}
	rec, closeRec, err := openFilteredRecorder(cfg, logger)
	if err != nil {
		return err
	}

	out := stdout
	if *quiet {
		out = nil
	}
	s := &sink{logger: logger, out: out, rec: rec}

	err = runSession(ctx, runner, s, func(ctx context.Context) error {
		return src.run(ctx, tick, func(raw pipeline.RawSample) error {
			return runner.Feed(ctx, raw)
		})
	})
	return errors.Join(err, closeRec())
}

// synthSource produces a fixed number of synthetic frames.
type synthSource struct {
	synth   *biosig.Synth
	total   int
	counter uint8
	raw     *record.Recorder
}

func (s *synthSource) recordTo(path string, cfg pipeline.Config) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s.raw, err = record.NewRawRecorder(f, record.Header{
		RecordingID: "biosignal simulate",
		Start:       time.Now(),
		SampleRate:  int(cfg.SampleRate),
	}, cfg.ResolutionBits)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() error {
		return errors.Join(s.raw.Close(), f.Close())
	}, nil
}

// run emits frames to emit, waiting for tick between frames when it is
// non-nil.
func (s *synthSource) run(ctx context.Context, tick <-chan time.Time, emit func(pipeline.RawSample) error) error {
	for i := 0; i < s.total; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		raw := pipeline.RawSample{Counter: s.counter, Ch: s.synth.Next()}
		s.counter++
		if s.raw != nil {
			if err := s.raw.WriteRaw(raw); err != nil {
				return fmt.Errorf("raw recording: %w", err)
			}
		}
		if err := emit(raw); err != nil {
			return err
		}
	}
	return nil
}

// publishSynth sends frames as 70-byte batches, the way the acquisition
// device does.
func publishSynth(ctx context.Context, url, prefix string, src *synthSource, tick <-chan time.Time, logger *zap.Logger) error {
	nc, err := transport.Connect(url, transport.ConnectOptions{Name: "biosignal-simulate", Logger: logger})
	if err != nil {
		return err
	}
	defer nc.Close()

	pub := transport.NewPublisher(nc, prefix, nil, logger)
	batch := make([]pipeline.RawSample, 0, transport.BatchSamples)
	err = src.run(ctx, tick, func(raw pipeline.RawSample) error {
		batch = append(batch, raw)
		if len(batch) < transport.BatchSamples {
			return nil
		}
		err := pub.PublishSamples(batch)
		batch = batch[:0]
		return err
	})
	if err == nil && len(batch) > 0 {
		err = pub.PublishSamples(batch)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if ferr := nc.FlushTimeout(3 * time.Second); ferr != nil && !errors.Is(ferr, nats.ErrConnectionClosed) {
		logger.Warn("flush failed", zap.Error(ferr))
	}
	logger.Info("published raw stream", zap.String("subject", pub.RawSubject()))
	return err
}
