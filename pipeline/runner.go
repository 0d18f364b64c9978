package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned when feeding a Runner after Close.
var ErrClosed = errors.New("pipeline: runner closed")

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records runner activity in m.
func WithMetrics(m *Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

type waveInput struct {
	sample  RawSample
	restart bool
}

type cardiacInput struct {
	ecg     float64
	restart bool
}

// Runner drives a WaveformUnit and a CardiacUnit on separate goroutines.
// Input is fed through Feed and Restart; output arrives on Events in
// per-unit order. The consumer must drain Events, since a full event queue
// stalls both units.
type Runner struct {
	cfg     Config
	logger  *zap.Logger
	metrics *Metrics

	wave  *WaveformUnit
	heart *CardiacUnit

	in     chan waveInput
	ecg    chan cardiacInput
	events chan Event
	done   chan struct{}

	// mu orders sends on in against closing it; stopping wakes senders
	// blocked on a full queue so Close never waits on them.
	mu        sync.RWMutex
	closed    bool
	stopping  chan struct{}
	closeOnce sync.Once
	started   atomic.Bool

	lastCounter uint8
	haveCounter bool
}

// NewRunner builds both processing units.
func NewRunner(cfg Config, opts ...RunnerOption) (*Runner, error) {
	wave, err := NewWaveformUnit(cfg)
	if err != nil {
		return nil, err
	}
	heart, err := NewCardiacUnit(cfg)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:    cfg,
		logger: zap.NewNop(),
		wave:   wave,
		heart:  heart,
		in:     make(chan waveInput, cfg.QueueLength),
		ecg:    make(chan cardiacInput, cfg.QueueLength),
		events: make(chan Event, cfg.QueueLength),
		done:   make(chan struct{}),

		stopping: make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Events returns the output stream. It is closed when Run returns.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Feed queues one raw sample, blocking while the input queue is full.
func (r *Runner) Feed(ctx context.Context, s RawSample) error {
	return r.send(ctx, waveInput{sample: s})
}

// Restart queues a reset of all filter, window and cardiac state. Samples
// fed before Restart are processed with the old state.
func (r *Runner) Restart(ctx context.Context) error {
	return r.send(ctx, waveInput{restart: true})
}

func (r *Runner) send(ctx context.Context, in waveInput) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	select {
	case <-r.done:
		return ErrClosed
	default:
	}
	select {
	case r.in <- in:
		return nil
	case <-r.stopping:
		return ErrClosed
	case <-r.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting input. Queued samples are still processed; Run
// returns once both units have drained.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		close(r.stopping)
		r.mu.Lock()
		r.closed = true
		close(r.in)
		r.mu.Unlock()
	})
}

// Run processes input until Close is called and the queues drain, or ctx
// is cancelled. It may be called once.
func (r *Runner) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return errors.New("pipeline: runner already started")
	}

	defer close(r.events)
	defer close(r.done)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(r.ecg)
		return r.runWaveform(gctx)
	})
	g.Go(func() error {
		return r.runCardiac(gctx)
	})

	r.logger.Info("pipeline started",
		zap.Float64("sample_rate", r.cfg.SampleRate),
		zap.Int("fft_size", r.cfg.FFTSize),
		zap.String("fft_backend", string(r.cfg.FFTBackend)),
		zap.Int("cardiac_buffer", r.cfg.CardiacBuffer),
	)
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	r.logger.Info("pipeline stopped", zap.Error(err))
	return err
}

func (r *Runner) runWaveform(ctx context.Context) error {
	for {
		var in waveInput
		var ok bool
		select {
		case in, ok = <-r.in:
			if !ok {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		if in.restart {
			r.wave.Reset()
			r.haveCounter = false
			r.metrics.observeRestart()
			r.logger.Info("stream restart, state reset")
			if err := sendCtx(ctx, r.ecg, cardiacInput{restart: true}); err != nil {
				return err
			}
			continue
		}

		r.checkCounter(in.sample.Counter)
		filtered, bands := r.wave.Process(in.sample)
		r.metrics.observeSample()

		if err := sendCtx(ctx, r.ecg, cardiacInput{ecg: filtered.Ch[ChannelECG]}); err != nil {
			return err
		}
		if r.cfg.EmitWaveform {
			if err := sendCtx(ctx, r.events, Event{Kind: EventFiltered, Filtered: filtered}); err != nil {
				return err
			}
		}
		if bands != nil {
			r.metrics.observeBands()
			if err := sendCtx(ctx, r.events, Event{Kind: EventBands, Bands: bands}); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) runCardiac(ctx context.Context) error {
	for {
		var in cardiacInput
		var ok bool
		select {
		case in, ok = <-r.ecg:
			if !ok {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		if in.restart {
			r.heart.Reset()
			continue
		}

		upd := r.heart.Process(in.ecg)
		if upd == nil {
			continue
		}
		r.metrics.observeCardiac(upd)
		if upd.BPM != nil {
			r.logger.Debug("cardiac update",
				zap.Uint64("seq", upd.Seq),
				zap.Int("bpm", *upd.BPM),
				zap.Stringer("state", upd.State),
			)
		}
		if err := sendCtx(ctx, r.events, Event{Kind: EventCardiac, Cardiac: upd}); err != nil {
			return err
		}
	}
}

// checkCounter logs and counts discontinuities of the 8-bit counter. Gaps
// are reported only; samples are never reordered or synthesized.
func (r *Runner) checkCounter(c uint8) {
	if r.haveCounter && c != r.lastCounter+1 {
		r.metrics.observeGap()
		r.logger.Warn("sample counter gap",
			zap.Uint8("expected", r.lastCounter+1),
			zap.Uint8("got", c),
			zap.Int("missing", int(c-r.lastCounter-1)),
		)
	}
	r.lastCounter = c
	r.haveCounter = true
}

func sendCtx[T any](ctx context.Context, ch chan<- T, v T) error {
	select {
	case ch <- v:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pipeline: %w", ctx.Err())
	}
}
