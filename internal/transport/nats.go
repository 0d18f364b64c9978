package transport

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-biosignal/pipeline"
)

// ConnectOptions tune Connect.
type ConnectOptions struct {
	Name   string
	Logger *zap.Logger
	// OnReconnect runs after the connection is re-established.
	OnReconnect func()
}

// Connect dials url and retries forever after a lost connection.
func Connect(url string, opts ConnectOptions) (*nats.Conn, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	name := opts.Name
	if name == "" {
		name = "algo-biosignal"
	}

	nc, err := nats.Connect(
		url,
		nats.Name(name),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
			if opts.OnReconnect != nil {
				opts.OnReconnect()
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("transport: connect %s: %w", url, err)
	}
	return nc, nil
}

// Feeder accepts decoded samples; *pipeline.Runner implements it.
type Feeder interface {
	Feed(ctx context.Context, s pipeline.RawSample) error
	Restart(ctx context.Context) error
}

// Subscriber decodes raw notifications from a subject and feeds them into
// a pipeline.
type Subscriber struct {
	subject string
	logger  *zap.Logger
	feeder  Feeder

	restart          chan struct{}
	samples          []pipeline.RawSample
	malformed        atomic.Uint64
	malformedCounter prometheus.Counter
}

// SubscriberOption configures a Subscriber.
type SubscriberOption func(*Subscriber)

// WithMalformedCounter increments c for every dropped packet.
func WithMalformedCounter(c prometheus.Counter) SubscriberOption {
	return func(s *Subscriber) {
		s.malformedCounter = c
	}
}

// NewSubscriber returns a subscriber for subject.
func NewSubscriber(subject string, feeder Feeder, logger *zap.Logger, opts ...SubscriberOption) *Subscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Subscriber{
		subject: subject,
		logger:  logger,
		feeder:  feeder,
		restart: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reconnected schedules a pipeline restart before the next packet. It
// never blocks and may be called from any goroutine.
func (s *Subscriber) Reconnected() {
	select {
	case s.restart <- struct{}{}:
	default:
	}
}

// Malformed returns the number of packets dropped for bad length.
func (s *Subscriber) Malformed() uint64 {
	return s.malformed.Load()
}

// Run subscribes on nc and feeds packets until ctx is done or the
// subscription channel closes.
func (s *Subscriber) Run(ctx context.Context, nc *nats.Conn) error {
	msgs := make(chan *nats.Msg, 256)
	sub, err := nc.ChanSubscribe(s.subject, msgs)
	if err != nil {
		return fmt.Errorf("transport: subscribe %s: %w", s.subject, err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			s.logger.Warn("unsubscribe failed", zap.Error(err))
		}
	}()

	s.logger.Info("subscribed", zap.String("subject", s.subject))
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := s.Handle(ctx, msg.Data); err != nil {
				return err
			}
		}
	}
}

// Handle decodes one notification and feeds its samples. Malformed packets
// are logged and skipped; only feeding errors are returned.
func (s *Subscriber) Handle(ctx context.Context, data []byte) error {
	select {
	case <-s.restart:
		if err := s.feeder.Restart(ctx); err != nil {
			return err
		}
	default:
	}

	var err error
	s.samples, err = DecodePacket(s.samples[:0], data)
	if err != nil {
		s.malformed.Add(1)
		if s.malformedCounter != nil {
			s.malformedCounter.Inc()
		}
		s.logger.Warn("dropping packet", zap.Int("bytes", len(data)), zap.Error(err))
		return nil
	}
	for _, sample := range s.samples {
		if err := s.feeder.Feed(ctx, sample); err != nil {
			return err
		}
	}
	return nil
}

// MsgPublisher is the subset of *nats.Conn used by Publisher.
type MsgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// Publisher writes pipeline events to "<prefix>.waveform", "<prefix>.bands"
// and "<prefix>.cardiac", and raw packets to "<prefix>.raw".
type Publisher struct {
	conn   MsgPublisher
	prefix string
	codec  Codec
	logger *zap.Logger

	packet []byte
}

// NewPublisher returns a publisher; a nil codec selects JSON.
func NewPublisher(conn MsgPublisher, prefix string, codec Codec, logger *zap.Logger) *Publisher {
	if codec == nil {
		codec = JSONCodec{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{conn: conn, prefix: prefix, codec: codec, logger: logger}
}

// Subject returns the subject events of kind are published on.
func (p *Publisher) Subject(kind pipeline.EventKind) string {
	switch kind {
	case pipeline.EventFiltered:
		return p.prefix + ".waveform"
	case pipeline.EventBands:
		return p.prefix + ".bands"
	case pipeline.EventCardiac:
		return p.prefix + ".cardiac"
	default:
		return p.prefix + ".unknown"
	}
}

// RawSubject is the subject raw packets are published on.
func (p *Publisher) RawSubject() string {
	return p.prefix + ".raw"
}

// PublishEvent encodes and publishes one pipeline event.
func (p *Publisher) PublishEvent(ev pipeline.Event) error {
	var payload any
	switch ev.Kind {
	case pipeline.EventFiltered:
		payload = ev.Filtered
	case pipeline.EventBands:
		payload = ev.Bands
	case pipeline.EventCardiac:
		payload = ev.Cardiac
	default:
		return fmt.Errorf("transport: unknown event kind %d", ev.Kind)
	}

	data, err := p.codec.Marshal(payload)
	if err != nil {
		return fmt.Errorf("transport: encode event: %w", err)
	}
	return p.publish(p.Subject(ev.Kind), p.codec.ContentType(), data)
}

// PublishSamples publishes samples as raw notifications, full batches
// first and single-sample packets for the remainder.
func (p *Publisher) PublishSamples(samples []pipeline.RawSample) error {
	for len(samples) > 0 {
		n := 1
		if len(samples) >= BatchSamples {
			n = BatchSamples
		}
		var err error
		p.packet, err = EncodePacket(p.packet[:0], samples[:n])
		if err != nil {
			return err
		}
		data := append([]byte(nil), p.packet...)
		if err := p.publish(p.RawSubject(), "application/octet-stream", data); err != nil {
			return err
		}
		samples = samples[n:]
	}
	return nil
}

func (p *Publisher) publish(subject, contentType string, data []byte) error {
	msg := nats.NewMsg(subject)
	msg.Header.Set("Content-Type", contentType)
	msg.Data = data
	if err := p.conn.PublishMsg(msg); err != nil {
		p.logger.Warn("publish failed", zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("transport: publish %s: %w", subject, err)
	}
	return nil
}
