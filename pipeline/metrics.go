package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/algo-biosignal/measure/affect"
)

// Metrics are the Runner's prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	samples        prometheus.Counter
	bandUpdates    prometheus.Counter
	cardiacUpdates prometheus.Counter
	restarts       prometheus.Counter
	counterGaps    prometheus.Counter
	malformed      prometheus.Counter
	bpm            prometheus.Gauge
	state          *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biosignal_samples_total",
			Help: "Raw samples processed by the waveform unit.",
		}),
		bandUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biosignal_band_updates_total",
			Help: "Smoothed band-power updates emitted.",
		}),
		cardiacUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biosignal_cardiac_updates_total",
			Help: "Cardiac updates emitted.",
		}),
		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biosignal_restarts_total",
			Help: "Stream restarts that reset filter and buffer state.",
		}),
		counterGaps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biosignal_counter_gaps_total",
			Help: "Discontinuities observed in the 8-bit sample counter.",
		}),
		malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biosignal_malformed_packets_total",
			Help: "Raw notifications dropped because their length was not 7 or 70 bytes.",
		}),
		bpm: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "biosignal_bpm",
			Help: "Heart rate of the latest cardiac update, 0 when none was detected.",
		}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "biosignal_state",
			Help: "1 for the current stable affective state, 0 otherwise.",
		}, []string{"state"}),
	}
	reg.MustRegister(m.samples, m.bandUpdates, m.cardiacUpdates, m.restarts, m.counterGaps, m.malformed, m.bpm, m.state)
	return m
}

func (m *Metrics) observeSample() {
	if m != nil {
		m.samples.Inc()
	}
}

func (m *Metrics) observeBands() {
	if m != nil {
		m.bandUpdates.Inc()
	}
}

func (m *Metrics) observeCardiac(u *CardiacUpdate) {
	if m == nil {
		return
	}
	m.cardiacUpdates.Inc()
	if u.BPM != nil {
		m.bpm.Set(float64(*u.BPM))
	} else {
		m.bpm.Set(0)
	}
	for s := affect.NoData; s <= affect.Neutral; s++ {
		v := 0.0
		if s == u.Stable {
			v = 1
		}
		m.state.WithLabelValues(s.String()).Set(v)
	}
}

func (m *Metrics) observeRestart() {
	if m != nil {
		m.restarts.Inc()
	}
}

func (m *Metrics) observeGap() {
	if m != nil {
		m.counterGaps.Inc()
	}
}

// MalformedPackets is the counter transports increment for dropped packets.
// It is nil on a nil *Metrics.
func (m *Metrics) MalformedPackets() prometheus.Counter {
	if m == nil {
		return nil
	}
	return m.malformed
}
