package main

import (
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-biosignal/dsp/spectrum"
	"github.com/cwbudde/algo-biosignal/internal/record"
	"github.com/cwbudde/algo-biosignal/internal/transport"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

// sink consumes the Runner output: it prints band and cardiac updates,
// records filtered samples and publishes everything.
type sink struct {
	logger *zap.Logger
	out    io.Writer
	pub    *transport.Publisher
	rec    *record.Recorder

	filtered int
	bands    int
	cardiac  int
}

func (s *sink) drain(events <-chan pipeline.Event) error {
	for ev := range events {
		if err := s.handle(ev); err != nil {
			return err
		}
	}
	s.logger.Info("event stream closed",
		zap.Int("filtered", s.filtered),
		zap.Int("bands", s.bands),
		zap.Int("cardiac", s.cardiac),
	)
	return nil
}

func (s *sink) handle(ev pipeline.Event) error {
	switch ev.Kind {
	case pipeline.EventFiltered:
		s.filtered++
		if s.rec != nil {
			if err := s.rec.WriteFiltered(ev.Filtered); err != nil {
				return err
			}
		}
	case pipeline.EventBands:
		s.bands++
		s.printBands(ev.Bands)
	case pipeline.EventCardiac:
		s.cardiac++
		s.printCardiac(ev.Cardiac)
	}

	if s.pub != nil {
		// Publisher logs failures; a lost update is not fatal.
		_ = s.pub.PublishEvent(ev)
	}
	return nil
}

func (s *sink) printBands(u *pipeline.BandPowerUpdate) {
	if s.out == nil {
		return
	}
	_, _ = fmt.Fprintf(s.out, "bands   seq=%-7d ch0=%s ch1=%s anxiety=%.3f meditation=%.3f sleep=%.3f\n",
		u.Seq, formatPowers(u.Ch0), formatPowers(u.Ch1),
		u.Scores.Anxiety, u.Scores.Meditation, u.Scores.Sleep)
}

func (s *sink) printCardiac(u *pipeline.CardiacUpdate) {
	if s.out == nil {
		return
	}
	display := "-"
	if u.DisplayBPM != nil {
		display = strconv.FormatFloat(*u.DisplayBPM, 'f', 1, 64)
	}
	_, _ = fmt.Fprintf(s.out, "cardiac seq=%-7d bpm=%s (%s) hrv=%s sdnn=%s rmssd=%s state=%s stable=%s\n",
		u.Seq, formatInt(u.BPM), display, formatInt(u.HRV),
		formatFloat(u.SDNN), formatFloat(u.RMSSD), u.State, u.Stable)
}

func formatPowers(p spectrum.Powers) string {
	return fmt.Sprintf("[%.2f %.2f %.2f %.2f %.2f]", p[0], p[1], p[2], p[3], p[4])
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
