package record

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/OpenPSG/edf"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

const sourceChunk = 500

// Source replays the first three signals of an EDF file as acquisition
// frames. Physical values are taken as ADC codes; counters are
// synthesized.
type Source struct {
	signals [pipeline.NumChannels]*edf.SignalReader
	chunks  [pipeline.NumChannels][]float64
	maxCode int
	pos     int
	n       int
	counter uint8
	done    bool
}

// OpenSource reads from r, clamping codes to the given resolution.
func OpenSource(r io.ReadSeeker, bits int) (*Source, error) {
	if bits <= 0 || bits > 16 {
		return nil, fmt.Errorf("record: resolution %d bits out of range", bits)
	}
	er, err := edf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("record: open: %w", err)
	}

	s := &Source{maxCode: 1<<bits - 1}
	for i := range s.signals {
		s.signals[i], err = er.Signal(i)
		if err != nil {
			return nil, fmt.Errorf("record: signal %d: %w", i, err)
		}
		s.chunks[i] = make([]float64, sourceChunk)
	}
	return s, nil
}

// Next returns the next frame or io.EOF after the last complete frame.
func (s *Source) Next() (pipeline.RawSample, error) {
	if s.pos == s.n {
		if err := s.fill(); err != nil {
			return pipeline.RawSample{}, err
		}
	}

	out := pipeline.RawSample{Counter: s.counter}
	for i := range out.Ch {
		code := int(math.Round(s.chunks[i][s.pos]))
		out.Ch[i] = uint16(core.ClampInt(code, 0, s.maxCode))
	}
	s.pos++
	s.counter++
	return out, nil
}

// fill reads the next chunk of every channel. Channels of unequal length
// are truncated to the shortest.
func (s *Source) fill() error {
	if s.done {
		return io.EOF
	}
	n := sourceChunk
	for i, sr := range s.signals {
		got, err := sr.Read(s.chunks[i])
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("record: read signal %d: %w", i, err)
		}
		if err != nil {
			s.done = true
		}
		n = min(n, got)
	}
	if n == 0 {
		s.done = true
		return io.EOF
	}
	s.pos, s.n = 0, n
	return nil
}

// FrameCount estimates the number of frames in an EDF file of size bytes
// whose three signals share one sample rate.
func FrameCount(size int64) int64 {
	const headerBytes = 256 * (pipeline.NumChannels + 1)
	n := (size - headerBytes) / (2 * pipeline.NumChannels)
	return max(n, 0)
}
