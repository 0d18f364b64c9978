package record

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/OpenPSG/edf"

	"github.com/cwbudde/algo-biosignal/pipeline"
)

// FilteredRange is the physical range stored for conditioned channels.
// Values outside it are clipped.
const FilteredRange = 2.0

var channelLabels = [pipeline.NumChannels]string{"EEG 0", "EEG 1", "ECG"}

var errClosed = errors.New("record: recorder closed")

// Header describes a recording session.
type Header struct {
	PatientID   string
	RecordingID string
	Start       time.Time
	// SampleRate in Hz; each EDF data record holds one second.
	SampleRate int
}

// Recorder buffers frames into one-second EDF data records. A trailing
// partial second is discarded on Close.
type Recorder struct {
	w       *edf.Writer
	signals []edf.Signal
	record  [][]float64
	fill    int
	records int
	closed  bool
}

// NewRawRecorder stores ADC codes of the given resolution unscaled.
func NewRawRecorder(w io.WriteSeeker, hdr Header, bits int) (*Recorder, error) {
	if bits <= 0 || bits > 15 {
		return nil, fmt.Errorf("record: resolution %d bits out of range", bits)
	}
	maxCode := 1<<bits - 1
	return newRecorder(w, hdr, func(label string) edf.Signal {
		return edf.Signal{
			Label:             label,
			TransducerType:    "AgAgCl electrode",
			PhysicalDimension: "code",
			PhysicalMin:       0,
			PhysicalMax:       float64(maxCode),
			DigitalMin:        0,
			DigitalMax:        maxCode,
			Prefiltering:      "none",
		}
	})
}

// NewFilteredRecorder stores conditioned samples in [-FilteredRange, FilteredRange].
func NewFilteredRecorder(w io.WriteSeeker, hdr Header) (*Recorder, error) {
	return newRecorder(w, hdr, func(label string) edf.Signal {
		return edf.Signal{
			Label:             label,
			TransducerType:    "AgAgCl electrode",
			PhysicalDimension: "norm",
			PhysicalMin:       -FilteredRange,
			PhysicalMax:       FilteredRange,
			DigitalMin:        -math.MaxInt16,
			DigitalMax:        math.MaxInt16,
			Prefiltering:      "LP:45Hz N:50Hz",
		}
	})
}

func newRecorder(w io.WriteSeeker, hdr Header, signal func(label string) edf.Signal) (*Recorder, error) {
	if hdr.SampleRate <= 0 {
		return nil, fmt.Errorf("record: sample rate %d must be positive", hdr.SampleRate)
	}
	if hdr.Start.IsZero() {
		hdr.Start = time.Now()
	}

	signals := make([]edf.Signal, pipeline.NumChannels)
	record := make([][]float64, pipeline.NumChannels)
	for i, label := range channelLabels {
		signals[i] = signal(label)
		signals[i].SamplesPerRecord = hdr.SampleRate
		record[i] = make([]float64, hdr.SampleRate)
	}

	ew, err := edf.Create(w, edf.Header{
		Version:            edf.Version0,
		PatientID:          hdr.PatientID,
		RecordingID:        hdr.RecordingID,
		StartTime:          hdr.Start,
		DataRecordDuration: time.Second,
		SignalCount:        pipeline.NumChannels,
		Signals:            signals,
	})
	if err != nil {
		return nil, fmt.Errorf("record: create: %w", err)
	}

	return &Recorder{w: ew, signals: signals, record: record}, nil
}

// WriteRaw appends one acquisition frame.
func (r *Recorder) WriteRaw(s pipeline.RawSample) error {
	var v [pipeline.NumChannels]float64
	for i, code := range s.Ch {
		v[i] = float64(code)
	}
	return r.write(v)
}

// WriteFiltered appends one conditioned frame.
func (r *Recorder) WriteFiltered(s pipeline.FilteredSample) error {
	return r.write(s.Ch)
}

func (r *Recorder) write(v [pipeline.NumChannels]float64) error {
	if r.closed {
		return errClosed
	}
	for i := range v {
		sig := r.signals[i]
		r.record[i][r.fill] = min(max(v[i], sig.PhysicalMin), sig.PhysicalMax)
	}
	r.fill++
	if r.fill < len(r.record[0]) {
		return nil
	}

	r.fill = 0
	if err := r.w.WriteRecord(r.record); err != nil {
		return fmt.Errorf("record: write record %d: %w", r.records, err)
	}
	r.records++
	return nil
}

// Records returns the number of complete data records written.
func (r *Recorder) Records() int {
	return r.records
}

// Pending returns the number of buffered frames not yet written.
func (r *Recorder) Pending() int {
	return r.fill
}

// Close finalizes the EDF header. It does not close the underlying writer.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.w.Close(); err != nil {
		return fmt.Errorf("record: finalize: %w", err)
	}
	return nil
}
