package transport

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-biosignal/pipeline"
)

// Notification layout: each sample is a counter byte followed by three
// big-endian 16-bit channel codes. A notification holds one sample or a
// batch of BatchSamples samples.
const (
	SampleSize   = 1 + 2*pipeline.NumChannels
	BatchSamples = 10
	BatchSize    = SampleSize * BatchSamples
)

// ErrPacketLength reports a notification that is neither one sample nor a
// full batch.
var ErrPacketLength = errors.New("transport: unexpected packet length")

// DecodePacket appends the samples carried by data to dst.
func DecodePacket(dst []pipeline.RawSample, data []byte) ([]pipeline.RawSample, error) {
	if len(data) != SampleSize && len(data) != BatchSize {
		return dst, fmt.Errorf("%w: %d bytes", ErrPacketLength, len(data))
	}
	for off := 0; off < len(data); off += SampleSize {
		dst = append(dst, decodeSample(data[off:off+SampleSize]))
	}
	return dst, nil
}

func decodeSample(b []byte) pipeline.RawSample {
	s := pipeline.RawSample{Counter: b[0]}
	for ch := range s.Ch {
		s.Ch[ch] = binary.BigEndian.Uint16(b[1+2*ch:])
	}
	return s
}

// AppendSample appends the wire encoding of s to dst.
func AppendSample(dst []byte, s pipeline.RawSample) []byte {
	dst = append(dst, s.Counter)
	for _, v := range s.Ch {
		dst = binary.BigEndian.AppendUint16(dst, v)
	}
	return dst
}

// EncodePacket encodes one sample or a full batch as a notification.
func EncodePacket(dst []byte, samples []pipeline.RawSample) ([]byte, error) {
	if len(samples) != 1 && len(samples) != BatchSamples {
		return dst, fmt.Errorf("%w: %d samples", ErrPacketLength, len(samples))
	}
	for _, s := range samples {
		dst = AppendSample(dst, s)
	}
	return dst, nil
}
