package exg

import "github.com/cwbudde/algo-biosignal/dsp/core"

// Bank holds one ChannelFilter per acquisition channel.
type Bank struct {
	filters []*ChannelFilter
}

// NewBank returns a Bank with channels independent filter cascades.
func NewBank(channels int, opts ...core.ProcessorOption) (*Bank, error) {
	b := &Bank{filters: make([]*ChannelFilter, channels)}
	for i := range b.filters {
		f, err := New(opts...)
		if err != nil {
			return nil, err
		}
		b.filters[i] = f
	}
	return b, nil
}

// Channels returns the number of channels in the bank.
func (b *Bank) Channels() int {
	return len(b.filters)
}

// Channel returns the filter of channel i.
func (b *Bank) Channel(i int) *ChannelFilter {
	return b.filters[i]
}

// Process filters one frame. raw and dst must both have Channels()
// elements.
func (b *Bank) Process(dst []float64, raw []uint16) {
	for i, f := range b.filters {
		dst[i] = f.Process(raw[i])
	}
}

// Reset zeroes every channel's filter state.
func (b *Bank) Reset() {
	for _, f := range b.filters {
		f.Reset()
	}
}
