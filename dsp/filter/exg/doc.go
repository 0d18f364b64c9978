// Package exg conditions raw ExG (EEG/ECG) ADC codes into clean, unit-range
// waveforms.
//
// A [ChannelFilter] normalizes one channel's ADC code to roughly [-1, 1],
// runs it through a 45 Hz bandpass biquad and then through a two-section
// 50 Hz mains notch. The coefficient sets are fixed for a 500 Hz sampling
// rate. Every channel owns its own filter instance; state is zeroed only by
// an explicit [ChannelFilter.Reset].
package exg
