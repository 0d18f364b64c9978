// Package pipeline wires the channel filters, the spectral band-power
// path and the cardiac path into a streaming processor for two EEG
// channels and one ECG channel.
//
// The waveform unit ([WaveformUnit]) and the cardiac unit ([CardiacUnit])
// are plain single-owner state machines and can be driven synchronously.
// [Runner] runs each of them on its own goroutine, connected by bounded
// channels, and merges their output into one ordered event stream per
// unit.
//
// Channel 0 and 1 carry EEG, channel 2 carries ECG.
package pipeline
