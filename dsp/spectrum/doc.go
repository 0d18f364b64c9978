// Package spectrum derives EEG band measures from magnitude spectra.
//
// The package does not implement the FFT itself; it consumes the
// normalized magnitudes produced by package fft and provides band power,
// relative power, temporal smoothing and the derived goal scores.
package spectrum
