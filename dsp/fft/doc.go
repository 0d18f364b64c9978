// Package fft turns fixed-size real sample windows into normalized
// magnitude spectra.
//
// Two [Engine] implementations are provided: [Radix2], a self-contained
// decimation-in-time transform with precomputed twiddle tables, and
// [Planned], which delegates the transform to algo-fft. Both return the
// first N/2 bin magnitudes divided by N/2, so a full-scale sinusoid at a
// bin-aligned frequency yields a magnitude of 1 in its bin.
package fft
