// Package biquad provides second-order IIR filter runtime primitives.
//
// A [Section] implements canonical Direct Form II processing for a single
// second-order section defined by [Coefficients], keeping exactly two
// delay taps of state. Sections can be cascaded via [Chain].
//
// This package provides the processing runtime and frequency-response
// helpers only. The fixed coefficient sets used for biosignal conditioning
// live in dsp/filter/exg.
package biquad
