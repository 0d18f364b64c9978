// Package cardiac estimates heart rate and heart-rate variability from a
// window of filtered ECG samples.
//
// Each call to [Analyzer.Analyze] works from scratch on the buffer it is
// given: R peaks are found as local maxima above half the buffer maximum,
// separated by a refractory period; consecutive peaks yield RR intervals,
// which are kept only when the implied rate is physiologically plausible.
// Fields of [Result] are nil when the buffer does not contain enough beats.
package cardiac
