// Package hrv computes heart-rate-variability statistics over RR interval
// series given in milliseconds.
//
// Every statistic reports whether enough intervals were available; callers
// map ok=false to an absent value rather than a zero.
package hrv
