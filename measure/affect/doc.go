// Package affect maps heart-rate-variability statistics onto a coarse
// affective state and stabilizes the result over time with a majority
// vote.
package affect
