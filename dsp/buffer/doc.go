// Package buffer provides the fixed-capacity sliding windows used by the
// streaming analyzers: a [Ring] that keeps the most recent N samples in
// arrival order and a [MovingAverage] over the last K values.
package buffer
