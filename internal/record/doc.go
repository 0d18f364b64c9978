// Package record stores pipeline streams as EDF files and replays raw EDF
// recordings as acquisition frames.
package record
