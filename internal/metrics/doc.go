// Package metrics provides a measurement-collector capability used in
// place of a process-wide timing table: the SpMV driver accepts an
// optional Collector and records named-phase durations through it, with
// no package-level singleton.
package metrics
