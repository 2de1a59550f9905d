package hypergraph

import (
	"context"
	"errors"
)

// ErrTooFewParts indicates K < 2 was requested.
var ErrTooFewParts = errors.New("hypergraph: K must be at least 2")

// ErrEmptyHypergraph indicates a hypergraph with no cells was presented.
var ErrEmptyHypergraph = errors.New("hypergraph: no cells to partition")

// Metric selects the cost function a Partitioner optimizes. Only
// Connectivity is actually used by GreedyPartitioner; CutNet is declared
// for interface completeness and so a real PaToH/Zoltan-class engine
// plugged in behind Partitioner can expose its own metric choice without
// changing this type's shape.
type Metric int

const (
	// Connectivity costs each net (number of parts it touches, minus
	// one), summed.
	Connectivity Metric = iota
	// CutNet costs 1 per net that touches more than one part.
	CutNet
)

// Options configures a Partitioner invocation. It mirrors the small
// options-struct-with-normalize shape used elsewhere in this codebase:
// zero value is a valid, fully-defaulted configuration.
type Options struct {
	// Metric is the cost function to minimize. Defaults to Connectivity.
	Metric Metric
	// MaxImbalance bounds how far any part's total cell weight may
	// exceed the perfectly-balanced average, as a fraction (0.03 = 3%).
	// Defaults to DefaultMaxImbalance.
	MaxImbalance float64
	// Seed drives any tie-breaking/randomized decisions the partitioner
	// makes, for reproducible output. Defaults to 0.
	Seed int64
}

// DefaultMaxImbalance is the default imbalance bound a partitioner
// applies when none is requested explicitly.
const DefaultMaxImbalance = 0.03

func (o *Options) normalize() {
	if o.MaxImbalance <= 0 {
		o.MaxImbalance = DefaultMaxImbalance
	}
}

// Partitioner computes a K-way row assignment over a Hypergraph. It is a
// capability selected at construction time, not a compile-time switch:
// production deployments may plug in bindings to a real
// connectivity-minimizing engine (PaToH, Zoltan, ...) behind this same
// interface.
type Partitioner interface {
	// Partition returns assign, a slice of length len(hg.Cells) mapping
	// each cell (row) to a part in [0, k). Every part must end up with
	// at least one cell for k <= len(hg.Cells).
	Partition(ctx context.Context, hg *Hypergraph, k int, opts Options) (assign []int, err error)
}
