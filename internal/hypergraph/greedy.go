package hypergraph

import (
	"context"
	"errors"
)

// ErrTooManyParts indicates K exceeds the number of cells, which would
// force at least one part to own zero cells even before any
// communication-minimizing refinement runs.
var ErrTooManyParts = errors.New("hypergraph: K exceeds cell count")

// defaultMaxPasses bounds the local-refinement loop so a pathological
// input cannot spin forever chasing a vanishing improvement.
const defaultMaxPasses = 12

// GreedyPartitioner is the default, built-in Partitioner implementation:
// an LPT (longest-processing-time) initial balance, refined by bounded
// passes of single-cell moves that reduce the connectivity metric without
// breaking the imbalance bound or emptying a part.
//
// It exists because a real connectivity-minimizing engine (PaToH/
// Zoltan-class) is a separate, heavyweight dependency whose
// input/output contract this type satisfies so the rest of the pipeline
// is runnable and testable without an external tool. Its structure —
// repeat-bounded-passes-until-no-improving-move — follows the same
// shape as an augmenting-path loop with a bounded outer iteration and an
// inner loop that runs to a local fixed point.
type GreedyPartitioner struct {
	// MaxPasses bounds the refinement loop. Zero means
	// defaultMaxPasses.
	MaxPasses int
}

// NewGreedyPartitioner returns a GreedyPartitioner with default settings.
func NewGreedyPartitioner() *GreedyPartitioner {
	return &GreedyPartitioner{MaxPasses: defaultMaxPasses}
}

// Partition implements Partitioner.
func (g *GreedyPartitioner) Partition(ctx context.Context, hg *Hypergraph, k int, opts Options) ([]int, error) {
	opts.normalize()
	if k < 2 {
		return nil, ErrTooFewParts
	}
	n := len(hg.Cells)
	if n == 0 {
		return nil, ErrEmptyHypergraph
	}
	if k > n {
		return nil, ErrTooManyParts
	}

	assign := initialLPTAssignment(hg, k)

	cellNets := buildCellNets(hg)
	st := newConnectivityState(hg, assign, k)

	maxPasses := g.MaxPasses
	if maxPasses <= 0 {
		maxPasses = defaultMaxPasses
	}

	totalWeight := 0
	for _, c := range hg.Cells {
		totalWeight += c.Weight
	}
	maxAllowed := (float64(totalWeight) / float64(k)) * (1 + opts.MaxImbalance)

	for pass := 0; pass < maxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		moved := false
		for _, cell := range hg.Cells {
			r := cell.ID
			from := assign[r]
			if st.partCellCount[from] <= 1 {
				continue // never empty a part
			}
			bestTo := -1
			bestDelta := 0
			for to := 0; to < k; to++ {
				if to == from {
					continue
				}
				if float64(st.partWeight[to]+cell.Weight) > maxAllowed {
					continue
				}
				delta := st.moveDelta(cellNets[r], from, to)
				if delta < bestDelta {
					bestDelta = delta
					bestTo = to
				}
			}
			if bestTo >= 0 {
				st.applyMove(cellNets[r], r, from, bestTo, cell.Weight)
				assign[r] = bestTo
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	return assign, nil
}

// initialLPTAssignment sorts cells by descending weight, places the
// first k cells processed one-per-part, and greedily assigns each
// remaining cell to the least-loaded part, ties broken by lowest part
// index. Seeding one cell per part guarantees every part is non-empty
// whenever k <= len(hg.Cells), even when some cells have zero weight.
func initialLPTAssignment(hg *Hypergraph, k int) []int {
	n := len(hg.Cells)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Stable descending sort by weight (simple insertion sort is fine;
	// n is the row count of one partitioning run, not a hot loop).
	for i := 1; i < n; i++ {
		j := i
		for j > 0 && hg.Cells[order[j]].Weight > hg.Cells[order[j-1]].Weight {
			order[j], order[j-1] = order[j-1], order[j]
			j--
		}
	}

	assign := make([]int, n)
	partWeight := make([]int, k)
	for i, idx := range order {
		best := 0
		if i < k {
			best = i
		} else {
			for p := 1; p < k; p++ {
				if partWeight[p] < partWeight[best] {
					best = p
				}
			}
		}
		assign[hg.Cells[idx].ID] = best
		partWeight[best] += hg.Cells[idx].Weight
	}

	return assign
}

// buildCellNets inverts Hypergraph.Nets[*].Pins into, for each cell, the
// list of nets it participates in.
func buildCellNets(hg *Hypergraph) [][]int {
	out := make([][]int, len(hg.Cells))
	for _, net := range hg.Nets {
		for _, r := range net.Pins {
			out[r] = append(out[r], net.ID)
		}
	}

	return out
}

// connectivityState tracks, per net, how many cells of each part touch
// it, so a single-cell move's cost delta can be computed in time
// proportional to that cell's net degree rather than rescanning the
// whole hypergraph.
type connectivityState struct {
	partsTouching []map[int]int // per net: part -> count of pins in that part
	partWeight    []int
	partCellCount []int
}

func newConnectivityState(hg *Hypergraph, assign []int, k int) *connectivityState {
	st := &connectivityState{
		partsTouching: make([]map[int]int, len(hg.Nets)),
		partWeight:    make([]int, k),
		partCellCount: make([]int, k),
	}
	for _, net := range hg.Nets {
		counts := make(map[int]int, 4)
		for _, r := range net.Pins {
			counts[assign[r]]++
		}
		st.partsTouching[net.ID] = counts
	}
	for _, cell := range hg.Cells {
		p := assign[cell.ID]
		st.partWeight[p] += cell.Weight
		st.partCellCount[p]++
	}

	return st
}

// moveDelta returns the change in total connectivity cost if the cell
// incident to nets were moved from `from` to `to`, without mutating
// state.
func (st *connectivityState) moveDelta(nets []int, from, to int) int {
	delta := 0
	for _, netID := range nets {
		counts := st.partsTouching[netID]
		before := len(counts)
		// Simulate removing one pin from `from` and adding one to `to`.
		afterFromEmpty := counts[from] == 1
		_, toPresent := counts[to]
		after := before
		if afterFromEmpty {
			after--
		}
		if !toPresent {
			after++
		}
		delta += after - before
	}

	return delta
}

// applyMove commits the move of cell r from `from` to `to` across all of
// its incident nets and updates per-part aggregates.
func (st *connectivityState) applyMove(nets []int, r, from, to, weight int) {
	for _, netID := range nets {
		counts := st.partsTouching[netID]
		counts[from]--
		if counts[from] == 0 {
			delete(counts, from)
		}
		counts[to]++
	}
	st.partWeight[from] -= weight
	st.partWeight[to] += weight
	st.partCellCount[from]--
	st.partCellCount[to]++
}
