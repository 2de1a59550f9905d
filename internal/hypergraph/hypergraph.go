package hypergraph

import (
	"sort"

	"github.com/hyperspmv/hyperspmv/internal/matrixio"
)

// Cell is a hypergraph vertex: one matrix row, weighted by its nonzero
// count (the work assigned to whichever part owns it).
type Cell struct {
	ID     int
	Weight int
}

// Net is a hypergraph hyperedge: one matrix column, whose Pins are the
// cell IDs (rows) with a nonzero in that column. Cost is len(Pins),
// matching the column-net model's per-net communication weight.
type Net struct {
	ID   int
	Pins []int
	Cost int
}

// Hypergraph is the column-net model built from a global COO matrix:
// Cells[i] models row i, Nets[j] models column j.
type Hypergraph struct {
	Cells []Cell
	Nets  []Net
}

// BuildColumnNetModel constructs the column-net hypergraph from a square
// COO matrix: Cells[i].Weight is row i's nonzero count, Nets[j].Pins is
// the sorted, deduplicated list of rows with a nonzero in column j.
//
// This mirrors the reference implementation's xnets/nets (row-major CSR
// build, giving cell weights) and xpins/pins (column-major CSR build,
// giving net pins and cost) — the same element list sorted twice, once
// per axis.
func BuildColumnNetModel(m *matrixio.COOMatrix) *Hypergraph {
	n := m.N

	rowCount := make([]int, n)
	for _, e := range m.Elements {
		rowCount[e.Row]++
	}
	cells := make([]Cell, n)
	for i := 0; i < n; i++ {
		cells[i] = Cell{ID: i, Weight: rowCount[i]}
	}

	pinSets := make([][]int, n)
	for _, e := range m.Elements {
		pinSets[e.Col] = append(pinSets[e.Col], e.Row)
	}
	nets := make([]Net, n)
	for j := 0; j < n; j++ {
		pins := dedupSorted(pinSets[j])
		nets[j] = Net{ID: j, Pins: pins, Cost: len(pins)}
	}

	return &Hypergraph{Cells: cells, Nets: nets}
}

// dedupSorted sorts vals ascending and removes duplicates in place.
func dedupSorted(vals []int) []int {
	if len(vals) == 0 {
		return vals
	}
	sort.Ints(vals)
	out := vals[:1]
	for _, v := range vals[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}

	return out
}
