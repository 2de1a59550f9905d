package verify

import (
	"context"
	"fmt"
	"sort"

	"github.com/hyperspmv/hyperspmv/internal/matrixio"
	"github.com/hyperspmv/hyperspmv/internal/transport"
)

// Tolerance is the maximum relative error a row may exhibit before it
// is reported as a mismatch.
const Tolerance = 1e-8

// Mismatch describes one row whose distributed result diverged from
// the reference product beyond Tolerance.
type Mismatch struct {
	Row      int
	Expected float64
	Observed float64
	RelError float64
}

// Report is the outcome of one verification pass, produced on rank 0
// only; every other rank's call returns a nil Report.
type Report struct {
	Mismatches []Mismatch
}

// OK reports whether every row matched within Tolerance.
func (r *Report) OK() bool {
	return r == nil || len(r.Mismatches) == 0
}

// Run gathers y from every rank (via comm, rank 0 collecting) and, on
// rank 0, recomputes the reference product from coo against the
// deterministic payload x[i] = i+1 and diffs it row by row. Every rank
// must call Run; non-zero ranks block only long enough to hand off
// their own y.
//
// assign is the full global row assignment (identical on every rank,
// read from any partition file's #Partitioning section); it lets rank
// 0 reconstruct exactly which global rows each other rank owns, and in
// what order, without an extra size handshake: a rank's owned rows are
// always the ascending-sorted rows assign maps to it, the same order
// its own local2global internal block uses.
func Run(ctx context.Context, comm transport.Communicator, coo *matrixio.COOMatrix, assign []int, ownedRows []int, y []float64) (*Report, error) {
	rank := comm.Rank()
	world := comm.World()

	if rank != 0 {
		req := comm.PostSend(ctx, 0, y)
		return nil, req.Wait(ctx)
	}

	rowsByRank := make([][]int, world)
	for r, owner := range assign {
		rowsByRank[owner] = append(rowsByRank[owner], r)
	}
	for _, rows := range rowsByRank {
		sort.Ints(rows)
	}

	global := make([]float64, coo.N)
	for i, r := range ownedRows {
		global[r] = y[i]
	}

	for src := 1; src < world; src++ {
		rows := rowsByRank[src]
		if len(rows) == 0 {
			continue
		}
		buf := make([]float64, len(rows))
		req := comm.PostRecv(ctx, src, buf)
		if err := req.Wait(ctx); err != nil {
			return nil, fmt.Errorf("verify: gather from rank %d: %w", src, err)
		}
		for i, r := range rows {
			global[r] = buf[i]
		}
	}

	reference := referenceProduct(coo)

	report := &Report{}
	for r := 0; r < coo.N; r++ {
		expected := reference[r]
		observed := global[r]
		relErr := relativeError(expected, observed)
		if relErr > Tolerance {
			report.Mismatches = append(report.Mismatches, Mismatch{
				Row: r, Expected: expected, Observed: observed, RelError: relErr,
			})
		}
	}

	return report, nil
}

// referenceProduct computes y = A*x sequentially, x[i] = i+1.
func referenceProduct(coo *matrixio.COOMatrix) []float64 {
	y := make([]float64, coo.N)
	for _, e := range coo.Elements {
		y[e.Row] += e.Val * float64(e.Col+1)
	}

	return y
}

func relativeError(expected, observed float64) float64 {
	diff := observed - expected
	if diff < 0 {
		diff = -diff
	}
	denom := expected
	if denom < 0 {
		denom = -denom
	}
	if denom == 0 {
		return diff
	}

	return diff / denom
}
