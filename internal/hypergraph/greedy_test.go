package hypergraph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperspmv/hyperspmv/internal/hypergraph"
	"github.com/hyperspmv/hyperspmv/internal/matrixio"
	"github.com/hyperspmv/hyperspmv/internal/testutil"
	"math/rand"
)

func TestGreedyPartitioner_EveryPartNonEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	coo := testutil.RandomSparseCOO(rng, 40, 0.05)
	hg := hypergraph.BuildColumnNetModel(coo)

	g := hypergraph.NewGreedyPartitioner()
	assign, err := g.Partition(context.Background(), hg, 5, hypergraph.Options{})
	require.NoError(t, err)
	require.Len(t, assign, 40)

	counts := make([]int, 5)
	for _, a := range assign {
		require.True(t, a >= 0 && a < 5)
		counts[a]++
	}
	for p, c := range counts {
		require.Greater(t, c, 0, "part %d is empty", p)
	}
}

func TestGreedyPartitioner_BalanceBound(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	coo := testutil.RandomSparseCOO(rng, 30, 0.1)
	hg := hypergraph.BuildColumnNetModel(coo)

	opts := hypergraph.Options{MaxImbalance: 0.2}
	g := hypergraph.NewGreedyPartitioner()
	assign, err := g.Partition(context.Background(), hg, 3, opts)
	require.NoError(t, err)

	total := 0
	for _, c := range hg.Cells {
		total += c.Weight
	}
	avg := float64(total) / 3
	maxAllowed := avg * 1.2

	weights := make([]int, 3)
	for i, a := range assign {
		weights[a] += hg.Cells[i].Weight
	}
	for p, w := range weights {
		require.LessOrEqual(t, float64(w), maxAllowed+1e-9, "part %d exceeds imbalance bound", p)
	}
}

func TestGreedyPartitioner_Errors(t *testing.T) {
	hg := &hypergraph.Hypergraph{Cells: []hypergraph.Cell{{ID: 0, Weight: 1}}}
	g := hypergraph.NewGreedyPartitioner()

	_, err := g.Partition(context.Background(), hg, 1, hypergraph.Options{})
	require.ErrorIs(t, err, hypergraph.ErrTooFewParts)

	_, err = g.Partition(context.Background(), &hypergraph.Hypergraph{}, 2, hypergraph.Options{})
	require.ErrorIs(t, err, hypergraph.ErrEmptyHypergraph)

	_, err = g.Partition(context.Background(), hg, 2, hypergraph.Options{})
	require.ErrorIs(t, err, hypergraph.ErrTooManyParts)
}

func TestBuildColumnNetModel_NoNonzeroElementsUnused(t *testing.T) {
	coo := &matrixio.COOMatrix{N: 2, M: 1, Elements: []matrixio.Element{{Row: 0, Col: 0, Val: 1}}}
	hg := hypergraph.BuildColumnNetModel(coo)
	require.Equal(t, 0, hg.Cells[1].Weight)
	require.Empty(t, hg.Nets[1].Pins)
}
