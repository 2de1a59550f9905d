package driver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hyperspmv/hyperspmv/internal/driver"
	"github.com/hyperspmv/hyperspmv/internal/hypergraph"
	"github.com/hyperspmv/hyperspmv/internal/kernel"
	"github.com/hyperspmv/hyperspmv/internal/metrics"
	"github.com/hyperspmv/hyperspmv/internal/partition"
	"github.com/hyperspmv/hyperspmv/internal/spmat"
	"github.com/hyperspmv/hyperspmv/internal/transport"
)

type fixedPartitioner struct{ assign []int }

func (f fixedPartitioner) Partition(ctx context.Context, hg *hypergraph.Hypergraph, k int, opts hypergraph.Options) ([]int, error) {
	return f.assign, nil
}

func planAndLoad(t *testing.T, matrixFile, basename string, p int, assign []int) []*spmat.SparseMatrix {
	t.Helper()
	outDir := t.TempDir()
	pl := partition.NewPlanner(fixedPartitioner{assign: assign})
	require.NoError(t, pl.Plan(context.Background(), matrixFile, p, outDir))

	sms := make([]*spmat.SparseMatrix, p)
	for r := 0; r < p; r++ {
		sm, err := spmat.Load(outDir, basename, p, r, p)
		require.NoError(t, err)
		sms[r] = sm
	}

	return sms
}

// TestSpMV_IdentityOnTwo: 4x4 identity, P=2, expected y = [1,2,3,4],
// no communication.
func TestSpMV_IdentityOnTwo(t *testing.T) {
	sms := planAndLoad(t, "../../testdata/identity4.mtx", "identity4", 2, []int{0, 0, 1, 1})
	meshes := transport.NewLocalMesh(2)

	ys := make([][]float64, 2)
	g, ctx := errgroup.WithContext(context.Background())
	for r := 0; r < 2; r++ {
		r := r
		g.Go(func() error {
			sm := sms[r]
			halo := transport.NewHaloExchange(meshes[r], sm)
			drv := driver.New(meshes[r], halo, kernel.NewCSRInternalKernel(sm), kernel.NewCSRExternalKernel(sm))
			x := sm.InitialX()
			y := make([]float64, sm.R)
			if err := drv.SpMV(ctx, x, y); err != nil {
				return err
			}
			ys[r] = y
			require.Equal(t, driver.StateIdle, drv.State())

			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, []float64{1, 2}, ys[0])
	require.Equal(t, []float64{3, 4}, ys[1])
}

// TestSpMV_Tridiagonal: 4x4 tridiagonal across P=2, expected
// y = [0, 0, 0, 5].
func TestSpMV_Tridiagonal(t *testing.T) {
	sms := planAndLoad(t, "../../testdata/tridiag4.mtx", "tridiag4", 2, []int{0, 0, 1, 1})
	meshes := transport.NewLocalMesh(2)

	ys := make([][]float64, 2)
	g, ctx := errgroup.WithContext(context.Background())
	for r := 0; r < 2; r++ {
		r := r
		g.Go(func() error {
			sm := sms[r]
			halo := transport.NewHaloExchange(meshes[r], sm)
			drv := driver.New(meshes[r], halo, kernel.NewCSRInternalKernel(sm), kernel.NewCSRExternalKernel(sm))
			x := sm.InitialX()
			y := make([]float64, sm.R)
			if err := drv.SpMV(ctx, x, y); err != nil {
				return err
			}
			ys[r] = y

			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.InDeltaSlice(t, []float64{0, 0}, ys[0], 1e-9)
	require.InDeltaSlice(t, []float64{0, 5}, ys[1], 1e-9)
}

// TestSpMVMeasurementOnce_RecordsEveryPhase exercises the synchronous
// measurement path end to end on the all-diagonal case (no
// communication), verifying every timing phase is sampled.
func TestSpMVMeasurementOnce_RecordsEveryPhase(t *testing.T) {
	sms := planAndLoad(t, "../../testdata/identity4.mtx", "identity4", 2, []int{0, 0, 1, 1})
	meshes := transport.NewLocalMesh(2)
	collectors := []*metrics.InMemoryCollector{metrics.NewInMemoryCollector(), metrics.NewInMemoryCollector()}

	g, ctx := errgroup.WithContext(context.Background())
	for r := 0; r < 2; r++ {
		r := r
		g.Go(func() error {
			sm := sms[r]
			halo := transport.NewHaloExchange(meshes[r], sm)
			drv := driver.New(meshes[r], halo, kernel.NewCSRInternalKernel(sm), kernel.NewCSRExternalKernel(sm),
				driver.WithCollector(collectors[r]))
			x := sm.InitialX()
			y := make([]float64, sm.R)

			return drv.SpMVMeasurementOnce(ctx, x, y)
		})
	}
	require.NoError(t, g.Wait())

	for _, c := range collectors {
		require.Len(t, c.Samples(metrics.PhasePack), 1)
		require.Len(t, c.Samples(metrics.PhaseComm), 1)
		require.Len(t, c.Samples(metrics.PhaseInternal), 1)
		require.Len(t, c.Samples(metrics.PhaseExternal), 1)
		require.Len(t, c.Samples(metrics.PhaseTotal), 1)
	}
}

