package transport_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hyperspmv/hyperspmv/internal/transport"
)

func TestLocalMesh_SendRecv(t *testing.T) {
	meshes := transport.NewLocalMesh(2)
	ctx := context.Background()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		req := meshes[0].PostSend(ctx, 1, []float64{1, 2, 3})
		return req.Wait(ctx)
	})
	g.Go(func() error {
		buf := make([]float64, 3)
		req := meshes[1].PostRecv(ctx, 0, buf)
		if err := req.Wait(ctx); err != nil {
			return err
		}
		if buf[0] != 1 || buf[1] != 2 || buf[2] != 3 {
			t.Errorf("got %v", buf)
		}
		return nil
	})
	require.NoError(t, g.Wait())
}

func TestLocalMesh_Barrier(t *testing.T) {
	const world = 4
	meshes := transport.NewLocalMesh(world)

	g, ctx := errgroup.WithContext(context.Background())
	arrived := make(chan int, world)
	for r := 0; r < world; r++ {
		r := r
		g.Go(func() error {
			time.Sleep(time.Duration(r) * time.Millisecond)
			arrived <- r
			return meshes[r].Barrier(ctx)
		})
	}
	require.NoError(t, g.Wait())
	close(arrived)
	count := 0
	for range arrived {
		count++
	}
	require.Equal(t, world, count)
}

func TestLocalMesh_RankWorld(t *testing.T) {
	meshes := transport.NewLocalMesh(3)
	for r, m := range meshes {
		require.Equal(t, r, m.Rank())
		require.Equal(t, 3, m.World())
	}
}
