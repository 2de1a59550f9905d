package transport

import (
	"context"
	"sync"
)

// LocalMesh is the in-process Communicator implementation: World()
// goroutines share one address space, connected by one buffered channel
// per ordered (src, dst) pair. A run constructs one LocalMesh per rank
// via NewLocalMesh, then supervises the rank goroutines with
// golang.org/x/sync/errgroup (see cmd/spmv), mirroring an all-or-nothing
// failure semantics: the first error cancels every other rank's
// context.
type LocalMesh struct {
	core *meshCore
	rank int
}

type meshCore struct {
	world int
	chans [][]chan []float64 // chans[src][dst], capacity 1
	bar   *barrier
}

// NewLocalMesh builds a fully connected mesh for world ranks and
// returns one LocalMesh handle per rank, sharing the same underlying
// channel matrix and barrier.
func NewLocalMesh(world int) []*LocalMesh {
	core := &meshCore{
		world: world,
		chans: make([][]chan []float64, world),
		bar:   newBarrier(world),
	}
	for i := range core.chans {
		core.chans[i] = make([]chan []float64, world)
		for j := range core.chans[i] {
			core.chans[i][j] = make(chan []float64, 1)
		}
	}

	meshes := make([]*LocalMesh, world)
	for r := range meshes {
		meshes[r] = &LocalMesh{core: core, rank: r}
	}

	return meshes
}

func (lm *LocalMesh) Rank() int  { return lm.rank }
func (lm *LocalMesh) World() int { return lm.core.world }

// Close releases this rank's view of the mesh. The channel matrix has
// no OS-level resource to release; Close exists so callers have one
// deterministic teardown call rather than relying on garbage collection
// alone, and so a future out-of-process Communicator (real sockets) can
// plug into the same lifecycle.
func (lm *LocalMesh) Close() error { return nil }

type chanRequest struct {
	done chan error
}

func (r *chanRequest) Wait(ctx context.Context) error {
	select {
	case err := <-r.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PostSend copies buf (the caller remains free to reuse it immediately,
// matching the non-blocking-post contract) and hands it off on a
// per-goroutine channel send so PostSend itself never blocks.
func (lm *LocalMesh) PostSend(ctx context.Context, dst int, buf []float64) Request {
	payload := append([]float64(nil), buf...)
	req := &chanRequest{done: make(chan error, 1)}
	ch := lm.core.chans[lm.rank][dst]
	go func() {
		select {
		case ch <- payload:
			req.done <- nil
		case <-ctx.Done():
			req.done <- ctx.Err()
		}
	}()

	return req
}

// PostRecv writes the matching sender's payload directly into dst.
func (lm *LocalMesh) PostRecv(ctx context.Context, src int, dst []float64) Request {
	req := &chanRequest{done: make(chan error, 1)}
	ch := lm.core.chans[src][lm.rank]
	go func() {
		select {
		case payload := <-ch:
			copy(dst, payload)
			req.done <- nil
		case <-ctx.Done():
			req.done <- ctx.Err()
		}
	}()

	return req
}

func (lm *LocalMesh) Barrier(ctx context.Context) error {
	return lm.core.bar.Wait(ctx)
}

// barrier is a reusable cyclic barrier: n arrivals release all waiters
// and reset for the next round, the same synchronized-phase primitive
// an MPI_Barrier call provides.
type barrier struct {
	mu    sync.Mutex
	n     int
	count int
	gen   chan struct{}
}

func newBarrier(n int) *barrier {
	return &barrier{n: n, gen: make(chan struct{})}
}

func (b *barrier) Wait(ctx context.Context) error {
	b.mu.Lock()
	ch := b.gen
	b.count++
	if b.count == b.n {
		b.count = 0
		b.gen = make(chan struct{})
		close(ch)
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
