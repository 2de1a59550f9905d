package transport

import (
	"context"

	"github.com/hyperspmv/hyperspmv/internal/spmat"
)

// HaloExchange implements the non-blocking pack/post-recv/post-send/wait
// protocol over a Communicator and one process's SparseMatrix. Receive
// indices are not assumed contiguous in x (a neighbor's entries are
// positions into the globally-sorted external block, which need not
// line up with that neighbor's own send order), so receives land in an
// auxiliary buffer and Wait scatters them into x.
type HaloExchange struct {
	comm Communicator
	sm   *spmat.SparseMatrix

	sendBuf []float64
	recvBuf []float64

	sendOffsets []int
	recvOffsets []int

	x []float64

	pendingSend []Request
	pendingRecv []Request
}

// NewHaloExchange precomputes the per-neighbor buffer offsets for sm's
// send/recv schedules; the returned engine is reused across every SpMV
// iteration for that process.
func NewHaloExchange(comm Communicator, sm *spmat.SparseMatrix) *HaloExchange {
	sendOffsets := make([]int, len(sm.Send))
	off := 0
	for i, e := range sm.Send {
		sendOffsets[i] = off
		off += len(e.Indices)
	}
	sendBuf := make([]float64, off)

	recvOffsets := make([]int, len(sm.Recv))
	off = 0
	for i, e := range sm.Recv {
		recvOffsets[i] = off
		off += len(e.Indices)
	}
	recvBuf := make([]float64, off)

	return &HaloExchange{
		comm:        comm,
		sm:          sm,
		sendBuf:     sendBuf,
		recvBuf:     recvBuf,
		sendOffsets: sendOffsets,
		recvOffsets: recvOffsets,
	}
}

// Pack gathers x's owned entries into the send buffer. It first waits
// for any sends left outstanding from the previous iteration, since
// Wait (by contract) does not force their completion — completion of
// sends may be deferred until the next pack.
func (he *HaloExchange) Pack(ctx context.Context, x []float64) error {
	for _, req := range he.pendingSend {
		if err := req.Wait(ctx); err != nil {
			return err
		}
	}
	he.pendingSend = he.pendingSend[:0]

	for i, e := range he.sm.Send {
		off := he.sendOffsets[i]
		for j, idx := range e.Indices {
			he.sendBuf[off+j] = x[idx]
		}
	}
	he.x = x

	return nil
}

// PostAll issues every receive then every send, both non-blocking.
func (he *HaloExchange) PostAll(ctx context.Context) error {
	he.pendingRecv = he.pendingRecv[:0]
	for i, e := range he.sm.Recv {
		off := he.recvOffsets[i]
		seg := he.recvBuf[off : off+len(e.Indices)]
		he.pendingRecv = append(he.pendingRecv, he.comm.PostRecv(ctx, e.Neighbor, seg))
	}

	for i, e := range he.sm.Send {
		off := he.sendOffsets[i]
		seg := he.sendBuf[off : off+len(e.Indices)]
		he.pendingSend = append(he.pendingSend, he.comm.PostSend(ctx, e.Neighbor, seg))
	}

	return nil
}

// Begin is Pack followed by PostAll in one call. The driver calls Pack
// and PostAll separately instead, so each step can be timed on its own.
func (he *HaloExchange) Begin(ctx context.Context, x []float64) error {
	if err := he.Pack(ctx, x); err != nil {
		return err
	}

	return he.PostAll(ctx)
}

// Wait completes every outstanding receive and scatters the landed
// values into x's halo region at the positions the schedule names. It
// does not wait on sends (see Pack).
func (he *HaloExchange) Wait(ctx context.Context) error {
	for _, req := range he.pendingRecv {
		if err := req.Wait(ctx); err != nil {
			return err
		}
	}
	he.pendingRecv = he.pendingRecv[:0]

	for i, e := range he.sm.Recv {
		off := he.recvOffsets[i]
		for j, idx := range e.Indices {
			he.x[idx] = he.recvBuf[off+j]
		}
	}

	return nil
}
