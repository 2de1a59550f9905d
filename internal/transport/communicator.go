package transport

import "context"

// Request is a handle to one outstanding non-blocking send or receive.
// Wait blocks until that specific operation completes; it is safe to
// call exactly once per Request.
type Request interface {
	Wait(ctx context.Context) error
}

// Communicator is the message-passing capability a process-rank uses
// to exchange halo data with its neighbors. A single tag namespace is
// disambiguated by (source rank, destination rank) only — callers that
// interleave multiple concurrent exchanges between the same pair of
// ranks must use distinct Communicators (or serialize them).
//
// Posting is always non-suspending; Wait is the only blocking call
// permitted in the SpMV critical path.
type Communicator interface {
	// Rank returns this communicator's own rank in [0, World).
	Rank() int
	// World returns the fixed process count for the run.
	World() int

	// PostSend starts a non-blocking send of buf to dst. buf must not be
	// mutated until the returned Request completes.
	PostSend(ctx context.Context, dst int, buf []float64) Request
	// PostRecv starts a non-blocking receive from src, writing directly
	// into dst (sized to the expected message length). dst must not be
	// read until the returned Request completes.
	PostRecv(ctx context.Context, src int, dst []float64) Request

	// Barrier blocks until every rank has called Barrier, used only by
	// the synchronous measurement path and startup/shutdown.
	Barrier(ctx context.Context) error
}
