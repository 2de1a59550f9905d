// Package transport provides the message-passing capability the SpMV
// driver and halo exchange engine run over: a Communicator abstracts "P
// cooperating processes, suspended only at a wait/barrier" so the
// production implementation (LocalMesh, P goroutines over buffered
// channels, supervised by an errgroup) and any future out-of-process
// backend share one contract.
package transport
