// Package partition implements the one-shot preprocessing planner: it
// reads the global COO matrix, asks a hypergraph.Partitioner for a row
// assignment, derives each process's local<->global column table,
// internal/external CSR sub-matrices, and send/recv schedules, and
// writes one partition file per process via matrixio.
//
// The per-process derivation loop (sendElements/recvElements dedup sets,
// local index layout with internal block first) reproduces the
// reference implementation's partitioning pass directly.
package partition
