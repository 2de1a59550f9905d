// Package kernel implements the two local CSR multiplications, internal
// and external, as an explicit capability selected at construction time
// rather than a compile-time switch. Row-parallel fan-out is supervised
// by golang.org/x/sync/errgroup, the same worker-pool shape a bigmachine
// executor uses.
package kernel
