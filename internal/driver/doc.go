// Package driver orchestrates one SpMV iteration over a SparseMatrix's
// halo exchange and kernels: the asynchronous production path (SpMV)
// overlaps communication with internal computation, and the synchronous
// measurement path (SpMVMeasurementOnce) brackets every phase with a
// barrier and a timer sample for offline timing breakdown, matching the
// reference implementation's barrier-bracketed timing pattern.
package driver
