package spmat

import "errors"

// ErrRankOutOfRange indicates a partition file's declared rank does not
// fit within its own declared world size.
var ErrRankOutOfRange = errors.New("spmat: rank out of range for world size")

// ErrColumnNotFound indicates a sub-matrix element referenced a global
// column absent from local2global — an invariant violation, never
// expected from a file produced by this repository's own planner.
var ErrColumnNotFound = errors.New("spmat: column not present in local2global")

// ErrRowNotFound indicates a sub-matrix element referenced a global row
// this rank does not own — an invariant violation, never expected from
// a file produced by this repository's own planner (every internal and
// external row is one of this rank's owned rows).
var ErrRowNotFound = errors.New("spmat: row not present in local2global")
