// Package testutil provides a seeded random sparse COO generator shared
// across this repository's tests; the fixed matrix fixtures live in
// testdata/.
// The generator's trial-and-reject approach to placing distinct
// nonzeros follows an Erdős-Rényi trial loop over candidate positions,
// rewritten here for square COO matrices instead of graphs.
package testutil
