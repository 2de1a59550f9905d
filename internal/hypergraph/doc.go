// Package hypergraph models the column-net hypergraph used to derive a
// connectivity-minimizing row partition of a sparse matrix.
//
// A row becomes a cell weighted by its nonzero count; a column becomes a
// net whose pins are the rows with a nonzero in that column. Two rows on
// different parts incur communication iff some net's pins straddle the
// parts — minimizing that is the connectivity metric.
//
// Partitioner is an interface so a real connectivity-minimizing engine
// (PaToH/Zoltan-class) can be substituted for the shipped
// GreedyPartitioner without touching any caller.
package hypergraph
