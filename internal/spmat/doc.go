// Package spmat defines the per-process distributed sparse matrix data
// model and the loader that hydrates one from a partition file.
//
// The loader's row-cursor CSR pointer-fill technique ("advance ip to row
// on every element, ptr[ip++] = i") is reproduced for both the internal
// and external sub-matrices.
package spmat
