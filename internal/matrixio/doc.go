// Package matrixio reads the global Matrix-Market-style coordinate matrix
// and reads/writes the per-process partition file format.
//
// Two on-disk formats live here:
//
//	COO file   — external collaborator format (three-column text, 1-based).
//	Part file  — the partitioner/loader contract: ASCII, section-sentinel
//	             delimited, newline-sensitive only between headers.
//
// Both readers are fail-fast: any malformed section is a fatal error, never
// a partial result.
package matrixio
