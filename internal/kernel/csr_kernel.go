package kernel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hyperspmv/hyperspmv/internal/spmat"
)

// CSRInternalKernel computes y[i] = sum_k internalVal[k]*x[internalIdx[k]]
// for internalIdx[k] in [0, R_p), zeroing each row's accumulator first.
type CSRInternalKernel struct {
	sm      *spmat.SparseMatrix
	workers int
}

// NewCSRInternalKernel builds the internal kernel for sm.
func NewCSRInternalKernel(sm *spmat.SparseMatrix, opts ...Option) *CSRInternalKernel {
	cfg := resolve(opts)
	return &CSRInternalKernel{sm: sm, workers: cfg.workers}
}

// Multiply implements Kernel.
func (k *CSRInternalKernel) Multiply(ctx context.Context, x, y []float64) error {
	return rowParallel(ctx, k.sm.R, k.workers, func(i int) {
		var acc float64
		for p := k.sm.InternalPtr[i]; p < k.sm.InternalPtr[i+1]; p++ {
			acc += k.sm.InternalVal[p] * x[k.sm.InternalIdx[p]]
		}
		y[i] = acc
	})
}

// CSRExternalKernel computes y[i] += sum_k externalVal[k]*x[externalIdx[k]]
// for externalIdx[k] in [R_p, C_p), accumulating into whatever y already
// holds (normally the internal kernel's output).
type CSRExternalKernel struct {
	sm      *spmat.SparseMatrix
	workers int
}

// NewCSRExternalKernel builds the external kernel for sm.
func NewCSRExternalKernel(sm *spmat.SparseMatrix, opts ...Option) *CSRExternalKernel {
	cfg := resolve(opts)
	return &CSRExternalKernel{sm: sm, workers: cfg.workers}
}

// Multiply implements Kernel.
func (k *CSRExternalKernel) Multiply(ctx context.Context, x, y []float64) error {
	return rowParallel(ctx, k.sm.R, k.workers, func(i int) {
		var acc float64
		for p := k.sm.ExternalPtr[i]; p < k.sm.ExternalPtr[i+1]; p++ {
			acc += k.sm.ExternalVal[p] * x[k.sm.ExternalIdx[p]]
		}
		y[i] += acc
	})
}

func resolve(opts []Option) config {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	return cfg
}

// rowParallel splits [0, rows) into workers contiguous chunks and runs
// fn over each row, embarrassingly parallel across rows. A single row's
// summation order always follows CSR storage order regardless of
// chunking, preserving the no-reassociation guarantee.
func rowParallel(ctx context.Context, rows, workers int, fn func(i int)) error {
	if rows == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > rows {
		workers = rows
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (rows + workers - 1) / workers
	for start := 0; start < rows; start += chunk {
		end := start + chunk
		if end > rows {
			end = rows
		}
		start, end := start, end
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				fn(i)
			}

			return nil
		})
	}

	return g.Wait()
}
