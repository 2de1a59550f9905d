package spmat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperspmv/hyperspmv/internal/matrixio"
)

// Option configures Load.
type Option func(*loadConfig)

type loadConfig struct {
	logger *zap.SugaredLogger
}

// WithLogger attaches a structured logger to Load; defaults to a no-op.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *loadConfig) { c.logger = l }
}

// Load reads the partition file for (basename, P, rank) under dir and
// returns a hydrated SparseMatrix. worldSize must equal the file's
// declared P or ReadPartitionFile itself fails.
func Load(dir, basename string, p, rank, worldSize int, opts ...Option) (*SparseMatrix, error) {
	cfg := &loadConfig{logger: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(cfg)
	}

	path := matrixio.PartFileName(dir, basename, p, rank)
	pf, err := matrixio.ReadPartitionFile(path, worldSize)
	if err != nil {
		return nil, err
	}

	return FromPartitionFile(pf, rank, cfg.logger)
}

// FromPartitionFile hydrates a SparseMatrix from an already-parsed
// matrixio.PartitionFile. rank is supplied by the caller because the
// on-disk format does not encode it in content (it is implicit in
// which file was opened).
func FromPartitionFile(pf *matrixio.PartitionFile, rank int, logger *zap.SugaredLogger) (*SparseMatrix, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if rank < 0 || rank >= pf.P {
		return nil, fmt.Errorf("spmat: rank %d, P %d: %w", rank, pf.P, ErrRankOutOfRange)
	}

	global2local := make(map[int]int, len(pf.LocalToGlobal))
	for i, g := range pf.LocalToGlobal {
		global2local[g] = i
	}

	internalPtr, internalIdx, internalVal, err := buildCSR(pf.InternalRows, pf.R, pf.NumInternal, global2local)
	if err != nil {
		return nil, fmt.Errorf("spmat: internal sub-matrix: %w", err)
	}
	externalPtr, externalIdx, externalVal, err := buildCSR(pf.ExternalRows, pf.R, pf.NumExternal, global2local)
	if err != nil {
		return nil, fmt.Errorf("spmat: external sub-matrix: %w", err)
	}

	send, totalSend := translateSchedule(pf.Send)
	recv, totalRecv := translateSchedule(pf.Recv)

	sm := &SparseMatrix{
		Rank:             rank,
		World:            pf.P,
		N:                pf.N,
		R:                pf.R,
		C:                len(pf.LocalToGlobal),
		Assign:           pf.Assign,
		LocalToGlobal:    pf.LocalToGlobal,
		GlobalToLocal:    global2local,
		InternalPtr:      internalPtr,
		InternalIdx:      internalIdx,
		InternalVal:      internalVal,
		ExternalPtr:      externalPtr,
		ExternalIdx:      externalIdx,
		ExternalVal:      externalVal,
		Send:             send,
		Recv:             recv,
		TotalSend:        totalSend,
		TotalRecv:        totalRecv,
		NumSendNeighbors: len(send),
		NumRecvNeighbors: len(recv),
	}
	logger.Debugw("loaded partition", "rank", rank, "R", sm.R, "C", sm.C,
		"numInternal", pf.NumInternal, "numExternal", pf.NumExternal)

	return sm, nil
}

// buildCSR translates row-sorted, global-row/global-column elements
// into a local CSR triple, using the row-cursor fill technique: each
// element's row is first translated to its local index (owned rows are
// appended to local2global in ascending global order, so this preserves
// the row-ascending order the cursor relies on), then the pointer array
// advances to that local row, closing any zero-nonzero rows in between,
// with a final fill to R.
func buildCSR(rows []matrixio.Element, r, nnz int, global2local map[int]int) (ptr, idx []int, val []float64, err error) {
	ptr = make([]int, r+1)
	idx = make([]int, 0, nnz)
	val = make([]float64, 0, nnz)

	cursor := 0
	for i, e := range rows {
		row, ok := global2local[e.Row]
		if !ok {
			return nil, nil, nil, fmt.Errorf("row %d: %w", e.Row, ErrRowNotFound)
		}
		for cursor <= row {
			ptr[cursor] = i
			cursor++
		}
		local, ok := global2local[e.Col]
		if !ok {
			return nil, nil, nil, fmt.Errorf("column %d: %w", e.Col, ErrColumnNotFound)
		}
		idx = append(idx, local)
		val = append(val, e.Val)
	}
	for cursor <= r {
		ptr[cursor] = len(rows)
		cursor++
	}

	return ptr, idx, val, nil
}

func translateSchedule(entries []matrixio.ScheduleEntry) ([]ScheduleEntry, int) {
	out := make([]ScheduleEntry, len(entries))
	total := 0
	for i, e := range entries {
		out[i] = ScheduleEntry{Neighbor: e.Neighbor, Indices: e.Indices}
		total += len(e.Indices)
	}

	return out, total
}
