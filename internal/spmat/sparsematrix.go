package spmat

// ScheduleEntry is one neighbor's worth of a send or receive schedule,
// with indices already translated into this process's local index
// space (internal block for sends, external block for receives).
type ScheduleEntry struct {
	Neighbor int
	Indices  []int
}

// SparseMatrix is one process's persistent distributed data layout: the
// local<->global column table, the internal/external CSR sub-matrices
// over its owned rows, and the send/receive schedules. It exclusively
// owns every slice below; x and y belong to the caller of a kernel or
// driver call.
type SparseMatrix struct {
	Rank  int
	World int

	N int // global row/col count
	R int // R_p: rows owned by this process
	C int // C_p: len(LocalToGlobal) = R_p + E_p

	// Assign is the full global row assignment (length N, identical on
	// every process). It is carried alongside the rest of the per-process
	// data model because the on-disk #Partitioning section already
	// contains it in full and verify.Run needs it to reconstruct every
	// other rank's owned-row order without an extra handshake.
	Assign []int

	LocalToGlobal []int
	GlobalToLocal map[int]int

	// internalPtr/Idx/Val: CSR over R rows, columns in [0, R).
	InternalPtr []int
	InternalIdx []int
	InternalVal []float64

	// externalPtr/Idx/Val: CSR over R rows, columns in [R, C).
	ExternalPtr []int
	ExternalIdx []int
	ExternalVal []float64

	Send []ScheduleEntry
	Recv []ScheduleEntry

	TotalSend        int
	TotalRecv        int
	NumSendNeighbors int
	NumRecvNeighbors int
}

// HaloLen returns E_p, the width of the halo region trailing x's owned
// block.
func (sm *SparseMatrix) HaloLen() int {
	return sm.C - sm.R
}

// InitialX returns the deterministic test payload:
// x[i] = local2global[i] + 1 for every local index, owned and halo
// alike (the halo entries are overwritten by the first halo exchange;
// seeding them is harmless and keeps the slice fully initialized).
func (sm *SparseMatrix) InitialX() []float64 {
	x := make([]float64, sm.C)
	for i, g := range sm.LocalToGlobal {
		x[i] = float64(g + 1)
	}

	return x
}
