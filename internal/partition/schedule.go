package partition

import (
	"sort"

	"github.com/hyperspmv/hyperspmv/internal/matrixio"
)

// columnSet is the per-(owner, neighbor) set of global columns that must
// cross that edge, built once from a single pass over the global matrix
// (see planner.go) so the send and recv schedules derive from one shared
// structure and are symmetric by construction rather than by later
// cross-checking.
type columnSet = map[int]struct{}

// buildScheduleEntries turns a neighbor->columns map into the ordered,
// deduplicated ScheduleEntry list the partition file format expects:
// one entry per neighbor in ascending rank order, with that neighbor's
// columns translated to local indices and sorted ascending.
func buildScheduleEntries(byNeighbor map[int]columnSet, global2local map[int]int) []matrixio.ScheduleEntry {
	neighbors := make([]int, 0, len(byNeighbor))
	for n := range byNeighbor {
		neighbors = append(neighbors, n)
	}
	sort.Ints(neighbors)

	entries := make([]matrixio.ScheduleEntry, 0, len(neighbors))
	for _, n := range neighbors {
		cols := byNeighbor[n]
		globalCols := make([]int, 0, len(cols))
		for c := range cols {
			globalCols = append(globalCols, c)
		}
		sort.Ints(globalCols)

		indices := make([]int, len(globalCols))
		for i, c := range globalCols {
			indices[i] = global2local[c]
		}
		entries = append(entries, matrixio.ScheduleEntry{Neighbor: n, Indices: indices})
	}

	return entries
}
