package matrixio_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperspmv/hyperspmv/internal/matrixio"
)

func TestWriteReadPartitionFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	pf := &matrixio.PartitionFile{
		N:             4,
		M:             6,
		P:             2,
		Rank:          0,
		Basename:      "band",
		Assign:        []int{0, 0, 1, 1},
		LocalToGlobal: []int{0, 1, 2},
		R:             2,
		NumInternal:   3,
		NumExternal:   1,
		InternalRows: []matrixio.Element{
			{Row: 0, Col: 0, Val: 2},
			{Row: 0, Col: 1, Val: -1},
			{Row: 1, Col: 1, Val: 2},
		},
		ExternalRows: []matrixio.Element{
			{Row: 1, Col: 2, Val: -1},
		},
		Send: []matrixio.ScheduleEntry{
			{Neighbor: 1, Indices: []int{1}},
		},
		Recv: []matrixio.ScheduleEntry{
			{Neighbor: 1, Indices: []int{2}},
		},
	}

	require.NoError(t, matrixio.WritePartitionFile(dir, pf))

	got, err := matrixio.ReadPartitionFile(matrixio.PartFileName(dir, "band", 2, 0), 2)
	require.NoError(t, err)

	require.Equal(t, pf.N, got.N)
	require.Equal(t, pf.M, got.M)
	require.Equal(t, pf.P, got.P)
	require.Equal(t, pf.Assign, got.Assign)
	require.Equal(t, pf.LocalToGlobal, got.LocalToGlobal)
	require.Equal(t, pf.R, got.R)
	require.Equal(t, pf.NumInternal, got.NumInternal)
	require.Equal(t, pf.NumExternal, got.NumExternal)
	require.Equal(t, pf.InternalRows, got.InternalRows)
	require.Equal(t, pf.ExternalRows, got.ExternalRows)
	require.Equal(t, pf.Send, got.Send)
	require.Equal(t, pf.Recv, got.Recv)
}

func TestReadPartitionFile_WorldSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	pf := &matrixio.PartitionFile{
		N: 2, M: 1, P: 2, Rank: 0, Basename: "m",
		Assign:        []int{0, 1},
		LocalToGlobal: []int{0, 1}, R: 1,
		NumInternal: 1,
		InternalRows: []matrixio.Element{
			{Row: 0, Col: 0, Val: 1},
		},
	}
	require.NoError(t, matrixio.WritePartitionFile(dir, pf))

	_, err := matrixio.ReadPartitionFile(matrixio.PartFileName(dir, "m", 2, 0), 3)
	require.ErrorIs(t, err, matrixio.ErrWorldSizeMismatch)
}

func TestPartFileName(t *testing.T) {
	require.Equal(t, "out/band-4-2.part", matrixio.PartFileName("out", "band", 4, 2))
}
