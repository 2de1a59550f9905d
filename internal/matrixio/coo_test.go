package matrixio_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperspmv/hyperspmv/internal/matrixio"
)

func TestReadMatrixMarket_Golden(t *testing.T) {
	got, err := matrixio.ReadMatrixMarket("../../testdata/identity4.mtx")
	require.NoError(t, err)
	require.Equal(t, 4, got.N)
	require.Equal(t, 4, got.M)
	require.Len(t, got.Elements, 4)
	for i, e := range got.Elements {
		require.Equal(t, i, e.Row)
		require.Equal(t, i, e.Col)
		require.Equal(t, 1.0, e.Val)
	}
}

func TestReadMatrixMarket_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty", "", matrixio.ErrEmptyFile},
		{"onlyComments", "% nothing here\n% still nothing\n", matrixio.ErrEmptyFile},
		{"badHeader", "3 3\n", matrixio.ErrBadHeader},
		{"nonSquare", "2 3 1\n1 1 1\n", matrixio.ErrNonSquare},
		{"truncated", "2 2 2\n1 1 1\n", matrixio.ErrTruncated},
		{"malformedElement", "2 2 1\n1 x 1\n", matrixio.ErrMalformedElement},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempFile(t, tc.content)
			_, err := matrixio.ReadMatrixMarket(path)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.wantErr), "got %v, want wrapping %v", err, tc.wantErr)
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := t.TempDir() + "/matrix.mtx"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}
