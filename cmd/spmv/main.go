// Command spmv is the CLI front end for the distributed SpMV engine:
// spmv <partition-prefix> [verify-matrix-file]. The fixed
// process count P is recovered from the prefix itself
// ("<dir>/<basename>-<P>"), since every "<prefix>-<rank>.part" file for
// rank in [0, P) must already exist on disk.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperspmv/hyperspmv/internal/driver"
	"github.com/hyperspmv/hyperspmv/internal/kernel"
	"github.com/hyperspmv/hyperspmv/internal/matrixio"
	"github.com/hyperspmv/hyperspmv/internal/spmat"
	"github.com/hyperspmv/hyperspmv/internal/transport"
	"github.com/hyperspmv/hyperspmv/internal/verify"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		iterations int
	)

	cmd := &cobra.Command{
		Use:           "spmv <partition-prefix> [verify-matrix-file]",
		Short:         "Run the distributed SpMV engine over a partitioned matrix",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			verifyFile := ""
			if len(args) == 2 {
				verifyFile = args[1]
			}

			return run(args[0], verifyFile, iterations, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().IntVar(&iterations, "iterations", 1, "number of SpMV iterations to run")

	return cmd
}

func run(prefix, verifyFile string, iterations int, verbose bool) error {
	dir, basename, p, err := splitPrefix(prefix)
	if err != nil {
		return err
	}

	logger := buildLogger(verbose)
	defer logger.Sync() //nolint:errcheck

	meshes := transport.NewLocalMesh(p)
	defer func() {
		for _, m := range meshes {
			m.Close() //nolint:errcheck
		}
	}()
	reports := make([]*verify.Report, p)

	g, ctx := errgroup.WithContext(context.Background())
	for rank := 0; rank < p; rank++ {
		rank := rank
		g.Go(func() error {
			report, err := runRank(ctx, dir, basename, p, rank, meshes[rank], logger, iterations, verifyFile)
			reports[rank] = report

			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if report := reports[0]; report != nil {
		if report.OK() {
			logger.Infow("verification passed", "rows", 0)
		} else {
			for _, m := range report.Mismatches {
				logger.Warnw("verification mismatch",
					"row", m.Row, "expected", m.Expected, "observed", m.Observed, "relError", m.RelError)
			}
		}
	}

	return nil
}

func runRank(
	ctx context.Context,
	dir, basename string,
	p, rank int,
	comm transport.Communicator,
	logger *zap.SugaredLogger,
	iterations int,
	verifyFile string,
) (*verify.Report, error) {
	sm, err := spmat.Load(dir, basename, p, rank, p, spmat.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	halo := transport.NewHaloExchange(comm, sm)
	internalK := kernel.NewCSRInternalKernel(sm)
	externalK := kernel.NewCSRExternalKernel(sm)
	drv := driver.New(comm, halo, internalK, externalK, driver.WithLogger(logger))

	x := sm.InitialX()
	y := make([]float64, sm.R)

	for it := 0; it < iterations; it++ {
		if err := drv.SpMV(ctx, x, y); err != nil {
			return nil, fmt.Errorf("rank %d: iteration %d: %w", rank, it, err)
		}
	}
	logger.Infow("rank complete", "rank", rank, "R", sm.R, "iterations", iterations)

	if verifyFile == "" {
		return nil, nil
	}

	coo, err := matrixio.ReadMatrixMarket(verifyFile)
	if err != nil {
		return nil, err
	}
	ownedRows := sm.LocalToGlobal[:sm.R]

	return verify.Run(ctx, comm, coo, sm.Assign, ownedRows, y)
}

// splitPrefix recovers (dir, basename, P) from "<dir>/<basename>-<P>".
func splitPrefix(prefix string) (dir, basename string, p int, err error) {
	dir = filepath.Dir(prefix)
	base := filepath.Base(prefix)

	idx := strings.LastIndex(base, "-")
	if idx < 0 {
		return "", "", 0, fmt.Errorf("spmv: prefix %q: expected \"<basename>-<P>\"", prefix)
	}
	basename = base[:idx]
	p, err = strconv.Atoi(base[idx+1:])
	if err != nil {
		return "", "", 0, fmt.Errorf("spmv: prefix %q: invalid P: %w", prefix, err)
	}

	return dir, basename, p, nil
}

func buildLogger(verbose bool) *zap.SugaredLogger {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		l = zap.NewNop()
	}

	return l.Sugar()
}
