// Command partition is the CLI front end for the one-shot partition
// planner: partition <matrix-file> <P> <out-dir>.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperspmv/hyperspmv/internal/partition"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "partition <matrix-file> <P> <out-dir>",
		Short:         "Partition a global sparse matrix into P per-process files",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], args[2], verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(matrixFile, pArg, outDir string, verbose bool) error {
	p, err := strconv.Atoi(pArg)
	if err != nil {
		return fmt.Errorf("partition: invalid P %q: %w", pArg, err)
	}

	logger := buildLogger(verbose)
	defer logger.Sync() //nolint:errcheck

	planner := partition.NewPlanner(nil, partition.WithLogger(logger))

	return planner.Plan(context.Background(), matrixFile, p, outDir)
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
