package driver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperspmv/hyperspmv/internal/kernel"
	"github.com/hyperspmv/hyperspmv/internal/metrics"
	"github.com/hyperspmv/hyperspmv/internal/transport"
)

// State is one position in the per-iteration state machine. Transitions
// are deterministic, with no retries and no concurrent iterations.
type State int

const (
	StateIdle State = iota
	StatePacked
	StateInFlight
	StateInternalDone
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StatePacked:
		return "PACKED"
	case StateInFlight:
		return "IN_FLIGHT"
	case StateInternalDone:
		return "INTERNAL_DONE"
	case StateComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithLogger attaches a structured logger; defaults to a no-op logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithCollector attaches a metrics.Collector for SpMVMeasurementOnce.
// Passing none (or nil) disables measurement entirely — the
// asynchronous SpMV path never records samples regardless.
func WithCollector(c metrics.Collector) Option {
	return func(d *Driver) { d.collector = c }
}

// Driver orchestrates one SpMV iteration: pack, begin halo exchange,
// internal kernel, wait, external kernel. It owns no sparse data
// itself — x, y, the halo exchange, and the kernels are all supplied at
// construction, keeping Driver a pure orchestrator.
type Driver struct {
	halo     *transport.HaloExchange
	internal kernel.Kernel
	external kernel.Kernel

	comm transport.Communicator

	state     State
	logger    *zap.SugaredLogger
	collector metrics.Collector
}

// New builds a Driver around a process's halo exchange engine and its
// internal/external kernels.
func New(comm transport.Communicator, halo *transport.HaloExchange, internal, external kernel.Kernel, opts ...Option) *Driver {
	d := &Driver{
		halo:     halo,
		internal: internal,
		external: external,
		comm:     comm,
		state:    StateIdle,
		logger:   zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(d)
	}

	return d
}

// State returns the driver's current state machine position.
func (d *Driver) State() State { return d.state }

// SpMV runs the asynchronous production path: pack, begin halo exchange
// (post recvs + post sends), run the internal kernel while
// communication is in flight, wait for the halo to complete, then run
// the external kernel. y is overwritten on every call.
func (d *Driver) SpMV(ctx context.Context, x, y []float64) error {
	if d.state != StateIdle {
		return fmt.Errorf("driver: SpMV: state %s: %w", d.state, ErrNotIdle)
	}

	if err := d.halo.Pack(ctx, x); err != nil {
		return err
	}
	d.state = StatePacked

	if err := d.halo.PostAll(ctx); err != nil {
		return err
	}
	d.state = StateInFlight

	if err := d.internal.Multiply(ctx, x, y); err != nil {
		return err
	}

	if err := d.halo.Wait(ctx); err != nil {
		return err
	}
	d.state = StateInternalDone

	if err := d.external.Multiply(ctx, x, y); err != nil {
		return err
	}
	d.state = StateComplete

	d.state = StateIdle

	return nil
}

// SpMVMeasurementOnce runs the same five phases separated by full
// barriers, recording a timer sample per phase through the driver's
// Collector. It exists solely to attribute time; the reported benchmark
// always uses SpMV. A nil Collector makes this equivalent to SpMV plus
// barriers.
func (d *Driver) SpMVMeasurementOnce(ctx context.Context, x, y []float64) error {
	if d.state != StateIdle {
		return fmt.Errorf("driver: SpMVMeasurementOnce: state %s: %w", d.state, ErrNotIdle)
	}

	total := time.Now()

	if err := d.barrierThen(ctx, metrics.PhasePack, func() error {
		return d.halo.Pack(ctx, x)
	}); err != nil {
		return err
	}
	d.state = StatePacked

	commStart := time.Now()
	if err := d.barrier(ctx); err != nil {
		return err
	}
	if err := d.halo.PostAll(ctx); err != nil {
		return err
	}
	d.state = StateInFlight

	if err := d.barrierThen(ctx, metrics.PhaseInternal, func() error {
		return d.internal.Multiply(ctx, x, y)
	}); err != nil {
		return err
	}

	if err := d.halo.Wait(ctx); err != nil {
		return err
	}
	d.record(metrics.PhaseComm, time.Since(commStart))
	d.state = StateInternalDone

	if err := d.barrierThen(ctx, metrics.PhaseExternal, func() error {
		return d.external.Multiply(ctx, x, y)
	}); err != nil {
		return err
	}
	d.state = StateComplete

	if err := d.barrier(ctx); err != nil {
		return err
	}
	d.record(metrics.PhaseTotal, time.Since(total))
	d.state = StateIdle

	return nil
}

func (d *Driver) barrier(ctx context.Context) error {
	return d.comm.Barrier(ctx)
}

// barrierThen brackets fn with barriers on both sides and records its
// wall-clock duration under phase, matching main.cpp's
// MPI_Barrier / GetSynchronizedTime / fn / MPI_Barrier / GetSynchronizedTime pattern.
func (d *Driver) barrierThen(ctx context.Context, phase metrics.Phase, fn func() error) error {
	if err := d.barrier(ctx); err != nil {
		return err
	}
	start := time.Now()
	if err := fn(); err != nil {
		return err
	}
	if err := d.barrier(ctx); err != nil {
		return err
	}
	d.record(phase, time.Since(start))

	return nil
}

func (d *Driver) record(phase metrics.Phase, elapsed time.Duration) {
	if d.collector == nil {
		return
	}
	d.collector.Record(phase, elapsed)
}
