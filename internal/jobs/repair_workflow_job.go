package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"reflect"
	"sync"
	"time"

	"bikeshare/internal/core/domain/events"
	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/services"
	"bikeshare/internal/core/ports"
	"bikeshare/internal/metrics"
	"bikeshare/internal/pkg/clock"
	"bikeshare/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Stage names, used in logs and as the "stage" metric label.
const (
	StageDispatch  = "dispatch"
	StageToCenter  = "to_center"
	StageRepair    = "repair"
	StageToStation = "to_station"
)

type (
	// WorkflowRegistry is the part of the registry the workflow mutates.
	WorkflowRegistry interface {
		Update(ctx context.Context, id kernel.BicycleID, fn func(*bicycle.Bicycle) error) (bicycle.Snapshot, error)
	}

	// RepairStore persists workflow transitions.
	RepairStore interface {
		Save(ctx context.Context, snapshot bicycle.Snapshot) error
		RecordRepair(ctx context.Context, snapshot bicycle.Snapshot, repair breakdown.Repair) error
	}

	// CompletionPublisher announces finished repairs.
	CompletionPublisher interface {
		PublishRepairCompleted(ctx context.Context, e events.RepairCompleted) int
	}

	// WorkflowRecorder receives workflow metrics.
	WorkflowRecorder interface {
		WorkflowStarted()
		WorkflowFinished(outcome string)
		StageObserved(stage string, d time.Duration)
	}
)

// RepairWorkflowConfig bounds and tunes the workflow.
type RepairWorkflowConfig struct {
	// Workers is the number of workflows allowed to run at once. Reports beyond
	// it wait for a free slot.
	Workers int64
	// DefaultMoveTime is used when the station directory cannot answer.
	DefaultMoveTime time.Duration
}

// RepairWorkflowOption customises a RepairWorkflowJob.
type RepairWorkflowOption func(*RepairWorkflowJob)

// WithDispatchDelay replaces the random 1 to 5 second delay before the truck leaves.
func WithDispatchDelay(delay func() time.Duration) RepairWorkflowOption {
	return func(j *RepairWorkflowJob) {
		if delay != nil {
			j.dispatchDelay = delay
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(recorder WorkflowRecorder) RepairWorkflowOption {
	return func(j *RepairWorkflowJob) {
		if recorder != nil {
			j.recorder = recorder
		}
	}
}

// RepairWorkflowJob drives a reported bicycle through the repair pipeline:
//
//	dispatch delay → haul to repair center → repair → haul back → Available
//
// It observes BreakdownReported events. Each report gets its own goroutine so
// publishing never blocks; a weighted semaphore bounds how many run at once.
// The bicycle is Broken from the report until the repair starts, Repairing until
// it is back at its station, then Available.
type RepairWorkflowJob struct {
	registry  WorkflowRegistry
	stations  ports.StationDirectory
	strategy  services.RepairDurationStrategy
	store     RepairStore
	publisher CompletionPublisher
	clock     clock.Clock
	recorder  WorkflowRecorder
	logger    *slog.Logger

	defaultMoveTime time.Duration
	dispatchDelay   func() time.Duration
	slots           *semaphore.Weighted

	mu       sync.Mutex
	idle     *sync.Cond
	inFlight int
	running  bool
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewRepairWorkflowJob wires the workflow. Every collaborator is required.
func NewRepairWorkflowJob(
	registry WorkflowRegistry,
	stations ports.StationDirectory,
	strategy services.RepairDurationStrategy,
	store RepairStore,
	publisher CompletionPublisher,
	clk clock.Clock,
	cfg RepairWorkflowConfig,
	logger *slog.Logger,
	opts ...RepairWorkflowOption,
) (*RepairWorkflowJob, error) {
	deps := []struct {
		name string
		dep  any
	}{
		{"registry", registry},
		{"stations", stations},
		{"strategy", strategy},
		{"store", store},
		{"publisher", publisher},
		{"clock", clk},
		{"logger", logger},
	}

	var missing []error
	for _, d := range deps {
		if isNil(d.dep) {
			missing = append(missing, errs.NewValueIsRequiredError(d.name))
		}
	}
	if cfg.Workers < 1 {
		missing = append(missing, errs.NewValueIsInvalidErrorWithCause("workers",
			fmt.Errorf("%d is less than 1", cfg.Workers)))
	}
	if cfg.DefaultMoveTime < 0 {
		missing = append(missing, errs.NewValueIsInvalidErrorWithCause("default move time",
			fmt.Errorf("%s is negative", cfg.DefaultMoveTime)))
	}
	if err := errors.Join(missing...); err != nil {
		return nil, err
	}

	j := &RepairWorkflowJob{
		registry:        registry,
		stations:        stations,
		strategy:        strategy,
		store:           store,
		publisher:       publisher,
		clock:           clk,
		recorder:        nopRecorder{},
		logger:          logger.With("component", "repair_workflow_job"),
		defaultMoveTime: cfg.DefaultMoveTime,
		dispatchDelay:   randomDispatchDelay,
		slots:           semaphore.NewWeighted(cfg.Workers),
	}
	j.idle = sync.NewCond(&j.mu)
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Start accepts reports from now on.
func (j *RepairWorkflowJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return errors.New("repair workflow job already running")
	}
	j.ctx, j.cancel = context.WithCancel(context.Background())
	j.running = true
	j.logger.InfoContext(j.ctx, "Repair workflow job started")
	return nil
}

// Stop stops accepting reports, cancels running workflows at their next stage
// boundary and waits for them to return.
func (j *RepairWorkflowJob) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.cancel()
	j.awaitIdle()
	j.mu.Unlock()

	j.logger.InfoContext(context.Background(), "Repair workflow job stopped")
}

// Wait blocks until no workflow is running. Reports accepted while it waits are
// waited for too.
func (j *RepairWorkflowJob) Wait() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.awaitIdle()
}

// awaitIdle must be called with j.mu held.
func (j *RepairWorkflowJob) awaitIdle() {
	for j.inFlight > 0 {
		j.idle.Wait()
	}
}

func (j *RepairWorkflowJob) finished() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inFlight--
	if j.inFlight == 0 {
		j.idle.Broadcast()
	}
}

// Notify implements observer.Observer. It returns immediately.
func (j *RepairWorkflowJob) Notify(ctx context.Context, e events.BreakdownReported) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		j.logger.WarnContext(ctx, "Repair workflow job not running, dropping breakdown report",
			"bicycle_id", e.BicycleID().String(), "report_id", e.Report.ID().String())
		return
	}

	j.inFlight++
	go j.run(j.ctx, e.Report)
}

func (j *RepairWorkflowJob) run(ctx context.Context, report breakdown.Report) {
	defer j.finished()

	logger := j.logger.With(
		"run_id", uuid.NewString(),
		"report_id", report.ID().String(),
		"bicycle_id", report.BicycleID().String(),
	)

	if err := j.slots.Acquire(ctx, 1); err != nil {
		logger.WarnContext(ctx, "Repair workflow canceled while waiting for a worker", "error", err)
		return
	}
	defer j.slots.Release(1)

	j.recorder.WorkflowStarted()
	outcome := metrics.OutcomeFailed
	defer func() {
		if r := recover(); r != nil {
			outcome = metrics.OutcomePanicked
			logger.ErrorContext(ctx, "Repair workflow panicked", "panic", r)
		}
		j.recorder.WorkflowFinished(outcome)
	}()

	err := j.execute(ctx, logger, report)
	switch {
	case err == nil:
		outcome = metrics.OutcomeCompleted
	case errors.Is(err, ports.ErrUnknownBicycle):
		outcome = metrics.OutcomeUnknownBicycle
		logger.WarnContext(ctx, "Bicycle left the registry, repair workflow aborted", "error", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = metrics.OutcomeCanceled
		logger.WarnContext(ctx, "Repair workflow canceled", "error", err)
	default:
		logger.ErrorContext(ctx, "Repair workflow failed", "error", err)
	}
}

func (j *RepairWorkflowJob) execute(ctx context.Context, logger *slog.Logger, report breakdown.Report) error {
	id := report.BicycleID()
	moveTime := j.moveTime(ctx, logger, report.OriginStation())

	if err := j.stage(ctx, logger, StageDispatch, j.dispatchDelay()); err != nil {
		return err
	}
	if err := j.stage(ctx, logger, StageToCenter, moveTime); err != nil {
		return err
	}

	// Store writes happen inside the registry callbacks so they reach the store
	// in the order the transitions happened.
	startedAt := j.clock.Now()
	_, err := j.registry.Update(ctx, id, func(b *bicycle.Bicycle) error {
		if b.CurrentStatus() != bicycle.Repairing {
			if err := b.BeginRepair(); err != nil {
				return err
			}
		}
		j.save(ctx, logger, b.Snapshot())
		return nil
	})
	if err != nil {
		return fmt.Errorf("begin repair: %w", err)
	}

	repairTime := j.strategy.RepairDuration(report.IsElectric(), report.Causes())
	if err = j.stage(ctx, logger, StageRepair, repairTime); err != nil {
		return err
	}
	if err = j.stage(ctx, logger, StageToStation, moveTime); err != nil {
		return err
	}

	completedAt := j.clock.Now()
	repair, err := breakdown.NewRepair(report, startedAt, completedAt, repairTime)
	if err != nil {
		return err
	}
	snapshot, err := j.registry.Update(ctx, id, func(b *bicycle.Bicycle) error {
		if err := b.CompleteRepairAndReturnToService(completedAt); err != nil {
			return err
		}
		if err := j.store.RecordRepair(ctx, b.Snapshot(), repair); err != nil {
			logger.ErrorContext(ctx, "Failed to record repair", "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("complete repair: %w", err)
	}

	logger.InfoContext(ctx, "Bicycle repaired and back in service",
		"station", snapshot.Station.String(), "turnaround", repair.Turnaround().String())

	j.publisher.PublishRepairCompleted(ctx, events.RepairCompleted{
		ID:          id,
		ReportID:    report.ID(),
		Station:     snapshot.Station,
		CompletedAt: completedAt,
	})
	return nil
}

func (j *RepairWorkflowJob) stage(ctx context.Context, logger *slog.Logger, name string, d time.Duration) error {
	logger.DebugContext(ctx, "Repair workflow stage", "stage", name, "duration", d.String())
	j.recorder.StageObserved(name, d)
	if err := j.clock.Sleep(ctx, d); err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}
	return nil
}

func (j *RepairWorkflowJob) moveTime(ctx context.Context, logger *slog.Logger, station kernel.Station) time.Duration {
	d, err := j.stations.MoveTime(ctx, station)
	if err != nil {
		logger.WarnContext(ctx, "Station move time unavailable, using default",
			"station", station.String(), "default", j.defaultMoveTime.String(), "error", err)
		return j.defaultMoveTime
	}
	return d
}

func (j *RepairWorkflowJob) save(ctx context.Context, logger *slog.Logger, snapshot bicycle.Snapshot) {
	if err := j.store.Save(ctx, snapshot); err != nil {
		logger.ErrorContext(ctx, "Failed to persist bicycle snapshot", "status", snapshot.Status.String(), "error", err)
	}
}

func randomDispatchDelay() time.Duration {
	return time.Duration(1+rand.IntN(5)) * time.Second //nolint:gosec // simulated delay
}

type nopRecorder struct{}

func (nopRecorder) WorkflowStarted()                     {}
func (nopRecorder) WorkflowFinished(string)              {}
func (nopRecorder) StageObserved(string, time.Duration) {}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive // only nillable kinds matter
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
