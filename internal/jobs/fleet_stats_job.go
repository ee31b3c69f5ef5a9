package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"bikeshare/internal/core/application/usecases/queries"
	"bikeshare/internal/core/domain/model/bicycle"

	"github.com/robfig/cron/v3"
)

// DefaultFleetStatsSchedule runs the job every ten seconds.
const DefaultFleetStatsSchedule = "*/10 * * * * *"

type (
	// FleetStatsReader computes the fleet breakdown.
	FleetStatsReader interface {
		Handle(ctx context.Context, query queries.GetFleetStatsQuery) (queries.FleetStats, error)
	}

	// FleetGauge receives the per-status counts.
	FleetGauge interface {
		SetFleet(byStatus map[bicycle.Status]int)
	}
)

// FleetStatsJob periodically logs the fleet by status and exports it as gauges.
type FleetStatsJob struct {
	handler  FleetStatsReader
	gauge    FleetGauge
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	lifecycle sync.Mutex
	running   bool
	entry     cron.EntryID

	mu   sync.Mutex
	last queries.FleetStats
}

// NewFleetStatsJob creates the job. An empty schedule means DefaultFleetStatsSchedule.
func NewFleetStatsJob(handler FleetStatsReader, gauge FleetGauge, schedule string, logger *slog.Logger) *FleetStatsJob {
	if schedule == "" {
		schedule = DefaultFleetStatsSchedule
	}
	return &FleetStatsJob{
		handler:  handler,
		gauge:    gauge,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "fleet_stats_job"),
	}
}

// Start registers the schedule and starts the cron runner.
func (j *FleetStatsJob) Start() error {
	j.lifecycle.Lock()
	defer j.lifecycle.Unlock()

	if j.running {
		return errors.New("fleet stats job already running")
	}
	entry, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) })
	if err != nil {
		return err
	}

	j.entry = entry
	j.running = true
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Fleet stats job started", "schedule", j.schedule)
	return nil
}

// Stop stops the cron runner, waits for a running tick and unregisters the
// schedule so the job can be started again.
func (j *FleetStatsJob) Stop() {
	j.lifecycle.Lock()
	defer j.lifecycle.Unlock()

	if !j.running {
		return
	}
	<-j.cron.Stop().Done()
	j.cron.Remove(j.entry)
	j.running = false
	j.logger.InfoContext(context.Background(), "Fleet stats job stopped")
}

// Run performs one tick.
func (j *FleetStatsJob) Run(ctx context.Context) {
	stats, err := j.handler.Handle(ctx, queries.NewGetFleetStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Fleet stats job failed", "error", err)
		return
	}

	j.gauge.SetFleet(stats.ByStatus)

	j.mu.Lock()
	j.last = stats
	j.mu.Unlock()

	j.logger.InfoContext(ctx, "Fleet stats",
		"total", stats.Total,
		"electric", stats.Electric,
		"available", stats.ByStatus[bicycle.Available],
		"rented", stats.ByStatus[bicycle.Rented],
		"broken", stats.ByStatus[bicycle.Broken],
		"repairing", stats.ByStatus[bicycle.Repairing],
	)
}

// Last returns the result of the most recent successful tick.
func (j *FleetStatsJob) Last() queries.FleetStats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last
}
