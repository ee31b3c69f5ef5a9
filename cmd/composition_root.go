package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "bikeshare/internal/adapters/in/http"
	"bikeshare/internal/adapters/out/memory/bicyclerepo"
	"bikeshare/internal/adapters/out/memory/rentalledger"
	"bikeshare/internal/adapters/out/memory/snapshotstore"
	"bikeshare/internal/adapters/out/postgres"
	"bikeshare/internal/adapters/out/redisnotify"
	"bikeshare/internal/adapters/out/stations"
	"bikeshare/internal/core/application/usecases/commands"
	"bikeshare/internal/core/application/usecases/queries"
	"bikeshare/internal/core/domain/events"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/services"
	"bikeshare/internal/core/ports"
	"bikeshare/internal/jobs"
	"bikeshare/internal/metrics"
	"bikeshare/internal/pkg/clock"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns every long-lived component of the process.
type CompositionRoot struct {
	config   Config
	logger   *slog.Logger
	gatherer prometheus.Gatherer

	gormDB      *gorm.DB
	redisClient *redis.Client

	registry *bicyclerepo.Registry
	ledger   *rentalledger.Ledger
	stations *stations.Directory
	store    ports.SnapshotStore
	bus      *events.Bus
	clock    clock.Clock
	metrics  *metrics.Metrics

	repairWorkflowJob *jobs.RepairWorkflowJob
	fleetStatsJob     *jobs.FleetStatsJob
}

// NewCompositionRoot connects the optional backends and wires the application.
func NewCompositionRoot(
	ctx context.Context,
	config Config,
	logger *slog.Logger,
	registry *prometheus.Registry,
) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:   config,
		logger:   logger,
		gatherer: registry,
		registry: bicyclerepo.NewRegistry(),
		ledger:   rentalledger.NewLedger(),
		bus:      events.NewBus(logger),
		clock:    clock.NewAccelerated(config.TimeAcceleration),
		metrics:  metrics.NewMetrics(registry),
	}

	if err := c.openStore(); err != nil {
		return nil, err
	}

	directory, err := stations.Load(config.StationsFile)
	if err != nil {
		c.Close()
		return nil, err
	}
	logger.Info("Station directory loaded", "file", config.StationsFile, "stations", directory.Names())
	c.stations = directory

	c.repairWorkflowJob, err = jobs.NewRepairWorkflowJob(
		c.registry,
		directory,
		services.NewRandomizedRepairDuration(),
		c.store,
		c.bus,
		c.clock,
		jobs.RepairWorkflowConfig{Workers: config.RepairWorkers, DefaultMoveTime: config.DefaultMoveTime},
		logger,
		jobs.WithRecorder(c.metrics),
	)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.bus.OnBreakdownReported(c.repairWorkflowJob)

	c.fleetStatsJob = jobs.NewFleetStatsJob(c.CreateGetFleetStatsQueryHandler(), c.metrics,
		config.FleetStatsSchedule, logger)

	if config.NotificationsEnabled() {
		c.redisClient, err = redisnotify.Connect(ctx, redisnotify.Config{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		if err != nil {
			c.Close()
			return nil, err
		}
		c.bus.OnRepairCompleted(redisnotify.NewPublisher(c.redisClient, config.RedisChannel, c.metrics, logger))
		logger.Info("Repair notifications enabled", "addr", config.RedisAddr, "channel", config.RedisChannel)
	}

	return c, nil
}

func (c *CompositionRoot) openStore() error {
	if !c.config.PersistenceEnabled() {
		c.logger.Warn("DB_HOST not set, bicycle state will not survive a restart")
		c.store = snapshotstore.NewStore()
		return nil
	}

	db, err := postgres.Open(c.config.DBSettings().DSN())
	if err != nil {
		return err
	}
	c.gormDB = db
	if err = postgres.Migrate(db); err != nil {
		c.Close()
		return err
	}
	c.store = postgres.NewSnapshotStore(postgres.NewGormUnitOfWorkFactory(db))
	return nil
}

// Warm loads the persisted fleet and open rentals. Bicycles that were in the
// repair pipeline when the process stopped are returned so their workflow can be
// resumed once the jobs are running.
func (c *CompositionRoot) Warm(ctx context.Context) ([]breakdown.Report, error) {
	stuck, err := c.CreateRestoreFleetCommandHandler().Handle(ctx, commands.NewRestoreFleetCommand())
	if err != nil {
		return nil, fmt.Errorf("restore fleet: %w", err)
	}
	return stuck, nil
}

// ResumeRepairs hands reports returned by Warm to the running workflow job.
func (c *CompositionRoot) ResumeRepairs(ctx context.Context, reports []breakdown.Report) {
	for _, r := range reports {
		c.repairWorkflowJob.Notify(ctx, events.BreakdownReported{Report: r})
	}
}

// Close releases the backend connections.
func (c *CompositionRoot) Close() {
	var problems []error
	if c.redisClient != nil {
		problems = append(problems, c.redisClient.Close())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			problems = append(problems, sqlDB.Close())
		}
	}
	if err := errors.Join(problems...); err != nil {
		c.logger.Warn("Failed to close backends", "error", err)
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.repairWorkflowJob, c.fleetStatsJob)
}

func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpadapter.NewServer(httpadapter.Handlers{
		Register:      c.CreateRegisterBicycleCommandHandler(),
		Deregister:    c.CreateDeregisterBicycleCommandHandler(),
		Report:        c.CreateReportBreakdownCommandHandler(),
		StartRental:   c.CreateStartRentalCommandHandler(),
		EndRental:     c.CreateEndRentalCommandHandler(),
		Move:          c.CreateMoveBicycleCommandHandler(),
		GetBicycle:    c.CreateGetBicycleQueryHandler(),
		ListBicycles:  c.CreateListBicyclesQueryHandler(),
		FleetStats:    c.CreateGetFleetStatsQueryHandler(),
		RepairHistory: c.CreateGetRepairHistoryQueryHandler(),
	}, c.metrics, c.logger)
	return httpadapter.NewRouter(server, c.gatherer)
}

func (c *CompositionRoot) CreateRegisterBicycleCommandHandler() commands.RegisterBicycleCommandHandler {
	return commands.NewRegisterBicycleCommandHandler(c.registry, c.stations, c.store, c.clock, c.logger)
}

func (c *CompositionRoot) CreateDeregisterBicycleCommandHandler() commands.DeregisterBicycleCommandHandler {
	return commands.NewDeregisterBicycleCommandHandler(c.registry, c.store, c.logger)
}

func (c *CompositionRoot) CreateReportBreakdownCommandHandler() commands.ReportBreakdownCommandHandler {
	return commands.NewReportBreakdownCommandHandler(c.registry, c.bus, c.store, c.clock, c.logger)
}

func (c *CompositionRoot) CreateStartRentalCommandHandler() commands.StartRentalCommandHandler {
	return commands.NewStartRentalCommandHandler(c.registry, c.ledger, c.store, c.clock, c.logger)
}

func (c *CompositionRoot) CreateEndRentalCommandHandler() commands.EndRentalCommandHandler {
	return commands.NewEndRentalCommandHandler(c.registry, c.ledger, c.stations, c.store, c.clock,
		c.config.RentalBillingUnit, c.logger)
}

func (c *CompositionRoot) CreateMoveBicycleCommandHandler() commands.MoveBicycleCommandHandler {
	return commands.NewMoveBicycleCommandHandler(c.registry, c.stations, c.store, c.logger)
}

func (c *CompositionRoot) CreateRestoreFleetCommandHandler() commands.RestoreFleetCommandHandler {
	return commands.NewRestoreFleetCommandHandler(c.store, c.registry, c.ledger, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetBicycleQueryHandler() queries.GetBicycleQueryHandler {
	return queries.NewGetBicycleQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateListBicyclesQueryHandler() queries.ListBicyclesQueryHandler {
	return queries.NewListBicyclesQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateGetFleetStatsQueryHandler() queries.GetFleetStatsQueryHandler {
	return queries.NewGetFleetStatsQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateGetRepairHistoryQueryHandler() queries.GetRepairHistoryQueryHandler {
	return queries.NewGetRepairHistoryQueryHandler(c.registry, c.store)
}
