package commands

import (
	"context"
	"fmt"
	"log/slog"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/rental"
	"bikeshare/internal/core/ports"
)

// FleetSource is the read side of ports.SnapshotStore used at startup.
type FleetSource interface {
	LoadAll(ctx context.Context) ([]bicycle.Snapshot, error)
	Rentals(ctx context.Context) ([]rental.Record, error)
}

var _ FleetSource = (ports.SnapshotStore)(nil)

// RestoreFleetCommandHandler warms the registry and the rental ledger.
type RestoreFleetCommandHandler struct {
	source   FleetSource
	registry Registry
	ledger   ports.RentalLedger
	clock    Clock
	logger   *slog.Logger
}

// NewRestoreFleetCommandHandler creates the handler.
func NewRestoreFleetCommandHandler(
	source FleetSource,
	registry Registry,
	ledger ports.RentalLedger,
	clock Clock,
	logger *slog.Logger,
) RestoreFleetCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return RestoreFleetCommandHandler{
		source:   source,
		registry: registry,
		ledger:   ledger,
		clock:    clock,
		logger:   logger.With("component", "restore_fleet_handler"),
	}
}

// Handle restores every persisted bicycle.
//
// A Rented bicycle gets its persisted rental record back in the ledger. When
// the record is missing, a new one starting now is opened so the rental can
// still be ended. Records of bicycles that are not Rented are skipped.
//
// Bicycles that were Broken or Repairing are returned as reports so their
// workflow can be resumed. Causes are only persisted once a repair completes,
// so the reports carry breakdown.Other.
func (h RestoreFleetCommandHandler) Handle(ctx context.Context, cmd RestoreFleetCommand) ([]breakdown.Report, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	snapshots, err := h.source.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fleet: %w", err)
	}
	records, err := h.source.Rentals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rentals: %w", err)
	}
	open := make(map[string]rental.Record, len(records))
	for _, r := range records {
		open[r.BicycleID().String()] = r
	}

	var resumed []breakdown.Report
	rentals := 0
	for _, s := range snapshots {
		b, restoreErr := bicycle.RestoreBicycle(s.ID, s.Kind, s.Station, s.Status, s.RegisteredAt, s.LastMaintenanceAt)
		if restoreErr != nil {
			return nil, fmt.Errorf("restore %s: %w", s.ID, restoreErr)
		}
		if err = h.registry.Add(ctx, b); err != nil {
			return nil, fmt.Errorf("restore %s: %w", s.ID, err)
		}

		key := s.ID.String()
		switch s.Status {
		case bicycle.Rented:
			record, ok := open[key]
			if !ok {
				h.logger.WarnContext(ctx, "Rented bicycle has no rental record, billing from now",
					"bicycle_id", key)
				if record, err = rental.NewRecord(s.ID, h.clock.Now()); err != nil {
					return nil, err
				}
			}
			if err = h.ledger.Start(ctx, record); err != nil {
				return nil, fmt.Errorf("restore rental %s: %w", key, err)
			}
			delete(open, key)
			rentals++
		case bicycle.Broken, bicycle.Repairing:
			report, reportErr := breakdown.NewReport(s.ID, []breakdown.Cause{breakdown.Other}, s.Station,
				s.Kind == bicycle.Electric, h.clock.Now())
			if reportErr != nil {
				return nil, reportErr
			}
			h.logger.WarnContext(ctx, "Bicycle was in the repair pipeline at shutdown, resuming",
				"bicycle_id", key, "status", s.Status.String())
			resumed = append(resumed, report)
		}
	}

	for key := range open {
		h.logger.WarnContext(ctx, "Skipping rental record of a bicycle that is not rented", "bicycle_id", key)
	}

	h.logger.InfoContext(ctx, "Fleet restored",
		"bicycles", len(snapshots), "rentals", rentals, "resumed_repairs", len(resumed))
	return resumed, nil
}
