package commands

import (
	"context"
	"log/slog"

	"bikeshare/internal/core/domain/events"
	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
)

// ReportBreakdownCommandHandler moves an Available bicycle to Broken and announces
// the breakdown, which starts the repair workflow.
type ReportBreakdownCommandHandler struct {
	registry    Registry
	publisher   BreakdownPublisher
	clock       Clock
	persistence persistence
	logger      *slog.Logger
}

// NewReportBreakdownCommandHandler creates the handler.
func NewReportBreakdownCommandHandler(
	registry Registry,
	publisher BreakdownPublisher,
	store SnapshotWriter,
	clock Clock,
	logger *slog.Logger,
) ReportBreakdownCommandHandler {
	p := newPersistence(store, logger, "report_breakdown_handler")
	return ReportBreakdownCommandHandler{
		registry:    registry,
		publisher:   publisher,
		clock:       clock,
		persistence: p,
		logger:      p.logger,
	}
}

// Handle reports the breakdown.
//
// The status check and the transition to Broken happen under the bicycle's lock,
// so of several concurrent reports exactly one succeeds. The event is published
// only after the lock is released; the bicycle is already Broken when any
// observer sees it.
//
// Returns:
//   - breakdown.Report: the accepted report
//   - error: ports.ErrUnknownBicycle, or a *bicycle.RefusalError when the bicycle
//     is not Available (nothing is published then)
func (h ReportBreakdownCommandHandler) Handle(
	ctx context.Context,
	cmd ReportBreakdownCommand,
) (breakdown.Report, error) {
	if err := cmd.Validate(); err != nil {
		return breakdown.Report{}, err
	}

	var report breakdown.Report
	_, err := h.registry.Update(ctx, cmd.BicycleID(), h.persistence.saved(ctx, func(b *bicycle.Bicycle) error {
		var reportErr error
		report, reportErr = b.ReportBroken(cmd.Causes(), h.clock.Now())
		return reportErr
	}))
	if err != nil {
		return breakdown.Report{}, err
	}

	if failed := h.publisher.PublishBreakdownReported(ctx, events.BreakdownReported{Report: report}); failed > 0 {
		h.logger.WarnContext(ctx, "Breakdown observers failed",
			"bicycle_id", report.BicycleID().String(), "report_id", report.ID().String(), "failed", failed)
	}

	return report, nil
}
