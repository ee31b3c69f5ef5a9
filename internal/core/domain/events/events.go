// Package events defines the domain events of the bicycle lifecycle and the bus
// that carries them.
package events

import (
	"context"
	"log/slog"
	"time"

	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/observer"
)

// Kind tags a domain event.
type Kind string

const (
	KindBreakdownReported Kind = "breakdown_reported"
	KindRepairCompleted   Kind = "repair_completed"
)

// Event is implemented by every domain event.
type Event interface {
	Kind() Kind
	BicycleID() kernel.BicycleID
}

// BreakdownReported is raised once a bicycle has moved to Broken. It starts the
// repair workflow.
type BreakdownReported struct {
	Report breakdown.Report
}

// Kind implements Event.
func (BreakdownReported) Kind() Kind { return KindBreakdownReported }

// BicycleID implements Event.
func (e BreakdownReported) BicycleID() kernel.BicycleID { return e.Report.BicycleID() }

// RepairCompleted is raised when the workflow has returned a bicycle to service.
type RepairCompleted struct {
	ID          kernel.BicycleID
	ReportID    kernel.ReportID
	Station     kernel.Station
	CompletedAt time.Time
}

// Kind implements Event.
func (RepairCompleted) Kind() Kind { return KindRepairCompleted }

// BicycleID implements Event.
func (e RepairCompleted) BicycleID() kernel.BicycleID { return e.ID }

// Bus holds one typed subject per event kind. Publishing is synchronous; observers
// that need to do slow work hand it off themselves.
type Bus struct {
	breakdownReported *observer.Subject[BreakdownReported]
	repairCompleted   *observer.Subject[RepairCompleted]
}

// NewBus creates an empty bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		breakdownReported: observer.NewSubject[BreakdownReported](string(KindBreakdownReported), logger),
		repairCompleted:   observer.NewSubject[RepairCompleted](string(KindRepairCompleted), logger),
	}
}

// OnBreakdownReported subscribes o to breakdown reports.
func (b *Bus) OnBreakdownReported(o observer.Observer[BreakdownReported]) {
	b.breakdownReported.Subscribe(o)
}

// OnRepairCompleted subscribes o to repair completions.
func (b *Bus) OnRepairCompleted(o observer.Observer[RepairCompleted]) {
	b.repairCompleted.Subscribe(o)
}

// PublishBreakdownReported delivers e and returns the number of failed deliveries.
func (b *Bus) PublishBreakdownReported(ctx context.Context, e BreakdownReported) int {
	return b.breakdownReported.Publish(ctx, e)
}

// PublishRepairCompleted delivers e and returns the number of failed deliveries.
func (b *Bus) PublishRepairCompleted(ctx context.Context, e RepairCompleted) int {
	return b.repairCompleted.Publish(ctx, e)
}
