package http

import (
	"time"

	"bikeshare/internal/core/application/usecases/queries"
	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/rental"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewBicycle is the body of POST /api/v1/bicycles.
type NewBicycle struct {
	ID      string `json:"id" validate:"required,max=64"`
	Kind    string `json:"kind" validate:"required,oneof=regular electric"`
	Station string `json:"station" validate:"required,max=128"`
}

// NewBreakdown is the body of POST /api/v1/bicycles/:id/breakdowns.
type NewBreakdown struct {
	Causes []string `json:"causes" validate:"required,min=1,dive,required"`
}

// StationChange is the body of PUT /api/v1/bicycles/:id/station.
type StationChange struct {
	Station string `json:"station" validate:"required,max=128"`
}

// RentalReturn is the optional body of DELETE /api/v1/bicycles/:id/rental.
type RentalReturn struct {
	ReturnStation string `json:"return_station" validate:"omitempty,max=128"`
}

// Bicycle is the public view of one bicycle.
type Bicycle struct {
	ID                string    `json:"id"`
	Kind              string    `json:"kind"`
	Station           string    `json:"station"`
	Status            string    `json:"status"`
	RegisteredAt      time.Time `json:"registered_at"`
	LastMaintenanceAt time.Time `json:"last_maintenance_at"`
	CanRent           bool      `json:"can_rent"`
	CanDelete         bool      `json:"can_delete"`
	CanMove           bool      `json:"can_move"`
	CanReport         bool      `json:"can_report"`
}

// Report acknowledges an accepted breakdown report.
type Report struct {
	ID            string    `json:"id"`
	BicycleID     string    `json:"bicycle_id"`
	Causes        []string  `json:"causes"`
	OriginStation string    `json:"origin_station"`
	IsElectric    bool      `json:"is_electric"`
	ReportedAt    time.Time `json:"reported_at"`
}

// Repair is one entry of the repair history.
type Repair struct {
	Report            Report    `json:"report"`
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
	RepairSeconds     float64   `json:"repair_seconds"`
	TurnaroundSeconds float64   `json:"turnaround_seconds"`
}

// Rental acknowledges a started rental.
type Rental struct {
	BicycleID string    `json:"bicycle_id"`
	StartedAt time.Time `json:"started_at"`
}

// Usage is the bill of a finished rental.
type Usage struct {
	BicycleID      string    `json:"bicycle_id"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	BilledUnits    int64     `json:"billed_units"`
}

// Stats is the fleet broken down by status.
type Stats struct {
	Total            int            `json:"total"`
	Electric         int            `json:"electric"`
	InRepairPipeline int            `json:"in_repair_pipeline"`
	ByStatus         map[string]int `json:"by_status"`
}

func toBicycle(v queries.BicycleView) Bicycle {
	return Bicycle{
		ID:                v.ID.String(),
		Kind:              v.Kind.String(),
		Station:           v.Station.String(),
		Status:            v.Status.String(),
		RegisteredAt:      v.RegisteredAt,
		LastMaintenanceAt: v.LastMaintenanceAt,
		CanRent:           v.CanRent,
		CanDelete:         v.CanDelete,
		CanMove:           v.CanMove,
		CanReport:         v.CanReport,
	}
}

func snapshotToBicycle(s bicycle.Snapshot) Bicycle {
	p := s.Permissions()
	return Bicycle{
		ID:                s.ID.String(),
		Kind:              s.Kind.String(),
		Station:           s.Station.String(),
		Status:            s.Status.String(),
		RegisteredAt:      s.RegisteredAt,
		LastMaintenanceAt: s.LastMaintenanceAt,
		CanRent:           p.CanRent,
		CanDelete:         p.CanDelete,
		CanMove:           p.CanMove,
		CanReport:         p.CanReport,
	}
}

func toReport(r breakdown.Report) Report {
	causes := r.Causes()
	codes := make([]string, len(causes))
	for i, c := range causes {
		codes[i] = c.String()
	}
	return Report{
		ID:            r.ID().String(),
		BicycleID:     r.BicycleID().String(),
		Causes:        codes,
		OriginStation: r.OriginStation().String(),
		IsElectric:    r.IsElectric(),
		ReportedAt:    r.ReportedAt(),
	}
}

func toRepair(r breakdown.Repair) Repair {
	return Repair{
		Report:            toReport(r.Report),
		StartedAt:         r.StartedAt,
		CompletedAt:       r.CompletedAt,
		RepairSeconds:     r.Duration.Seconds(),
		TurnaroundSeconds: r.Turnaround().Seconds(),
	}
}

func toRental(r rental.Record) Rental {
	return Rental{BicycleID: r.BicycleID().String(), StartedAt: r.StartedAt()}
}

func toUsage(u rental.Usage) Usage {
	return Usage{
		BicycleID:      u.BicycleID.String(),
		StartedAt:      u.StartedAt,
		EndedAt:        u.EndedAt,
		ElapsedSeconds: u.Elapsed.Seconds(),
		BilledUnits:    u.BilledUnits,
	}
}

func toStats(s queries.FleetStats) Stats {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[status.String()] = n
	}
	return Stats{
		Total:            s.Total,
		Electric:         s.Electric,
		InRepairPipeline: s.InRepairPipeline(),
		ByStatus:         byStatus,
	}
}
