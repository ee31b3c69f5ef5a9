// Package repairlogrepo persists the repair history with GORM.
package repairlogrepo

import (
	"strings"
	"time"

	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// causeSeparator joins cause codes in the causes column.
const causeSeparator = ","

// RepairDTO is one row of the repair_log table.
type RepairDTO struct {
	ReportID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	BicycleID     string    `gorm:"size:64;index"`
	Causes        string    `gorm:"size:256"`
	OriginStation string    `gorm:"size:128"`
	IsElectric    bool
	ReportedAt    time.Time
	StartedAt     time.Time
	CompletedAt   time.Time `gorm:"index"`
	DurationMs    int64
}

// TableName overrides GORM's default naming.
func (RepairDTO) TableName() string {
	return "repair_log"
}

func fromDomain(r breakdown.Repair) RepairDTO {
	causes := r.Report.Causes()
	codes := make([]string, 0, len(causes))
	for _, c := range causes {
		codes = append(codes, c.String())
	}

	return RepairDTO{
		ReportID:      r.Report.ID().UUID(),
		BicycleID:     r.Report.BicycleID().String(),
		Causes:        strings.Join(codes, causeSeparator),
		OriginStation: r.Report.OriginStation().String(),
		IsElectric:    r.Report.IsElectric(),
		ReportedAt:    r.Report.ReportedAt().UTC(),
		StartedAt:     r.StartedAt.UTC(),
		CompletedAt:   r.CompletedAt.UTC(),
		DurationMs:    r.Duration.Milliseconds(),
	}
}

func toDomain(dto RepairDTO) (breakdown.Repair, error) {
	reportID, err := kernel.ReportIDFromUUID(dto.ReportID)
	if err != nil {
		return breakdown.Repair{}, err
	}
	bicycleID, err := kernel.NewBicycleID(dto.BicycleID)
	if err != nil {
		return breakdown.Repair{}, err
	}
	station, err := kernel.NewStation(dto.OriginStation)
	if err != nil {
		return breakdown.Repair{}, err
	}

	var codes []string
	if dto.Causes != "" {
		codes = strings.Split(dto.Causes, causeSeparator)
	}
	causes, err := breakdown.ParseCauses(codes)
	if err != nil {
		return breakdown.Repair{}, err
	}

	report, err := breakdown.RestoreReport(reportID, bicycleID, causes, station, dto.IsElectric, dto.ReportedAt)
	if err != nil {
		return breakdown.Repair{}, err
	}
	return breakdown.NewRepair(report, dto.StartedAt, dto.CompletedAt, time.Duration(dto.DurationMs)*time.Millisecond)
}
