// Package bicyclerepo persists bicycle snapshots with GORM.
package bicyclerepo

import (
	"time"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/kernel"
)

// BicycleDTO is the row of the bicycles table.
type BicycleDTO struct {
	ID                string `gorm:"primaryKey;size:64"`
	Kind              int    `gorm:"type:smallint"`
	Station           string `gorm:"size:128;index"`
	Status            int    `gorm:"type:smallint;index"`
	RegisteredAt      time.Time
	LastMaintenanceAt time.Time
}

// TableName overrides GORM's default naming.
func (BicycleDTO) TableName() string {
	return "bicycles"
}

func fromDomain(s bicycle.Snapshot) BicycleDTO {
	return BicycleDTO{
		ID:                s.ID.String(),
		Kind:              int(s.Kind),
		Station:           s.Station.String(),
		Status:            int(s.Status),
		RegisteredAt:      s.RegisteredAt.UTC(),
		LastMaintenanceAt: s.LastMaintenanceAt.UTC(),
	}
}

// toDomain rebuilds the aggregate so corrupted rows are rejected by its validation.
func toDomain(dto BicycleDTO) (bicycle.Snapshot, error) {
	id, err := kernel.NewBicycleID(dto.ID)
	if err != nil {
		return bicycle.Snapshot{}, err
	}
	station, err := kernel.NewStation(dto.Station)
	if err != nil {
		return bicycle.Snapshot{}, err
	}

	b, err := bicycle.RestoreBicycle(id, bicycle.Kind(dto.Kind), station, bicycle.Status(dto.Status),
		dto.RegisteredAt, dto.LastMaintenanceAt)
	if err != nil {
		return bicycle.Snapshot{}, err
	}
	return b.Snapshot(), nil
}
