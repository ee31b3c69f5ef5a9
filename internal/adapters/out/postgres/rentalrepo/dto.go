// Package rentalrepo persists open rental records with GORM.
package rentalrepo

import (
	"time"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
)

// RentalDTO is one row of the rentals table. A row exists while the rental is open.
type RentalDTO struct {
	BicycleID string `gorm:"primaryKey;size:64"`
	StartedAt time.Time
}

// TableName overrides GORM's default naming.
func (RentalDTO) TableName() string {
	return "rentals"
}

func fromDomain(r rental.Record) RentalDTO {
	return RentalDTO{
		BicycleID: r.BicycleID().String(),
		StartedAt: r.StartedAt().UTC(),
	}
}

func toDomain(dto RentalDTO) (rental.Record, error) {
	id, err := kernel.NewBicycleID(dto.BicycleID)
	if err != nil {
		return rental.Record{}, err
	}
	return rental.NewRecord(id, dto.StartedAt)
}
