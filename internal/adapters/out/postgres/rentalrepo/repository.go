package rentalrepo

import (
	"context"
	"fmt"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
	"bikeshare/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRentalRepository implements ports.RentalRepository using GORM.
type GormRentalRepository struct {
	db *gorm.DB
}

var _ ports.RentalRepository = (*GormRentalRepository)(nil)

// NewGormRentalRepository creates a repository on db, which may be a transaction.
func NewGormRentalRepository(db *gorm.DB) *GormRentalRepository {
	return &GormRentalRepository{db: db}
}

// Open inserts record. An existing row for the bicycle is left untouched and
// reported as ports.ErrRentalAlreadyActive.
func (r *GormRentalRepository) Open(ctx context.Context, record rental.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ports.ErrRentalAlreadyActive, dto.BicycleID)
	}
	return nil
}

// Close removes the row for id. A missing row is not an error.
func (r *GormRentalRepository) Close(ctx context.Context, id kernel.BicycleID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&RentalDTO{}, "bicycle_id = ?", id.String()).Error
}

// GetAll returns every open rental ordered by bicycle id.
func (r *GormRentalRepository) GetAll(ctx context.Context) ([]rental.Record, error) {
	var dtos []RentalDTO
	if err := r.db.WithContext(ctx).Order("bicycle_id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]rental.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
