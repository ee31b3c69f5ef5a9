package bicyclerepo

import (
	"context"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBicycleRepository implements ports.BicycleRepository using GORM.
type GormBicycleRepository struct {
	db *gorm.DB
}

var _ ports.BicycleRepository = (*GormBicycleRepository)(nil)

// NewGormBicycleRepository creates a repository on db, which may be a transaction.
func NewGormBicycleRepository(db *gorm.DB) *GormBicycleRepository {
	return &GormBicycleRepository{db: db}
}

// Save inserts the snapshot or overwrites the existing row.
func (r *GormBicycleRepository) Save(ctx context.Context, snapshot bicycle.Snapshot) error {
	if err := snapshot.ID.Validate(); err != nil {
		return err
	}
	if err := snapshot.Status.Validate(); err != nil {
		return err
	}

	dto := fromDomain(snapshot)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// Delete removes the row for id. A missing row is not an error.
func (r *GormBicycleRepository) Delete(ctx context.Context, id kernel.BicycleID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&BicycleDTO{}, "id = ?", id.String()).Error
}

// GetAll returns every row ordered by id.
func (r *GormBicycleRepository) GetAll(ctx context.Context) ([]bicycle.Snapshot, error) {
	var dtos []BicycleDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	snapshots := make([]bicycle.Snapshot, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}
