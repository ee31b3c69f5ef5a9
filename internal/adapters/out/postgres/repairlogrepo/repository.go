package repairlogrepo

import (
	"context"

	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/ports"

	"gorm.io/gorm"
)

// GormRepairLogRepository implements ports.RepairLogRepository using GORM.
type GormRepairLogRepository struct {
	db *gorm.DB
}

var _ ports.RepairLogRepository = (*GormRepairLogRepository)(nil)

// NewGormRepairLogRepository creates a repository on db, which may be a transaction.
func NewGormRepairLogRepository(db *gorm.DB) *GormRepairLogRepository {
	return &GormRepairLogRepository{db: db}
}

// Append inserts one history row.
func (r *GormRepairLogRepository) Append(ctx context.Context, repair breakdown.Repair) error {
	if err := repair.Report.Validate(); err != nil {
		return err
	}

	dto := fromDomain(repair)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByBicycle returns the history of id ordered by completion time.
func (r *GormRepairLogRepository) ListByBicycle(ctx context.Context, id kernel.BicycleID) ([]breakdown.Repair, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dtos []RepairDTO
	if err := r.db.WithContext(ctx).
		Where("bicycle_id = ?", id.String()).
		Order("completed_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	repairs := make([]breakdown.Repair, 0, len(dtos))
	for _, dto := range dtos {
		repair, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		repairs = append(repairs, repair)
	}
	return repairs, nil
}

// DeleteByBicycle removes every history row of id.
func (r *GormRepairLogRepository) DeleteByBicycle(ctx context.Context, id kernel.BicycleID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&RepairDTO{}, "bicycle_id = ?", id.String()).Error
}
