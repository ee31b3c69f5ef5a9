package postgres

import (
	"context"
	"fmt"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
	"bikeshare/internal/core/ports"
)

// SnapshotStore implements ports.SnapshotStore on top of a unit of work factory.
type SnapshotStore struct {
	factory ports.UnitOfWorkFactory
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a store that opens one unit of work per call.
func NewSnapshotStore(factory ports.UnitOfWorkFactory) *SnapshotStore {
	return &SnapshotStore{factory: factory}
}

// Save upserts snapshot.
func (s *SnapshotStore) Save(ctx context.Context, snapshot bicycle.Snapshot) error {
	return s.factory.Create().BicycleRepository().Save(ctx, snapshot)
}

// Delete removes the bicycle row, its open rental and its repair history in one
// transaction.
func (s *SnapshotStore) Delete(ctx context.Context, id kernel.BicycleID) error {
	return s.inTx(ctx, func(uow ports.UnitOfWork) error {
		if err := uow.RepairLogRepository().DeleteByBicycle(ctx, id); err != nil {
			return fmt.Errorf("delete repair history: %w", err)
		}
		if err := uow.RentalRepository().Close(ctx, id); err != nil {
			return fmt.Errorf("close rental: %w", err)
		}
		if err := uow.BicycleRepository().Delete(ctx, id); err != nil {
			return fmt.Errorf("delete bicycle: %w", err)
		}
		return nil
	})
}

// RecordRepair saves the returned-to-service snapshot and appends the history
// entry in one transaction.
func (s *SnapshotStore) RecordRepair(ctx context.Context, snapshot bicycle.Snapshot, repair breakdown.Repair) error {
	return s.inTx(ctx, func(uow ports.UnitOfWork) error {
		if err := uow.BicycleRepository().Save(ctx, snapshot); err != nil {
			return fmt.Errorf("save bicycle: %w", err)
		}
		if err := uow.RepairLogRepository().Append(ctx, repair); err != nil {
			return fmt.Errorf("append repair: %w", err)
		}
		return nil
	})
}

// StartRental saves the Rented snapshot and opens the rental row in one
// transaction.
func (s *SnapshotStore) StartRental(ctx context.Context, snapshot bicycle.Snapshot, record rental.Record) error {
	return s.inTx(ctx, func(uow ports.UnitOfWork) error {
		if err := uow.BicycleRepository().Save(ctx, snapshot); err != nil {
			return fmt.Errorf("save bicycle: %w", err)
		}
		if err := uow.RentalRepository().Open(ctx, record); err != nil {
			return fmt.Errorf("open rental: %w", err)
		}
		return nil
	})
}

// EndRental saves the returned snapshot and closes the rental row in one
// transaction.
func (s *SnapshotStore) EndRental(ctx context.Context, snapshot bicycle.Snapshot) error {
	return s.inTx(ctx, func(uow ports.UnitOfWork) error {
		if err := uow.BicycleRepository().Save(ctx, snapshot); err != nil {
			return fmt.Errorf("save bicycle: %w", err)
		}
		if err := uow.RentalRepository().Close(ctx, snapshot.ID); err != nil {
			return fmt.Errorf("close rental: %w", err)
		}
		return nil
	})
}

// Rentals returns every open rental ordered by bicycle id.
func (s *SnapshotStore) Rentals(ctx context.Context) ([]rental.Record, error) {
	return s.factory.Create().RentalRepository().GetAll(ctx)
}

// LoadAll returns every saved bicycle ordered by id.
func (s *SnapshotStore) LoadAll(ctx context.Context) ([]bicycle.Snapshot, error) {
	return s.factory.Create().BicycleRepository().GetAll(ctx)
}

// Repairs returns the history of id, oldest first.
func (s *SnapshotStore) Repairs(ctx context.Context, id kernel.BicycleID) ([]breakdown.Repair, error) {
	return s.factory.Create().RepairLogRepository().ListByBicycle(ctx, id)
}

func (s *SnapshotStore) inTx(ctx context.Context, fn func(uow ports.UnitOfWork) error) (err error) {
	uow := s.factory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = uow.Rollback(ctx)
			panic(r)
		}
	}()

	if err = fn(uow); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	return uow.Commit(ctx)
}
