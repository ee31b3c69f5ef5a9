// Package rentalledger is the in-memory RentalLedger.
package rentalledger

import (
	"context"
	"fmt"
	"sync"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/domain/model/rental"
	"bikeshare/internal/core/ports"
)

// Ledger implements ports.RentalLedger.
type Ledger struct {
	mu      sync.Mutex
	records map[string]rental.Record
}

var _ ports.RentalLedger = (*Ledger)(nil)

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make(map[string]rental.Record)}
}

// Start stores record.
func (l *Ledger) Start(_ context.Context, record rental.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := record.BicycleID().String()
	if _, ok := l.records[key]; ok {
		return fmt.Errorf("%w: %s", ports.ErrRentalAlreadyActive, key)
	}
	l.records[key] = record
	return nil
}

// Lookup returns the active record for id.
func (l *Ledger) Lookup(_ context.Context, id kernel.BicycleID) (rental.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.records[id.String()]
	if !ok {
		return rental.Record{}, fmt.Errorf("%w: %s", ports.ErrMissingRentalRecord, id)
	}
	return record, nil
}

// Remove drops the active record for id.
func (l *Ledger) Remove(_ context.Context, id kernel.BicycleID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.records, id.String())
	return nil
}

// Active returns the number of open rentals.
func (l *Ledger) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
