package ports

import (
	"errors"
	"fmt"

	"bikeshare/internal/pkg/errs"
)

var (
	// ErrUnknownBicycle is returned when an operation names a bicycle the registry
	// does not hold. It is an errs.ErrObjectNotFound.
	ErrUnknownBicycle = fmt.Errorf("unknown bicycle: %w", errs.ErrObjectNotFound)

	// ErrUnknownStation is returned when a station is not in the station
	// directory. It is an errs.ErrObjectNotFound.
	ErrUnknownStation = fmt.Errorf("unknown station: %w", errs.ErrObjectNotFound)

	// ErrBicycleAlreadyRegistered is returned when registering an id twice.
	ErrBicycleAlreadyRegistered = errors.New("bicycle already registered")

	// ErrMissingRentalRecord is returned when ending a rental that was never started.
	ErrMissingRentalRecord = errors.New("missing rental record")

	// ErrRentalAlreadyActive is returned when starting a rental on a bicycle that
	// already has one.
	ErrRentalAlreadyActive = errors.New("rental already active")
)
