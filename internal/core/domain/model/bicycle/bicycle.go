package bicycle

import (
	"errors"
	"time"

	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/guard"
)

var (
	// ErrBicycleIsNotConstructed is returned when a Bicycle was not created through
	// NewBicycle or RestoreBicycle.
	ErrBicycleIsNotConstructed = errors.New("Bicycle must be created via NewBicycle constructor")
)

// Bicycle is the aggregate root of the fleet. It owns the lifecycle status and the
// few attributes the repair workflow needs: kind (electric bicycles take longer
// to repair) and the station the bicycle is parked at.
//
// Bicycle follows these invariants:
//   - Must have a valid identifier and station
//   - Status is always one of Available, Rented, Broken, Repairing
//   - Status changes only through the transition methods below
//   - A refused transition leaves every field untouched
type Bicycle struct {
	// id is the externally supplied identifier
	id kernel.BicycleID

	// kind is Regular or Electric
	kind Kind

	// station is where the bicycle is parked (or was last parked)
	station kernel.Station

	// status is the current lifecycle state
	status Status

	// registeredAt is when the bicycle joined the fleet
	registeredAt time.Time

	// lastMaintenanceAt is when the last repair completed (registeredAt until then)
	lastMaintenanceAt time.Time

	guard guard.ConstructorGuard
}

// NewBicycle registers a new bicycle in the Available state.
//
// Parameters:
//   - id: identifier of the bicycle
//   - kind: Regular or Electric
//   - station: station the bicycle is parked at
//   - registeredAt: registration instant, also used as the initial maintenance date
//
// Returns:
//   - *Bicycle: the created aggregate if all validations pass
//   - error: joined validation errors otherwise
//
// Example:
//
//	b, err := bicycle.NewBicycle(kernel.MustBicycleID("B-001"), bicycle.Electric,
//	    kernel.MustStation("성복동"), time.Now())
func NewBicycle(id kernel.BicycleID, kind Kind, station kernel.Station, registeredAt time.Time) (*Bicycle, error) {
	b := &Bicycle{
		status:            Available,
		registeredAt:      registeredAt,
		lastMaintenanceAt: registeredAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setKind(kind),
		b.setStation(station),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBicycle rebuilds an aggregate from persisted state. Unlike NewBicycle it
// accepts any valid status, so bicycles saved mid-repair come back as Broken or
// Repairing.
func RestoreBicycle(
	id kernel.BicycleID,
	kind Kind,
	station kernel.Station,
	status Status,
	registeredAt, lastMaintenanceAt time.Time,
) (*Bicycle, error) {
	b := &Bicycle{
		registeredAt:      registeredAt,
		lastMaintenanceAt: lastMaintenanceAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setKind(kind),
		b.setStation(station),
		b.setStatus(status),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the Bicycle was built by one of its constructors.
func (b *Bicycle) Validate() error {
	if b == nil {
		return ErrBicycleIsNotConstructed
	}
	return b.guard.Validate(ErrBicycleIsNotConstructed)
}

// IsEqual compares bicycles by identifier.
func (b *Bicycle) IsEqual(other *Bicycle) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the bicycle's identifier.
func (b *Bicycle) ID() kernel.BicycleID {
	return b.id
}

// Kind returns Regular or Electric.
func (b *Bicycle) Kind() Kind {
	return b.kind
}

// IsElectric reports whether the bicycle is electric.
func (b *Bicycle) IsElectric() bool {
	return b.kind == Electric
}

// Station returns the station the bicycle is parked at.
func (b *Bicycle) Station() kernel.Station {
	return b.station
}

// CurrentStatus returns the lifecycle state.
func (b *Bicycle) CurrentStatus() Status {
	return b.status
}

// RegisteredAt returns when the bicycle joined the fleet.
func (b *Bicycle) RegisteredAt() time.Time {
	return b.registeredAt
}

// LastMaintenanceAt returns when the bicycle was last returned to service after a repair.
func (b *Bicycle) LastMaintenanceAt() time.Time {
	return b.lastMaintenanceAt
}

// CanRent reports whether the bicycle may be rented right now.
func (b *Bicycle) CanRent() bool { return b.status.Permits(Rent) }

// CanDelete reports whether the bicycle may be removed from the fleet.
func (b *Bicycle) CanDelete() bool { return b.status.Permits(Delete) }

// CanMove reports whether the bicycle may be relocated to another station.
func (b *Bicycle) CanMove() bool { return b.status.Permits(Move) }

// CanReport reports whether a breakdown may be reported for the bicycle.
func (b *Bicycle) CanReport() bool { return b.status.Permits(Report) }

// Check returns nil when the action is permitted and a *RefusalError otherwise.
//
// Example:
//
//	if err := b.Check(bicycle.Delete); err != nil {
//	    // errors.Is(err, bicycle.ErrInvalidTransition) == true
//	}
func (b *Bicycle) Check(a Action) error {
	return b.status.Check(a)
}

// ReportBroken moves an Available bicycle to Broken and returns the breakdown
// report the repair workflow consumes. The origin station and the electric flag
// are taken from the aggregate itself.
//
// Parameters:
//   - causes: the reported causes, copied into the report
//   - at: when the breakdown was reported
//
// Returns:
//   - breakdown.Report: the immutable report on success
//   - error: a *RefusalError if the bicycle is not Available, or a validation
//     error for invalid causes. In both cases the status is unchanged.
func (b *Bicycle) ReportBroken(causes []breakdown.Cause, at time.Time) (breakdown.Report, error) {
	next, err := b.status.ReportBroken()
	if err != nil {
		return breakdown.Report{}, err
	}

	report, err := breakdown.NewReport(b.id, causes, b.station, b.IsElectric(), at)
	if err != nil {
		return breakdown.Report{}, err
	}

	b.status = next
	return report, nil
}

// BeginRepair moves a Broken bicycle to Repairing.
func (b *Bicycle) BeginRepair() error {
	next, err := b.status.BeginRepair()
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

// CompleteRepairAndReturnToService moves a Repairing bicycle back to Available and
// records at as the last maintenance date.
func (b *Bicycle) CompleteRepairAndReturnToService(at time.Time) error {
	next, err := b.status.CompleteRepair()
	if err != nil {
		return err
	}
	b.status = next
	b.lastMaintenanceAt = at
	return nil
}

// SetRented moves an Available bicycle to Rented.
func (b *Bicycle) SetRented() error {
	next, err := b.status.Rent()
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

// SetAvailable moves a Rented bicycle back to Available.
func (b *Bicycle) SetAvailable() error {
	next, err := b.status.Return()
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

// MoveTo relocates an Available bicycle. Moving to the current station is a no-op.
func (b *Bicycle) MoveTo(station kernel.Station) error {
	if err := b.status.Check(Move); err != nil {
		return err
	}
	if err := station.Validate(); err != nil {
		return err
	}
	b.station = station
	return nil
}

// Snapshot is a detached copy of the aggregate state used by read models and
// persistence.
type Snapshot struct {
	ID                kernel.BicycleID
	Kind              Kind
	Station           kernel.Station
	Status            Status
	RegisteredAt      time.Time
	LastMaintenanceAt time.Time
}

// Permissions evaluates the four permission queries for the snapshot's state.
func (s Snapshot) Permissions() Permissions {
	return s.Status.Permissions()
}

// Snapshot copies the current state.
func (b *Bicycle) Snapshot() Snapshot {
	return Snapshot{
		ID:                b.id,
		Kind:              b.kind,
		Station:           b.station,
		Status:            b.status,
		RegisteredAt:      b.registeredAt,
		LastMaintenanceAt: b.lastMaintenanceAt,
	}
}

func (b *Bicycle) setID(id kernel.BicycleID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bicycle) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	b.kind = kind
	return nil
}

func (b *Bicycle) setStation(station kernel.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}
	b.station = station
	return nil
}

func (b *Bicycle) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}
