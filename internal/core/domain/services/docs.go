// Package services provides domain services that do not belong to a single
// aggregate. In the bikeshare service that is the repair duration strategy used by
// the repair workflow.
//
// The package includes:
//   - RepairDurationStrategy: computes how long a repair takes
//   - RandomizedRepairDuration: base times with a single random perturbation per call
//   - FixedRepairDuration: the same computation without perturbation
package services
