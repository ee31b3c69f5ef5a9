// Package kernel provides the shared value objects of the bikeshare domain.
//
// The package includes:
//   - BicycleID: the opaque identifier of a physical bicycle
//   - Station: a named pickup/drop-off location
//   - ReportID: the unique identifier of a breakdown report, also used to
//     correlate the repair workflow it starts
//
// All values are immutable and validated at construction; their zero values fail
// Validate so that uninitialised identifiers are caught at the domain boundary.
package kernel
