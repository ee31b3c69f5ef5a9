// Package breakdown models what a rider reports when a bicycle is unusable.
//
// The package includes:
//   - Cause: the categorical reason for a breakdown, each carrying a base repair time
//   - Report: the immutable value created once per breakdown report
//
// A Report carries everything the repair workflow needs (bicycle, causes, origin
// station, electric or not) so the workflow never has to read the bicycle to plan
// its stages.
package breakdown
