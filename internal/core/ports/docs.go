// Package ports defines the contracts between the bikeshare core and its adapters:
// the in-memory registry and rental ledger, the station directory and the
// persistence hook used after every successful mutation.
package ports
