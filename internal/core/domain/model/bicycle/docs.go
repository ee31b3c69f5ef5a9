// Package bicycle holds the Bicycle aggregate and its lifecycle state machine.
//
// A bicycle is always in exactly one of four states: Available, Rented, Broken
// or Repairing. Only an Available bicycle may be rented, deleted, moved or
// reported broken. Refused actions come back as a *RefusalError wrapping
// ErrInvalidTransition and never change the aggregate.
//
// The aggregate itself is not safe for concurrent use. Callers serialise access
// per bicycle (see ports.BicycleRegistry.Update).
package bicycle
