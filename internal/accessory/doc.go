// Package accessory manages scoreboard accessory identity and lifecycle.
//
// This package owns the middle of the data flow: configured tokens resolve to
// addresses (bridges/scoreboard), addresses reconcile into accessory records
// (this package), and each record gets a device client plus event operations
// for the accessory framework to drive.
//
// # Identity
//
// Every resolved address maps to a deterministic UUID v5. The same address
// always yields the same identity across restarts, so accessories persisted
// in an earlier process are reused rather than duplicated:
//
//	id := accessory.Identity("192.168.1.50")
//
// # Reconciliation
//
// Registry.Reconcile looks an identity up in the persisted store and either
// returns the stored record untouched or creates and registers a new one.
// Registration happens at most once per identity per process lifetime.
//
// # Discovery
//
// Discoverer.Run processes the configured token list once at startup.
// Failures are collected per token and never abort the loop: one bad sync
// code must not stop the remaining scoreboards from registering.
//
// # Events
//
// Get/set operations return (value, error) pairs; Binder adapts them to a
// callback-style completion and guarantees the completion fires exactly once,
// never reporting both success and failure.
//
// # Thread Safety
//
// Registry and Accessory are safe for concurrent use. Discoverer.Run is
// intended to run once, synchronously, at startup.
package accessory
