// Package diagnostic defines the validated, immutable diagnostic reading
// stored for a vehicle.
//
// Kind is the closed set of recognized metric kinds (RPM, EngineLoad,
// CoolantTemp). New and Parse are the only constructors for Record; they
// reject unknown kinds with ErrInvalidKind and non-finite values with
// ErrInvalidValue. Callers match on these with errors.Is.
package diagnostic
