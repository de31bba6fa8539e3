package types

// MachineIDSource provides a machine or installation identifier.
//
// The identifier must be stable across restarts on the same machine.
type MachineIDSource interface {
	MachineID() (string, error)
}

// SeedSource provides the installation point used for cohort assignment.
//
// Seed must return a value in [0, 999]. Implementations never fail: a source
// that cannot derive a seed returns 0.
type SeedSource interface {
	Seed() int
}
