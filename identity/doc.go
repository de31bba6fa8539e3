// Package identity derives the stable installation seed used for cohort assignment.
//
// A MachineIDSource supplies an identifier that is stable on one machine
// (hostname, persisted installation UUID, or a fixed string). HashSeed maps
// that identifier onto a point in [0, 999] with xxh3, which is stable across
// processes and platforms and well distributed across machines.
//
// Failures never propagate: a seed source that cannot read its identifier
// logs the problem and falls back to seed 0.
package identity
