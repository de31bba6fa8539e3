// Package source provides built-in experiment catalog implementations.
//
// The package includes:
//
//   - Static: Fixed, in-memory list of experiments
//
// Custom catalogs can be implemented by satisfying the types.ExperimentSource interface.
package source
