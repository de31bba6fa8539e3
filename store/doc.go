// Package store groups the types.OverrideStore implementations.
//
// Subpackages:
//
//   - memory: process-local concurrent map
//   - file: YAML settings file, re-read on every lookup
//   - natskv: NATS JetStream KeyValue bucket shared between processes
//
// All stores are safe for concurrent use and never cache overrides on
// behalf of the engine, so a settings editor's writes are visible on the
// next query.
package store
