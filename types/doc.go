// Package types provides core type definitions and interfaces for the abexp library.
//
// This package contains shared types that are used across multiple packages in
// abexp. Keeping them in a separate package avoids import cycles between the
// root abexp package and its internal implementations.
//
// Key types:
//   - Experiment: Registered experiment descriptor (key + optional fraction)
//   - Threshold: Per-experiment inclusion cutoff derived from the plan
//   - CohortDecision: Outcome of a single cohort query
//   - OverrideStore: Externally persisted per-experiment overrides
//   - Observer / MenuSubscriber: Notification callbacks
//   - Logger / MetricsCollector: Ambient observability interfaces
package types
