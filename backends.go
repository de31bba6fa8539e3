package abexp

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/yhekr/abexp/identity"
	"github.com/yhekr/abexp/source"
	"github.com/yhekr/abexp/store/file"
	"github.com/yhekr/abexp/store/memory"
	"github.com/yhekr/abexp/store/natskv"
)

// NewMachineIDSource returns the machine identifier source selected by cfg.
// Unknown sources fall back to the hostname.
func NewMachineIDSource(cfg IdentityConfig) MachineIDSource {
	switch cfg.Source {
	case IdentityFile:
		return identity.InstallationFile{Path: cfg.Path}
	case IdentityStatic:
		return identity.Static(cfg.MachineID)
	default:
		return identity.Hostname{}
	}
}

// NewConfigSource returns a static experiment source over cfg.Experiments.
func NewConfigSource(cfg *Config) ExperimentSource {
	return source.NewStatic(cfg.Experiments)
}

// OpenOverrideStore opens the override store selected by cfg.
//
// Parameters:
//   - ctx: Bounds connection and bucket setup for the "nats" backend
//   - cfg: Override store configuration
//
// Returns:
//   - OverrideStore: The opened store
//   - func(): Releases resources held by the store (always non-nil)
//   - error: Connection or setup failure
//
// Example:
//
//	store, closeStore, err := abexp.OpenOverrideStore(ctx, cfg.Overrides)
//	if err != nil { /* handle */ }
//	defer closeStore()
func OpenOverrideStore(ctx context.Context, cfg OverridesConfig) (OverrideStore, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case BackendMemory, "":
		return memory.New(nil), noop, nil
	case BackendFile:
		return file.New(cfg.Path), noop, nil
	case BackendNATS:
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("abexp-overrides"))
		if err != nil {
			return nil, noop, fmt.Errorf("%w: connect %s: %w", ErrOverrideStore, cfg.NATSURL, err)
		}

		store, err := natskv.New(ctx, nc, cfg.KV)
		if err != nil {
			nc.Close()
			return nil, noop, err
		}

		return store, nc.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: unknown override backend %q", ErrInvalidConfig, cfg.Backend)
	}
}
