package identity

import (
	"github.com/zeebo/xxh3"

	"github.com/yhekr/abexp/internal/logger"
	"github.com/yhekr/abexp/types"
)

// SeedRange is the number of distinct seeds; seeds live in [0, SeedRange).
const SeedRange = 1000

// SeedFor maps an identifier onto [0, SeedRange).
func SeedFor(id string) int {
	return int(xxh3.HashString(id) % SeedRange) //nolint:gosec // result < 1000
}

// HashSeed derives the seed from a machine identifier.
type HashSeed struct {
	source types.MachineIDSource
	logger types.Logger
}

var _ types.SeedSource = (*HashSeed)(nil)

// NewHashSeed creates a seed source over src.
//
// Parameters:
//   - src: Machine identifier source
//   - log: Receives identifier failures (nil means discard)
//
// Returns:
//   - *HashSeed: Seed source that never fails
//
// Example:
//
//	seeds := identity.NewHashSeed(identity.Hostname{}, logger)
//	engine, err := abexp.NewEngine(&cfg, src, store, abexp.WithSeedSource(seeds))
func NewHashSeed(src types.MachineIDSource, log types.Logger) *HashSeed {
	if log == nil {
		log = logger.NewNop()
	}

	return &HashSeed{source: src, logger: log}
}

// Seed returns the seed for the current machine, or 0 when the identifier
// cannot be obtained.
func (h *HashSeed) Seed() (seed int) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("machine identifier source panicked, using seed 0", "panic", rec)
			seed = 0
		}
	}()

	if h.source == nil {
		h.logger.Warn("no machine identifier source configured, using seed 0")
		return 0
	}

	id, err := h.source.MachineID()
	if err != nil {
		h.logger.Warn("failed to obtain machine identifier, using seed 0", "error", err)
		return 0
	}

	return SeedFor(id)
}

// FixedSeed is a SeedSource that always returns the same value.
//
// Values outside [0, SeedRange) are reduced modulo SeedRange.
type FixedSeed int

var _ types.SeedSource = FixedSeed(0)

// Seed returns the fixed value.
func (f FixedSeed) Seed() int {
	s := int(f) % SeedRange
	if s < 0 {
		s += SeedRange
	}

	return s
}
