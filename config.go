package abexp

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/yhekr/abexp/internal/plan"
	"github.com/yhekr/abexp/store/natskv"
)

// Override store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendNATS   = "nats"
)

// Machine identifier sources.
const (
	IdentityHostname = "hostname"
	IdentityFile     = "file"
	IdentityStatic   = "static"
)

// OverridesConfig selects where forced cohort values are stored.
type OverridesConfig struct {
	// Backend is one of "memory", "file" or "nats".
	Backend string `yaml:"backend" validate:"oneof=memory file nats"`

	// Path is the YAML settings file used by the "file" backend.
	Path string `yaml:"path" validate:"required_if=Backend file"`

	// NATSURL is the server used by the "nats" backend.
	NATSURL string `yaml:"natsUrl" validate:"required_if=Backend nats"`

	// KV configures the JetStream bucket used by the "nats" backend.
	KV natskv.Config `yaml:"kv"`
}

// IdentityConfig selects where the machine identifier comes from.
//
// The identifier only feeds the seed hash; it is never sent anywhere.
type IdentityConfig struct {
	// Source is one of "hostname", "file" or "static".
	Source string `yaml:"source" validate:"oneof=hostname file static"`

	// Path is the installation-ID file used by the "file" source.
	// The file is created with a random UUID on first use.
	Path string `yaml:"path" validate:"required_if=Source file"`

	// MachineID is the identifier used by the "static" source.
	MachineID string `yaml:"machineId" validate:"required_if=Source static"`
}

// TelemetryConfig controls where usage events are published.
type TelemetryConfig struct {
	// NATSURL enables publishing to NATS. Empty means events are logged only.
	NATSURL string `yaml:"natsUrl" validate:"omitempty,url"`

	// SubjectPrefix is prepended to every event name to form the subject.
	SubjectPrefix string `yaml:"subjectPrefix"`
}

// Config is the configuration for the Engine and the abexp command.
//
// All duration fields accept standard Go duration strings like "500ms", "5s".
type Config struct {
	// Experiments is the catalog used when no other ExperimentSource is supplied.
	// Order matters: it is the order of the plan and of describe output.
	Experiments []Experiment `yaml:"experiments" validate:"unique=Key,dive"`

	// Overrides selects the override store backend.
	Overrides OverridesConfig `yaml:"overrides"`

	// Identity selects the machine identifier used for the seed.
	Identity IdentityConfig `yaml:"identity"`

	// Telemetry configures event publishing for the usage collector.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// OperationTimeout bounds every override store and catalog call.
	// Recommended: 5 seconds.
	OperationTimeout time.Duration `yaml:"operationTimeout" validate:"gt=0"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Overrides: OverridesConfig{
			Backend: BackendMemory,
			KV: natskv.Config{
				Bucket:   natskv.DefaultBucket,
				Replicas: 1,
			},
		},
		Identity: IdentityConfig{
			Source: IdentityHostname,
		},
		Telemetry: TelemetryConfig{
			SubjectPrefix: "abexp.telemetry",
		},
		OperationTimeout: 5 * time.Second,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Overrides.Backend == "" {
		cfg.Overrides.Backend = defaults.Overrides.Backend
	}
	if cfg.Overrides.KV.Bucket == "" {
		cfg.Overrides.KV.Bucket = defaults.Overrides.KV.Bucket
	}
	if cfg.Overrides.KV.Replicas == 0 {
		cfg.Overrides.KV.Replicas = defaults.Overrides.KV.Replicas
	}
	if cfg.Identity.Source == "" {
		cfg.Identity.Source = defaults.Identity.Source
	}
	if cfg.Telemetry.SubjectPrefix == "" {
		cfg.Telemetry.SubjectPrefix = defaults.Telemetry.SubjectPrefix
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = defaults.OperationTimeout
	}
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks configuration constraints.
//
// Rules:
//   - Experiment keys are non-empty and unique
//   - Backend and identity source are known, with their required fields set
//   - URLs parse
//   - OperationTimeout > 0
//
// Returns:
//   - error: Wrapped ErrInvalidConfig describing the first violations, nil if valid
func (cfg *Config) Validate() error {
	if err := configValidator.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// ValidateWithWarnings logs warnings for values that are valid but probably
// not what the operator meant.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	total := 0.0
	for _, exp := range cfg.Experiments {
		if !exp.HasFraction() {
			continue
		}
		f := *exp.Fraction
		if f > plan.MaxExplicitFraction {
			logger.Warn("experiment fraction above cap will be reduced",
				"experiment", exp.Key,
				"fraction", f,
				"cap", plan.MaxExplicitFraction,
			)
			f = plan.MaxExplicitFraction
		}
		if f < 0 {
			logger.Warn("negative experiment fraction disables the experiment",
				"experiment", exp.Key,
				"fraction", f,
			)
		}
		total += f
	}

	if total > 1 {
		logger.Warn("explicit experiment fractions exceed the whole population",
			"total", total,
		)
	}
}

// LoadConfig reads a YAML configuration file, applies defaults and validates it.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - *Config: Loaded configuration
//   - error: Read, parse or validation failure
//
// Example:
//
//	cfg, err := abexp.LoadConfig("/etc/abexp/config.yaml")
//	if err != nil { /* handle */ }
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}

// ParseConfig decodes YAML configuration, applies defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// TestConfig returns a configuration suited to tests.
//
// It uses the in-memory override store, a static machine identifier and a
// short operation timeout.
//
// Returns:
//   - Config: Configuration for tests
//
// Example:
//
//	cfg := abexp.TestConfig()
//	engine, err := abexp.NewEngine(&cfg, src, memory.New(nil))
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.Identity = IdentityConfig{Source: IdentityStatic, MachineID: "test-machine"}
	cfg.OperationTimeout = 500 * time.Millisecond

	return cfg
}
