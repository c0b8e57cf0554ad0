package arbiter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Strategy names a quota strategy.
type Strategy string

const (
	StrategyGreedy Strategy = "greedy"
	StrategySmooth Strategy = "smooth"
)

// Config is the top-level arbiter configuration.
type Config struct {
	Services []ServiceConfig `yaml:"services"`
}

// ServiceConfig configures a single service and its quota.
type ServiceConfig struct {
	Name            string   `yaml:"name"`
	Strategy        Strategy `yaml:"strategy"`
	IntervalSeconds int64    `yaml:"interval_seconds"`
	Quota           int      `yaml:"quota"`
	Priority        float64  `yaml:"priority"`   // greedy only, 0 means 1
	Burstiness      float64  `yaml:"burstiness"` // smooth only, 0 means 1
}

// LoadConfig reads and parses a YAML config file.
// Environment variables in the format ${VAR} are expanded before parsing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("arbiter: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates YAML config data, expanding ${VAR} first.
func ParseConfig(data []byte) (Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("arbiter: parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the config for required fields and consistency.
func (c Config) Validate() error {
	if len(c.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidConfig)
	}

	names := make(map[string]bool, len(c.Services))
	for i, s := range c.Services {
		if s.Name == "" {
			return fmt.Errorf("%w: services[%d]: name is required", ErrInvalidConfig, i)
		}
		if names[s.Name] {
			return fmt.Errorf("%w: duplicate service name %q", ErrInvalidConfig, s.Name)
		}
		names[s.Name] = true

		if err := s.validate(); err != nil {
			return &ServiceError{Err: err, Service: s.Name, Index: i}
		}
	}

	return nil
}

func (s ServiceConfig) validate() error {
	switch s.Strategy {
	case StrategyGreedy, StrategySmooth:
	case "":
		return fmt.Errorf("%w: strategy is required", ErrInvalidConfig)
	default:
		return fmt.Errorf("%w: invalid strategy %q", ErrInvalidConfig, s.Strategy)
	}

	if s.IntervalSeconds <= 0 {
		return fmt.Errorf("%w: interval_seconds must be > 0", ErrInvalidConfig)
	}
	if s.Quota < 0 {
		return fmt.Errorf("%w: quota must be >= 0", ErrInvalidConfig)
	}
	if s.Priority < 0 {
		return fmt.Errorf("%w: priority must be >= 0", ErrInvalidConfig)
	}
	if s.Burstiness < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidBurstiness, s.Burstiness)
	}
	return nil
}

// NewQuota builds the quota described by s, reading clock.
func (s ServiceConfig) NewQuota(clock Clock) (Quota, error) {
	switch s.Strategy {
	case StrategyGreedy:
		return NewGreedyQuota(clock, s.IntervalSeconds, s.Quota, s.Priority), nil
	case StrategySmooth:
		burstiness := s.Burstiness
		if burstiness == 0 {
			burstiness = 1
		}
		q, err := NewSmoothQuota(clock, s.IntervalSeconds, s.Quota, burstiness)
		if err != nil {
			return nil, err
		}
		return q, nil
	default:
		return nil, fmt.Errorf("%w: invalid strategy %q", ErrInvalidConfig, s.Strategy)
	}
}

// NewManagerFromConfig creates a Manager and registers every configured
// service, in config order, with the callback of the same name.
func NewManagerFromConfig(cfg Config, callbacks map[string]Callback, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := NewManager(opts...)
	for i, s := range cfg.Services {
		cb, ok := callbacks[s.Name]
		if !ok {
			return nil, &ServiceError{Err: ErrUnknownService, Service: s.Name, Index: i}
		}

		q, err := s.NewQuota(m.clock)
		if err != nil {
			return nil, &ServiceError{Err: err, Service: s.Name, Index: i}
		}

		if err := m.AddNamed(s.Name, cb, q); err != nil {
			return nil, err
		}
	}

	return m, nil
}
