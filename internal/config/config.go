package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/limaJavier/gradplan/pkg/sat"
	"gopkg.in/yaml.v3"
)

const (
	GophersatSolver = "gophersat"
	ExternalSolver  = "external"
)

// Config structure represents the planner configuration
type Config struct {
	MaxCreditsPerTerm int  `yaml:"max_credits_per_term"`
	IncludeCompleted  bool `yaml:"include_completed"`

	Solver struct {
		Name string `yaml:"name"`
		// Loosely typed so that it can be handed to the solver as is (path, args)
		External map[string]any `yaml:"external"`
	} `yaml:"solver"`

	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from an optional file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(config *Config) {
	config.MaxCreditsPerTerm = 18
	config.IncludeCompleted = true
	config.Solver.Name = GophersatSolver
	config.Logging.Level = "info"
}

// loadFromEnv overrides configuration with GRADPLAN_* environment variables
func loadFromEnv(config *Config) error {
	if value, ok := os.LookupEnv("GRADPLAN_MAX_CREDITS"); ok {
		credits, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("GRADPLAN_MAX_CREDITS: %w", err)
		}
		config.MaxCreditsPerTerm = credits
	}
	if value, ok := os.LookupEnv("GRADPLAN_INCLUDE_COMPLETED"); ok {
		include, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("GRADPLAN_INCLUDE_COMPLETED: %w", err)
		}
		config.IncludeCompleted = include
	}
	if value, ok := os.LookupEnv("GRADPLAN_SOLVER"); ok {
		config.Solver.Name = strings.ToLower(value)
	}
	if value, ok := os.LookupEnv("GRADPLAN_SOLVER_PATH"); ok {
		if config.Solver.External == nil {
			config.Solver.External = make(map[string]any)
		}
		config.Solver.External["path"] = value
	}
	if value, ok := os.LookupEnv("GRADPLAN_LOG_LEVEL"); ok {
		config.Logging.Level = strings.ToLower(value)
	}
	return nil
}

func validateConfig(config *Config) error {
	if config.MaxCreditsPerTerm <= 0 {
		return fmt.Errorf("max_credits_per_term must be positive, got %d", config.MaxCreditsPerTerm)
	}

	switch config.Solver.Name {
	case GophersatSolver:
	case ExternalSolver:
		if path, _ := config.Solver.External["path"].(string); path == "" {
			return fmt.Errorf("solver.external.path is required by the external solver")
		}
	default:
		return fmt.Errorf("unknown solver \"%v\"", config.Solver.Name)
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("unknown logging level \"%v\"", config.Logging.Level)
	}
	return nil
}

// NewSolver builds the configured solver
func (c *Config) NewSolver() (sat.SATSolver, error) {
	if c.Solver.Name == ExternalSolver {
		return sat.NewExternalSolverFromConfig(c.Solver.External)
	}
	return sat.NewGophersatSolver(), nil
}
