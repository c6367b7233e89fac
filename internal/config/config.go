package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// StoreClosure defines a recurring store holiday as a recurrence rule.
// Occurrences falling inside a target week are expanded into concrete
// holidays before generation. Partial closures reach the calendar but do
// not close the store.
type StoreClosure struct {
	Name    string `yaml:"name,omitempty"`
	RRule   string `yaml:"rrule" validate:"required"`
	Partial bool   `yaml:"partial,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string         `yaml:"databaseURL" validate:"required"`
	EstablishmentID string         `yaml:"establishmentID" validate:"required"`
	StoreClosures   []StoreClosure `yaml:"storeClosures,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from storeshift_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for a specific environment
// (storeshift_config.<env>.yaml); an empty env falls back to the plain file name.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(configFileName(env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each closure
	for i, closure := range cfg.StoreClosures {
		if _, err := rrule.StrToRRule(closure.RRule); err != nil {
			return fmt.Errorf("invalid rrule in storeClosures[%d]: %w", i, err)
		}
	}

	return nil
}

func configFileName(env string) string {
	if env == "" {
		return "storeshift_config.yaml"
	}
	return fmt.Sprintf("storeshift_config.%s.yaml", env)
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(name string) (string, error) {
	// Check current directory
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", name)
}
