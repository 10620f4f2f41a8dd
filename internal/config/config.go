package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// PresetMass is one recurring mass of the weekly template used to populate
// a fresh month
type PresetMass struct {
	RRule       string `yaml:"rrule" validate:"required"`
	Title       string `yaml:"title" validate:"required"`
	ServerCount int    `yaml:"serverCount" validate:"min=1"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL  string       `yaml:"databaseURL" validate:"required"`
	GroupID      string       `yaml:"groupID" validate:"required"`
	Operator     string       `yaml:"operator,omitempty"`
	MinRestDays  int          `yaml:"minRestDays,omitempty" validate:"min=0"`
	WeeklyPreset []PresetMass `yaml:"weeklyPreset,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from altar_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
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

	applyDefaults(&cfg)

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each preset mass
	for i, mass := range cfg.WeeklyPreset {
		if _, err := rrule.StrToRRule(mass.RRule); err != nil {
			return fmt.Errorf("invalid rrule in weeklyPreset[%d]: %w", i, err)
		}
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.MinRestDays == 0 {
		cfg.MinRestDays = 2
	}
	if cfg.Operator == "" {
		cfg.Operator = "admin"
	}
}

// findConfigFile searches for altar_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "altar_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
