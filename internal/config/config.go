package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level fluxo.yaml configuration.
type Config struct {
	Business   BusinessConfig   `yaml:"business"`
	Storage    StorageConfig    `yaml:"storage"`
	Projection ProjectionConfig `yaml:"projection"`
	AI         AIConfig         `yaml:"ai"`
	Cache      CacheConfig      `yaml:"cache"`
}

// BusinessConfig identifies the business entity the data belongs to.
type BusinessConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// StorageConfig locates the persisted state document.
type StorageConfig struct {
	StatePath string `yaml:"state_path"`
}

// ProjectionConfig holds defaults used when a command does not override them.
type ProjectionConfig struct {
	Method string `yaml:"method"`
	Months int    `yaml:"months"`
}

// AIConfig controls the assistant integration.
type AIConfig struct {
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CacheConfig tunes report memoization. A zero TTL disables caching.
type CacheConfig struct {
	KPISeconds int `yaml:"kpi_seconds"`
}

// Load reads a fluxo.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:     businessName,
			Currency: "BRL",
		},
		Storage: StorageConfig{
			StatePath: "fluxo-state.json",
		},
		Projection: ProjectionConfig{
			Method: "average",
			Months: 6,
		},
		AI: AIConfig{
			Model:          "gemini-2.0-flash",
			TimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			KPISeconds: 10,
		},
	}
}
