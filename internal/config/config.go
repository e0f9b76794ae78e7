// Package config provides configuration management for the ontology-hub service.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the ontology-hub service.
type Config struct {
	// Server settings
	Port string

	// Database settings
	DatabaseURL    string
	MigrationsPath string

	// Temporal settings
	TemporalAddress   string
	TemporalNamespace string
	TemporalTaskQueue string

	// Auth settings
	JWKSUrl      string
	AuthIssuer   string
	AuthAudience string
	AuthDebug    bool

	// Validation settings
	DatatypesPath string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port: getEnv("ONTOLOGY_HUB_PORT", "4020"),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("ONTOLOGY_MIGRATIONS_PATH", "./migrations"),

		TemporalAddress:   getEnv("TEMPORAL_ADDRESS", "localhost:7233"),
		TemporalNamespace: getEnv("TEMPORAL_NAMESPACE", "default"),
		TemporalTaskQueue: getEnv("TEMPORAL_TASK_QUEUE", "ontology"),

		JWKSUrl:      getEnv("AUTH_JWKS_URL", ""),
		AuthIssuer:   getEnv("AUTH_ISSUER", ""),
		AuthAudience: getEnv("AUTH_AUDIENCE", ""),
		AuthDebug:    getEnvBool("ONTOLOGY_AUTH_DEBUG", false),

		DatatypesPath: getEnv("ONTOLOGY_DATATYPES_PATH", ""),
	}
}

// Datatypes returns the allowed property datatype vocabulary override.
// When a YAML file is configured it replaces the built-in set wholesale;
// otherwise nil is returned and the caller keeps its default.
func (c *Config) Datatypes() ([]string, error) {
	if c.DatatypesPath == "" {
		return nil, nil
	}

	b, err := os.ReadFile(c.DatatypesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read datatype vocabulary: %w", err)
	}

	var doc struct {
		Datatypes []string `yaml:"datatypes"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse datatype vocabulary: %w", err)
	}
	if len(doc.Datatypes) == 0 {
		return nil, fmt.Errorf("datatype vocabulary %s lists no datatypes", c.DatatypesPath)
	}
	return doc.Datatypes, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
