// Package environment provides utilities for loading configuration from
// environment variables with support for namespacing and defaults.
package environment

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the given .env files. With no
// paths it loads .env from the working directory. Variables that are already
// set are never overwritten.
//
// Example:
//
//	// Load from .env in current directory
//	if err := LoadEnv(); err != nil {
//	    log.Printf("Warning: .env file not found: %v", err)
//	}
//
//	// Load from specific path
//	LoadEnv("/config/.env.production")
func LoadEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

// GetEnvOrDefault retrieves an environment variable value, returning a fallback
// value if the variable is not set.
func GetEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetNamespaceEnvKey constructs a namespaced environment variable key by
// combining a namespace prefix with the actual key name using an underscore.
// If no namespace is provided, it returns the key unchanged.
//
//	key := GetNamespaceEnvKey("TASKER", "JWT_SIGNING_KEY")
//	// Returns: "TASKER_JWT_SIGNING_KEY"
func GetNamespaceEnvKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", namespace, key)
}

// GetNamespaceEnvOrDefault retrieves a namespaced environment variable value,
// returning a fallback value if the variable is not set.
func GetNamespaceEnvOrDefault(namespace, key, fallback string) string {
	return GetEnvOrDefault(GetNamespaceEnvKey(namespace, key), fallback)
}
