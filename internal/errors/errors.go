// Package apperrors provides domain-specific error types for the container check.
// These error types carry enough context to tell configuration problems apart
// from daemon connectivity problems when deciding the check outcome.
package apperrors

import "fmt"

// ConfigurationError represents configuration-related errors.
// It includes the configuration source and specific key that caused the error.
type ConfigurationError struct {
	ConfigPath string // Path to the configuration file, or a description of the source
	Key        string // Configuration key that caused the error
	Err        error  // Underlying error
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error in %s (key: %s): %v", e.ConfigPath, e.Key, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.ConfigPath, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DockerConnectionError represents a failure to reach the Docker daemon.
// It includes the daemon host and the operation that failed.
type DockerConnectionError struct {
	Host      string // Docker host (e.g., unix:///var/run/docker.sock)
	Operation string // Operation that failed (e.g., "NewClient", "ListContainers")
	Err       error  // Underlying error
}

// Error implements the error interface for DockerConnectionError.
func (e *DockerConnectionError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("docker %s failed (host: %s): %v", e.Operation, e.Host, e.Err)
	}
	return fmt.Sprintf("docker %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *DockerConnectionError) Unwrap() error {
	return e.Err
}
