// Package templates contains the sample files written by the init command.
package templates

import (
	_ "embed"
)

// ConfigYAML is the commented sample config.yaml.
//
//go:embed config.template
var ConfigYAML []byte

// EnvFile is the sample .env with the supported overrides.
//
//go:embed env.template
var EnvFile []byte
