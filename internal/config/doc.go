// Package config loads, normalizes, and validates the TOML configuration.
package config
