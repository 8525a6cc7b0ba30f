// Package config handles configuration management for wflink.
// It layers embedded defaults, an optional TOML file, WFLINK_ environment
// variables and command-line overrides, in that order.
package config
