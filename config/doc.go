// Package config loads and validates the YAML-described settings for
// listener, dialer, and socket endpoints, centralizing defaults the way
// the limits package centralizes wire-size constants.
package config
