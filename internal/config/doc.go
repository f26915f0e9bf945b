// Package config loads, validates, and normalizes the TOML configuration
// that drives the pull list store, the AirDC++ client, and notifications.
package config
