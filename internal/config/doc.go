// Package config loads, normalizes, and validates crate configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the CRATE_DATA_DIR environment
// fallback. The Config type carries the data and log locations, the matching
// thresholds each call site uses, and the default view preferences.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
