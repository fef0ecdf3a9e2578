// Package config loads and validates the TOML configuration controlling
// library paths, subtitle indexing behavior, language profiles, provider
// dispatch, and logging.
package config
