// Package config loads and validates the TOML configuration used by the
// spool CLI. Load resolves the file location, decodes it over the defaults,
// normalizes paths, and validates the result; CreateSample writes a
// commented starter file.
package config
