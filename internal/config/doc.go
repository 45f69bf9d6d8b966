// Package config loads and merges stripbin configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags (a --variant preset is applied before the other flags)
//  2. Environment variables (STRIPBIN_DIR, STRIPBIN_FILTER_MODE, etc.)
//  3. Built-in defaults
//
// There is no config file. Use [Load] to obtain a merged [Config] and
// [Resolve] to turn it plus positional arguments into redaction options.
package config
