package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/stripbin/internal/redact"
)

// Config represents the stripbin configuration.
type Config struct {
	Dir          string `json:"dir"`
	SecretSource string `json:"secretSource"`
	FilterMode   string `json:"filterMode"`
	Extension    string `json:"extension"`
	SecretEnv    string `json:"secretEnv"`
	Format       string `json:"format"`
	DryRun       bool   `json:"dryRun"`
	Verbose      bool   `json:"verbose"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Dir:          "bin",
		SecretSource: string(redact.SecretFromArg),
		FilterMode:   string(redact.FilterExactStem),
		Extension:    redact.DefaultExtension,
		SecretEnv:    "username",
		Format:       "text",
	}
}

// Variants maps the legacy script variants to their secret source and filter mode.
var Variants = map[string]struct {
	Source redact.SecretSource
	Mode   redact.FilterMode
}{
	"A": {redact.SecretFromArg, redact.FilterExactStem},
	"B": {redact.SecretFromEnv, redact.FilterExtension},
	"C": {redact.SecretFromEnv, redact.FilterExactStem},
}

// Load builds the effective config by merging: defaults <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()
	mergeEnv(&cfg)
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("STRIPBIN_DIR"); v != "" {
		cfg.Dir = v
	}
	if v := os.Getenv("STRIPBIN_SECRET_SOURCE"); v != "" {
		cfg.SecretSource = v
	}
	if v := os.Getenv("STRIPBIN_FILTER_MODE"); v != "" {
		cfg.FilterMode = v
	}
	if v := os.Getenv("STRIPBIN_EXTENSION"); v != "" {
		cfg.Extension = v
	}
	if v := os.Getenv("STRIPBIN_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("STRIPBIN_DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DryRun = b
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	if overrides == nil {
		return nil
	}
	// The variant sets a baseline that explicit flags can still refine.
	if v, ok := overrides["variant"]; ok && v != "" {
		if err := ApplyVariant(cfg, v); err != nil {
			return err
		}
	}
	if v, ok := overrides["dir"]; ok && v != "" {
		cfg.Dir = v
	}
	if v, ok := overrides["secretSource"]; ok && v != "" {
		cfg.SecretSource = v
	}
	if v, ok := overrides["filterMode"]; ok && v != "" {
		cfg.FilterMode = v
	}
	if v, ok := overrides["extension"]; ok && v != "" {
		cfg.Extension = v
	}
	if v, ok := overrides["secretEnv"]; ok && v != "" {
		cfg.SecretEnv = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["dryRun"]; ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DryRun = b
		}
	}
	if v, ok := overrides["verbose"]; ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
	return nil
}

// ApplyVariant sets the secret source and filter mode of a legacy variant (A, B or C).
func ApplyVariant(cfg *Config, name string) error {
	v, ok := Variants[strings.ToUpper(name)]
	if !ok {
		return &redact.ConfigError{Field: "variant", Message: fmt.Sprintf("unknown variant %q (want A, B or C)", name)}
	}
	cfg.SecretSource = string(v.Source)
	cfg.FilterMode = string(v.Mode)
	return nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.Dir == "" {
		return &redact.ConfigError{Field: "dir", Message: "directory must not be empty"}
	}
	src, err := redact.ParseSecretSource(c.SecretSource)
	if err != nil {
		return err
	}
	if src == redact.SecretFromEnv && c.SecretEnv == "" {
		return &redact.ConfigError{Field: "secret-env", Message: "environment variable name must not be empty"}
	}
	switch redact.FilterMode(c.FilterMode) {
	case redact.FilterExactStem, redact.FilterExtension:
	default:
		return &redact.ConfigError{Field: "filter", Message: fmt.Sprintf("unknown filter mode %q", c.FilterMode)}
	}
	switch c.Format {
	case "text", "json", "markdown":
	default:
		return &redact.ConfigError{Field: "format", Message: fmt.Sprintf("unsupported output format %q", c.Format)}
	}
	return nil
}

// Resolve maps positional arguments and the secret environment variable onto
// redaction options. In exact_stem mode the first argument is the stem; with
// the arg secret source the next argument is the secret. getenv is usually
// os.Getenv.
func Resolve(cfg Config, args []string, getenv func(string) string) (redact.Options, error) {
	src, err := redact.ParseSecretSource(cfg.SecretSource)
	if err != nil {
		return redact.Options{}, err
	}

	rest := args
	mode := redact.FilterMode(cfg.FilterMode)
	filterValue := cfg.Extension
	if mode == redact.FilterExactStem {
		if len(rest) == 0 {
			return redact.Options{}, &redact.ConfigError{Field: "stem", Message: "missing target file stem (argument 1)"}
		}
		filterValue, rest = rest[0], rest[1:]
	}
	filter, err := redact.NewFilter(mode, filterValue)
	if err != nil {
		return redact.Options{}, err
	}

	var secret string
	switch src {
	case redact.SecretFromArg:
		if len(rest) == 0 {
			return redact.Options{}, &redact.ConfigError{Field: "secret", Message: "missing username argument"}
		}
		secret, rest = rest[0], rest[1:]
	case redact.SecretFromEnv:
		secret = getenv(cfg.SecretEnv)
		if secret == "" {
			return redact.Options{}, &redact.ConfigError{Field: cfg.SecretEnv, Message: "environment variable is not set"}
		}
	}
	if secret == "" {
		return redact.Options{}, &redact.ConfigError{Field: "secret", Message: "username must not be empty"}
	}

	if len(rest) > 0 {
		return redact.Options{}, &redact.ConfigError{Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(rest, " "))}
	}

	return redact.Options{
		Dir:    cfg.Dir,
		Secret: secret,
		Filter: filter,
		DryRun: cfg.DryRun,
	}, nil
}
