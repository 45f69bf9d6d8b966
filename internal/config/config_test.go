package config

import (
	"testing"

	"github.com/dshills/stripbin/internal/redact"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Dir != "bin" {
		t.Errorf("Default dir = %q, want %q", cfg.Dir, "bin")
	}
	if cfg.SecretSource != "arg" {
		t.Errorf("Default secretSource = %q, want %q", cfg.SecretSource, "arg")
	}
	if cfg.FilterMode != "exact_stem" {
		t.Errorf("Default filterMode = %q, want %q", cfg.FilterMode, "exact_stem")
	}
	if cfg.Extension != ".exe" {
		t.Errorf("Default extension = %q, want %q", cfg.Extension, ".exe")
	}
	if cfg.SecretEnv != "username" {
		t.Errorf("Default secretEnv = %q, want %q", cfg.SecretEnv, "username")
	}
	if cfg.DryRun {
		t.Error("Default dryRun should be false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestMergeEnv(t *testing.T) {
	t.Setenv("STRIPBIN_DIR", "out")
	t.Setenv("STRIPBIN_SECRET_SOURCE", "env")
	t.Setenv("STRIPBIN_FILTER_MODE", "extension")
	t.Setenv("STRIPBIN_EXTENSION", ".dll")
	t.Setenv("STRIPBIN_FORMAT", "json")
	t.Setenv("STRIPBIN_DRY_RUN", "true")

	cfg := Default()
	mergeEnv(&cfg)

	if cfg.Dir != "out" {
		t.Errorf("Dir = %q, want %q", cfg.Dir, "out")
	}
	if cfg.SecretSource != "env" {
		t.Errorf("SecretSource = %q, want %q", cfg.SecretSource, "env")
	}
	if cfg.FilterMode != "extension" {
		t.Errorf("FilterMode = %q, want %q", cfg.FilterMode, "extension")
	}
	if cfg.Extension != ".dll" {
		t.Errorf("Extension = %q, want %q", cfg.Extension, ".dll")
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	if !cfg.DryRun {
		t.Error("DryRun should be true")
	}
}

func TestMergeEnv_InvalidBoolIgnored(t *testing.T) {
	t.Setenv("STRIPBIN_DRY_RUN", "maybe")
	cfg := Default()
	mergeEnv(&cfg)
	if cfg.DryRun {
		t.Error("DryRun should stay false for an unparsable value")
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	overrides := map[string]string{
		"dir":          "dist",
		"secretSource": "env",
		"filterMode":   "extension",
		"extension":    ".so",
		"secretEnv":    "BUILD_USER",
		"format":       "json",
		"dryRun":       "true",
		"verbose":      "true",
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		t.Fatalf("mergeOverrides error: %v", err)
	}

	want := Config{
		Dir:          "dist",
		SecretSource: "env",
		FilterMode:   "extension",
		Extension:    ".so",
		SecretEnv:    "BUILD_USER",
		Format:       "json",
		DryRun:       true,
		Verbose:      true,
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestMergeOverrides_Nil(t *testing.T) {
	cfg := Default()
	if err := mergeOverrides(&cfg, nil); err != nil {
		t.Fatalf("mergeOverrides error: %v", err)
	}
	if cfg != Default() {
		t.Error("Config changed with nil overrides")
	}
}

func TestMergeOverrides_VariantThenFlags(t *testing.T) {
	cfg := Default()
	err := mergeOverrides(&cfg, map[string]string{
		"variant":   "b",
		"extension": ".bin",
	})
	if err != nil {
		t.Fatalf("mergeOverrides error: %v", err)
	}
	if cfg.SecretSource != "env" || cfg.FilterMode != "extension" {
		t.Errorf("variant B not applied: %+v", cfg)
	}
	if cfg.Extension != ".bin" {
		t.Errorf("Extension = %q, want %q", cfg.Extension, ".bin")
	}

	cfg = Default()
	err = mergeOverrides(&cfg, map[string]string{"variant": "C", "secretSource": "arg"})
	if err != nil {
		t.Fatalf("mergeOverrides error: %v", err)
	}
	if cfg.SecretSource != "arg" || cfg.FilterMode != "exact_stem" {
		t.Errorf("explicit flag should refine variant: %+v", cfg)
	}
}

func TestApplyVariant_Unknown(t *testing.T) {
	cfg := Default()
	err := ApplyVariant(&cfg, "D")
	if !redact.IsConfigError(err) {
		t.Errorf("ApplyVariant(D) = %v, want ConfigError", err)
	}
}

func TestConfigPrecedence(t *testing.T) {
	t.Setenv("STRIPBIN_DIR", "from-env")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Dir != "from-env" {
		t.Errorf("After env merge, Dir = %q, want %q", cfg.Dir, "from-env")
	}

	cfg, err = Load(map[string]string{"dir": "from-flag"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Dir != "from-flag" {
		t.Errorf("After override, Dir = %q, want %q", cfg.Dir, "from-flag")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dir", func(c *Config) { c.Dir = "" }},
		{"bad source", func(c *Config) { c.SecretSource = "file" }},
		{"bad filter", func(c *Config) { c.FilterMode = "glob" }},
		{"bad format", func(c *Config) { c.Format = "xml" }},
		{"env without name", func(c *Config) { c.SecretSource = "env"; c.SecretEnv = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !redact.IsConfigError(err) {
				t.Errorf("Validate() = %v, want ConfigError", err)
			}
		})
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	if _, err := Load(map[string]string{"format": "yaml"}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestResolve_Variants(t *testing.T) {
	noEnv := env(nil)
	withUser := env(map[string]string{"username": "alice"})

	tests := []struct {
		name       string
		variant    string
		args       []string
		getenv     func(string) string
		wantSecret string
		wantFilter redact.Filter
	}{
		{"A: stem and secret from args", "A", []string{"backup", "alice"}, noEnv, "alice", redact.StemFilter{Stem: "backup"}},
		{"B: extension and env secret", "B", nil, withUser, "alice", redact.ExtensionFilter{Ext: ".exe"}},
		{"C: stem arg and env secret", "C", []string{"backup"}, withUser, "alice", redact.StemFilter{Stem: "backup"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := ApplyVariant(&cfg, tt.variant); err != nil {
				t.Fatalf("ApplyVariant error: %v", err)
			}
			opts, err := Resolve(cfg, tt.args, tt.getenv)
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if opts.Secret != tt.wantSecret {
				t.Errorf("Secret = %q, want %q", opts.Secret, tt.wantSecret)
			}
			if opts.Filter != tt.wantFilter {
				t.Errorf("Filter = %v, want %v", opts.Filter, tt.wantFilter)
			}
			if opts.Dir != "bin" {
				t.Errorf("Dir = %q, want %q", opts.Dir, "bin")
			}
		})
	}
}

func TestResolve_ExtensionWithArgSecret(t *testing.T) {
	cfg := Default()
	cfg.FilterMode = "extension"
	opts, err := Resolve(cfg, []string{"alice"}, env(nil))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if opts.Secret != "alice" {
		t.Errorf("Secret = %q, want %q", opts.Secret, "alice")
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		args    []string
		getenv  func(string) string
	}{
		{"A missing stem", "A", nil, env(nil)},
		{"A missing secret", "A", []string{"backup"}, env(nil)},
		{"A empty secret", "A", []string{"backup", ""}, env(nil)},
		{"A surplus args", "A", []string{"backup", "alice", "extra"}, env(nil)},
		{"B env unset", "B", nil, env(nil)},
		{"B surplus args", "B", []string{"backup"}, env(map[string]string{"username": "alice"})},
		{"C missing stem", "C", nil, env(map[string]string{"username": "alice"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := ApplyVariant(&cfg, tt.variant); err != nil {
				t.Fatalf("ApplyVariant error: %v", err)
			}
			_, err := Resolve(cfg, tt.args, tt.getenv)
			if !redact.IsConfigError(err) {
				t.Errorf("Resolve() = %v, want ConfigError", err)
			}
		})
	}
}

func TestResolve_CustomSecretEnv(t *testing.T) {
	cfg := Default()
	cfg.SecretSource = "env"
	cfg.FilterMode = "extension"
	cfg.SecretEnv = "BUILD_USER"
	opts, err := Resolve(cfg, nil, env(map[string]string{"BUILD_USER": "bob", "username": "alice"}))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if opts.Secret != "bob" {
		t.Errorf("Secret = %q, want %q", opts.Secret, "bob")
	}
}
