package redact

import (
	"fmt"
	"strings"
)

// FilterMode selects how file names are matched.
type FilterMode string

const (
	FilterExactStem FilterMode = "exact_stem"
	FilterExtension FilterMode = "extension"
)

// SecretSource selects where the secret comes from.
type SecretSource string

const (
	SecretFromArg SecretSource = "arg"
	SecretFromEnv SecretSource = "env"
)

// DefaultExtension is matched in extension mode when no suffix is given.
const DefaultExtension = ".exe"

// Filter decides whether a file name is subject to redaction.
type Filter interface {
	Match(name string) bool
	fmt.Stringer
}

// StemFilter matches names whose part before the first '.' equals Stem.
type StemFilter struct {
	Stem string
}

func (f StemFilter) Match(name string) bool {
	return Stem(name) == f.Stem
}

func (f StemFilter) String() string {
	return "stem=" + f.Stem
}

// ExtensionFilter matches names ending with Ext.
type ExtensionFilter struct {
	Ext string
}

func (f ExtensionFilter) Match(name string) bool {
	return strings.HasSuffix(name, f.Ext)
}

func (f ExtensionFilter) String() string {
	return "ext=" + f.Ext
}

// Stem returns the portion of name preceding its first '.'.
func Stem(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// NewFilter builds the filter for mode. In extension mode an empty value
// falls back to [DefaultExtension].
func NewFilter(mode FilterMode, value string) (Filter, error) {
	switch mode {
	case FilterExactStem:
		if value == "" {
			return nil, &ConfigError{Field: "stem", Message: "target file stem is required"}
		}
		return StemFilter{Stem: value}, nil
	case FilterExtension:
		if value == "" {
			value = DefaultExtension
		}
		return ExtensionFilter{Ext: value}, nil
	default:
		return nil, &ConfigError{Field: "filter", Message: fmt.Sprintf("unknown filter mode %q (want %s or %s)", mode, FilterExactStem, FilterExtension)}
	}
}

// ParseSecretSource validates a secret source name.
func ParseSecretSource(s string) (SecretSource, error) {
	switch SecretSource(s) {
	case SecretFromArg, SecretFromEnv:
		return SecretSource(s), nil
	default:
		return "", &ConfigError{Field: "secret-source", Message: fmt.Sprintf("unknown secret source %q (want %s or %s)", s, SecretFromArg, SecretFromEnv)}
	}
}
