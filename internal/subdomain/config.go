package subdomain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultHeaderName = "X-Original-Host"
	DefaultRootHost   = "example.org"
	DefaultPathMarker = "i"
)

var (
	ErrEmptyMarker     = errors.New("path marker must not be empty")
	ErrInvalidMarker   = errors.New("path marker must be a single path segment")
	ErrEmptyRootHost   = errors.New("root host must not be empty")
	ErrEmptyHeaderName = errors.New("header name must not be empty")
)

type Config struct {
	HeaderName    string `mapstructure:"header_name"`
	RootHost      string `mapstructure:"root_host"`
	PathMarker    string `mapstructure:"path_marker"`
	PathEnabled   bool   `mapstructure:"path_enabled"`
	HeaderEnabled bool   `mapstructure:"header_enabled"`
}

func DefaultConfig() Config {
	return Config{
		HeaderName:    DefaultHeaderName,
		RootHost:      DefaultRootHost,
		PathMarker:    DefaultPathMarker,
		PathEnabled:   true,
		HeaderEnabled: true,
	}
}

// Validate reports configuration that would make resolution ambiguous.
// Checks only apply to the strategies that are enabled.
func (c Config) Validate() error {
	if c.PathEnabled {
		if c.PathMarker == "" {
			return ErrEmptyMarker
		}
		if strings.ContainsAny(c.PathMarker, "/?#") {
			return fmt.Errorf("%w: %q", ErrInvalidMarker, c.PathMarker)
		}
	}
	if c.HeaderEnabled {
		if strings.TrimSpace(c.HeaderName) == "" {
			return ErrEmptyHeaderName
		}
		if normalizeHost(c.RootHost) == "" {
			return ErrEmptyRootHost
		}
	}
	return nil
}
