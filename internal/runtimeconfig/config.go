package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var ErrModuleVariantBlank = errors.New("sections config: enabled module variants must not be blank")
var ErrSchemasRequireValidation = errors.New("sections config: module schemas require the payload validation feature")
var ErrCacheTTLInvalid = errors.New("sections config: cache ttl must be zero or positive")

// ErrURLKitGroupRequired indicates route groups were configured without naming the group to resolve from.
var ErrURLKitGroupRequired = errors.New("sections config: routes group is required when route groups are configured")
var ErrURLKitGroupUnknown = errors.New("sections config: routes group is not configured")
var ErrImageQualityInvalid = errors.New("sections config: image quality must be between 0 and 100")
var ErrMarkdownFeatureRequired = errors.New("sections config: markdown feature must be enabled to configure markdown")
var ErrLoggingProviderRequired = errors.New("sections config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("sections config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sections config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sections config: logging format is invalid")

// Config aggregates feature flags and collaborator settings for section
// rendering. Tags follow the keys used in CLI config files.
type Config struct {
	Modules  ModulesConfig  `mapstructure:"modules"`
	Routes   RoutesConfig   `mapstructure:"routes"`
	Images   ImagesConfig   `mapstructure:"images"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Features Features       `mapstructure:"features"`
}

// ModulesConfig controls which section variants the resolver serves.
type ModulesConfig struct {
	// Enabled restricts the resolver to the listed variants. Empty enables all.
	Enabled []string `mapstructure:"enabled"`
	// Schemas maps a variant to a JSON schema (or fields shorthand) checked
	// before rendering.
	Schemas map[string]map[string]any `mapstructure:"schemas"`
}

// RoutesConfig provides the static route lookup used by link marks.
type RoutesConfig struct {
	// Static maps a route type to its path segment. "" is the site root.
	Static map[string]string `mapstructure:"static"`
	// Groups describes go-urlkit route groups consulted after Static.
	Groups []RouteGroupConfig `mapstructure:"groups"`
	// Group is the dotted group path used for lookups, e.g. "frontend.en".
	Group string `mapstructure:"group"`
}

// RouteGroupConfig mirrors urlkit.GroupConfig with config file tags.
type RouteGroupConfig struct {
	Name    string             `mapstructure:"name"`
	BaseURL string             `mapstructure:"base_url"`
	Paths   map[string]string  `mapstructure:"paths"`
	Groups  []RouteGroupConfig `mapstructure:"groups"`
}

// ImagesConfig configures the query based image URL builder.
type ImagesConfig struct {
	Quality int    `mapstructure:"quality"`
	Auto    string `mapstructure:"auto"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for text block bodies.
type MarkdownConfig struct {
	Extensions []string `mapstructure:"extensions"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
	SafeMode   bool     `mapstructure:"safe_mode"`
}

// CacheConfig captures fragment cache behaviour.
type CacheConfig struct {
	DefaultTTL time.Duration `mapstructure:"default_ttl"`
}

// Features toggles optional behaviour.
type Features struct {
	Markdown          bool `mapstructure:"markdown"`
	PayloadValidation bool `mapstructure:"payload_validation"`
	Cache             bool `mapstructure:"cache"`
	Logger            bool `mapstructure:"logger"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns the defaults used by the CLI and the facade.
func DefaultConfig() Config {
	return Config{
		Modules: ModulesConfig{
			Schemas: map[string]map[string]any{},
		},
		Routes: RoutesConfig{
			Static: map[string]string{},
		},
		Images: ImagesConfig{
			Auto: "format",
		},
		Markdown: MarkdownConfig{
			SafeMode: true,
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	for _, variant := range cfg.Modules.Enabled {
		if strings.TrimSpace(variant) == "" {
			return ErrModuleVariantBlank
		}
	}
	if len(cfg.Modules.Schemas) > 0 && !cfg.Features.PayloadValidation {
		return ErrSchemasRequireValidation
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Images.Quality < 0 || cfg.Images.Quality > 100 {
		return fmt.Errorf("%w: %d", ErrImageQualityInvalid, cfg.Images.Quality)
	}
	if len(cfg.Markdown.Extensions) > 0 && !cfg.Features.Markdown {
		return ErrMarkdownFeatureRequired
	}
	if len(cfg.Routes.Groups) > 0 {
		group := strings.TrimSpace(cfg.Routes.Group)
		if group == "" {
			return ErrURLKitGroupRequired
		}
		if !hasGroupPath(cfg.Routes.Groups, strings.Split(group, ".")) {
			return fmt.Errorf("%w: %s", ErrURLKitGroupUnknown, group)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// VariantEnabled reports whether the resolver should serve variant.
func (cfg Config) VariantEnabled(variant string) bool {
	if len(cfg.Modules.Enabled) == 0 {
		return true
	}
	for _, enabled := range cfg.Modules.Enabled {
		if strings.TrimSpace(enabled) == variant {
			return true
		}
	}
	return false
}

// URLKitConfig converts the configured route groups for urlkit.NewRouteManager.
// It returns nil when no groups are configured.
func (cfg RoutesConfig) URLKitConfig() *urlkit.Config {
	if len(cfg.Groups) == 0 {
		return nil
	}
	return &urlkit.Config{Groups: convertGroups(cfg.Groups)}
}

func convertGroups(groups []RouteGroupConfig) []urlkit.GroupConfig {
	if len(groups) == 0 {
		return nil
	}
	out := make([]urlkit.GroupConfig, 0, len(groups))
	for _, group := range groups {
		paths := make(map[string]string, len(group.Paths))
		for route, path := range group.Paths {
			paths[route] = path
		}
		out = append(out, urlkit.GroupConfig{
			Name:    group.Name,
			BaseURL: group.BaseURL,
			Paths:   paths,
			Groups:  convertGroups(group.Groups),
		})
	}
	return out
}

func hasGroupPath(groups []RouteGroupConfig, path []string) bool {
	if len(path) == 0 {
		return true
	}
	for _, group := range groups {
		if strings.TrimSpace(group.Name) == strings.TrimSpace(path[0]) {
			return hasGroupPath(group.Groups, path[1:])
		}
	}
	return false
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
