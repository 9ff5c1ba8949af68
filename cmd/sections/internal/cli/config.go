package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	sections "github.com/goliatone/go-sections"
)

const envPrefix = "SECTIONS"

// loadConfig reads the optional config file and SECTIONS_* environment
// overrides on top of the module defaults. A missing default config file is
// not an error; a missing explicit one is.
func loadConfig(path string) (sections.Config, string, error) {
	cfg := sections.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Format = "console"
	cfg.Logging.Level = "warn"

	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("sections")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return cfg, "", fmt.Errorf("read config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, used, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, used, err
	}
	return cfg, used, nil
}

// setDefaults registers the scalar keys so AutomaticEnv can override them.
func setDefaults(v *viper.Viper, cfg sections.Config) {
	v.SetDefault("routes.group", cfg.Routes.Group)
	v.SetDefault("images.quality", cfg.Images.Quality)
	v.SetDefault("images.auto", cfg.Images.Auto)
	v.SetDefault("markdown.hard_wraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.safe_mode", cfg.Markdown.SafeMode)
	v.SetDefault("cache.default_ttl", cfg.Cache.DefaultTTL)
	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("features.markdown", cfg.Features.Markdown)
	v.SetDefault("features.payload_validation", cfg.Features.PayloadValidation)
	v.SetDefault("features.cache", cfg.Features.Cache)
	v.SetDefault("features.logger", cfg.Features.Logger)
}
