package sections

import "github.com/goliatone/go-sections/internal/runtimeconfig"

var (
	ErrModuleVariantBlank       = runtimeconfig.ErrModuleVariantBlank
	ErrSchemasRequireValidation = runtimeconfig.ErrSchemasRequireValidation
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrURLKitGroupRequired      = runtimeconfig.ErrURLKitGroupRequired
	ErrURLKitGroupUnknown       = runtimeconfig.ErrURLKitGroupUnknown
	ErrImageQualityInvalid      = runtimeconfig.ErrImageQualityInvalid
	ErrMarkdownFeatureRequired  = runtimeconfig.ErrMarkdownFeatureRequired
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	ModulesConfig    = runtimeconfig.ModulesConfig
	RoutesConfig     = runtimeconfig.RoutesConfig
	RouteGroupConfig = runtimeconfig.RouteGroupConfig
	ImagesConfig     = runtimeconfig.ImagesConfig
	MarkdownConfig   = runtimeconfig.MarkdownConfig
	CacheConfig      = runtimeconfig.CacheConfig
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
