package di

import (
	"fmt"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"

	rendercmd "github.com/goliatone/go-sections/internal/commands/render"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/logging/gologger"
	"github.com/goliatone/go-sections/internal/markdown"
	"github.com/goliatone/go-sections/internal/media"
	"github.com/goliatone/go-sections/internal/modules"
	"github.com/goliatone/go-sections/internal/richtext"
	"github.com/goliatone/go-sections/internal/routes"
	"github.com/goliatone/go-sections/internal/runtimeconfig"
	"github.com/goliatone/go-sections/internal/serializers"
	"github.com/goliatone/go-sections/internal/validation"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Container wires the renderers and their collaborators from a Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	cache          repocache.CacheService
	staticRoutes   interfaces.StaticRoutes
	imageURLs      interfaces.ImageURLBuilder
	markdown       interfaces.MarkdownParser
	routeManager   *urlkit.RouteManager

	extraLoaders map[string]modules.Loader
	serializers  []richtext.Serializers

	richText  *richtext.Renderer
	validator *validation.Validator
	registry  *modules.Registry
	resolver  *modules.Resolver
	handlers  *rendercmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCache supplies the fragment cache service used when the cache feature
// is on. Its own config sets the TTL; Cache.DefaultTTL only applies to the
// service built by default.
func WithCache(service repocache.CacheService) Option {
	return func(c *Container) {
		c.cache = service
	}
}

// WithStaticRoutes supplies a route lookup consulted before configured routes.
func WithStaticRoutes(lookup interfaces.StaticRoutes) Option {
	return func(c *Container) {
		c.staticRoutes = lookup
	}
}

// WithRouteManager supplies a go-urlkit manager instead of building one from
// the routes config. Routes.Group selects the group to read.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithImageURLBuilder overrides the image URL builder used by figures.
func WithImageURLBuilder(builder interfaces.ImageURLBuilder) Option {
	return func(c *Container) {
		c.imageURLs = builder
	}
}

// WithMarkdownParser overrides the goldmark parser used for text blocks.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.markdown = parser
	}
}

// WithComponent registers an additional variant, or replaces a built-in one.
func WithComponent(variant string, loader modules.Loader) Option {
	return func(c *Container) {
		if c.extraLoaders == nil {
			c.extraLoaders = map[string]modules.Loader{}
		}
		c.extraLoaders[variant] = loader
	}
}

// WithSerializers layers rich text serializers over the site serializers.
func WithSerializers(overrides richtext.Serializers) Option {
	return func(c *Container) {
		c.serializers = append(c.serializers, overrides)
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureRoutes()
	c.configureRichText()
	c.configureMarkdown()
	if err := c.configureValidator(); err != nil {
		return nil, err
	}
	if err := c.configureResolver(); err != nil {
		return nil, err
	}

	handlers, err := rendercmd.NewHandlerSet(c.resolver, c.loggerProvider)
	if err != nil {
		return nil, err
	}
	c.handlers = handlers
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	if strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) != "gologger" {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: logger provider: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

// configureRoutes chains the supplied lookup, the static table and the
// urlkit group, in that order.
func (c *Container) configureRoutes() {
	chain := routes.Chain{}
	if c.staticRoutes != nil {
		chain = append(chain, c.staticRoutes)
	}
	if len(c.Config.Routes.Static) > 0 {
		chain = append(chain, routes.NewTable(c.Config.Routes.Static))
	}
	if c.routeManager == nil {
		if routeConfig := c.Config.Routes.URLKitConfig(); routeConfig != nil {
			c.routeManager = urlkit.NewRouteManager(routeConfig)
		}
	}
	if c.routeManager != nil && strings.TrimSpace(c.Config.Routes.Group) != "" {
		chain = append(chain, routes.NewURLKitRoutes(c.routeManager, c.Config.Routes.Group))
	}
	c.staticRoutes = chain
}

func (c *Container) configureRichText() {
	if c.imageURLs == nil {
		c.imageURLs = media.QueryURLBuilder{
			Quality: c.Config.Images.Quality,
			Auto:    c.Config.Images.Auto,
		}
	}
	site := serializers.New(
		serializers.WithRoutes(c.staticRoutes),
		serializers.WithPhotoRenderer(media.NewPhotoRenderer(c.imageURLs)),
		serializers.WithLogger(logging.RoutesLogger(c.loggerProvider)),
	)
	opts := []richtext.RendererOption{
		richtext.WithSerializers(site),
		richtext.WithLogger(logging.RichTextLogger(c.loggerProvider)),
	}
	for _, overrides := range c.serializers {
		opts = append(opts, richtext.WithSerializers(overrides))
	}
	c.richText = richtext.NewRenderer(opts...)
}

func (c *Container) configureMarkdown() {
	if !c.Config.Features.Markdown {
		c.markdown = nil
		return
	}
	if c.markdown == nil {
		c.markdown = markdown.NewGoldmarkParser(interfaces.ParseOptions{
			Extensions: c.Config.Markdown.Extensions,
			HardWraps:  c.Config.Markdown.HardWraps,
			SafeMode:   c.Config.Markdown.SafeMode,
		})
	}
}

func (c *Container) configureValidator() error {
	if !c.Config.Features.PayloadValidation {
		return nil
	}
	validator := validation.NewValidator()
	for variant, schema := range c.Config.Modules.Schemas {
		if err := validator.Register(variant, schema); err != nil {
			return fmt.Errorf("di: module schema: %w", err)
		}
	}
	c.validator = validator
	return nil
}

func (c *Container) configureResolver() error {
	logger := logging.ModulesLogger(c.loggerProvider)
	deps := modules.Dependencies{
		RichText: c.richText,
		Markdown: c.markdown,
		Logger:   logger,
	}

	enabled := func(variant string) bool {
		_, overridden := c.extraLoaders[variant]
		return !overridden && c.Config.VariantEnabled(variant)
	}
	registry := modules.NewDefaultRegistry(deps, enabled)
	for variant, loader := range c.extraLoaders {
		if !c.Config.VariantEnabled(variant) {
			continue
		}
		if err := registry.Register(variant, loader); err != nil {
			return fmt.Errorf("di: register %s: %w", variant, err)
		}
	}
	c.registry = registry

	opts := []modules.ResolverOption{modules.WithLogger(logger)}
	if c.validator != nil {
		opts = append(opts, modules.WithValidator(c.validator))
	}
	if c.Config.Features.Cache {
		if c.cache == nil {
			cfg := repocache.DefaultConfig()
			if c.Config.Cache.DefaultTTL > 0 {
				cfg.TTL = c.Config.Cache.DefaultTTL
			}
			service, err := repocache.NewCacheService(cfg)
			if err != nil {
				return fmt.Errorf("di: cache service: %w", err)
			}
			c.cache = service
		}
		opts = append(opts, modules.WithCache(c.cache))
	} else {
		c.cache = nil
	}
	c.resolver = modules.NewResolver(registry, opts...)
	return nil
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// StaticRoutes returns the chained static route lookup.
func (c *Container) StaticRoutes() interfaces.StaticRoutes { return c.staticRoutes }

// RichText returns the rich text renderer with the site serializers.
func (c *Container) RichText() *richtext.Renderer { return c.richText }

// Registry returns the component registry.
func (c *Container) Registry() *modules.Registry { return c.registry }

// Resolver returns the module resolver.
func (c *Container) Resolver() *modules.Resolver { return c.resolver }

// Commands returns the render command handlers.
func (c *Container) Commands() *rendercmd.HandlerSet { return c.handlers }

// Cache returns the fragment cache service, nil when the cache feature is off.
func (c *Container) Cache() repocache.CacheService { return c.cache }
