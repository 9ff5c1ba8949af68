package modules

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/validation"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// CacheKeyPrefix prefixes every fragment cache key written by the Resolver.
const CacheKeyPrefix = "sections:module:"

// Resolver renders modules through the components of a Registry.
type Resolver struct {
	registry  *Registry
	validator *validation.Validator
	cache     repocache.CacheService
	logger    interfaces.Logger
}

// ResolverOption configures the resolver instance.
type ResolverOption func(*Resolver)

// WithValidator checks payloads against per-variant schemas before rendering.
func WithValidator(validator *validation.Validator) ResolverOption {
	return func(r *Resolver) {
		r.validator = validator
	}
}

// WithCache stores rendered fragments in service. The service config owns
// the TTL.
func WithCache(service repocache.CacheService) ResolverOption {
	return func(r *Resolver) {
		r.cache = service
	}
}

// WithLogger overrides the resolver logger.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a resolver over registry.
func NewResolver(registry *Registry, opts ...ResolverOption) *Resolver {
	if registry == nil {
		registry = NewRegistry()
	}
	r := &Resolver{
		registry: registry,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry exposes the underlying registry.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve renders a single module. Unknown variants and payloads rejected
// by schema validation render as "" with a nil error; loader and template
// failures are returned.
func (r *Resolver) Resolve(ctx context.Context, module Module) (template.HTML, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	logger := logging.WithModuleContext(r.logger, module.Type, module.Key)

	component, ok, err := r.registry.Lookup(module.Type)
	if !ok {
		logger.Debug("modules.resolve.unknown")
		return "", nil
	}
	if err != nil {
		logger.Error("modules.resolve.load_failed", "error", err)
		return "", err
	}

	if r.validator != nil {
		if err := r.validator.Validate(module.Type, module.Raw); err != nil {
			logger.Warn("modules.resolve.invalid_payload", "issues", validation.Issues(err))
			return "", nil
		}
	}

	render := func(ctx context.Context) (string, error) {
		html, err := component.Render(ctx, module)
		if err != nil {
			logger.Error("modules.resolve.render_failed", "error", err)
			return "", fmt.Errorf("modules: render %s: %w", module.Type, err)
		}
		return string(html), nil
	}

	if r.cache == nil {
		html, err := render(ctx)
		return template.HTML(html), err
	}
	cacheKey := CacheKey(module)
	if index, ok := sectionIndex(ctx); ok && module.Key == "" {
		// Keyless output depends on the section position.
		cacheKey += ":" + strconv.Itoa(index)
	}
	html, err := repocache.GetOrFetch[string](ctx, r.cache, cacheKey, render)
	if err != nil {
		return "", err
	}
	return template.HTML(html), nil
}

// ResolveAll renders modules in order and concatenates the output. The first
// error aborts the page.
func (r *Resolver) ResolveAll(ctx context.Context, modules []Module) (template.HTML, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var b strings.Builder
	for i, module := range modules {
		html, err := r.Resolve(withSectionIndex(ctx, i), module)
		if err != nil {
			return "", fmt.Errorf("modules: section %d: %w", i, err)
		}
		b.WriteString(string(html))
	}
	return template.HTML(b.String()), nil
}

// InvalidateCache drops cached fragments. Only keys under CacheKeyPrefix are
// removed, so a shared service keeps its other entries. It is a no-op
// without a cache.
func (r *Resolver) InvalidateCache(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}
	if err := r.cache.DeleteByPrefix(ctx, CacheKeyPrefix); err != nil {
		return fmt.Errorf("modules: invalidate cache: %w", err)
	}
	r.logger.Debug("modules.cache.invalidated")
	return nil
}

// CacheKey derives the fragment cache key for a module from its variant and
// canonical JSON payload. encoding/json sorts map keys, so equal payloads
// share a key.
func CacheKey(module Module) string {
	payload, err := json.Marshal(module)
	if err != nil {
		payload = []byte(fmt.Sprintf("%v", module.Raw))
	}
	h := sha1.New()
	h.Write([]byte(module.Type))
	h.Write([]byte{'|'})
	h.Write(payload)
	return CacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
