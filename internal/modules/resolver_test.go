package modules

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-sections/internal/validation"
)

func newCacheService(t *testing.T) repocache.CacheService {
	t.Helper()
	cfg := repocache.DefaultConfig()
	cfg.TTL = time.Minute
	service, err := repocache.NewCacheService(cfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	return service
}

func mustModules(t *testing.T, raw string) []Module {
	t.Helper()
	list, err := DecodeBytes([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeBytes() error: %v", err)
	}
	return list
}

func TestResolverSelectsComponentByVariant(t *testing.T) {
	resolver := NewResolver(NewDefaultRegistry(Dependencies{}, nil))
	ctx := context.Background()

	for _, variant := range Variants {
		t.Run(variant, func(t *testing.T) {
			component, ok, err := resolver.Registry().Lookup(variant)
			if !ok || err != nil {
				t.Fatalf("expected %s to load, got ok=%v err=%v", variant, ok, err)
			}
			if component.Name() != variant {
				t.Fatalf("expected component %s, got %s", variant, component.Name())
			}
			html, err := resolver.Resolve(ctx, Module{Type: variant, Raw: map[string]any{"_type": variant}})
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if !strings.Contains(string(html), `<section class="module `) {
				t.Fatalf("expected section markup for %s, got %q", variant, html)
			}
		})
	}
}

func TestResolverUnknownVariantRendersNothing(t *testing.T) {
	resolver := NewResolver(NewDefaultRegistry(Dependencies{}, nil))
	for _, variant := range []string{"", "heroBanner", "TextBlock", "textblock"} {
		html, err := resolver.Resolve(context.Background(), Module{Type: variant})
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", variant, err)
		}
		if html != "" {
			t.Fatalf("expected empty output for %q, got %q", variant, html)
		}
	}
}

func TestResolverMatchesDiscriminantExactly(t *testing.T) {
	resolver := NewResolver(NewDefaultRegistry(Dependencies{}, nil))
	for _, variant := range []string{" textBlock ", "textBlock\n", "TextBlock", "textblock"} {
		list := mustModules(t, `[{"_type":`+strconv.Quote(variant)+`,"content":"hi"}]`)
		html, err := resolver.ResolveAll(context.Background(), list)
		if err != nil {
			t.Fatalf("ResolveAll(%q) error: %v", variant, err)
		}
		if html != "" {
			t.Fatalf("expected %q to render nothing, got %q", variant, html)
		}
	}
}

func TestResolverLoadsOnFirstUse(t *testing.T) {
	resolver := NewResolver(NewDefaultRegistry(Dependencies{}, nil))
	if resolver.Registry().Loaded(VariantFormContact) {
		t.Fatalf("expected formContact to be unloaded")
	}
	if _, err := resolver.Resolve(context.Background(), Module{Type: VariantFormContact}); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if !resolver.Registry().Loaded(VariantFormContact) {
		t.Fatalf("expected formContact to be loaded after resolve")
	}
	if resolver.Registry().Loaded(VariantEventsList) {
		t.Fatalf("expected eventsList to stay unloaded")
	}
}

func TestResolveAllConcatenatesInOrder(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register("a", func() (Component, error) { return &stubComponent{name: "a", output: "<a-section>"}, nil })
	_ = registry.Register("b", func() (Component, error) { return &stubComponent{name: "b", output: "<b-section>"}, nil })
	resolver := NewResolver(registry)

	list := mustModules(t, `[{"_type":"b"},{"_type":"missing"},{"_type":"a"},{"_type":"b"}]`)
	html, err := resolver.ResolveAll(context.Background(), list)
	if err != nil {
		t.Fatalf("ResolveAll() error: %v", err)
	}
	if html != "<b-section><a-section><b-section>" {
		t.Fatalf("unexpected page output %q", html)
	}
}

func TestResolverPropagatesRenderErrors(t *testing.T) {
	registry := NewRegistry()
	boom := errors.New("boom")
	_ = registry.Register("a", func() (Component, error) { return &stubComponent{name: "a", err: boom}, nil })
	resolver := NewResolver(registry)

	_, err := resolver.ResolveAll(context.Background(), []Module{{Type: "a"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
}

func TestResolverHonoursCancelledContext(t *testing.T) {
	resolver := NewResolver(NewDefaultRegistry(Dependencies{}, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := resolver.Resolve(ctx, Module{Type: VariantTextBlock}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolverSkipsInvalidPayloads(t *testing.T) {
	validator := validation.NewValidator()
	if err := validator.Register(VariantEventsList, map[string]any{
		"type":     "object",
		"required": []any{"events"},
	}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	resolver := NewResolver(NewDefaultRegistry(Dependencies{}, nil), WithValidator(validator))

	list := mustModules(t, `[{"_type":"eventsList","title":"Nothing"},{"_type":"eventsList","events":[]}]`)
	invalid, err := resolver.Resolve(context.Background(), list[0])
	if err != nil || invalid != "" {
		t.Fatalf("expected invalid payload to render nothing, got %q (%v)", invalid, err)
	}
	valid, err := resolver.Resolve(context.Background(), list[1])
	if err != nil || valid == "" {
		t.Fatalf("expected valid payload to render, got %q (%v)", valid, err)
	}
}

func TestResolverCachesFragments(t *testing.T) {
	registry := NewRegistry()
	component := &stubComponent{name: "a", output: "<a-section>"}
	_ = registry.Register("a", func() (Component, error) { return component, nil })
	resolver := NewResolver(registry, WithCache(newCacheService(t)))
	ctx := context.Background()

	module := mustModules(t, `{"_type":"a","title":"x"}`)[0]
	for i := 0; i < 3; i++ {
		html, err := resolver.Resolve(ctx, module)
		if err != nil || html != "<a-section>" {
			t.Fatalf("unexpected output %q (%v)", html, err)
		}
	}
	if calls := component.calls.Load(); calls != 1 {
		t.Fatalf("expected a single render, got %d", calls)
	}

	if err := resolver.InvalidateCache(ctx); err != nil {
		t.Fatalf("InvalidateCache() error: %v", err)
	}
	if _, err := resolver.Resolve(ctx, module); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if calls := component.calls.Load(); calls != 2 {
		t.Fatalf("expected re-render after invalidation, got %d", calls)
	}
}

func TestInvalidateCacheKeepsForeignKeys(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register("a", func() (Component, error) { return &stubComponent{name: "a", output: "<a-section>"}, nil })
	service := newCacheService(t)
	resolver := NewResolver(registry, WithCache(service))
	ctx := context.Background()

	fetches := 0
	fetch := func(context.Context) (string, error) {
		fetches++
		return "keep", nil
	}
	if _, err := repocache.GetOrFetch[string](ctx, service, "session:1", fetch); err != nil {
		t.Fatalf("GetOrFetch() error: %v", err)
	}
	if _, err := resolver.Resolve(ctx, Module{Type: "a"}); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if err := resolver.InvalidateCache(ctx); err != nil {
		t.Fatalf("InvalidateCache() error: %v", err)
	}
	value, err := repocache.GetOrFetch[string](ctx, service, "session:1", fetch)
	if err != nil || value != "keep" {
		t.Fatalf("unexpected foreign value %q (%v)", value, err)
	}
	if fetches != 1 {
		t.Fatalf("expected foreign key to survive invalidation, fetched %d times", fetches)
	}
}

func TestResolverDoesNotCacheRenderErrors(t *testing.T) {
	registry := NewRegistry()
	component := &stubComponent{name: "a", err: errors.New("boom")}
	_ = registry.Register("a", func() (Component, error) { return component, nil })
	resolver := NewResolver(registry, WithCache(newCacheService(t)))

	for i := 0; i < 2; i++ {
		if _, err := resolver.Resolve(context.Background(), Module{Type: "a"}); err == nil {
			t.Fatalf("expected render error")
		}
	}
	if calls := component.calls.Load(); calls != 2 {
		t.Fatalf("expected failed renders to be retried, got %d", calls)
	}
}

func TestCacheKeyIsCanonical(t *testing.T) {
	first := mustModules(t, `{"_type":"a","b":1,"c":{"y":2,"x":1}}`)[0]
	second := mustModules(t, `{"c":{"x":1,"y":2},"b":1,"_type":"a"}`)[0]
	other := mustModules(t, `{"_type":"a","b":2}`)[0]

	if CacheKey(first) != CacheKey(second) {
		t.Fatalf("expected equal payloads to share a key")
	}
	if CacheKey(first) == CacheKey(other) {
		t.Fatalf("expected different payloads to differ")
	}
	if !strings.HasPrefix(CacheKey(first), CacheKeyPrefix) {
		t.Fatalf("expected key prefix, got %q", CacheKey(first))
	}
}
