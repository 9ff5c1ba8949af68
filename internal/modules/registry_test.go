package modules

import (
	"context"
	"errors"
	"html/template"
	"sync"
	"sync/atomic"
	"testing"
)

type stubComponent struct {
	name   string
	output template.HTML
	err    error
	calls  atomic.Int32
}

func (s *stubComponent) Name() string { return s.name }

func (s *stubComponent) Render(context.Context, Module) (template.HTML, error) {
	s.calls.Add(1)
	return s.output, s.err
}

func TestRegistryLoadsLazilyOnce(t *testing.T) {
	registry := NewRegistry()
	var loads atomic.Int32
	component := &stubComponent{name: "hero", output: "<div>hero</div>"}
	if err := registry.Register("hero", func() (Component, error) {
		loads.Add(1)
		return component, nil
	}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if registry.Loaded("hero") {
		t.Fatalf("expected loader not to run before first lookup")
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, ok, err := registry.Lookup("hero")
			if !ok || err != nil || got != component {
				t.Errorf("unexpected lookup result: %v %v %v", got, ok, err)
			}
		}()
	}
	wg.Wait()

	if loads.Load() != 1 {
		t.Fatalf("expected loader to run once, ran %d times", loads.Load())
	}
	if !registry.Loaded("hero") {
		t.Fatalf("expected loader to be marked as run")
	}
}

func TestRegistryMemoisesLoaderError(t *testing.T) {
	registry := NewRegistry()
	var loads atomic.Int32
	boom := errors.New("boom")
	_ = registry.Register("hero", func() (Component, error) {
		loads.Add(1)
		return nil, boom
	})

	for i := 0; i < 2; i++ {
		_, ok, err := registry.Lookup("hero")
		if !ok || !errors.Is(err, ErrLoadFailed) || !errors.Is(err, boom) {
			t.Fatalf("expected wrapped load error, got %v", err)
		}
	}
	if loads.Load() != 1 {
		t.Fatalf("expected failed loader to run once, ran %d times", loads.Load())
	}
}

func TestRegistryRecoversLoaderPanic(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register("hero", func() (Component, error) {
		panic("bad template")
	})
	if _, _, err := registry.Lookup("hero"); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed after panic, got %v", err)
	}
	if !registry.Loaded("hero") {
		t.Fatalf("expected panicking loader to count as run")
	}
}

func TestRegistryRejectsNameMismatch(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register("hero", func() (Component, error) {
		return &stubComponent{name: "banner"}, nil
	})
	if _, _, err := registry.Lookup("hero"); !errors.Is(err, ErrComponentMismatch) {
		t.Fatalf("expected ErrComponentMismatch, got %v", err)
	}
}

func TestRegistryRegisterValidation(t *testing.T) {
	registry := NewRegistry()
	loader := func() (Component, error) { return &stubComponent{name: "hero"}, nil }

	if err := registry.Register(" ", loader); !errors.Is(err, ErrInvalidVariant) {
		t.Fatalf("expected ErrInvalidVariant for blank name, got %v", err)
	}
	if err := registry.Register("hero", nil); !errors.Is(err, ErrInvalidVariant) {
		t.Fatalf("expected ErrInvalidVariant for nil loader, got %v", err)
	}
	if err := registry.Register("hero", loader); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := registry.Register("hero", loader); !errors.Is(err, ErrDuplicateVariant) {
		t.Fatalf("expected ErrDuplicateVariant, got %v", err)
	}
	if _, ok, _ := registry.Lookup("Hero"); ok {
		t.Fatalf("expected variant lookup to be case sensitive")
	}
}

func TestNewDefaultRegistryFiltersVariants(t *testing.T) {
	registry := NewDefaultRegistry(Dependencies{}, func(variant string) bool {
		return variant != VariantEventsList
	})
	if registry.Has(VariantEventsList) {
		t.Fatalf("expected eventsList to be filtered out")
	}
	if got := len(registry.Variants()); got != len(Variants)-1 {
		t.Fatalf("expected %d variants, got %d", len(Variants)-1, got)
	}
	for _, variant := range registry.Variants() {
		if registry.Loaded(variant) {
			t.Fatalf("expected %s not to be loaded at construction", variant)
		}
	}
}
