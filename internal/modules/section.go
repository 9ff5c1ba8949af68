package modules

import (
	"context"
	"strconv"

	"github.com/goliatone/go-sections/internal/identity"
)

type sectionIndexKey struct{}

func withSectionIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, sectionIndexKey{}, index)
}

// sectionIndex returns the position of the module being rendered by
// ResolveAll.
func sectionIndex(ctx context.Context) (int, bool) {
	index, ok := ctx.Value(sectionIndexKey{}).(int)
	return index, ok
}

// moduleScope names a module instance on its page: its _key, else its
// position in the section list, else its payload hash.
func moduleScope(ctx context.Context, module Module) string {
	if module.Key != "" {
		return "key:" + module.Key
	}
	if index, ok := sectionIndex(ctx); ok {
		return "section:" + strconv.Itoa(index)
	}
	return "payload:" + CacheKey(module)
}

// moduleID is the deterministic id of a module instance.
func moduleID(ctx context.Context, module Module) string {
	return identity.ModuleUUID(module.Type, moduleScope(ctx, module)).String()
}
