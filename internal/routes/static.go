package routes

import (
	"strings"
	"sync"

	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Table is an in-memory StaticRoutes backed by a route type -> segment map.
// Segments are stored as given; an empty segment is the root page.
type Table struct {
	mu     sync.RWMutex
	routes map[string]string
}

// NewTable returns a table seeded with routes.
func NewTable(routes map[string]string) *Table {
	table := &Table{routes: make(map[string]string, len(routes))}
	for routeType, segment := range routes {
		table.Set(routeType, segment)
	}
	return table
}

// Set registers or replaces a static route.
func (t *Table) Set(routeType, segment string) {
	key := strings.TrimSpace(routeType)
	if key == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes[key] = strings.TrimSpace(segment)
}

// Lookup satisfies interfaces.StaticRoutes. A blank route type never matches.
func (t *Table) Lookup(routeType string) (string, bool) {
	key := strings.TrimSpace(routeType)
	if t == nil || key == "" {
		return "", false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	segment, ok := t.routes[key]
	return segment, ok
}

var _ interfaces.StaticRoutes = (*Table)(nil)

// Chain consults each lookup in order and returns the first match.
type Chain []interfaces.StaticRoutes

// Lookup satisfies interfaces.StaticRoutes.
func (c Chain) Lookup(routeType string) (string, bool) {
	for _, lookup := range c {
		if lookup == nil {
			continue
		}
		if segment, ok := lookup.Lookup(routeType); ok {
			return segment, true
		}
	}
	return "", false
}

// None is a lookup that never matches.
var None interfaces.StaticRoutes = interfaces.StaticRoutesFunc(func(string) (string, bool) {
	return "", false
})
