package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-sections/pkg/interfaces"
)

// URLKitRoutes resolves static routes through a go-urlkit RouteManager. The
// route type is used as the route name inside Group, and the path of the
// built URL becomes the segment.
type URLKitRoutes struct {
	manager *urlkit.RouteManager
	group   string

	mu       sync.RWMutex
	resolved map[string]lookupResult
}

type lookupResult struct {
	segment string
	ok      bool
}

// NewURLKitRoutes builds a lookup over a dotted group path such as
// "frontend" or "frontend.es".
func NewURLKitRoutes(manager *urlkit.RouteManager, group string) *URLKitRoutes {
	return &URLKitRoutes{
		manager:  manager,
		group:    strings.TrimSpace(group),
		resolved: map[string]lookupResult{},
	}
}

// Lookup satisfies interfaces.StaticRoutes. Unknown groups or routes are a
// miss. Results are memoised per route type.
func (r *URLKitRoutes) Lookup(routeType string) (string, bool) {
	key := strings.TrimSpace(routeType)
	if r == nil || r.manager == nil || r.group == "" || key == "" {
		return "", false
	}

	r.mu.RLock()
	cached, hit := r.resolved[key]
	r.mu.RUnlock()
	if hit {
		return cached.segment, cached.ok
	}

	segment, err := r.build(key)
	result := lookupResult{segment: segment, ok: err == nil}

	r.mu.Lock()
	r.resolved[key] = result
	r.mu.Unlock()
	return result.segment, result.ok
}

func (r *URLKitRoutes) build(route string) (segment string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			segment = ""
			err = fmt.Errorf("routes: urlkit route %q in group %q: %v", route, r.group, rec)
		}
	}()

	parts := strings.Split(r.group, ".")
	group := r.manager.Group(parts[0])
	for _, part := range parts[1:] {
		group = group.Group(part)
	}
	if group == nil {
		return "", fmt.Errorf("routes: urlkit group %q not found", r.group)
	}

	built, err := group.Builder(route).Build()
	if err != nil {
		return "", err
	}
	return segmentOf(built)
}

// segmentOf extracts the path of an absolute or relative URL without its
// surrounding slashes.
func segmentOf(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.Trim(parsed.Path, "/"), nil
}

var _ interfaces.StaticRoutes = (*URLKitRoutes)(nil)
