package interfaces

// StaticRoutes maps a semantic route type (for example "about" or "home") to
// the canonical path segment of a page known at build time.
//
// A lookup returning ("", true) addresses the root path and must not be
// confused with a miss, which is reported through ok == false.
type StaticRoutes interface {
	Lookup(routeType string) (segment string, ok bool)
}

// StaticRoutesFunc adapts a plain function to StaticRoutes.
type StaticRoutesFunc func(routeType string) (string, bool)

// Lookup satisfies StaticRoutes.
func (f StaticRoutesFunc) Lookup(routeType string) (string, bool) {
	if f == nil {
		return "", false
	}
	return f(routeType)
}
