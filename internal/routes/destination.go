package routes

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Kind identifies which source decided a link destination.
type Kind int

const (
	// KindMalformed means none of href, static route or slug applied.
	KindMalformed Kind = iota
	KindExternal
	KindStatic
	KindSlug
)

func (k Kind) String() string {
	switch k {
	case KindExternal:
		return "external"
	case KindStatic:
		return "static"
	case KindSlug:
		return "slug"
	default:
		return "malformed"
	}
}

// LinkTarget carries the destination fields shared by link and button marks.
type LinkTarget struct {
	Href      string
	RouteType string
	Slug      string
}

// Destination is the outcome of ResolveDestination.
type Destination struct {
	Kind Kind
	Href string
}

// External reports whether the destination leaves the site.
func (d Destination) External() bool {
	return d.Kind == KindExternal
}

// Valid reports whether a destination was found.
func (d Destination) Valid() bool {
	return d.Kind != KindMalformed
}

// ResolveDestination picks the link destination in priority order: an
// external href, then the static route for RouteType (an empty segment is the
// root path), then the slug. A nil lookup never matches.
func ResolveDestination(target LinkTarget, lookup interfaces.StaticRoutes) Destination {
	if href := strings.TrimSpace(target.Href); href != "" {
		return Destination{Kind: KindExternal, Href: href}
	}

	if lookup != nil {
		if segment, ok := lookup.Lookup(target.RouteType); ok {
			return Destination{Kind: KindStatic, Href: InternalPath(segment)}
		}
	}

	if path := slugPath(target.Slug); path != "" {
		return Destination{Kind: KindSlug, Href: InternalPath(path)}
	}

	return Destination{Kind: KindMalformed}
}

// InternalPath prefixes a segment with the site root. Empty segments map to
// "/". Leading slashes are dropped so the result never reads as a
// protocol-relative URL; the rest of the segment is kept as given.
func InternalPath(segment string) string {
	return "/" + strings.TrimLeft(strings.TrimSpace(segment), "/")
}

// slugPath path-escapes every segment of a slug without otherwise changing
// it. The slug identifies a document, so it is never rewritten.
func slugPath(raw string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

// CanonicalSlug reports whether every segment of raw is already a valid
// go-slug slug. Callers use it to flag odd CMS slugs, not to change them.
func CanonicalSlug(raw string) bool {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return false
	}
	for _, part := range strings.Split(trimmed, "/") {
		if !slug.IsValid(part) {
			return false
		}
	}
	return true
}
