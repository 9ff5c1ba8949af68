package media

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-sections/pkg/interfaces"
)

// QueryURLBuilder requests resized renditions through query parameters, the
// convention used by image CDNs such as imgix and the Sanity asset pipeline.
type QueryURLBuilder struct {
	// Quality sets the q parameter when positive.
	Quality int
	// Auto sets the auto parameter ("format" negotiates webp/avif). Empty omits it.
	Auto string
}

// DefaultURLBuilder returns a builder that only negotiates the format.
func DefaultURLBuilder() QueryURLBuilder {
	return QueryURLBuilder{Auto: "format"}
}

// URL satisfies interfaces.ImageURLBuilder. Sources that fail to parse are
// returned unchanged.
func (b QueryURLBuilder) URL(source string, width int) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return ""
	}
	parsed, err := url.Parse(source)
	if err != nil {
		return source
	}
	query := parsed.Query()
	if width > 0 {
		query.Set("w", strconv.Itoa(width))
	}
	if b.Quality > 0 {
		query.Set("q", strconv.Itoa(b.Quality))
	}
	if auto := strings.TrimSpace(b.Auto); auto != "" {
		query.Set("auto", auto)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

var _ interfaces.ImageURLBuilder = QueryURLBuilder{}
