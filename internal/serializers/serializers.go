// Package serializers holds the site specific rich text rules: statement
// paragraph styles, figures, horizontal rules, highlights, links and
// buttons. Everything else is left to the richtext defaults.
package serializers

import (
	"html/template"
	"strings"

	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/media"
	"github.com/goliatone/go-sections/internal/richtext"
	"github.com/goliatone/go-sections/internal/routes"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

const (
	TypeFigure         = "figure"
	TypeHorizontalRule = "horizontalRule"

	MarkHighlight = "highlight"
	MarkLink      = "link"
	MarkButton    = "button"
)

const (
	// FigureSizes is the sizes hint for figures: they span the viewport.
	FigureSizes = "100vw"
	// FigureWidth is the base rendition width of figures.
	FigureWidth = 1800
)

// FigureSrcsetSizes lists the candidate widths offered for figures.
var FigureSrcsetSizes = []int{500, 800, 1200, 1800}

// styleClasses maps block styles that get a dedicated paragraph class.
var styleClasses = map[string]string{
	"statement": "is-statement",
	"note":      "is-note",
	"important": "is-important",
}

type site struct {
	routes interfaces.StaticRoutes
	photos *media.PhotoRenderer
	logger interfaces.Logger
}

// Option configures the serializer set.
type Option func(*site)

// WithRoutes sets the static route lookup used by links and buttons.
func WithRoutes(lookup interfaces.StaticRoutes) Option {
	return func(s *site) {
		if lookup != nil {
			s.routes = lookup
		}
	}
}

// WithPhotoRenderer overrides the renderer used for figures.
func WithPhotoRenderer(photos *media.PhotoRenderer) Option {
	return func(s *site) {
		if photos != nil {
			s.photos = photos
		}
	}
}

// WithLogger sets the logger used to report malformed link marks.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns the site serializers, meant to be merged over
// richtext.DefaultSerializers.
func New(opts ...Option) richtext.Serializers {
	s := &site{
		routes: routes.None,
		photos: media.NewPhotoRenderer(nil),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return richtext.Serializers{
		Types: map[string]richtext.TypeSerializer{
			richtext.TypeBlock: s.block,
			TypeFigure:         s.figure,
			TypeHorizontalRule: s.horizontalRule,
		},
		Marks: map[string]richtext.MarkSerializer{
			MarkHighlight: s.highlight,
			MarkLink:      s.link,
			MarkButton:    s.button,
		},
	}
}

func (s *site) block(props richtext.BlockProps) template.HTML {
	if class, ok := styleClasses[props.Node.GetStyle()]; ok {
		return richtext.Element("p", props.Children, "class", class)
	}
	return richtext.DefaultBlock(props)
}

func (s *site) figure(props richtext.BlockProps) template.HTML {
	source := media.SourceFromNode(props.Node)
	return s.photos.Render(media.PhotoProps{
		Photo:       source,
		SrcsetSizes: FigureSrcsetSizes,
		Sizes:       FigureSizes,
		PaddingTop:  media.AspectPadding(source.AspectRatio),
		Width:       FigureWidth,
	})
}

func (s *site) horizontalRule(richtext.BlockProps) template.HTML {
	return richtext.VoidElement("hr")
}

func (s *site) highlight(props richtext.MarkProps) template.HTML {
	return richtext.Element("span", props.Children, "class", props.Mark.String("color"))
}

func (s *site) link(props richtext.MarkProps) template.HTML {
	return s.anchor(props, "")
}

func (s *site) button(props richtext.MarkProps) template.HTML {
	class := strings.TrimSpace("btn " + props.Mark.String("color"))
	return s.anchor(props, class)
}

// anchor renders the shared link/button markup. External destinations open
// in a new browsing context without opener or referrer; internal ones are
// marked for client side navigation that keeps the scroll position.
func (s *site) anchor(props richtext.MarkProps, class string) template.HTML {
	target := TargetFromMark(props.Mark)
	dest := routes.ResolveDestination(target, s.routes)
	if !dest.Valid() {
		s.logger.Warn("richtext.mark.destination_malformed",
			"mark", props.Mark.Type,
			"key", props.Mark.Key,
			"route_type", target.RouteType,
		)
		return props.Children
	}
	if dest.Kind == routes.KindSlug && !routes.CanonicalSlug(target.Slug) {
		s.logger.Warn("richtext.mark.slug_not_canonical",
			"mark", props.Mark.Type,
			"key", props.Mark.Key,
			"slug", target.Slug,
		)
	}

	attrs := []string{}
	if class != "" {
		attrs = append(attrs, "class", class)
	}
	if dest.External() {
		attrs = append(attrs,
			"href", richtext.SafeURL(dest.Href),
			"target", "_blank",
			"rel", "noopener noreferrer",
		)
	} else {
		attrs = append(attrs,
			"href", dest.Href,
			"data-scroll", "false",
		)
	}
	return richtext.Element("a", props.Children, attrs...)
}

// TargetFromMark extracts the destination fields of a link or button mark.
// The slug may be a {current: "..."} object or a plain string.
func TargetFromMark(mark richtext.Mark) routes.LinkTarget {
	target := routes.LinkTarget{
		Href:      mark.String("href"),
		RouteType: mark.String("type"),
		Slug:      mark.String("slug.current"),
	}
	if target.Slug == "" {
		target.Slug = mark.String("slug")
	}
	return target
}
