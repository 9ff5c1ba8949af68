package media

import (
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-sections/internal/richtext"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Source is the image a Photo displays.
type Source struct {
	URL         string
	Alt         string
	AspectRatio float64
}

// SourceFromNode reads an image source from a rich text node. The URL comes
// from asset.url, falling back to url.
func SourceFromNode(node *richtext.Node) Source {
	if node == nil {
		return Source{}
	}
	src := Source{
		URL: node.String("asset.url"),
		Alt: node.String("alt"),
	}
	if src.URL == "" {
		src.URL = node.String("url")
	}
	if ratio, ok := node.Float("aspectRatio"); ok {
		src.AspectRatio = ratio
	}
	return src
}

// PhotoProps mirrors the responsive image options a section passes in.
type PhotoProps struct {
	Photo Source
	// SrcsetSizes lists candidate widths in ascending order.
	SrcsetSizes []int
	// Sizes is the layout hint for the sizes attribute, such as "100vw".
	Sizes string
	// PaddingTop reserves an intrinsic ratio box when non-empty.
	PaddingTop string
	// Width is the base rendition width used for src and the width attribute.
	Width int
}

// PhotoRenderer renders responsive <img> markup.
type PhotoRenderer struct {
	urls interfaces.ImageURLBuilder
}

// NewPhotoRenderer builds a renderer; a nil builder uses DefaultURLBuilder.
func NewPhotoRenderer(urls interfaces.ImageURLBuilder) *PhotoRenderer {
	if urls == nil {
		urls = DefaultURLBuilder()
	}
	return &PhotoRenderer{urls: urls}
}

// Render returns the photo markup, or nothing when the source has no URL.
func (r *PhotoRenderer) Render(props PhotoProps) template.HTML {
	if strings.TrimSpace(props.Photo.URL) == "" {
		return ""
	}

	attrs := []string{"src", r.urls.URL(props.Photo.URL, props.Width)}
	if srcset := r.srcset(props.Photo.URL, props.SrcsetSizes); srcset != "" {
		attrs = append(attrs, "srcset", srcset)
	}
	if sizes := strings.TrimSpace(props.Sizes); sizes != "" {
		attrs = append(attrs, "sizes", sizes)
	}
	if props.Width > 0 {
		attrs = append(attrs, "width", strconv.Itoa(props.Width))
	}
	attrs = append(attrs, "alt", props.Photo.Alt, "loading", "lazy")

	img := richtext.VoidElement("img", attrs...)

	var ratioAttrs []string
	if padding := strings.TrimSpace(props.PaddingTop); padding != "" {
		ratioAttrs = []string{"class", "photo-ratio", "style", "padding-top:" + padding}
	} else {
		ratioAttrs = []string{"class", "photo-ratio"}
	}
	return richtext.Element("figure", richtext.Element("div", img, ratioAttrs...), "class", "photo")
}

func (r *PhotoRenderer) srcset(source string, widths []int) string {
	candidates := make([]string, 0, len(widths))
	for _, width := range widths {
		if width <= 0 {
			continue
		}
		candidates = append(candidates, r.urls.URL(source, width)+" "+strconv.Itoa(width)+"w")
	}
	return strings.Join(candidates, ", ")
}

// AspectPadding returns the top padding percentage that gives a box the
// given width/height ratio: 100/ratio followed by "%". Ratios that are not
// positive finite numbers yield "".
func AspectPadding(ratio float64) string {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return ""
	}
	return strconv.FormatFloat(100/ratio, 'f', -1, 64) + "%"
}
