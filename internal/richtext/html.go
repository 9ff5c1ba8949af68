package richtext

import (
	"html/template"
	"net/url"
	"strings"
)

var voidElements = map[string]struct{}{
	"br":  {},
	"hr":  {},
	"img": {},
}

// Element renders <tag attrs>children</tag>. Attributes are passed as
// name/value pairs and emitted in order; pairs with an empty name are skipped
// and a trailing name without a value is ignored. Values are escaped, names
// are trusted.
func Element(tag string, children template.HTML, attrs ...string) template.HTML {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	writeAttrs(&b, attrs)
	b.WriteString(">")
	if _, void := voidElements[tag]; void {
		return template.HTML(b.String())
	}
	b.WriteString(string(children))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
	return template.HTML(b.String())
}

// VoidElement renders a tag that has no closing counterpart, such as <hr>.
func VoidElement(tag string, attrs ...string) template.HTML {
	return Element(tag, "", attrs...)
}

// Text escapes plain text and turns newlines into <br> elements.
func Text(text string) template.HTML {
	if !strings.Contains(text, "\n") {
		return template.HTML(template.HTMLEscapeString(text))
	}
	lines := strings.Split(text, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(template.HTMLEscapeString(line))
	}
	return template.HTML(b.String())
}

func writeAttrs(b *strings.Builder, attrs []string) {
	for i := 0; i+1 < len(attrs); i += 2 {
		name := strings.TrimSpace(attrs[i])
		if name == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(template.HTMLEscapeString(attrs[i+1]))
		b.WriteString(`"`)
	}
}

var allowedSchemes = map[string]struct{}{
	"":       {},
	"http":   {},
	"https":  {},
	"mailto": {},
	"tel":    {},
}

// unsafeURL replaces hrefs with a scheme outside the allow list.
const unsafeURL = "#"

// SafeURL returns raw when it parses and uses an allowed scheme (http, https,
// mailto, tel or none), otherwise "#".
func SafeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return unsafeURL
	}
	if _, ok := allowedSchemes[strings.ToLower(parsed.Scheme)]; !ok {
		return unsafeURL
	}
	return trimmed
}
