package sections_test

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	sections "github.com/goliatone/go-sections"
)

const landingPage = `{"modules": [
	{"_type":"textBlock","_key":"intro","title":"Welcome","content":[
		{"_type":"block","style":"note","children":[{"_type":"span","text":"Opening soon"}]},
		{"_type":"figure","_key":"hero","aspectRatio":2,"alt":"Harbour","asset":{"url":"https://cdn.test/harbour.jpg"}},
		{"_type":"horizontalRule","_key":"hr"},
		{"_type":"block","markDefs":[
			{"_key":"ext","_type":"link","href":"https://example.org"},
			{"_key":"home","_type":"link","type":"about"},
			{"_key":"cta","_type":"button","color":"primary","slug":{"current":"contact-us"}}
		],"children":[
			{"_type":"span","text":"Press","marks":["ext"]},
			{"_type":"span","text":" "},
			{"_type":"span","text":"Home","marks":["home"]},
			{"_type":"span","text":" "},
			{"_type":"span","text":"Contact","marks":["cta"]}
		]}
	]},
	{"_type":"carousel","_key":"unknown"},
	{"_type":"formNewsletter","_key":"nl","title":"Stay in touch"}
]}`

func newModule(t *testing.T, opts ...sections.Option) *sections.Module {
	t.Helper()
	cfg := sections.DefaultConfig()
	cfg.Routes.Static = map[string]string{"about": ""}
	module, err := sections.New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return module
}

func TestRenderPageString(t *testing.T) {
	module := newModule(t)

	got, err := module.RenderPageString(context.Background(), []byte(landingPage))
	if err != nil {
		t.Fatalf("RenderPageString() error: %v", err)
	}

	for _, want := range []string{
		`<p class="is-note">Opening soon</p>`,
		`style="padding-top:50%"`,
		`sizes="100vw"`,
		`width="1800"`,
		`<hr>`,
		`<a href="https://example.org" target="_blank" rel="noopener noreferrer">Press</a>`,
		`<a href="/" data-scroll="false">Home</a>`,
		`<a class="btn primary" href="/contact-us" data-scroll="false">Contact</a>`,
		`Stay in touch`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output %q", want, got)
		}
	}
	if strings.Contains(got, "carousel") {
		t.Fatalf("expected unknown section to be omitted, got %q", got)
	}
	if strings.Index(got, "text-block") > strings.Index(got, "form-newsletter") {
		t.Fatalf("expected sections in page order, got %q", got)
	}
}

func TestRenderMatchesRenderPage(t *testing.T) {
	module := newModule(t)

	list, err := sections.DecodeSections([]byte(landingPage))
	if err != nil {
		t.Fatalf("DecodeSections() error: %v", err)
	}
	html, err := module.Render(context.Background(), list)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var buf bytes.Buffer
	if err := module.RenderPage(context.Background(), []byte(landingPage), &buf); err != nil {
		t.Fatalf("RenderPage() error: %v", err)
	}
	if string(html) != buf.String() {
		t.Fatalf("expected identical output\nRender: %q\nRenderPage: %q", html, buf.String())
	}
}

func TestRenderSectionUnknownVariant(t *testing.T) {
	module := newModule(t)

	html, err := module.RenderSection(context.Background(), sections.Section{Type: "textblock"})
	if err != nil {
		t.Fatalf("RenderSection() error: %v", err)
	}
	if html != "" {
		t.Fatalf("expected variant names to be case sensitive, got %q", html)
	}
}

func TestRenderPageRejectsEmptyPayload(t *testing.T) {
	module := newModule(t)

	err := module.RenderPage(context.Background(), nil, &bytes.Buffer{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRenderRichText(t *testing.T) {
	module := newModule(t)

	doc, err := sections.DecodeRichText([]byte(`[{"_type":"block","style":"important","children":[{"_type":"span","text":"Read this"}]}]`))
	if err != nil {
		t.Fatalf("DecodeRichText() error: %v", err)
	}
	html, err := module.RenderRichText(context.Background(), doc)
	if err != nil {
		t.Fatalf("RenderRichText() error: %v", err)
	}
	if want := template.HTML(`<p class="is-important">Read this</p>`); html != want {
		t.Fatalf("expected %q, got %q", want, html)
	}
}

type quoteComponent struct{}

func (quoteComponent) Name() string { return "quote" }

func (quoteComponent) Render(_ context.Context, section sections.Section) (template.HTML, error) {
	return template.HTML("<blockquote>" + template.HTMLEscapeString(section.String("text")) + "</blockquote>"), nil
}

func TestCustomComponent(t *testing.T) {
	module := newModule(t, sections.WithComponent("quote", func() (sections.Component, error) {
		return quoteComponent{}, nil
	}))

	got, err := module.RenderPageString(context.Background(), []byte(`[{"_type":"quote","text":"Less is more"}]`))
	if err != nil {
		t.Fatalf("RenderPageString() error: %v", err)
	}
	if got != "<blockquote>Less is more</blockquote>" {
		t.Fatalf("unexpected output %q", got)
	}
	if !module.Resolver().Registry().Loaded("quote") {
		t.Fatalf("expected quote loader to have run")
	}
}

func TestInvalidateCache(t *testing.T) {
	module := newModule(t)
	if err := module.InvalidateCache(context.Background(), "page.json changed"); err != nil {
		t.Fatalf("InvalidateCache() error: %v", err)
	}
	if err := module.InvalidateCache(context.Background(), strings.Repeat("x", 300)); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error for long reason, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := sections.DefaultConfig()
	cfg.Modules.Enabled = []string{" "}
	if _, err := sections.New(cfg); !errors.Is(err, sections.ErrModuleVariantBlank) {
		t.Fatalf("expected ErrModuleVariantBlank, got %v", err)
	}
}
