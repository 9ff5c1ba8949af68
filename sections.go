package sections

import (
	"bytes"
	"context"
	"html/template"
	"io"

	rendercmd "github.com/goliatone/go-sections/internal/commands/render"
	"github.com/goliatone/go-sections/internal/di"
	"github.com/goliatone/go-sections/internal/modules"
	"github.com/goliatone/go-sections/internal/richtext"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Section exports the decoded page module record.
type Section = modules.Module

// Component exports the section component contract.
type Component = modules.Component

// Loader exports the lazy component loader signature.
type Loader = modules.Loader

// Document exports the rich text document type.
type Document = richtext.Document

// Serializers exports the rich text serializer set used with WithSerializers.
type Serializers = richtext.Serializers

// Option configures the module container.
type Option = di.Option

// Built-in section variants.
const (
	VariantTextBlock      = modules.VariantTextBlock
	VariantEventsList     = modules.VariantEventsList
	VariantAccordionList  = modules.VariantAccordionList
	VariantFormContact    = modules.VariantFormContact
	VariantFormNewsletter = modules.VariantFormNewsletter
)

var (
	WithLoggerProvider  = di.WithLoggerProvider
	WithCache           = di.WithCache
	WithStaticRoutes    = di.WithStaticRoutes
	WithRouteManager    = di.WithRouteManager
	WithImageURLBuilder = di.WithImageURLBuilder
	WithMarkdownParser  = di.WithMarkdownParser
	WithComponent       = di.WithComponent
	WithSerializers     = di.WithSerializers
)

// DecodeSections parses a section list: an array, {"modules": [...]}, or one module.
func DecodeSections(data []byte) ([]Section, error) {
	return modules.DecodeBytes(data)
}

// DecodeRichText parses a rich text document.
func DecodeRichText(data []byte) (Document, error) {
	return richtext.DecodeBytes(data)
}

// Module is the top level rendering facade.
type Module struct {
	container *di.Container
}

// New constructs a module using cfg and optional container overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Resolver returns the section resolver.
func (m *Module) Resolver() *modules.Resolver {
	return m.container.Resolver()
}

// RichText returns the rich text renderer configured with the site serializers.
func (m *Module) RichText() *richtext.Renderer {
	return m.container.RichText()
}

// StaticRoutes returns the route lookup used by link and button marks.
func (m *Module) StaticRoutes() interfaces.StaticRoutes {
	return m.container.StaticRoutes()
}

// RenderSection renders one section. Unknown variants render nothing.
func (m *Module) RenderSection(ctx context.Context, section Section) (template.HTML, error) {
	return m.container.Resolver().Resolve(ctx, section)
}

// Render renders sections in order.
func (m *Module) Render(ctx context.Context, list []Section) (template.HTML, error) {
	return m.container.Resolver().ResolveAll(ctx, list)
}

// RenderRichText renders a rich text document with the site serializers.
func (m *Module) RenderRichText(ctx context.Context, doc Document) (template.HTML, error) {
	return m.container.RichText().Render(ctx, doc)
}

// RenderPage decodes a JSON page and writes its sections to w through the
// render command handler.
func (m *Module) RenderPage(ctx context.Context, page []byte, w io.Writer) error {
	return m.container.Commands().Render.Execute(ctx, rendercmd.RenderPageCommand{
		Page:   page,
		Output: w,
	})
}

// RenderPageString is RenderPage collected into a string.
func (m *Module) RenderPageString(ctx context.Context, page []byte) (string, error) {
	var buf bytes.Buffer
	if err := m.RenderPage(ctx, page, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InvalidateCache drops cached section fragments.
func (m *Module) InvalidateCache(ctx context.Context, reason string) error {
	return m.container.Commands().Invalidate.Execute(ctx, rendercmd.InvalidateRenderCacheCommand{
		Reason: reason,
	})
}
