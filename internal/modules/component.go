package modules

import (
	"context"
	"html/template"

	"github.com/goliatone/go-sections/internal/richtext"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Variant names served by the default registry.
const (
	VariantTextBlock      = "textBlock"
	VariantEventsList     = "eventsList"
	VariantAccordionList  = "accordionList"
	VariantFormContact    = "formContact"
	VariantFormNewsletter = "formNewsletter"
)

// Variants lists the default variants in registration order.
var Variants = []string{
	VariantTextBlock,
	VariantEventsList,
	VariantAccordionList,
	VariantFormContact,
	VariantFormNewsletter,
}

// Component renders one section variant. Name must equal the variant.
type Component interface {
	Name() string
	Render(ctx context.Context, module Module) (template.HTML, error)
}

// Loader builds a component on first use.
type Loader func() (Component, error)

// Dependencies are the collaborators shared by the default components.
type Dependencies struct {
	// RichText renders rich text fields. Defaults to a renderer with the
	// richtext default serializers.
	RichText *richtext.Renderer
	// Markdown renders string text block bodies. Nil escapes them instead.
	Markdown interfaces.MarkdownParser
	Logger   interfaces.Logger
}

// defaultLoaders returns the loaders for every built-in variant.
func defaultLoaders(deps Dependencies) map[string]Loader {
	if deps.RichText == nil {
		deps.RichText = richtext.NewRenderer()
	}
	return map[string]Loader{
		VariantTextBlock:      func() (Component, error) { return newTextBlock(deps) },
		VariantEventsList:     func() (Component, error) { return newEventsList() },
		VariantAccordionList:  func() (Component, error) { return newAccordionList(deps) },
		VariantFormContact:    func() (Component, error) { return newFormContact() },
		VariantFormNewsletter: func() (Component, error) { return newFormNewsletter() },
	}
}
