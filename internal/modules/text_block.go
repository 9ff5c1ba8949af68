package modules

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/richtext"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

type textBlock struct {
	tmpl     *template.Template
	richText *richtext.Renderer
	markdown interfaces.MarkdownParser
	logger   interfaces.Logger
}

type textBlockView struct {
	Key     string
	Title   string
	Content template.HTML
}

func newTextBlock(deps Dependencies) (Component, error) {
	tmpl, err := parseTemplate(VariantTextBlock)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &textBlock{
		tmpl:     tmpl,
		richText: deps.RichText,
		markdown: deps.Markdown,
		logger:   logger,
	}, nil
}

func (c *textBlock) Name() string { return VariantTextBlock }

func (c *textBlock) Render(ctx context.Context, module Module) (template.HTML, error) {
	content, err := c.content(ctx, module)
	if err != nil {
		return "", err
	}
	return execute(c.tmpl, VariantTextBlock, textBlockView{
		Key:     module.Key,
		Title:   strings.TrimSpace(module.String("title")),
		Content: content,
	})
}

// content renders rich text content, or a string body as Markdown when a
// parser is configured and as an escaped paragraph otherwise.
func (c *textBlock) content(ctx context.Context, module Module) (template.HTML, error) {
	value, ok := module.Field("content")
	if !ok || value == nil {
		return "", nil
	}

	if text, isString := value.(string); isString {
		if strings.TrimSpace(text) == "" {
			return "", nil
		}
		if c.markdown == nil {
			return richtext.Element("p", richtext.Text(text)), nil
		}
		out, err := c.markdown.Parse([]byte(text))
		if err != nil {
			return "", fmt.Errorf("text block markdown: %w", err)
		}
		return template.HTML(out), nil
	}

	doc, err := richtext.FromValue(value)
	if err != nil {
		c.logger.Warn("modules.text_block.content_invalid", "module_key", module.Key, "error", err)
		return "", nil
	}
	return c.richText.Render(ctx, doc)
}
