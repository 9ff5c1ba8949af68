package modules

import (
	"context"
	"html/template"
	"strconv"
	"strings"

	"github.com/goliatone/go-sections/internal/identity"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/richtext"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

const accordionIDPrefix = "accordion"

type accordionList struct {
	tmpl     *template.Template
	richText *richtext.Renderer
	logger   interfaces.Logger
}

type accordionListView struct {
	Key   string
	Title string
	Items []accordionItemView
}

type accordionItemView struct {
	ID      string
	Title   string
	Content template.HTML
}

func newAccordionList(deps Dependencies) (Component, error) {
	tmpl, err := parseTemplate(VariantAccordionList)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &accordionList{tmpl: tmpl, richText: deps.RichText, logger: logger}, nil
}

func (c *accordionList) Name() string { return VariantAccordionList }

func (c *accordionList) Render(ctx context.Context, module Module) (template.HTML, error) {
	view := accordionListView{
		Key:   module.Key,
		Title: strings.TrimSpace(module.String("title")),
	}
	scope := moduleID(ctx, module)
	for i, entry := range module.Maps("items") {
		item := FromMap(entry)
		itemKey := item.Key
		if itemKey == "" {
			itemKey = strconv.Itoa(i)
		}

		var content template.HTML
		if value, ok := item.Field("content"); ok && value != nil {
			doc, err := richtext.FromValue(value)
			if err != nil {
				c.logger.Warn("modules.accordion.content_invalid", "module_key", module.Key, "item_key", itemKey, "error", err)
			} else if content, err = c.richText.Render(ctx, doc); err != nil {
				return "", err
			}
		}

		view.Items = append(view.Items, accordionItemView{
			ID:      identity.DOMID(accordionIDPrefix, identity.AccordionItemUUID(scope, itemKey)),
			Title:   strings.TrimSpace(item.String("title")),
			Content: content,
		})
	}
	return execute(c.tmpl, VariantAccordionList, view)
}
