package modules

import (
	"context"
	"html/template"
	"strings"
)

const (
	defaultContactAction    = "/api/contact"
	defaultNewsletterAction = "/api/newsletter"
	defaultNewsletterButton = "Subscribe"
	defaultContactButton    = "Send"
)

type formView struct {
	Key            string
	Title          string
	Subtitle       string
	Action         string
	ButtonText     string
	SuccessMessage string
}

func formViewFrom(module Module, action, button string) formView {
	return formView{
		Key:            module.Key,
		Title:          strings.TrimSpace(module.String("title")),
		Subtitle:       strings.TrimSpace(module.String("subtitle")),
		Action:         module.StringOr("action", action),
		ButtonText:     module.StringOr("buttonText", button),
		SuccessMessage: strings.TrimSpace(module.String("successMessage")),
	}
}

type formContact struct {
	tmpl *template.Template
}

func newFormContact() (Component, error) {
	tmpl, err := parseTemplate(VariantFormContact)
	if err != nil {
		return nil, err
	}
	return &formContact{tmpl: tmpl}, nil
}

func (c *formContact) Name() string { return VariantFormContact }

func (c *formContact) Render(_ context.Context, module Module) (template.HTML, error) {
	return execute(c.tmpl, VariantFormContact, formViewFrom(module, defaultContactAction, defaultContactButton))
}

type formNewsletter struct {
	tmpl *template.Template
}

func newFormNewsletter() (Component, error) {
	tmpl, err := parseTemplate(VariantFormNewsletter)
	if err != nil {
		return nil, err
	}
	return &formNewsletter{tmpl: tmpl}, nil
}

func (c *formNewsletter) Name() string { return VariantFormNewsletter }

func (c *formNewsletter) Render(_ context.Context, module Module) (template.HTML, error) {
	return execute(c.tmpl, VariantFormNewsletter, formViewFrom(module, defaultNewsletterAction, defaultNewsletterButton))
}
