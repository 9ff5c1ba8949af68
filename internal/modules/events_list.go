package modules

import (
	"context"
	"html/template"
	"strings"
	"time"
)

// eventDateLayouts are tried in order when reading an event date.
var eventDateLayouts = []string{time.RFC3339, "2006-01-02"}

const eventDisplayLayout = "Jan 2, 2006"

type eventsList struct {
	tmpl *template.Template
}

type eventsListView struct {
	Key    string
	Title  string
	Events []eventView
}

type eventView struct {
	Key      string
	Title    string
	Date     string
	DateTime string
	Location string
	URL      string
}

func newEventsList() (Component, error) {
	tmpl, err := parseTemplate(VariantEventsList)
	if err != nil {
		return nil, err
	}
	return &eventsList{tmpl: tmpl}, nil
}

func (c *eventsList) Name() string { return VariantEventsList }

func (c *eventsList) Render(_ context.Context, module Module) (template.HTML, error) {
	view := eventsListView{
		Key:   module.Key,
		Title: strings.TrimSpace(module.String("title")),
	}
	for _, entry := range module.Maps("events") {
		event := FromMap(entry)
		title := strings.TrimSpace(event.String("title"))
		if title == "" {
			continue
		}
		display, machine := formatEventDate(event.String("date"))
		view.Events = append(view.Events, eventView{
			Key:      event.Key,
			Title:    title,
			Date:     display,
			DateTime: machine,
			Location: strings.TrimSpace(event.String("location")),
			URL:      strings.TrimSpace(event.String("url")),
		})
	}
	return execute(c.tmpl, VariantEventsList, view)
}

// formatEventDate returns the display date and the datetime attribute value.
// Unparseable dates are shown verbatim without a datetime.
func formatEventDate(raw string) (display, machine string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	for _, layout := range eventDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format(eventDisplayLayout), parsed.Format("2006-01-02")
		}
	}
	return raw, ""
}
