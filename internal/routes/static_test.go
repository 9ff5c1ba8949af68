package routes

import (
	"strings"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-sections/pkg/interfaces"
)

func TestTableDistinguishesRootFromMiss(t *testing.T) {
	table := NewTable(map[string]string{"home": "", "about": "about/"})

	segment, ok := table.Lookup("home")
	if !ok || segment != "" {
		t.Fatalf("expected root segment match, got %q (%v)", segment, ok)
	}
	if segment, ok := table.Lookup("about"); !ok || segment != "about/" {
		t.Fatalf("expected about segment as given, got %q (%v)", segment, ok)
	}
	if _, ok := table.Lookup("missing"); ok {
		t.Fatal("expected miss for unknown route type")
	}
	if _, ok := table.Lookup(""); ok {
		t.Fatal("expected blank route type to miss")
	}
}

func TestChainReturnsFirstMatch(t *testing.T) {
	first := NewTable(map[string]string{"about": "company"})
	second := NewTable(map[string]string{"about": "about", "journal": "journal"})
	chain := Chain{nil, first, second}

	if segment, _ := chain.Lookup("about"); segment != "company" {
		t.Fatalf("expected first table to win, got %q", segment)
	}
	if segment, ok := chain.Lookup("journal"); !ok || segment != "journal" {
		t.Fatalf("expected fallthrough to second table, got %q (%v)", segment, ok)
	}
}

func TestStaticRoutesFuncAdapter(t *testing.T) {
	var lookup interfaces.StaticRoutes = interfaces.StaticRoutesFunc(func(routeType string) (string, bool) {
		return strings.ToUpper(routeType), routeType != ""
	})
	if segment, ok := lookup.Lookup("x"); !ok || segment != "X" {
		t.Fatalf("expected adapter result, got %q (%v)", segment, ok)
	}
}

func TestURLKitRoutesResolvesSegments(t *testing.T) {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "frontend",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"about":   "/about",
					"journal": "/journal",
				},
			},
		},
	})

	lookup := NewURLKitRoutes(manager, "frontend")

	segment, ok := lookup.Lookup("about")
	if !ok || segment != "about" {
		t.Fatalf("expected about segment, got %q (%v)", segment, ok)
	}
	if _, ok := lookup.Lookup("missing"); ok {
		t.Fatal("expected unknown route to miss")
	}
	if _, ok := NewURLKitRoutes(manager, "backend").Lookup("about"); ok {
		t.Fatal("expected unknown group to miss")
	}
}

func TestSegmentOf(t *testing.T) {
	segment, err := segmentOf("https://example.com/")
	if err != nil || segment != "" {
		t.Fatalf("expected root segment, got %q (%v)", segment, err)
	}
}
