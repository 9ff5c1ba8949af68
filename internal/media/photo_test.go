package media

import (
	"math"
	"strings"
	"testing"

	"github.com/goliatone/go-sections/internal/richtext"
)

func TestAspectPadding(t *testing.T) {
	cases := []struct {
		ratio  float64
		expect string
	}{
		{2, "50%"},
		{0.5, "200%"},
		{4, "25%"},
		{0, ""},
		{-1, ""},
		{math.Inf(1), ""},
		{math.NaN(), ""},
	}
	for _, tc := range cases {
		if got := AspectPadding(tc.ratio); got != tc.expect {
			t.Fatalf("AspectPadding(%v): expected %q, got %q", tc.ratio, tc.expect, got)
		}
	}
}

func TestQueryURLBuilder(t *testing.T) {
	builder := QueryURLBuilder{Quality: 80, Auto: "format"}
	got := builder.URL("https://cdn.test/a.jpg?fit=max", 500)
	expect := "https://cdn.test/a.jpg?auto=format&fit=max&q=80&w=500"
	if got != expect {
		t.Fatalf("expected %q, got %q", expect, got)
	}
	if builder.URL("  ", 500) != "" {
		t.Fatal("expected empty source to stay empty")
	}
}

func TestPhotoRendererRender(t *testing.T) {
	r := NewPhotoRenderer(nil)
	html := string(r.Render(PhotoProps{
		Photo:       Source{URL: "https://cdn.test/a.jpg", Alt: "A \"quoted\" alt"},
		SrcsetSizes: []int{500, 800},
		Sizes:       "100vw",
		PaddingTop:  "50%",
		Width:       1800,
	}))

	expectations := []string{
		`<figure class="photo">`,
		`<div class="photo-ratio" style="padding-top:50%">`,
		`src="https://cdn.test/a.jpg?auto=format&amp;w=1800"`,
		`srcset="https://cdn.test/a.jpg?auto=format&amp;w=500 500w, https://cdn.test/a.jpg?auto=format&amp;w=800 800w"`,
		`sizes="100vw"`,
		`width="1800"`,
		`alt="A &#34;quoted&#34; alt"`,
		`loading="lazy"`,
	}
	for _, want := range expectations {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %s", want, html)
		}
	}
}

func TestPhotoRendererSkipsMissingSource(t *testing.T) {
	if got := NewPhotoRenderer(nil).Render(PhotoProps{Width: 1800}); got != "" {
		t.Fatalf("expected no output without a source, got %q", got)
	}
}

func TestPhotoRendererOmitsPaddingWhenEmpty(t *testing.T) {
	html := string(NewPhotoRenderer(nil).Render(PhotoProps{Photo: Source{URL: "https://cdn.test/a.jpg"}}))
	if strings.Contains(html, "padding-top") {
		t.Fatalf("expected no padding style, got %s", html)
	}
}

func TestSourceFromNode(t *testing.T) {
	doc, err := richtext.DecodeBytes([]byte(`{"_type":"figure","url":"https://cdn.test/b.jpg","alt":"B","aspectRatio":1.5}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	src := SourceFromNode(&doc[0])
	if src.URL != "https://cdn.test/b.jpg" || src.Alt != "B" || src.AspectRatio != 1.5 {
		t.Fatalf("unexpected source %+v", src)
	}
}
