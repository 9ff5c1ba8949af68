package modules

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// parseTemplate parses the embedded template file for a variant. Each file
// defines a template named after its variant.
func parseTemplate(variant string) (*template.Template, error) {
	tmpl, err := template.New(variant).ParseFS(templateFS, "templates/"+variant+".html")
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", variant, err)
	}
	if tmpl.Lookup(variant) == nil {
		return nil, fmt.Errorf("parse %s template: no template named %q", variant, variant)
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
