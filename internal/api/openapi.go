package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

var (
	openAPIJSONOnce sync.Once
	openAPIJSON     []byte
	openAPIJSONErr  error
)

// OpenAPIYAML returns the embedded OpenAPI document.
func OpenAPIYAML() []byte { return openAPIYAML }

// OpenAPIJSON returns the OpenAPI document converted to JSON.
func OpenAPIJSON() ([]byte, error) {
	openAPIJSONOnce.Do(func() {
		var doc map[string]any
		if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
			openAPIJSONErr = fmt.Errorf("parse openapi yaml: %w", err)
			return
		}
		openAPIJSON, openAPIJSONErr = json.Marshal(doc)
	})
	return openAPIJSON, openAPIJSONErr
}

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>DVD Shop Calculator API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      SwaggerUIBundle({ url: {{.SpecURL}}, dom_id: "#swagger-ui", docExpansion: "list", deepLinking: false });
    };
  </script>
</body>
</html>
`))

// WriteDocsPage renders the Swagger UI page pointing at specURL.
func WriteDocsPage(w io.Writer, specURL string) error {
	return docsPage.Execute(w, struct{ SpecURL string }{SpecURL: specURL})
}
