// Package swagger serves the API description and an interactive explorer.
package swagger

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Error constants.
var (
	ErrRender = errors.New("openapi render failed")
)

// Route paths.
const (
	JSONPath = "/openapi.json"
	YAMLPath = "/openapi.yaml"
	DocsPath = "/docs"

	swaggerUIVersion = "5.17.14"
	docsTitle        = "Utility API Docs"
)

// openAPIJSON is rendered once from the embedded YAML.
var openAPIJSON = func() []byte {
	b, err := RenderJSON(OpenAPI)
	if err != nil {
		panic(err)
	}
	return b
}()

// Register attaches the OpenAPI document and the explorer page to r.
// Routes:
//
//	GET /openapi.json -> embedded OpenAPI spec rendered as JSON
//	GET /openapi.yaml -> embedded OpenAPI spec as written
//	GET /docs         -> Swagger UI page loading /openapi.json
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Get(JSONPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(openAPIJSON)
	})

	r.Get(YAMLPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})

	page := []byte(docsPage(docsTitle, JSONPath))
	r.Get(DocsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
}

// docsPage returns the Swagger UI HTML pointed at specURL.
func docsPage(title, specURL string) string {
	t := html.EscapeString(title)
	u := html.EscapeString(specURL)
	return fmt.Sprintf(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>%[1]s</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@%[3]s/swagger-ui.css">
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@%[3]s/swagger-ui-bundle.js" crossorigin></script>
    <script>
      window.onload = function () {
        window.ui = SwaggerUIBundle({ url: "%[2]s", dom_id: "#swagger-ui" });
      };
    </script>
  </body>
</html>`, t, u, swaggerUIVersion)
}
