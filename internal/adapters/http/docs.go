package http

import (
	"context"
	"log/slog"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
)

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Spraylog API docs</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
  <style>html{box-sizing:border-box}*,*::before,*::after{box-sizing:inherit}body{margin:0;background:#fafafa}</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '/docs/openapi.json',
      dom_id: '#swagger-ui',
      deepLinking: true,
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: 'BaseLayout',
    });
  </script>
</body>
</html>`

// DefaultSpecPath is where the OpenAPI document lives relative to the repo root.
const DefaultSpecPath = "api/openapi.yaml"

// SetupDocs loads the OpenAPI document at specPath once and registers
// Swagger UI at /docs plus the document as YAML and JSON. A missing or
// unparsable document leaves the UI up and the document routes answering 404.
func SetupDocs(app *fiber.App, specPath string) {
	raw, asJSON := loadOpenAPI(specPath)

	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/html; charset=utf-8")
		return c.SendString(swaggerUIHTML)
	})

	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		if raw == nil {
			return errNotFound(c, "openapi document not found")
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(raw)
	})

	app.Get("/docs/openapi.json", func(c *fiber.Ctx) error {
		if asJSON == nil {
			return errNotFound(c, "openapi document not found")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(asJSON)
	})
}

func loadOpenAPI(specPath string) (raw, asJSON []byte) {
	raw, err := os.ReadFile(specPath)
	if err != nil {
		slog.Warn("openapi document unavailable", "path", specPath, "error", err)
		return nil, nil
	}

	doc, err := openapi3.NewLoader().LoadFromData(raw)
	if err != nil {
		slog.Warn("openapi document does not parse", "path", specPath, "error", err)
		return raw, nil
	}
	if err := doc.Validate(context.Background()); err != nil {
		slog.Warn("openapi document is invalid", "path", specPath, "error", err)
	}

	asJSON, err = doc.MarshalJSON()
	if err != nil {
		slog.Warn("openapi document does not encode as JSON", "error", err)
		return raw, nil
	}
	return raw, asJSON
}
