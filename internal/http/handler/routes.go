package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"admissionapi/internal/service"
)

// Services bundles the use-case implementations the routes depend on.
type Services struct {
	Cases      service.CaseService
	Workflow   service.WorkflowService
	Checklist  service.ChecklistService
	Documents  service.DocumentService
	Dispatches service.DispatchService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin: parse, delegate, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Admission cases and workflow
	app.Post("/admissions", CreateCase(svcs.Cases))
	app.Get("/admissions", ListCases(svcs.Cases))
	app.Get("/admissions/:id", GetCase(svcs.Cases))
	app.Get("/admissions/:id/checklist", GetChecklist(svcs.Checklist))
	app.Get("/admissions/:id/history", CaseHistory(svcs.Workflow))
	app.Post("/admissions/:id/advance", AdvanceCase(svcs.Workflow))
	app.Post("/admissions/:id/cancel", CancelCase(svcs.Workflow))
	app.Post("/admissions/:id/reject", RejectCase(svcs.Workflow))
	app.Post("/admissions/:id/contract", AttachContract(svcs.Cases))
	app.Post("/admissions/:id/signature", RegisterSignature(svcs.Cases))

	// Documents
	app.Post("/admissions/:id/documents", UploadDocument(svcs.Documents))
	app.Get("/documents/:id", GetDocument(svcs.Documents))
	app.Post("/documents/:id/validate", ValidateDocument(svcs.Documents))
	app.Get("/documents/:id/download", DownloadDocument(svcs.Documents))

	// Integrations
	app.Post("/admissions/:id/dispatch", DispatchCase(svcs.Dispatches))
	app.Get("/admissions/:id/dispatches", DispatchHistory(svcs.Dispatches))
}
