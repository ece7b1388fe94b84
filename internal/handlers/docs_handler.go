package handlers

import (
	"productapi/internal/docs"

	"github.com/gofiber/fiber/v2"
)

// DocsHandler serves the OpenAPI description of the API.
type DocsHandler struct {
	document docs.Document
}

// NewDocsHandler creates a new DocsHandler.
func NewDocsHandler(document docs.Document) *DocsHandler {
	return &DocsHandler{document: document}
}

// RegisterRoutes registers the documentation routes under /docs.
func (h *DocsHandler) RegisterRoutes(router fiber.Router) {
	docsRoutes := router.Group("/docs")
	docsRoutes.Get("/", h.HandleJSON)
	docsRoutes.Get("/openapi.json", h.HandleJSON)
	docsRoutes.Get("/openapi.yaml", h.HandleYAML)
}

// HandleJSON returns the document as JSON.
func (h *DocsHandler) HandleJSON(c *fiber.Ctx) error {
	return c.JSON(h.document)
}

// HandleYAML returns the document as YAML.
func (h *DocsHandler) HandleYAML(c *fiber.Ctx) error {
	out, err := h.document.YAML()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/yaml")
	return c.Send(out)
}
