package handler

import (
	"bytes"
	"fmt"

	"stockflow-api/internal/middleware"
	"stockflow-api/internal/model"
	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	service service.SyncService
}

func NewSyncHandler(s service.SyncService) *SyncHandler {
	return &SyncHandler{service: s}
}

// ImportProducts replaces the catalogue from a CSV body
// POST /api/v1/sync/import (text/csv)
func (h *SyncHandler) ImportProducts(c *fiber.Ctx) error {
	count, err := h.service.ImportProducts(middleware.CurrentUser(c), string(c.Body()))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Successfully imported %d products.", count),
		"imported": count,
	})
}

// ExportProducts downloads the catalogue as CSV
func (h *SyncHandler) ExportProducts(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportProducts(middleware.CurrentUser(c), &buf); err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory_export.csv"`)
	return c.Send(buf.Bytes())
}

type smartUpdateRequest struct {
	Updates []service.SmartUpdate `json:"updates"`
}

// SmartUpdate applies stock instructions produced by the AI assistant
// POST /api/v1/ai/smart-update
func (h *SyncHandler) SmartUpdate(c *fiber.Ctx) error {
	var req smartUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	applied, err := h.service.SmartUpdate(middleware.CurrentUser(c), req.Updates)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("AI Agent applied updates to %d products", applied),
		"applied": applied,
		"view":    string(model.ViewInventory),
	})
}
