package handler

import (
	"bytes"
	"fmt"

	"stockflow-api/internal/middleware"
	"stockflow-api/internal/model"
	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SystemHandler struct {
	service service.SystemService
}

func NewSystemHandler(s service.SystemService) *SystemHandler {
	return &SystemHandler{service: s}
}

// Backup downloads products, transactions and logs as one JSON document
// GET /api/v1/system/backup
func (h *SystemHandler) Backup(c *fiber.Ctx) error {
	snapshot, err := h.service.Backup(middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	filename := fmt.Sprintf("stockflow_backup_%s.json", snapshot.ExportedAt.Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.JSON(snapshot)
}

// Restore replaces products and transactions from a backup document
// POST /api/v1/system/restore
func (h *SystemHandler) Restore(c *fiber.Ctx) error {
	view, err := h.service.Restore(middleware.CurrentUser(c), c.Body())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "System restored successfully", "view": view})
}

// Reset wipes inventory data and the audit log
// POST /api/v1/system/reset
func (h *SystemHandler) Reset(c *fiber.Ctx) error {
	view, err := h.service.Reset(middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "System reset complete", "view": view})
}

func logFilter(c *fiber.Ctx) service.LogFilter {
	return service.LogFilter{
		Date:   c.Query("date"),
		Module: c.Query("module"),
		Action: c.Query("action"),
		UserID: c.Query("user_id"),
		Search: c.Query("search"),
	}
}

// GetLogs returns the audit log, newest first
// Query params: date (YYYY-MM-DD), module, action, user_id, search
func (h *SystemHandler) GetLogs(c *fiber.Ctx) error {
	logs, err := h.service.ListLogs(middleware.CurrentUser(c), logFilter(c))
	if err != nil {
		return fail(c, err)
	}
	if logs == nil {
		logs = []model.LogEntry{}
	}
	return c.JSON(fiber.Map{"data": logs})
}

func (h *SystemHandler) ExportLogs(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportLogs(middleware.CurrentUser(c), logFilter(c), &buf); err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="system_logs.csv"`)
	return c.Send(buf.Bytes())
}

func (h *SystemHandler) GetTheme(c *fiber.Ctx) error {
	theme, err := h.service.GetTheme(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": theme, "presets": model.ThemePresets})
}

func (h *SystemHandler) UpdateTheme(c *fiber.Ctx) error {
	var theme model.Theme
	if err := c.BodyParser(&theme); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	saved, err := h.service.UpdateTheme(c.UserContext(), middleware.CurrentUser(c), theme)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Theme updated", "data": saved})
}
