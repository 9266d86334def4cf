package handler

import (
	"strconv"

	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   h.service.GetStockMovement(days),
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	return c.JSON(h.service.GetDashboardStats())
}

// GetStockReport returns the stock report
// Query params: search, category (All, Low Stock or a category name)
func (h *DashboardHandler) GetStockReport(c *fiber.Ctx) error {
	filter := service.ProductFilter{Search: c.Query("search")}
	switch category := c.Query("category", "All"); category {
	case "All", "":
	case "Low Stock":
		filter.LowStockOnly = true
	default:
		filter.Category = category
	}
	return c.JSON(h.service.GetStockReport(filter))
}
