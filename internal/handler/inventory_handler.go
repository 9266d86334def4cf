package handler

import (
	"stockflow-api/internal/middleware"
	"stockflow-api/internal/model"
	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service      service.InventoryService
	transactions service.TransactionService
}

func NewInventoryHandler(s service.InventoryService, tx service.TransactionService) *InventoryHandler {
	return &InventoryHandler{service: s, transactions: tx}
}

func productFilter(c *fiber.Ctx) service.ProductFilter {
	return service.ProductFilter{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		LowStockOnly: c.QueryBool("low_stock", false),
	}
}

// GetProducts lists products
// Query params: search, category, low_stock
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products := h.service.GetAllProducts(productFilter(c))
	if products == nil {
		products = []model.Product{}
	}
	return c.JSON(fiber.Map{
		"data":       products,
		"categories": h.service.Categories(),
	})
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// GetProductHistory returns the movement history of one product, newest first
func (h *InventoryHandler) GetProductHistory(c *fiber.Ctx) error {
	history := h.transactions.ProductHistory(c.Params("id"))
	if history == nil {
		history = []model.Transaction{}
	}
	return c.JSON(fiber.Map{"data": history})
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateProduct(middleware.CurrentUser(c), &product)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": created})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	var patch model.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(middleware.CurrentUser(c), c.Params("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

type bulkUpdateRequest struct {
	IDs   []string           `json:"ids"`
	Patch model.ProductPatch `json:"patch"`
}

// BulkUpdate applies one patch to several products
// PUT /api/v1/products/bulk
func (h *InventoryHandler) BulkUpdate(c *fiber.Ctx) error {
	var req bulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.BulkUpdate(middleware.CurrentUser(c), req.IDs, req.Patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Products updated", "updated": updated})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(middleware.CurrentUser(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
