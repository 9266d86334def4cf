package handler

import (
	"strings"
	"time"

	"stockflow-api/internal/middleware"
	"stockflow-api/internal/model"
	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

type batchRequest struct {
	Type  model.TransactionType `json:"type"`
	Items []model.BatchItem     `json:"items"`
}

// CreateBatch records an inward or outward batch
// POST /api/v1/transactions/batch
func (h *TransactionHandler) CreateBatch(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	req.Type = model.TransactionType(strings.ToUpper(string(req.Type)))

	created, err := h.service.CreateBatch(middleware.CurrentUser(c), req.Type, req.Items)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"message": "Transaction recorded",
		"data":    created,
		"view":    string(model.ViewDashboard),
	})
}

// GetTransactions lists movement history
// Query params: type, product_id, search, from, to (YYYY-MM-DD)
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	filter := service.TransactionFilter{
		Search:    c.Query("search"),
		Type:      model.TransactionType(strings.ToUpper(c.Query("type"))),
		ProductID: c.Query("product_id"),
	}
	if filter.Type == "ALL" {
		filter.Type = ""
	}
	if from := c.Query("from"); from != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid from date, use YYYY-MM-DD"})
		}
		filter.From = start
	}
	if to := c.Query("to"); to != "" {
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid to date, use YYYY-MM-DD"})
		}
		// sampai akhir hari
		filter.To = end.Add(24*time.Hour - time.Nanosecond)
	}

	transactions := h.service.GetAllTransactions(filter)
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	return c.JSON(fiber.Map{"data": transactions})
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.service.GetTransactionByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tx)
}

func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	var patch model.TransactionPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.EditTransaction(middleware.CurrentUser(c), c.Params("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction updated", "data": updated})
}

func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.service.DeleteTransaction(middleware.CurrentUser(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}
