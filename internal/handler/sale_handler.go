package handler

import (
	"go-pos-kasir/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// Helper untuk ambil User ID dari JWT Context (set by auth middleware)
func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(401, "Unauthorized")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(401, "Unauthorized")
	}
	return id, nil
}

// CreateTransaction handles the checkout flow
// POST /transaction
func (h *SaleHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	sales, err := h.service.RecordSale(userID, &req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Transaction completed successfully",
		"sales":   sales,
	})
}
