package handler

import (
	"go-pos-kasir/internal/model"
	"go-pos-kasir/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// GetCategories lists all categories
// GET /categories
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// CreateCategory adds a new category
// POST /categories
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateCategory(&category); err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{"message": "Category added successfully", "category": category})
}

// GetProducts lists all products
// GET /products
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GetProductsByCategory lists products belonging to one category
// GET /products/category/:categoryId
func (h *CatalogHandler) GetProductsByCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	products, err := h.service.ProductsByCategory(categoryID)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// SearchProducts does a case-insensitive substring search on product name
// GET /products/search?query=
func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	products, err := h.service.SearchProducts(c.Query("query"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// CreateProduct adds a new product
// POST /products
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product added successfully", "product": product})
}

// GetStock returns the current stock of a product
// GET /products/:id/stock
func (h *CatalogHandler) GetStock(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	stock, err := h.service.GetStock(productID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stock": stock})
}

type adjustStockRequest struct {
	Quantity int `json:"quantity"`
}

// AdjustStock decrements a product's stock, floored at zero
// PUT /products/:id/stock
func (h *CatalogHandler) AdjustStock(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	stock, err := h.service.AdjustStock(productID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stock": stock})
}
