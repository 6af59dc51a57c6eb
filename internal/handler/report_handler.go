package handler

import (
	"go-pos-kasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetSalesReport returns flattened sale records for a date range
// GET /reports/sales?startDate=&endDate=&customerType=&paymentType=&search=
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	rows, err := h.service.SalesReport(userID, service.ReportQuery{
		StartDate:    c.Query("startDate"),
		EndDate:      c.Query("endDate"),
		CustomerType: c.Query("customerType"),
		PaymentType:  c.Query("paymentType"),
		Search:       c.Query("search"),
	})
	if err != nil {
		return err
	}

	return c.JSON(rows)
}
