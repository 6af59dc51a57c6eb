// Package apperr defines the error taxonomy shared by services and the HTTP
// layer. Business-rule errors carry enough detail to identify the offending
// line item; anything outside the taxonomy maps to an opaque 500.
package apperr

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidationError reports malformed or missing input (HTTP 400).
type ValidationError struct {
	Fields []string
}

func NewValidation(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

// NotFoundError reports an unknown id (HTTP 404).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Resource, e.ID)
}

// InsufficientStockError reports a cart line that exceeds current stock (HTTP 400).
type InsufficientStockError struct {
	ProductID uuid.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s. Available: %d, Requested: %d",
		e.ProductID, e.Available, e.Requested)
}

// PriceMismatchError reports a client-submitted unit price that does not match
// the stored price for the selected tier (HTTP 400).
type PriceMismatchError struct {
	ProductID uuid.UUID
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("price mismatch for product %s", e.ProductID)
}
