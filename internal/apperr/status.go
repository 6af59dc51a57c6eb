package apperr

import "errors"

// Status maps a taxonomy error to its HTTP status code. Errors outside the
// taxonomy are treated as internal (500).
func Status(err error) int {
	var (
		ve *ValidationError
		nf *NotFoundError
		is *InsufficientStockError
		pm *PriceMismatchError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &is), errors.As(err, &pm):
		return 400
	case errors.As(err, &nf):
		return 404
	default:
		return 500
	}
}
