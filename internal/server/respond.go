package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"lilypay/internal/auth"
	"lilypay/internal/cart"
	"lilypay/internal/catalog"
	"lilypay/internal/order"
	"lilypay/internal/report"
)

// envelope is the JSON response shape for every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: status < 400,
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, message, nil)
}

// statusFor maps domain errors onto HTTP statuses. Validation problems
// are the cashier's to fix; duplicates and storage faults are not.
func statusFor(err error) int {
	switch {
	case order.IsValidation(err),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidAmount),
		errors.Is(err, report.ErrInvalidLimit),
		errors.Is(err, catalog.ErrItemUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, catalog.ErrItemNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrDuplicateOrderNumber):
		return http.StatusConflict
	default:
		var storageErr *order.StorageError
		if errors.As(err, &storageErr) {
			return http.StatusServiceUnavailable
		}
		return http.StatusInternalServerError
	}
}
