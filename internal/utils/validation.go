package utils

import (
	"net/http"
	"net/mail"
)

// FieldErrors maps field name to a human-readable problem. Validation is the
// one error class reported with per-field detail.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f FieldErrors) Error() string {
	return "validation failed"
}

// ValidationResponse reports field-level detail with a 400.
func ValidationResponse(w http.ResponseWriter, errs FieldErrors) {
	JSONResponse(w, http.StatusBadRequest, Payload{
		Success: false,
		Message: "Validation failed",
		Data:    errs,
	})
}

// ValidEmail reports whether s parses as a bare address.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
