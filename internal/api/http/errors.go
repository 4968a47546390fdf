package http

import (
	"errors"
	"net/http"

	"github.com/lumen-studio/lumen-backend/internal/collections"
)

// StoreErrorStatus maps classified store errors onto HTTP statuses.
// Permission denials keep their own status so every call site renders
// the same access-denied treatment; transport failures collapse to a
// generic upstream message.
func StoreErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, collections.ErrPermissionDenied):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, collections.ErrTransport):
		return http.StatusBadGateway, "service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
