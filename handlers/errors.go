package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"

	"game-with-you/internal/status"
)

// apiError maps a service error onto the response the client sees.
// Storage failures win over validation kinds: corrupt stored data is not
// the caller's fault.
func apiError(logger *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, status.ErrStorageUnavailable):
		logger.Error("storage unavailable", "op", op, "error", err)
		return apis.NewApiError(http.StatusServiceUnavailable, "Stockage indisponible, réessaie plus tard.", nil)
	case status.IsValidation(err):
		return apis.NewApiError(http.StatusUnprocessableEntity, status.Warning(err), nil)
	case errors.Is(err, status.ErrNotFound):
		return apis.NewNotFoundError("Introuvable.", nil)
	}
	logger.Error("request failed", "op", op, "error", err)
	return apis.NewInternalServerError("Erreur interne.", nil)
}
