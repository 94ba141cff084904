package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/noircloset/noir/internal/gateway"
	"github.com/noircloset/noir/internal/kv"
	"github.com/noircloset/noir/internal/wardrobe"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]any{"error": message})
}

// retryableError writes an error the client may retry, used for stylist
// failures where the model call or its reply went wrong.
func retryableError(w http.ResponseWriter, message string) {
	jsonResponse(w, http.StatusBadGateway, map[string]any{"error": message, "retryable": true})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// domainError maps repository errors to HTTP statuses. Quota exhaustion gets
// its own status so clients can tell "closet is full" from a server fault.
func domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wardrobe.ErrInvalidItem):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, wardrobe.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, kv.ErrQuotaExceeded):
		jsonError(w, http.StatusInsufficientStorage, "storage quota exceeded, remove some items first")
	default:
		slog.Error("request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// stylistError maps gateway errors. Everything is retryable from the
// client's point of view: either the call failed or the reply was unusable.
func stylistError(w http.ResponseWriter, err error) {
	if errors.Is(err, gateway.ErrBadResponse) {
		slog.Warn("stylist returned unusable reply", "error", err)
		retryableError(w, "the stylist gave an unusable answer, please try again")
		return
	}
	slog.Error("stylist call failed", "error", err)
	retryableError(w, "the stylist is unavailable, please try again")
}
