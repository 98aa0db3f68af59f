package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/compracerta/internal/barcode"
	"github.com/erazemk/compracerta/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// validationErrors are reported to the client as 400 with their message.
var validationErrors = []error{
	model.ErrNameRequired,
	model.ErrInvalidQuantity,
	model.ErrInvalidPrice,
	model.ErrInvalidAmount,
	model.ErrInvalidEmail,
	model.ErrPasswordTooShort,
	barcode.ErrInvalid,
}

// storeError writes 400 for validation failures, 409 for changes to a
// completed list and 500 for everything else.
func storeError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, model.ErrListCompleted) {
		jsonError(w, http.StatusConflict, model.ErrListCompleted.Error())
		return
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			jsonError(w, http.StatusBadRequest, target.Error())
			return
		}
	}
	slog.Error(message, "error", err)
	jsonError(w, http.StatusInternalServerError, message)
}
