package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hunmap/roadnet/errors"
)

// HandleError writes an APIError as a JSON response with its status code.
func HandleError(w http.ResponseWriter, apiError errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiError.Code)

	if err := json.NewEncoder(w).Encode(apiError); err != nil {
		http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
	}
}
