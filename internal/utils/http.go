package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/storefront-auth/models"
)

// WriteJSON serializes data to JSON and writes it to the response with
// statusCode and a "Content-Type: application/json" header.
//
// If marshaling fails, it responds with 500 Internal Server Error and
// returns a wrapped error. On success it returns the number of body bytes
// written.
//
// Example usage:
//
//	WriteJSON(w, models.LoginResponse{Token: tok, User: view}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes {"error": message} with statusCode.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}
