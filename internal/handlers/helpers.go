package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// writeJSON serializes v to the response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError sends a JSON error payload.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// queryAsInt parses an integer query parameter with a default.
func queryAsInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// queryAsFloat parses a float query parameter with a default.
func queryAsFloat(r *http.Request, key string, defaultValue float64) float64 {
	if value := r.URL.Query().Get(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil && floatValue > 0 {
			return floatValue
		}
	}
	return defaultValue
}
