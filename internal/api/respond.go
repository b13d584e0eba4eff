package api

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope is the uniform error body. Raw carries verbatim model output
// when generation produced unparsable text.
type errorEnvelope struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}

// setHeaders attaches the fixed response headers. Every response, success or
// error, goes out with a JSON content type and permissive CORS.
func setHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-License-Key")
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	setHeaders(w)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorEnvelope{Error: msg})
}

func respondErrorRaw(w http.ResponseWriter, status int, msg, raw string) {
	respondJSON(w, status, errorEnvelope{Error: msg, Raw: raw})
}
