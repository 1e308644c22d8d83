package server

import (
	"encoding/json"
	"net/http"
)

// errorBody is the error payload of the HTTP contract. Code/name/
// message are omitted when the taxonomy doesn't supply them.
type errorBody struct {
	Error   string `json:"error"`
	Code    int32  `json:"code,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encode errors past this point can only be half-written bodies;
	// the status line is already gone.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, body)
}
