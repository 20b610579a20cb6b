// Package handlers implements the reference HTTP binding's request
// handlers. The HTTP surface itself is a thin demonstration of the
// boundary external collaborators (the crawler, the query layer, the P2P
// transport) are expected to drive — not a general API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andrey/p2psearch-ledger/internal/services/ledger"
)

// decodeJSON decodes r's body into v, reporting malformed bodies as
// ledger.ErrInvalidArgument so writeError maps them to 400.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(ledger.ErrInvalidArgument, err)
	}
	return nil
}

// errorResponse is the JSON body written for any handler error.
type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, err error, message string) {
	w.Header().Set("Content-Type", "application/json")

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrStorage):
		status = http.StatusBadGateway
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: status, Details: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
