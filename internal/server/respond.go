package server

import (
	"encoding/json"
	"net/http"

	"github.com/twalderman/zimage-studio/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Server("failed to encode response: %v", err)
	}
}

// writeError emits the {"detail": ...} error body all endpoints share.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
