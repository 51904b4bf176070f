package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error     string   `json:"error"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string, details ...string) {
	reqID := middleware.GetReqID(r.Context())
	zap.L().Debug("api: error response",
		zap.Int("status", status),
		zap.String("error", msg),
		zap.String("path", r.URL.Path),
		zap.String("request_id", reqID),
	)
	respondJSON(w, status, errorResponse{Error: msg, Details: details, RequestID: reqID})
}

// respondInternal logs err in full and sends a generic 500.
func respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("api: request failed",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	respondError(w, r, http.StatusInternalServerError, "internal error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return eris.Wrap(err, "api: decode body")
	}
	return nil
}
