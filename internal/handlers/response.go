// internal/handlers/response.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.ErrorContext(ctx, "failed to encode JSON response", "err", err)
	}
}

func respondMessage(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(ctx, w, logger, status, ErrorResponse{Error: message})
}

// respondError maps core errors onto status codes. Storage and invariant
// failures are logged and reported without their details.
func respondError(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		logger.ErrorContext(ctx, "unexpected error", "err", err)
		respondMessage(ctx, w, logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := ErrorResponse{Error: derr.Message}
	status := StatusFor(derr.Kind)
	switch derr.Kind {
	case domain.KindValidation:
		if len(derr.Fields) > 0 {
			resp.Fields = derr.Fields
		} else if derr.Field != "" {
			resp.Fields = map[string]string{derr.Field: derr.Message}
		}
	case domain.KindStorage, domain.KindInvariant:
		logger.ErrorContext(ctx, "request failed", "err", err, slog.String("kind", string(derr.Kind)))
		resp.Error = "Internal server error"
	}

	respondJSON(ctx, w, logger, status, resp)
}

// StatusFor returns the HTTP status of an error kind
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindUnauthorized, domain.KindBadCredentials:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusExpectationFailed
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID parses a positive integer path value
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}
