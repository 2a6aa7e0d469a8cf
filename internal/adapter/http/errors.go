package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/adapter/http/middleware"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

// statusFor maps a domain error onto an HTTP status and an error type label.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidFilter), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrWearableNotFound), errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrOwnWearable), errors.Is(err, domain.ErrSoldOut):
		return http.StatusConflict, "conflict"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeError sends {"error": msg}. Internal causes are logged and replaced by fallback.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, route string, err error, fallback string) {
	status, errType := statusFor(err)
	h.metrics.ObserveError(route, errType)

	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		h.logger.Error(fallback,
			zap.String("route", route),
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
			zap.Error(err))
		msg = fallback
	case http.StatusGatewayTimeout:
		h.logger.Warn("Request timed out", zap.String("route", route), zap.Error(err))
		msg = "request timed out"
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
