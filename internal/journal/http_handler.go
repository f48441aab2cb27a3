package journal

import (
	"errors"
	"net/http"
	"strconv"

	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// ListRecent handles GET /v1/loans/events
func (h *HTTPHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid limit", []httpx.ErrorDetail{
				{Field: "limit", Message: "limit must be a positive integer"},
			})
			return
		}
		limit = n
	}

	events, err := h.svc.Recent(r.Context(), limit)
	if errors.Is(err, ErrDisabled) {
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "JOURNAL_DISABLED", "Loan journal is not configured", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, events, map[string]any{"count": len(events)})
}
