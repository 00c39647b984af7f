package stock

import (
	"encoding/json"
	"errors"
	"net/http"

	"yahoofs/finance"
	"yahoofs/history"
	"yahoofs/share"
)

// ErrorResponse is the body of every non-200 response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an extraction error to a response status. Missing sections,
// rows and unknown fields are the caller's 404; malformed dates, ranges and
// modes are 400; everything that means the upstream page is unavailable or
// changed shape is 502.
func statusFor(err error) int {
	switch {
	case errors.Is(err, finance.ErrSectionNotFound),
		errors.Is(err, errRowNotFound),
		errors.Is(err, share.ErrUnknownField):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, history.ErrInvalidRange),
		errors.Is(err, history.ErrInvalidChunk),
		errors.Is(err, history.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, share.ErrPageNotLoaded):
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

// respond writes data as JSON, or the error with its mapped status.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data interface{}, err error) {
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
		} else {
			h.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
		}
		h.sendJSON(w, status, ErrorResponse{Error: err.Error()})
		return
	}
	h.sendJSON(w, http.StatusOK, data)
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
