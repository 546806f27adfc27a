package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"scrapedash/internal/apify"
	"scrapedash/internal/service"
)

type apiError struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, apiError{Message: msg})
}

// writeFailure maps a failed operation to a status code:
// bad input 400, missing token 503, upstream rejection 502.
func writeFailure(w http.ResponseWriter, err error) {
	var reqErr *apify.RequestError
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apify.ErrMissingCredential):
		writeErr(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &reqErr):
		writeErr(w, http.StatusBadGateway, reqErr.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeErr(w, http.StatusGatewayTimeout, "upstream timed out")
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}
