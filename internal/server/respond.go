package server

import (
	"encoding/json"
	"net/http"

	"github.com/quantpane/quantpane/pkg/errors"
)

// errorBody is the uniform error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errors.ErrCodePageNotFound),
		errors.Is(err, errors.ErrCodeChartNotFound),
		errors.Is(err, errors.ErrCodePartnerNotFound),
		errors.Is(err, errors.ErrCodeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidBlock),
		errors.Is(err, errors.ErrCodeInvalidCell),
		errors.Is(err, errors.ErrCodeInvalidBodyType),
		errors.Is(err, errors.ErrCodeInvalidFormat),
		errors.Is(err, errors.ErrCodeInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeStoreConflict):
		status = http.StatusConflict
	}

	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}

	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    code,
		Message: errors.UserMessage(err),
	}})
}
