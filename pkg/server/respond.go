package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/seqmap/pkg/errors"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeParse,
		errors.ErrCodeInvariant,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidView,
		errors.ErrCodeInvalidEdit,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		msg = "internal error"
	}
	writeHTTPError(w, status, string(code), msg)
}

func writeHTTPError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
