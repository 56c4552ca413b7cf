package ui

import (
	"encoding/json"
	"net/http"

	"clauseforge/domain/core"
	"clauseforge/internal"
	apperrors "clauseforge/internal/errors"
)

// errorResponse is the structured payload for any failed request. Stage
// identifies which pipeline step failed so partial-package callers can tell
// a missing template from a dead rendering engine.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Stage string `json:"stage"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		internal.DefaultLogger.Error("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, stage string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		internal.DefaultLogger.Error("%s failed: %v", stage, err)
	}
	writeJSON(w, status, errorResponse{
		Error: err.Error(),
		Code:  errorCode(err),
		Stage: stage,
	})
}

func statusFor(err error) int {
	switch {
	case core.IsNotFoundError(err):
		return http.StatusNotFound
	case core.IsRenderError(err):
		return http.StatusBadGateway
	}
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeRenderFailed, apperrors.CodeExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error) string {
	switch {
	case core.IsNotFoundError(err):
		return apperrors.CodeNotFound
	case core.IsRenderError(err):
		return apperrors.CodeRenderFailed
	}
	if code := apperrors.GetCode(err); code != "UNKNOWN" {
		return code
	}
	return apperrors.CodeInternalError
}
