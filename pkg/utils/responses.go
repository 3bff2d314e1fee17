package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Response is the JSON envelope shared by every API endpoint.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// encodeFailure is sent when the envelope itself cannot be marshalled.
var encodeFailure = []byte(`{"status":false,"message":"Internal server error"}` + "\n")

// ResponseJSON marshals the envelope before touching the writer, so an
// unencodable payload becomes a logged 500 instead of a truncated body.
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	body, err := json.Marshal(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		zap.L().Error("Failed to encode JSON response",
			zap.Error(err),
			zap.Int("status", code),
			zap.String("message", message))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(encodeFailure)
		return
	}

	w.WriteHeader(code)
	if _, err := w.Write(append(body, '\n')); err != nil {
		zap.L().Debug("Failed to write JSON response", zap.Error(err))
	}
}

// ResponseSuccess writes 200 OK.
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, false, message, nil, errors)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, false, message, nil, nil)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, false, message, nil, nil)
}
