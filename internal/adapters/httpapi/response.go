package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ogurasousui/hrms-lite/internal/adapters/errclass"
	"github.com/ogurasousui/hrms-lite/internal/platform/logging"
)

// Error はエラーレスポンスの本体です。
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope はすべての JSON レスポンスの共通形式です。
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "error", err)
	}
}

func success(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: logging.RequestID(r.Context())})
}

func created(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: logging.RequestID(r.Context())})
}

func fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, Envelope{
		Error:     &Error{Code: code, Message: message},
		RequestID: logging.RequestID(r.Context()),
	})
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	fail(w, r, http.StatusBadRequest, errclass.KindInvalidArgument.String(), message)
}

// writeError はコア層のエラーを分類し、対応するステータスで返します。
// 内部エラーの詳細はログにのみ残します。
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errclass.Classify(err)
	switch kind {
	case errclass.KindInvalidArgument:
		fail(w, r, http.StatusBadRequest, kind.String(), err.Error())
	case errclass.KindNotFound:
		fail(w, r, http.StatusNotFound, kind.String(), err.Error())
	case errclass.KindConflict:
		fail(w, r, http.StatusConflict, kind.String(), err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		fail(w, r, http.StatusInternalServerError, kind.String(), "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
