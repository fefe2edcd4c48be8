package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const msgInternalError = "внутренняя ошибка сервера"

// Машиночитаемые типы ошибок бизнес-правил. Статуса не всегда достаточно:
// превышение лимита и cooldown оба отдаются как 429, различить их клиент
// может только по kind.
const (
	KindLimitExceeded      = "limit_exceeded"
	KindRateLimited        = "rate_limited"
	KindInvalidSessionType = "invalid_session_type"
	KindSlotUnavailable    = "slot_unavailable"
)

// ErrorResponse стандартная модель ошибки API.
// Kind заполняется для ошибок бизнес-правил, у которых HTTP-статус
// неоднозначен.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json body: %w", err)
	}

	return nil
}

// RespondJSON пишет JSON-ответ с указанным статусом.
// При v == nil тело не пишется и Content-Type не проставляется.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	if v == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Ошибку записи уже некому вернуть
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет ошибку с указанным статусом и сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{
		Code:    status,
		Message: message,
	})
}

// RespondErrorWithKind пишет ошибку с машиночитаемым типом
func RespondErrorWithKind(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{
		Code:    status,
		Kind:    kind,
		Message: message,
	})
}

// ErrorDetail извлекает из ошибки текст, добавленный поверх сентинела.
// Если дополнительного текста нет, возвращает fallback.
func ErrorDetail(err, sentinel error, fallback string) string {
	detail := strings.TrimPrefix(err.Error(), sentinel.Error())
	detail = strings.TrimPrefix(detail, ": ")
	if detail == "" || detail == err.Error() {
		return fallback
	}
	return detail
}

// RespondBadRequest пишет ошибку 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized пишет ошибку 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden пишет ошибку 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound пишет ошибку 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError пишет ошибку 500 со стандартным сообщением
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
