package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON_NoContentHasNoBody(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	// Без тела заголовок Content-Type не проставляется
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestRespondErrorWithKind(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondErrorWithKind(rec, http.StatusTooManyRequests, KindRateLimited, "попробуйте позже")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, KindRateLimited, resp.Kind)
	assert.Equal(t, "попробуйте позже", resp.Message)
}

func TestErrorDetail(t *testing.T) {
	sentinel := errors.New("op: rule violated")

	// Обёрнутая ошибка отдаёт добавленный текст
	wrapped := fmt.Errorf("%w: следующую заявку можно создать через 42 сек.", sentinel)
	assert.Equal(t, "следующую заявку можно создать через 42 сек.", ErrorDetail(wrapped, sentinel, "fallback"))

	// Голый сентинел без деталей
	assert.Equal(t, "fallback", ErrorDetail(sentinel, sentinel, "fallback"))

	// Ошибка, не начинающаяся с текста сентинела
	assert.Equal(t, "fallback", ErrorDetail(errors.New("other failure"), sentinel, "fallback"))
}
