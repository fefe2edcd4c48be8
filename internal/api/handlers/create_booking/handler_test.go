package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyService/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TherapyService/internal/usecase/create_booking"
)

// Fakes

type fakeUseCase struct {
	execute func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return f.execute(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// serve прогоняет запрос через Auth middleware, как в продовом роутере
func serve(t *testing.T, uc *fakeUseCase, body string) (*httptest.ResponseRecorder, handlers.ErrorResponse) {
	t.Helper()

	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "42")
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)

	var errResp handlers.ErrorResponse
	if rec.Code >= http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	}
	return rec, errResp
}

func failingUseCase(err error) *fakeUseCase {
	return &fakeUseCase{
		execute: func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
			return nil, err
		},
	}
}

// Tests

func TestHandle_SessionTypeDetailReachesBody(t *testing.T) {
	// Текст подсказки из usecase: какой тип сессии ожидается
	err := fmt.Errorf("%w: %s", createBooking.ErrInvalidSessionType,
		"у вас уже есть сессии, выберите повторную сессию (тип терапии: cbt)")

	rec, resp := serve(t, failingUseCase(err), `{"slotId":7,"sessionType":"first"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, handlers.KindInvalidSessionType, resp.Kind)
	assert.Equal(t, "у вас уже есть сессии, выберите повторную сессию (тип терапии: cbt)", resp.Message)
}

func TestHandle_CooldownDetailReachesBody(t *testing.T) {
	err := fmt.Errorf("%w: следующую заявку можно создать через 90 сек.", createBooking.ErrBookingCooldown)

	rec, resp := serve(t, failingUseCase(err), `{"slotId":7,"sessionType":"first"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, handlers.KindRateLimited, resp.Kind)
	assert.Equal(t, "следующую заявку можно создать через 90 сек.", resp.Message)
}

func TestHandle_LimitAndCooldownKindsDiffer(t *testing.T) {
	// Оба правила отдаются как 429, клиент различает их по kind
	_, limitResp := serve(t, failingUseCase(createBooking.ErrTooManyActiveBookings),
		`{"slotId":7,"sessionType":"first"}`)
	_, cooldownResp := serve(t, failingUseCase(createBooking.ErrBookingCooldown),
		`{"slotId":7,"sessionType":"first"}`)

	assert.Equal(t, handlers.KindLimitExceeded, limitResp.Kind)
	assert.Equal(t, handlers.KindRateLimited, cooldownResp.Kind)
	assert.NotEqual(t, limitResp.Kind, cooldownResp.Kind)
}

func TestHandle_BareSentinelFallsBackToStaticMessage(t *testing.T) {
	rec, resp := serve(t, failingUseCase(createBooking.ErrTooManyActiveBookings),
		`{"slotId":7,"sessionType":"first"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, msgTooManyBookings, resp.Message)
}

func TestHandle_SlotUnavailableKind(t *testing.T) {
	rec, resp := serve(t, failingUseCase(createBooking.ErrSlotUnavailable),
		`{"slotId":7,"sessionType":"first"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, handlers.KindSlotUnavailable, resp.Kind)
}
