package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosparks/PKS-BookingService/internal/api/handlers"
	"github.com/mosparks/PKS-BookingService/internal/api/middleware"
	createBooking "github.com/mosparks/PKS-BookingService/internal/usecase/create_booking"
)

// --- Фейки ---

type fakeUseCase struct {
	err  error
	resp *createBooking.Response
}

func (u *fakeUseCase) Execute(_ context.Context, _ createBooking.Request) (*createBooking.Response, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const requestBody = `{"resourceId":42,"bookingDate":"2026-07-15","startTime":"10:00","endTime":"12:00"}`

func doRequest(t *testing.T, uc *fakeUseCase) (*httptest.ResponseRecorder, handlers.ErrorResponse) {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(requestBody))
	req.Header.Set(middleware.HeaderUserID, "100")
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)

	var errResp handlers.ErrorResponse
	if rec.Code >= http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	}
	return rec, errResp
}

// --- Тесты ---

func TestHandle_RejectionReasons(t *testing.T) {
	// Каждому отказу соответствует свой стабильный машинный код:
	// портал подбирает по нему локализованную подсказку
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{name: "ресурс не найден", err: createBooking.ErrResourceNotFound, wantStatus: http.StatusNotFound, wantReason: "resource_not_found"},
		{name: "слот занят", err: createBooking.ErrSlotTaken, wantStatus: http.StatusConflict, wantReason: "slot_taken"},
		{name: "места закончились", err: createBooking.ErrCapacityExceeded, wantStatus: http.StatusConflict, wantReason: "capacity_exceeded"},
		{name: "дубликат", err: createBooking.ErrDuplicateBooking, wantStatus: http.StatusConflict, wantReason: "duplicate_booking"},
		{name: "некорректный интервал", err: createBooking.ErrInvalidInterval, wantStatus: http.StatusBadRequest, wantReason: "invalid_interval"},
		{name: "длительность вне пределов", err: createBooking.ErrDurationOutOfRange, wantStatus: http.StatusBadRequest, wantReason: "duration_out_of_range"},
		{name: "прошедшая дата", err: createBooking.ErrPastDate, wantStatus: http.StatusBadRequest, wantReason: "past_date"},
		{name: "слишком далеко вперёд", err: createBooking.ErrTooFarInAdvance, wantStatus: http.StatusBadRequest, wantReason: "too_far_in_advance"},
		{name: "вне часов работы", err: createBooking.ErrOutsideOperatingHours, wantStatus: http.StatusBadRequest, wantReason: "outside_operating_hours"},
		{name: "чёрная дата", err: createBooking.ErrBlackoutDate, wantStatus: http.StatusBadRequest, wantReason: "blackout_date"},
		{name: "некорректный ввод", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantReason: "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, errResp := doRequest(t, &fakeUseCase{err: tt.err})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, errResp.Code)
			assert.Equal(t, tt.wantReason, errResp.Reason)
			assert.NotEmpty(t, errResp.Message)
		})
	}
}

func TestHandle_ReasonsDistinct(t *testing.T) {
	// Отказы с одинаковым HTTP статусом различимы по коду причины
	seen := make(map[string]string)
	for _, err := range []error{
		createBooking.ErrSlotTaken,
		createBooking.ErrCapacityExceeded,
		createBooking.ErrDuplicateBooking,
		createBooking.ErrPastDate,
		createBooking.ErrBlackoutDate,
		createBooking.ErrDurationOutOfRange,
	} {
		_, errResp := doRequest(t, &fakeUseCase{err: err})
		require.NotEmpty(t, errResp.Reason)
		if prev, ok := seen[errResp.Reason]; ok {
			t.Fatalf("код %q выдан и для %v, и для %v", errResp.Reason, prev, err)
		}
		seen[errResp.Reason] = err.Error()
	}
}

func TestHandle_InternalErrorHasNoReason(t *testing.T) {
	rec, errResp := doRequest(t, &fakeUseCase{err: createBooking.ErrInternal})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, errResp.Reason)
}
