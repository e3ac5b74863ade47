package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/Klimentov1992/flightbooking/internal/service/booking"
	"github.com/Klimentov1992/flightbooking/internal/service/checkin"
	"github.com/Klimentov1992/flightbooking/internal/service/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBookings_List_RequiresToken(t *testing.T) {
	server := newTestServer()

	recorder, env := server.do(t, http.MethodGet, "/api/v1/bookings", "", nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Missing bearer token", env.Error)
}

func TestBookings_Create_UsesCallerFromToken(t *testing.T) {
	server := newTestServer()
	input := booking.CreateBookingInput{
		FlightID: 3,
		Passengers: []domain.Passenger{
			{Name: "Ivan Petrov", Email: "ivan@example.com", PassportNumber: "P1234567"},
		},
	}
	server.bookings.On("Create", mock.Anything, userCaller, input).
		Return(&domain.Booking{ID: 42, UserID: userCaller.ID, TotalPrice: 200}, nil).Once()

	recorder, env := server.do(t, http.MethodPost, "/api/v1/bookings", bearer(t, userCaller.ID, userCaller.Role), input)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.True(t, env.Success)

	var result domain.Booking
	assert.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, int64(42), result.ID)
	server.bookings.AssertExpectations(t)
}

func TestBookings_Create_InvalidBody(t *testing.T) {
	server := newTestServer()

	recorder, env := server.do(t, http.MethodPost, "/api/v1/bookings", bearer(t, userCaller.ID, userCaller.Role), "not an object")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Invalid request body", env.Error)
	server.bookings.AssertNotCalled(t, "Create")
}

func TestBookings_Get_UnauthorizedMapsTo401(t *testing.T) {
	server := newTestServer()
	server.bookings.On("Get", mock.Anything, userCaller, int64(42)).
		Return(nil, domain.Unauthorized("Not authorized to access this booking")).Once()

	recorder, env := server.do(t, http.MethodGet, "/api/v1/bookings/42", bearer(t, userCaller.ID, userCaller.Role), nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Not authorized to access this booking", env.Error)
}

func TestBookings_Cancel_ConflictMapsTo400(t *testing.T) {
	server := newTestServer()
	server.bookings.On("Cancel", mock.Anything, userCaller, int64(42)).
		Return(nil, domain.Conflict("Booking is already cancelled")).Once()

	recorder, env := server.do(t, http.MethodPut, "/api/v1/bookings/42/cancel", bearer(t, userCaller.ID, userCaller.Role), nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Booking is already cancelled", env.Error)
}

func TestPayments_Process_Created(t *testing.T) {
	server := newTestServer()
	input := payment.ProcessPaymentInput{BookingID: 42, PaymentMethod: domain.PaymentMethodCreditCard}
	server.payments.On("Process", mock.Anything, userCaller, input).
		Return(&domain.Payment{ID: 7, BookingID: 42, Status: domain.PaymentStatusCompleted}, nil).Once()

	recorder, env := server.do(t, http.MethodPost, "/api/v1/payments", bearer(t, userCaller.ID, userCaller.Role), input)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.True(t, env.Success)
	server.payments.AssertExpectations(t)
}

func TestPayments_List_WithCount(t *testing.T) {
	server := newTestServer()
	server.payments.On("ListForUser", mock.Anything, userCaller).
		Return([]domain.Payment{{ID: 7}}, nil).Once()

	recorder, env := server.do(t, http.MethodGet, "/api/v1/payments", bearer(t, userCaller.ID, userCaller.Role), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	if assert.NotNil(t, env.Count) {
		assert.Equal(t, 1, *env.Count)
	}
}

func TestCheckIn_Perform_ConflictMapsTo400(t *testing.T) {
	server := newTestServer()
	server.checkIn.On("PerformCheckIn", mock.Anything, userCaller, int64(42)).
		Return(nil, domain.Conflict("Check-in is only available within 24 hours of departure")).Once()

	recorder, env := server.do(t, http.MethodPut, "/api/v1/check-in/42", bearer(t, userCaller.ID, userCaller.Role), nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Check-in is only available within 24 hours of departure", env.Error)
}

func TestCheckIn_Status_OK(t *testing.T) {
	server := newTestServer()
	server.checkIn.On("Status", mock.Anything, userCaller, int64(42)).
		Return(&checkin.CheckInStatus{CheckInStatus: true}, nil).Once()

	recorder, env := server.do(t, http.MethodGet, "/api/v1/check-in/42", bearer(t, userCaller.ID, userCaller.Role), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var result checkin.CheckInStatus
	assert.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.CheckInStatus)
}
