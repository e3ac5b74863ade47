package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/Klimentov1992/flightbooking/internal/service/flights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFlights_List_PublicWithCount(t *testing.T) {
	server := newTestServer()
	server.flights.On("Search", mock.Anything, flights.SearchInput{}).
		Return([]domain.Flight{{ID: 1, FlightNumber: "SU100"}, {ID: 2, FlightNumber: "SU200"}}, nil).Once()

	recorder, env := server.do(t, http.MethodGet, "/api/v1/flights", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, env.Success)
	if assert.NotNil(t, env.Count) {
		assert.Equal(t, 2, *env.Count)
	}

	var result []domain.Flight
	assert.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Len(t, result, 2)
}

func TestFlights_List_ForwardsQueryFilters(t *testing.T) {
	server := newTestServer()
	want := flights.SearchInput{
		DepartureCity: "Moscow",
		ArrivalCity:   "Sochi",
		DepartureDate: "2026-03-15",
	}
	server.flights.On("Search", mock.Anything, want).Return([]domain.Flight{}, nil).Once()

	recorder, env := server.do(t, http.MethodGet, "/api/v1/flights?departureCity=Moscow&arrivalCity=Sochi&departureDate=2026-03-15", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, env.Success)
	server.flights.AssertExpectations(t)
}

func TestFlights_Get_NotFound(t *testing.T) {
	server := newTestServer()
	server.flights.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.NotFound("Flight")).Once()

	recorder, env := server.do(t, http.MethodGet, "/api/v1/flights/99", "", nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Flight not found", env.Error)
}

func TestFlights_Get_InvalidID(t *testing.T) {
	server := newTestServer()

	recorder, env := server.do(t, http.MethodGet, "/api/v1/flights/abc", "", nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Invalid id", env.Error)
	server.flights.AssertNotCalled(t, "GetByID")
}

func TestFlights_Create_RequiresToken(t *testing.T) {
	server := newTestServer()

	recorder, env := server.do(t, http.MethodPost, "/api/v1/flights", "", flights.CreateFlightInput{})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, env.Success)
	server.flights.AssertNotCalled(t, "Create")
}

func TestFlights_Create_RequiresAdmin(t *testing.T) {
	server := newTestServer()

	recorder, env := server.do(t, http.MethodPost, "/api/v1/flights", bearer(t, userCaller.ID, userCaller.Role), flights.CreateFlightInput{})

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "Forbidden", env.Error)
	server.flights.AssertNotCalled(t, "Create")
}

func TestFlights_Create_Admin(t *testing.T) {
	server := newTestServer()
	departure := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	input := flights.CreateFlightInput{
		FlightNumber:   "SU100",
		Airline:        "Aeroflot",
		DepartureCity:  "Moscow",
		ArrivalCity:    "Sochi",
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(2 * time.Hour),
		Price:          149.99,
		AvailableSeats: 180,
	}
	server.flights.On("Create", mock.Anything, input).
		Return(&domain.Flight{ID: 1, FlightNumber: "SU100"}, nil).Once()

	recorder, env := server.do(t, http.MethodPost, "/api/v1/flights", bearer(t, adminCaller.ID, adminCaller.Role), input)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.True(t, env.Success)
	server.flights.AssertExpectations(t)
}

func TestFlights_Create_ValidationError(t *testing.T) {
	server := newTestServer()
	server.flights.On("Create", mock.Anything, mock.AnythingOfType("flights.CreateFlightInput")).
		Return(nil, domain.Validation("price", "Price must be positive")).Once()

	recorder, env := server.do(t, http.MethodPost, "/api/v1/flights", bearer(t, adminCaller.ID, adminCaller.Role), flights.CreateFlightInput{})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Price must be positive", env.Error)
}

func TestFlights_Update_Admin(t *testing.T) {
	server := newTestServer()
	price := 199.99
	server.flights.On("Update", mock.Anything, int64(1), flights.UpdateFlightInput{Price: &price}).
		Return(&domain.Flight{ID: 1, Price: price}, nil).Once()

	recorder, env := server.do(t, http.MethodPut, "/api/v1/flights/1", bearer(t, adminCaller.ID, adminCaller.Role), map[string]interface{}{"price": price})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, env.Success)
	server.flights.AssertExpectations(t)
}

func TestFlights_Delete_Admin(t *testing.T) {
	server := newTestServer()
	server.flights.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

	recorder, env := server.do(t, http.MethodDelete, "/api/v1/flights/1", bearer(t, adminCaller.ID, adminCaller.Role), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, env.Success)
	server.flights.AssertExpectations(t)
}
