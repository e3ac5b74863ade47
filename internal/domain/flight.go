package domain

import "time"

type Flight struct {
	ID             int64     `json:"id"`
	FlightNumber   string    `json:"flightNumber"`
	Airline        string    `json:"airline"`
	DepartureCity  string    `json:"departureCity"`
	ArrivalCity    string    `json:"arrivalCity"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"availableSeats"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HasSeats reports whether the flight can take requested more passengers.
func (f *Flight) HasSeats(requested int) bool {
	return f.AvailableSeats >= requested
}

// FlightSummary is the subset of flight fields joined into booking,
// payment and check-in responses.
type FlightSummary struct {
	ID            int64     `json:"id"`
	FlightNumber  string    `json:"flightNumber"`
	Airline       string    `json:"airline"`
	DepartureCity string    `json:"departureCity"`
	ArrivalCity   string    `json:"arrivalCity"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
}

// Summary returns the joined view of the flight.
func (f *Flight) Summary() *FlightSummary {
	return &FlightSummary{
		ID:            f.ID,
		FlightNumber:  f.FlightNumber,
		Airline:       f.Airline,
		DepartureCity: f.DepartureCity,
		ArrivalCity:   f.ArrivalCity,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
	}
}
