package domain

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire format of reservation dates, both inbound and outbound.
const DateLayout = "2006-01-02"

// Reservation belongs to the user referenced by UserID. Arrival before
// departure is accepted.
type Reservation struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	DepartureDate    time.Time `json:"departureDate"`
	ArrivalDate      time.Time `json:"arrivalDate"`
	DepartureAirport string    `json:"departureAirport"`
	ArrivalAirport   string    `json:"arrivalAirport"`
	Airline          string    `json:"airline"`
	TravelClass      string    `json:"travelClass"`
	SeatNumber       string    `json:"seatNumber"`
	CreatedAt        time.Time `json:"createdAt"`
}

// MarshalJSON renders the travel dates in DateLayout.
func (r Reservation) MarshalJSON() ([]byte, error) {
	type plain Reservation
	return json.Marshal(struct {
		plain
		DepartureDate string `json:"departureDate"`
		ArrivalDate   string `json:"arrivalDate"`
	}{
		plain:         plain(r),
		DepartureDate: r.DepartureDate.Format(DateLayout),
		ArrivalDate:   r.ArrivalDate.Format(DateLayout),
	})
}

type ReservationResponse struct {
	Message string `json:"message"`
}
