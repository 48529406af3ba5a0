package domain

// OpenSkyFlight is a single departure record as returned by the OpenSky API.
// Fields OpenSky may report as null are pointers so null survives re-encoding.
type OpenSkyFlight struct {
	Icao24                           string  `json:"icao24"`
	FirstSeen                        int64   `json:"firstSeen"`
	EstDepartureAirport              *string `json:"estDepartureAirport"`
	LastSeen                         int64   `json:"lastSeen"`
	EstArrivalAirport                *string `json:"estArrivalAirport"`
	Callsign                         *string `json:"callsign"`
	EstDepartureAirportHorizDistance *int    `json:"estDepartureAirportHorizDistance"`
	EstDepartureAirportVertDistance  *int    `json:"estDepartureAirportVertDistance"`
	EstArrivalAirportHorizDistance   *int    `json:"estArrivalAirportHorizDistance"`
	EstArrivalAirportVertDistance    *int    `json:"estArrivalAirportVertDistance"`
	DepartureAirportCandidatesCount  int     `json:"departureAirportCandidatesCount"`
	ArrivalAirportCandidatesCount    int     `json:"arrivalAirportCandidatesCount"`
}

// Flight is an upstream departure plus a nominal seat capacity.
type Flight struct {
	OpenSkyFlight
	Capacity int `json:"capacity"`
}

func NewFlight(f OpenSkyFlight, capacity int) Flight {
	return Flight{OpenSkyFlight: f, Capacity: capacity}
}

type FlightSearchRequest struct {
	DepartureAirport string `json:"departureAirport"`
	Begin            string `json:"begin"`
	End              string `json:"end"`
}
