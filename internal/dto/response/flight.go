package response

type FlightResponse struct {
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
	AircraftModel string  `json:"aircraft_model"`
	Logo          string  `json:"logo,omitempty"`
}

type RouteOptionsResponse struct {
	Origins      []string `json:"origins,omitempty"`
	Destinations []string `json:"destinations,omitempty"`
}
