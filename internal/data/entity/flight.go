package entity

// Flight is one record of the static catalog. The catalog is loaded once at
// startup and is read-only for the lifetime of the process.
type Flight struct {
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"` // base fare before class/type multipliers
	AircraftModel string  `json:"aircraft_model"`
	Logo          string  `json:"logo"`
}
