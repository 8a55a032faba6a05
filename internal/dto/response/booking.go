package response

// SessionResponse is the view of the in-progress purchase draft returned
// after every wizard step. Price is the unrounded running fare; it is zero
// until a cabin class and ticket type are chosen.
type SessionResponse struct {
	State         string  `json:"state"`
	FlightNumber  string  `json:"flight_number,omitempty"`
	Origin        string  `json:"origin,omitempty"`
	Destination   string  `json:"destination,omitempty"`
	TravelDate    string  `json:"travel_date,omitempty"`
	CabinClass    string  `json:"cabin_class,omitempty"`
	TicketType    string  `json:"ticket_type,omitempty"`
	Price         float64 `json:"price,omitempty"`
	PassengerName string  `json:"passenger_name,omitempty"`
	PassengerAge  int     `json:"passenger_age,omitempty"`
	Address       string  `json:"address,omitempty"`
	PhoneNumber   string  `json:"phone_number,omitempty"`
	Email         string  `json:"email,omitempty"`
}

type BookingResponse struct {
	PassengerName string  `json:"passenger_name"`
	PassengerAge  int     `json:"passenger_age"`
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	FlightDate    string  `json:"flight_date"`
	Class         string  `json:"class"`
	TicketType    string  `json:"ticket_type"`
	Address       string  `json:"address"`
	PhoneNumber   string  `json:"phone_number"`
	Email         string  `json:"email"`
	Fare          float64 `json:"fare"`
}

// ConfirmationResponse is returned by the final wizard step. Notification
// reflects the confirmation email at the time of the response; delivery
// happens in the background and can be polled afterwards.
type ConfirmationResponse struct {
	Booking      BookingResponse `json:"booking"`
	Notification string          `json:"notification"`
}

// Notification delivery states as reported to clients.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

type NotificationStatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
