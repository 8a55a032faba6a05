package entity

type CabinClass string

const (
	ClassFirst          CabinClass = "First Class"
	ClassBusiness       CabinClass = "Business Class"
	ClassPremiumEconomy CabinClass = "Premium Economy"
	ClassEconomy        CabinClass = "Economy"
)

type TicketType string

const (
	TicketChild TicketType = "Child (under 13)"
	TicketAdult TicketType = "Adult (13+)"
)

// AgeMatches reports whether a passenger age is consistent with the ticket
// type: Child is under 13, Adult is 13 and over.
func (t TicketType) AgeMatches(age int) bool {
	switch t {
	case TicketChild:
		return age < 13
	case TicketAdult:
		return age >= 13
	default:
		return false
	}
}

// Booking is the immutable snapshot persisted when a purchase is confirmed.
// Card data is validated during the wizard but never lands here.
type Booking struct {
	Username      string     `json:"username"`
	PassengerName string     `json:"passenger_name"`
	PassengerAge  int        `json:"passenger_age"`
	FlightNumber  string     `json:"flight_number"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureTime string     `json:"departure_time"`
	ArrivalTime   string     `json:"arrival_time"`
	FlightDate    string     `json:"flight_date"` // ISO 8601 date (YYYY-MM-DD)
	Class         CabinClass `json:"class"`
	TicketType    TicketType `json:"ticket_type"`
	Address       string     `json:"address"`
	PhoneNumber   string     `json:"phone_number"`
	Email         string     `json:"email"`
	Fare          float64    `json:"fare"` // final price, rounded to 2 decimals
}
