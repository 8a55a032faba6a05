package request

// SelectFlightRequest binds one of the searched flights plus the travel date
// into the purchase draft.
type SelectFlightRequest struct {
	FlightNumber string `json:"flight_number" validate:"required"`
	Origin       string `json:"origin" validate:"required"`
	Destination  string `json:"destination" validate:"required"`
	TravelDate   string `json:"travel_date" validate:"required,datetime=2006-01-02"`
}

type ChooseFareRequest struct {
	CabinClass string `json:"cabin_class" validate:"required,oneof='First Class' 'Business Class' 'Premium Economy' 'Economy'"`
	TicketType string `json:"ticket_type" validate:"required,oneof='Child (under 13)' 'Adult (13+)'"`
}

type PassengerRequest struct {
	Name string `json:"name" validate:"required"`
	Age  *int   `json:"age" validate:"required"`
}

// PaymentRequest carries the card for validation only; the fields are checked
// and discarded, never persisted.
type PaymentRequest struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVC         string `json:"cvc"`
}

type ContactRequest struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	Country     string `json:"country"`
	PostalCode  string `json:"postal_code"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email" validate:"omitempty,email"`
}
