// Package workflow implements the sequential booking wizard as a validation-
// gated state machine over an immutable-per-step draft session. Each
// transition takes the current session plus the step's input and returns
// either an updated copy or a typed error; callers never mutate a session in
// place.
package workflow

import (
	"time"

	"forfly/internal/apperrors"
	"forfly/internal/data/entity"
	"forfly/internal/payment"
	"forfly/internal/pricing"
	"forfly/pkg/utils"
)

type State int

const (
	StateSearching State = iota
	StateFlightSelected
	StateFareChosen
	StatePassengerEntered
	StatePaymentValidated
	StateContactEntered
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching_flights"
	case StateFlightSelected:
		return "flight_selected"
	case StateFareChosen:
		return "class_and_type_chosen"
	case StatePassengerEntered:
		return "passenger_info_entered"
	case StatePaymentValidated:
		return "payment_info_validated"
	case StateContactEntered:
		return "contact_info_entered"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Session is the draft record accumulated across wizard steps for a single
// user. State marks the furthest step whose data is present and valid.
// Card data is used transiently by SubmitPayment and never stored here.
type Session struct {
	Username string
	State    State

	Flight     entity.Flight
	TravelDate time.Time

	Class      entity.CabinClass
	TicketType entity.TicketType
	FinalPrice float64 // unrounded; valid only once both selectors are set

	PassengerName string
	PassengerAge  int

	Street      string
	City        string
	Country     string
	PostalCode  string
	Address     string
	PhoneNumber string
	Email       string
}

func NewSession(username string) *Session {
	return &Session{Username: username, State: StateSearching}
}

// Contact is the input for the contact-details step.
type Contact struct {
	Street      string
	City        string
	Country     string
	PostalCode  string
	PhoneNumber string
	Email       string
}

// SelectFlight binds a flight and travel date into the draft. Re-entering
// this step keeps any later data and recomputes the price from the new base
// fare when the fare selectors are already chosen.
func (s *Session) SelectFlight(flight entity.Flight, travelDate time.Time) (*Session, error) {
	if travelDate.IsZero() {
		return nil, apperrors.NewValidation("travel_date", apperrors.CodeEmptyField,
			"a travel date must be chosen")
	}

	next := *s
	next.Flight = flight
	next.TravelDate = travelDate
	if next.Class != "" && next.TicketType != "" {
		price, err := pricing.Final(flight.Price, next.Class, next.TicketType)
		if err != nil {
			return nil, err
		}
		next.FinalPrice = price
	}
	next.State = maxState(next.State, StateFlightSelected)
	return &next, nil
}

// ChooseFare sets the cabin class and ticket type and derives the final price
// from the selected flight's base fare. If the passenger step was already
// entered and the new ticket type no longer matches the passenger's age, the
// session falls back to this step; the passenger data is kept for correction.
func (s *Session) ChooseFare(class entity.CabinClass, ticketType entity.TicketType) (*Session, error) {
	if err := s.require(StateFlightSelected); err != nil {
		return nil, err
	}

	price, err := pricing.Final(s.Flight.Price, class, ticketType)
	if err != nil {
		return nil, apperrors.NewValidation("fare", apperrors.CodeInvalidFormat, err.Error())
	}

	next := *s
	next.Class = class
	next.TicketType = ticketType
	next.FinalPrice = price
	if next.State > StateFareChosen && next.PassengerName != "" && !ticketType.AgeMatches(next.PassengerAge) {
		next.State = StateFareChosen
	} else {
		next.State = maxState(next.State, StateFareChosen)
	}
	return &next, nil
}

// EnterPassenger records the passenger's name (title-cased) and age. The age
// must be consistent with the chosen ticket type.
func (s *Session) EnterPassenger(name string, age int) (*Session, error) {
	if err := s.require(StateFareChosen); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.NewValidation("name", apperrors.CodeEmptyField,
			"a passenger name must be entered")
	}
	if age < 0 {
		return nil, apperrors.NewValidation("age", apperrors.CodeInvalidFormat,
			"age must be a non-negative integer")
	}
	if !s.TicketType.AgeMatches(age) {
		return nil, apperrors.NewValidation("age", apperrors.CodeAgeTypeMismatch,
			"age does not match the selected ticket type: "+string(s.TicketType))
	}

	next := *s
	next.PassengerName = utils.TitleCase(name)
	next.PassengerAge = age
	next.State = maxState(next.State, StatePassengerEntered)
	return &next, nil
}

// SubmitPayment gates the wizard on the card checks. The card is discarded
// after validation; nothing of it is copied onto the session.
func (s *Session) SubmitPayment(card payment.Card, now time.Time) (*Session, error) {
	if err := s.require(StatePassengerEntered); err != nil {
		return nil, err
	}
	for field, value := range map[string]string{
		"card_number":  card.Number,
		"expiry_month": card.ExpiryMonth,
		"expiry_year":  card.ExpiryYear,
		"cvc":          card.CVC,
	} {
		if value == "" {
			return nil, apperrors.NewValidation(field, apperrors.CodeEmptyField,
				"all credit card details must be entered")
		}
	}
	if err := card.Validate(now); err != nil {
		return nil, err
	}

	next := *s
	next.State = maxState(next.State, StatePaymentValidated)
	return &next, nil
}

// EnterContact records the contact details, title-casing street, city and
// country, and concatenates them into the single formatted address string.
func (s *Session) EnterContact(c Contact) (*Session, error) {
	if err := s.require(StatePaymentValidated); err != nil {
		return nil, err
	}
	for field, value := range map[string]string{
		"street":       c.Street,
		"city":         c.City,
		"country":      c.Country,
		"postal_code":  c.PostalCode,
		"phone_number": c.PhoneNumber,
		"email":        c.Email,
	} {
		if value == "" {
			return nil, apperrors.NewValidation(field, apperrors.CodeEmptyField,
				"all contact fields must be filled out")
		}
	}

	next := *s
	next.Street = utils.TitleCase(c.Street)
	next.City = utils.TitleCase(c.City)
	next.Country = utils.TitleCase(c.Country)
	next.PostalCode = c.PostalCode
	next.Address = next.Street + ", " + next.City + ", " + next.Country + ", " + next.PostalCode
	next.PhoneNumber = c.PhoneNumber
	next.Email = c.Email
	next.State = maxState(next.State, StateContactEntered)
	return &next, nil
}

// Finalize flattens the completed draft into the Booking snapshot that gets
// persisted and sent to the notification dispatcher. The fare is rounded to
// currency precision here and nowhere earlier.
func (s *Session) Finalize() (entity.Booking, error) {
	if err := s.require(StateContactEntered); err != nil {
		return entity.Booking{}, err
	}
	return entity.Booking{
		Username:      s.Username,
		PassengerName: s.PassengerName,
		PassengerAge:  s.PassengerAge,
		FlightNumber:  s.Flight.FlightNumber,
		Origin:        s.Flight.Origin,
		Destination:   s.Flight.Destination,
		DepartureTime: s.Flight.DepartureTime,
		ArrivalTime:   s.Flight.ArrivalTime,
		FlightDate:    s.TravelDate.Format("2006-01-02"),
		Class:         s.Class,
		TicketType:    s.TicketType,
		Address:       s.Address,
		PhoneNumber:   s.PhoneNumber,
		Email:         s.Email,
		Fare:          pricing.Round2(s.FinalPrice),
	}, nil
}

// require guards forward entry: the step after `prior` may only run once the
// session has reached `prior`.
func (s *Session) require(prior State) error {
	if s.State < prior {
		return &apperrors.StepOrderError{Current: s.State.String(), Required: prior.String()}
	}
	return nil
}

func maxState(a, b State) State {
	if a > b {
		return a
	}
	return b
}
