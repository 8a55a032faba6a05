package workflow

import (
	"errors"
	"testing"
	"time"

	"forfly/internal/apperrors"
	"forfly/internal/data/entity"
	"forfly/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFlight = entity.Flight{
	FlightNumber:  "FF100",
	Origin:        "New York",
	Destination:   "London",
	DepartureTime: "08:30",
	ArrivalTime:   "20:45",
	Price:         500,
	AircraftModel: "Boeing 787",
}

var testDate = time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)

var testNow = time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

var validCard = payment.Card{
	Number:      "4242424242424242",
	ExpiryMonth: "12",
	ExpiryYear:  "2027",
	CVC:         "123",
}

var testContact = Contact{
	Street:      "10 downing street",
	City:        "london",
	Country:     "united kingdom",
	PostalCode:  "SW1A 2AA",
	PhoneNumber: "+442079250918",
	Email:       "jane@example.com",
}

// completedDraft walks the wizard through every step up to contact entry.
func completedDraft(t *testing.T) *Session {
	t.Helper()

	s, err := NewSession("jane").SelectFlight(testFlight, testDate)
	require.NoError(t, err)
	s, err = s.ChooseFare(entity.ClassBusiness, entity.TicketAdult)
	require.NoError(t, err)
	s, err = s.EnterPassenger("jane doe", 30)
	require.NoError(t, err)
	s, err = s.SubmitPayment(validCard, testNow)
	require.NoError(t, err)
	s, err = s.EnterContact(testContact)
	require.NoError(t, err)
	return s
}

func TestFullWizardWalk(t *testing.T) {
	s := NewSession("jane")
	assert.Equal(t, StateSearching, s.State)

	s, err := s.SelectFlight(testFlight, testDate)
	require.NoError(t, err)
	assert.Equal(t, StateFlightSelected, s.State)

	s, err = s.ChooseFare(entity.ClassBusiness, entity.TicketAdult)
	require.NoError(t, err)
	assert.Equal(t, StateFareChosen, s.State)
	assert.InDelta(t, 1250.0, s.FinalPrice, 1e-9) // 500 x 2.5 x 1.0

	s, err = s.EnterPassenger("jane doe", 30)
	require.NoError(t, err)
	assert.Equal(t, StatePassengerEntered, s.State)
	assert.Equal(t, "Jane Doe", s.PassengerName)

	s, err = s.SubmitPayment(validCard, testNow)
	require.NoError(t, err)
	assert.Equal(t, StatePaymentValidated, s.State)

	s, err = s.EnterContact(testContact)
	require.NoError(t, err)
	assert.Equal(t, StateContactEntered, s.State)
	assert.Equal(t, "10 Downing Street, London, United Kingdom, SW1A 2AA", s.Address)

	booking, err := s.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "jane", booking.Username)
	assert.Equal(t, "FF100", booking.FlightNumber)
	assert.Equal(t, "2026-09-10", booking.FlightDate)
	assert.Equal(t, entity.ClassBusiness, booking.Class)
	assert.Equal(t, 1250.0, booking.Fare)
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	s, err := NewSession("jane").SelectFlight(testFlight, testDate)
	require.NoError(t, err)

	next, err := s.ChooseFare(entity.ClassEconomy, entity.TicketAdult)
	require.NoError(t, err)

	assert.Equal(t, StateFlightSelected, s.State)
	assert.Zero(t, s.FinalPrice)
	assert.Equal(t, StateFareChosen, next.State)
}

func TestStepOrderEnforced(t *testing.T) {
	s := NewSession("jane")

	_, err := s.ChooseFare(entity.ClassEconomy, entity.TicketAdult)
	var stepErr *apperrors.StepOrderError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, "searching_flights", stepErr.Current)
	assert.Equal(t, "flight_selected", stepErr.Required)

	_, err = s.EnterPassenger("jane doe", 30)
	assert.True(t, errors.As(err, &stepErr))

	_, err = s.SubmitPayment(validCard, testNow)
	assert.True(t, errors.As(err, &stepErr))

	_, err = s.EnterContact(testContact)
	assert.True(t, errors.As(err, &stepErr))

	_, err = s.Finalize()
	assert.True(t, errors.As(err, &stepErr))
}

func TestSelectFlightRequiresTravelDate(t *testing.T) {
	_, err := NewSession("jane").SelectFlight(testFlight, time.Time{})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "travel_date", verr.Field)
	assert.Equal(t, apperrors.CodeEmptyField, verr.Code)
}

func TestPassengerAgeTicketTypeBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		ticketType entity.TicketType
		age        int
		ok         bool
	}{
		{"child 12 ok", entity.TicketChild, 12, true},
		{"child 13 mismatch", entity.TicketChild, 13, false},
		{"adult 13 ok", entity.TicketAdult, 13, true},
		{"adult 12 mismatch", entity.TicketAdult, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSession("jane").SelectFlight(testFlight, testDate)
			require.NoError(t, err)
			s, err = s.ChooseFare(entity.ClassEconomy, tt.ticketType)
			require.NoError(t, err)

			_, err = s.EnterPassenger("jamie doe", tt.age)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				var verr *apperrors.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, apperrors.CodeAgeTypeMismatch, verr.Code)
			}
		})
	}
}

func TestPassengerInputValidation(t *testing.T) {
	s, err := NewSession("jane").SelectFlight(testFlight, testDate)
	require.NoError(t, err)
	s, err = s.ChooseFare(entity.ClassEconomy, entity.TicketAdult)
	require.NoError(t, err)

	var verr *apperrors.ValidationError

	_, err = s.EnterPassenger("", 30)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, apperrors.CodeEmptyField, verr.Code)

	_, err = s.EnterPassenger("jane doe", -1)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, apperrors.CodeInvalidFormat, verr.Code)
}

func TestPaymentRequiresAllFields(t *testing.T) {
	s, err := NewSession("jane").SelectFlight(testFlight, testDate)
	require.NoError(t, err)
	s, err = s.ChooseFare(entity.ClassEconomy, entity.TicketAdult)
	require.NoError(t, err)
	s, err = s.EnterPassenger("jane doe", 30)
	require.NoError(t, err)

	card := validCard
	card.CVC = ""
	_, err = s.SubmitPayment(card, testNow)

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "cvc", verr.Field)
	assert.Equal(t, apperrors.CodeEmptyField, verr.Code)
}

func TestContactRequiresAllFields(t *testing.T) {
	s, err := NewSession("jane").SelectFlight(testFlight, testDate)
	require.NoError(t, err)
	s, err = s.ChooseFare(entity.ClassEconomy, entity.TicketAdult)
	require.NoError(t, err)
	s, err = s.EnterPassenger("jane doe", 30)
	require.NoError(t, err)
	s, err = s.SubmitPayment(validCard, testNow)
	require.NoError(t, err)

	c := testContact
	c.PostalCode = ""
	_, err = s.EnterContact(c)

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "postal_code", verr.Field)
	assert.Equal(t, apperrors.CodeEmptyField, verr.Code)
}

func TestReenteringEarlierStepKeepsLaterData(t *testing.T) {
	s := completedDraft(t)

	cheaper := testFlight
	cheaper.FlightNumber = "FF200"
	cheaper.Price = 400

	next, err := s.SelectFlight(cheaper, testDate)
	require.NoError(t, err)

	// Later data survives, the price follows the new base fare and the
	// session does not regress.
	assert.Equal(t, StateContactEntered, next.State)
	assert.Equal(t, "Jane Doe", next.PassengerName)
	assert.Equal(t, "jane@example.com", next.Email)
	assert.InDelta(t, 1000.0, next.FinalPrice, 1e-9) // 400 x 2.5
	assert.Equal(t, "FF200", next.Flight.FlightNumber)
}

func TestFareChangeConflictingWithPassengerFallsBack(t *testing.T) {
	s := completedDraft(t)

	// Switching to a child ticket while the recorded passenger is 30 drops
	// the session back to the fare step but keeps the data for correction.
	next, err := s.ChooseFare(entity.ClassBusiness, entity.TicketChild)
	require.NoError(t, err)
	assert.Equal(t, StateFareChosen, next.State)
	assert.Equal(t, "Jane Doe", next.PassengerName)
	assert.InDelta(t, 625.0, next.FinalPrice, 1e-9) // 500 x 2.5 x 0.5

	// Finalize is gated again until the conflict is resolved.
	_, err = next.Finalize()
	var stepErr *apperrors.StepOrderError
	assert.True(t, errors.As(err, &stepErr))
}

func TestFareChangeCompatibleWithPassengerKeepsState(t *testing.T) {
	s := completedDraft(t)

	next, err := s.ChooseFare(entity.ClassFirst, entity.TicketAdult)
	require.NoError(t, err)
	assert.Equal(t, StateContactEntered, next.State)
	assert.InDelta(t, 1750.0, next.FinalPrice, 1e-9) // 500 x 3.5
}

func TestFinalizeRoundsFareOnceAtTheEnd(t *testing.T) {
	flight := testFlight
	flight.Price = 100.99

	s, err := NewSession("jane").SelectFlight(flight, testDate)
	require.NoError(t, err)
	s, err = s.ChooseFare(entity.ClassPremiumEconomy, entity.TicketChild)
	require.NoError(t, err)
	s, err = s.EnterPassenger("jamie doe", 9)
	require.NoError(t, err)
	s, err = s.SubmitPayment(validCard, testNow)
	require.NoError(t, err)
	s, err = s.EnterContact(testContact)
	require.NoError(t, err)

	// 100.99 x 1.75 x 0.5 = 88.36625, carried unrounded on the draft.
	assert.InDelta(t, 88.36625, s.FinalPrice, 1e-9)

	booking, err := s.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 88.37, booking.Fare)
}
