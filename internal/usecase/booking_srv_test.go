package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"forfly/internal/apperrors"
	"forfly/internal/data/entity"
	"forfly/internal/data/repository"
	"forfly/internal/dto/request"
	"forfly/internal/dto/response"
	"forfly/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCatalog = `[
    {
        "flight_number": "FF100",
        "origin": "New York",
        "destination": "London",
        "departure_time": "08:30",
        "arrival_time": "20:45",
        "price": 500,
        "aircraft_model": "Boeing 787"
    },
    {
        "flight_number": "FF300",
        "origin": "New York",
        "destination": "Paris",
        "departure_time": "10:00",
        "arrival_time": "23:10",
        "price": 520,
        "aircraft_model": "Boeing 777"
    }
]`

type recordingMailer struct {
	mu   sync.Mutex
	sent []entity.Booking
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, booking entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, booking)
	return nil
}

func newTestBookingService(t *testing.T, mailer notify.Mailer) BookingService {
	t.Helper()
	log := zap.NewNop()

	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "flights.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0644))

	flights, err := repository.NewFlightRepository(catalogPath, log)
	require.NoError(t, err)

	repo := &repository.Repository{
		Flight:  flights,
		Booking: repository.NewBookingRepository(filepath.Join(dir, "bookings.json"), log),
	}

	return NewBookingService(repo, notify.NewDispatcher(mailer, log), log)
}

func intPtr(v int) *int { return &v }

func walkToContact(t *testing.T, svc BookingService, username string) {
	t.Helper()
	ctx := context.Background()

	_, err := svc.SelectFlight(ctx, username, &request.SelectFlightRequest{
		FlightNumber: "FF100",
		Origin:       "New York",
		Destination:  "London",
		TravelDate:   "2026-09-10",
	})
	require.NoError(t, err)

	_, err = svc.ChooseFare(ctx, username, &request.ChooseFareRequest{
		CabinClass: "Business Class",
		TicketType: "Adult (13+)",
	})
	require.NoError(t, err)

	_, err = svc.EnterPassenger(ctx, username, &request.PassengerRequest{
		Name: "jane doe",
		Age:  intPtr(30),
	})
	require.NoError(t, err)

	_, err = svc.SubmitPayment(ctx, username, &request.PaymentRequest{
		CardNumber:  "4242 4242 4242 4242",
		ExpiryMonth: "12",
		ExpiryYear:  "2099",
		CVC:         "123",
	})
	require.NoError(t, err)

	_, err = svc.EnterContact(ctx, username, &request.ContactRequest{
		Street:      "10 downing street",
		City:        "london",
		Country:     "united kingdom",
		PostalCode:  "SW1A 2AA",
		PhoneNumber: "+442079250918",
		Email:       "jane@example.com",
	})
	require.NoError(t, err)
}

func TestBookingWizardEndToEnd(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestBookingService(t, mailer)
	ctx := context.Background()

	session, err := svc.SelectFlight(ctx, "jane", &request.SelectFlightRequest{
		FlightNumber: "FF100",
		Origin:       "New York",
		Destination:  "London",
		TravelDate:   "2026-09-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "flight_selected", session.State)

	session, err = svc.ChooseFare(ctx, "jane", &request.ChooseFareRequest{
		CabinClass: "Business Class",
		TicketType: "Adult (13+)",
	})
	require.NoError(t, err)
	assert.Equal(t, "class_and_type_chosen", session.State)
	assert.InDelta(t, 1250.0, session.Price, 1e-9)

	session, err = svc.EnterPassenger(ctx, "jane", &request.PassengerRequest{
		Name: "jane doe",
		Age:  intPtr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", session.PassengerName)

	session, err = svc.SubmitPayment(ctx, "jane", &request.PaymentRequest{
		CardNumber:  "4242424242424242",
		ExpiryMonth: "12",
		ExpiryYear:  "2099",
		CVC:         "123",
	})
	require.NoError(t, err)
	assert.Equal(t, "payment_info_validated", session.State)

	session, err = svc.EnterContact(ctx, "jane", &request.ContactRequest{
		Street:      "10 downing street",
		City:        "london",
		Country:     "united kingdom",
		PostalCode:  "SW1A 2AA",
		PhoneNumber: "+442079250918",
		Email:       "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "contact_info_entered", session.State)

	confirmation, err := svc.Confirm(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, 1250.0, confirmation.Booking.Fare)
	assert.Equal(t, "Business Class", confirmation.Booking.Class)
	assert.Equal(t, "2026-09-10", confirmation.Booking.FlightDate)

	// Confirmation is terminal: the draft is gone.
	_, err = svc.GetSession(ctx, "jane")
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)

	// The confirmation email goes out in the background.
	require.Eventually(t, func() bool {
		status, err := svc.NotificationStatus(ctx, "jane")
		return err == nil && status.Status == response.NotificationSent
	}, 2*time.Second, 10*time.Millisecond)

	bookings, err := svc.UserBookings(ctx, "jane")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "FF100", bookings[0].FlightNumber)
}

func TestBookingStepsRequireActiveDraft(t *testing.T) {
	svc := newTestBookingService(t, &recordingMailer{})
	ctx := context.Background()

	_, err := svc.ChooseFare(ctx, "jane", &request.ChooseFareRequest{
		CabinClass: "Economy",
		TicketType: "Adult (13+)",
	})
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)

	_, err = svc.Confirm(ctx, "jane")
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)

	_, err = svc.GetSession(ctx, "jane")
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
}

func TestBookingSelectFlightMustMatchCatalog(t *testing.T) {
	svc := newTestBookingService(t, &recordingMailer{})
	ctx := context.Background()

	_, err := svc.SelectFlight(ctx, "jane", &request.SelectFlightRequest{
		FlightNumber: "FF999",
		Origin:       "New York",
		Destination:  "London",
		TravelDate:   "2026-09-10",
	})
	assert.ErrorIs(t, err, apperrors.ErrNoFlightsFound)

	// Known flight number but the wrong route is rejected too.
	_, err = svc.SelectFlight(ctx, "jane", &request.SelectFlightRequest{
		FlightNumber: "FF100",
		Origin:       "New York",
		Destination:  "Paris",
		TravelDate:   "2026-09-10",
	})
	assert.ErrorIs(t, err, apperrors.ErrNoFlightsFound)
}

func TestBookingSelectFlightRejectsBadDate(t *testing.T) {
	svc := newTestBookingService(t, &recordingMailer{})

	_, err := svc.SelectFlight(context.Background(), "jane", &request.SelectFlightRequest{
		FlightNumber: "FF100",
		Origin:       "New York",
		Destination:  "London",
		TravelDate:   "10/09/2026",
	})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "travel_date", verr.Field)
	assert.Equal(t, apperrors.CodeInvalidFormat, verr.Code)
}

func TestBookingNotificationFailureDoesNotRollBack(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp unreachable")}
	svc := newTestBookingService(t, mailer)
	ctx := context.Background()

	walkToContact(t, svc, "jane")

	_, err := svc.Confirm(ctx, "jane")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		status, err := svc.NotificationStatus(ctx, "jane")
		return err == nil && status.Status == response.NotificationFailed
	}, 2*time.Second, 10*time.Millisecond)

	// The booking itself is persisted regardless of the email outcome.
	bookings, err := svc.UserBookings(ctx, "jane")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestBookingDraftsAreIsolatedPerUser(t *testing.T) {
	svc := newTestBookingService(t, &recordingMailer{})
	ctx := context.Background()

	_, err := svc.SelectFlight(ctx, "jane", &request.SelectFlightRequest{
		FlightNumber: "FF100",
		Origin:       "New York",
		Destination:  "London",
		TravelDate:   "2026-09-10",
	})
	require.NoError(t, err)

	_, err = svc.GetSession(ctx, "john")
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
}

func TestBookingNotificationStatusWithoutConfirmation(t *testing.T) {
	svc := newTestBookingService(t, &recordingMailer{})

	_, err := svc.NotificationStatus(context.Background(), "jane")
	assert.Error(t, err)
}

func TestBookingsSortedByFlightDate(t *testing.T) {
	svc := newTestBookingService(t, &recordingMailer{})
	ctx := context.Background()

	book := func(flightNumber, destination, date string) {
		t.Helper()
		_, err := svc.SelectFlight(ctx, "jane", &request.SelectFlightRequest{
			FlightNumber: flightNumber,
			Origin:       "New York",
			Destination:  destination,
			TravelDate:   date,
		})
		require.NoError(t, err)
		_, err = svc.ChooseFare(ctx, "jane", &request.ChooseFareRequest{
			CabinClass: "Economy",
			TicketType: "Adult (13+)",
		})
		require.NoError(t, err)
		_, err = svc.EnterPassenger(ctx, "jane", &request.PassengerRequest{Name: "jane doe", Age: intPtr(30)})
		require.NoError(t, err)
		_, err = svc.SubmitPayment(ctx, "jane", &request.PaymentRequest{
			CardNumber:  "4242424242424242",
			ExpiryMonth: "12",
			ExpiryYear:  "2099",
			CVC:         "123",
		})
		require.NoError(t, err)
		_, err = svc.EnterContact(ctx, "jane", &request.ContactRequest{
			Street:      "10 downing street",
			City:        "london",
			Country:     "united kingdom",
			PostalCode:  "SW1A 2AA",
			PhoneNumber: "+442079250918",
			Email:       "jane@example.com",
		})
		require.NoError(t, err)
		_, err = svc.Confirm(ctx, "jane")
		require.NoError(t, err)
	}

	book("FF300", "Paris", "2026-12-01")
	book("FF100", "London", "2026-09-10")

	bookings, err := svc.UserBookings(ctx, "jane")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "2026-09-10", bookings[0].FlightDate)
	assert.Equal(t, "2026-12-01", bookings[1].FlightDate)
}
