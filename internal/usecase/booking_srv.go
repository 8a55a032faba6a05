package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"forfly/internal/apperrors"
	"forfly/internal/data/entity"
	"forfly/internal/data/repository"
	"forfly/internal/dto/request"
	"forfly/internal/dto/response"
	"forfly/internal/notify"
	"forfly/internal/payment"
	"forfly/internal/workflow"

	"go.uber.org/zap"
)

type BookingService interface {
	// SelectFlight starts a purchase draft for the user, or rebinds the
	// flight on an existing one.
	SelectFlight(ctx context.Context, username string, req *request.SelectFlightRequest) (*response.SessionResponse, error)
	ChooseFare(ctx context.Context, username string, req *request.ChooseFareRequest) (*response.SessionResponse, error)
	EnterPassenger(ctx context.Context, username string, req *request.PassengerRequest) (*response.SessionResponse, error)
	SubmitPayment(ctx context.Context, username string, req *request.PaymentRequest) (*response.SessionResponse, error)
	EnterContact(ctx context.Context, username string, req *request.ContactRequest) (*response.SessionResponse, error)
	GetSession(ctx context.Context, username string) (*response.SessionResponse, error)
	// Confirm persists the completed draft, discards it, and kicks off the
	// confirmation email in the background.
	Confirm(ctx context.Context, username string) (*response.ConfirmationResponse, error)
	NotificationStatus(ctx context.Context, username string) (*response.NotificationStatusResponse, error)
	UserBookings(ctx context.Context, username string) ([]response.BookingResponse, error)
}

// bookingService holds the in-progress drafts in memory, one per user. A
// draft lives from flight selection until confirmation or process exit;
// confirmed bookings are the only durable record.
type bookingService struct {
	repo       *repository.Repository
	dispatcher *notify.Dispatcher
	log        *zap.Logger

	mu         sync.Mutex
	drafts     map[string]*workflow.Session
	deliveries map[string]*notify.Delivery
}

func NewBookingService(repo *repository.Repository, dispatcher *notify.Dispatcher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:       repo,
		dispatcher: dispatcher,
		log:        log,
		drafts:     make(map[string]*workflow.Session),
		deliveries: make(map[string]*notify.Delivery),
	}
}

func (s *bookingService) SelectFlight(ctx context.Context, username string, req *request.SelectFlightRequest) (*response.SessionResponse, error) {
	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		return nil, apperrors.NewValidation("travel_date", apperrors.CodeInvalidFormat,
			"travel date must be in YYYY-MM-DD format")
	}

	flight := s.repo.Flight.FindByNumber(req.FlightNumber)
	if flight == nil || flight.Origin != req.Origin || flight.Destination != req.Destination {
		s.log.Warn("Flight selection did not match the catalog",
			zap.String("username", username),
			zap.String("flight_number", req.FlightNumber))
		return nil, apperrors.ErrNoFlightsFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.drafts[username]
	if draft == nil {
		draft = workflow.NewSession(username)
	}

	next, err := draft.SelectFlight(*flight, travelDate)
	if err != nil {
		return nil, err
	}
	s.drafts[username] = next

	s.log.Info("Flight selected",
		zap.String("username", username),
		zap.String("flight_number", flight.FlightNumber),
		zap.String("travel_date", req.TravelDate))

	return convertSessionResponse(next), nil
}

func (s *bookingService) ChooseFare(ctx context.Context, username string, req *request.ChooseFareRequest) (*response.SessionResponse, error) {
	return s.step(username, func(draft *workflow.Session) (*workflow.Session, error) {
		return draft.ChooseFare(entity.CabinClass(req.CabinClass), entity.TicketType(req.TicketType))
	})
}

func (s *bookingService) EnterPassenger(ctx context.Context, username string, req *request.PassengerRequest) (*response.SessionResponse, error) {
	return s.step(username, func(draft *workflow.Session) (*workflow.Session, error) {
		age := -1
		if req.Age != nil {
			age = *req.Age
		}
		return draft.EnterPassenger(req.Name, age)
	})
}

func (s *bookingService) SubmitPayment(ctx context.Context, username string, req *request.PaymentRequest) (*response.SessionResponse, error) {
	card := payment.Card{
		Number:      req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		CVC:         req.CVC,
	}
	return s.step(username, func(draft *workflow.Session) (*workflow.Session, error) {
		return draft.SubmitPayment(card, time.Now())
	})
}

func (s *bookingService) EnterContact(ctx context.Context, username string, req *request.ContactRequest) (*response.SessionResponse, error) {
	return s.step(username, func(draft *workflow.Session) (*workflow.Session, error) {
		return draft.EnterContact(workflow.Contact{
			Street:      req.Street,
			City:        req.City,
			Country:     req.Country,
			PostalCode:  req.PostalCode,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
		})
	})
}

func (s *bookingService) GetSession(ctx context.Context, username string) (*response.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.drafts[username]
	if draft == nil {
		return nil, apperrors.ErrNoActiveSession
	}
	return convertSessionResponse(draft), nil
}

func (s *bookingService) Confirm(ctx context.Context, username string) (*response.ConfirmationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.drafts[username]
	if draft == nil {
		return nil, apperrors.ErrNoActiveSession
	}

	booking, err := draft.Finalize()
	if err != nil {
		return nil, err
	}

	// Persist first. If the store rejects the write the draft stays intact,
	// so the user can retry confirmation.
	if err := s.repo.Booking.Save(ctx, username, booking); err != nil {
		s.log.Error("Failed to persist booking",
			zap.Error(err),
			zap.String("username", username))
		return nil, err
	}

	// Confirmation is terminal: the draft is gone whatever happens to the
	// notification below.
	delete(s.drafts, username)

	delivery := s.dispatcher.Dispatch(booking, nil)
	s.deliveries[username] = delivery

	s.log.Info("Booking confirmed",
		zap.String("username", username),
		zap.String("flight_number", booking.FlightNumber),
		zap.Float64("fare", booking.Fare))

	return &response.ConfirmationResponse{
		Booking:      convertBookingResponse(booking),
		Notification: response.NotificationPending,
	}, nil
}

func (s *bookingService) NotificationStatus(ctx context.Context, username string) (*response.NotificationStatusResponse, error) {
	s.mu.Lock()
	delivery := s.deliveries[username]
	s.mu.Unlock()

	if delivery == nil {
		return nil, fmt.Errorf("no confirmation notification found")
	}

	if !delivery.Finished() {
		return &response.NotificationStatusResponse{Status: response.NotificationPending}, nil
	}
	if err := delivery.Err(); err != nil {
		return &response.NotificationStatusResponse{
			Status: response.NotificationFailed,
			Error:  err.Error(),
		}, nil
	}
	return &response.NotificationStatusResponse{Status: response.NotificationSent}, nil
}

func (s *bookingService) UserBookings(ctx context.Context, username string) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	// Soonest trip first; dates are ISO formatted so they sort as strings.
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].FlightDate < bookings[j].FlightDate
	})

	out := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, convertBookingResponse(b))
	}
	return out, nil
}

// ==================== HELPER METHODS ====================

// step applies one wizard transition to the user's draft under the lock.
func (s *bookingService) step(username string, fn func(*workflow.Session) (*workflow.Session, error)) (*response.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.drafts[username]
	if draft == nil {
		return nil, apperrors.ErrNoActiveSession
	}

	next, err := fn(draft)
	if err != nil {
		return nil, err
	}
	s.drafts[username] = next
	return convertSessionResponse(next), nil
}

func convertSessionResponse(d *workflow.Session) *response.SessionResponse {
	resp := &response.SessionResponse{
		State:         d.State.String(),
		FlightNumber:  d.Flight.FlightNumber,
		Origin:        d.Flight.Origin,
		Destination:   d.Flight.Destination,
		CabinClass:    string(d.Class),
		TicketType:    string(d.TicketType),
		Price:         d.FinalPrice,
		PassengerName: d.PassengerName,
		PassengerAge:  d.PassengerAge,
		Address:       d.Address,
		PhoneNumber:   d.PhoneNumber,
		Email:         d.Email,
	}
	if !d.TravelDate.IsZero() {
		resp.TravelDate = d.TravelDate.Format("2006-01-02")
	}
	return resp
}

func convertBookingResponse(b entity.Booking) response.BookingResponse {
	return response.BookingResponse{
		PassengerName: b.PassengerName,
		PassengerAge:  b.PassengerAge,
		FlightNumber:  b.FlightNumber,
		Origin:        b.Origin,
		Destination:   b.Destination,
		DepartureTime: b.DepartureTime,
		ArrivalTime:   b.ArrivalTime,
		FlightDate:    b.FlightDate,
		Class:         string(b.Class),
		TicketType:    string(b.TicketType),
		Address:       b.Address,
		PhoneNumber:   b.PhoneNumber,
		Email:         b.Email,
		Fare:          b.Fare,
	}
}
