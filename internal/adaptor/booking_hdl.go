package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"forfly/internal/apperrors"
	"forfly/internal/dto/request"
	"forfly/internal/usecase"
	"forfly/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// usernameFrom reads the authenticated username put on the context by the
// session middleware. Booking routes are always behind that middleware.
func usernameFrom(r *http.Request) string {
	username, _ := utils.GetUsernameFromContext(r.Context())
	return username
}

// SelectFlight handles POST /api/booking/flight
func (h *BookingHandler) SelectFlight(w http.ResponseWriter, r *http.Request) {
	var req request.SelectFlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.service.SelectFlight(r.Context(), usernameFrom(r), &req)
	if err != nil {
		h.handleServiceError(w, err, "select flight")
		return
	}

	utils.ResponseSuccess(w, "Flight selected", session)
}

// ChooseFare handles POST /api/booking/fare
func (h *BookingHandler) ChooseFare(w http.ResponseWriter, r *http.Request) {
	var req request.ChooseFareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.service.ChooseFare(r.Context(), usernameFrom(r), &req)
	if err != nil {
		h.handleServiceError(w, err, "choose fare")
		return
	}

	utils.ResponseSuccess(w, "Fare chosen", session)
}

// EnterPassenger handles POST /api/booking/passenger
func (h *BookingHandler) EnterPassenger(w http.ResponseWriter, r *http.Request) {
	var req request.PassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.service.EnterPassenger(r.Context(), usernameFrom(r), &req)
	if err != nil {
		h.handleServiceError(w, err, "enter passenger")
		return
	}

	utils.ResponseSuccess(w, "Passenger details recorded", session)
}

// SubmitPayment handles POST /api/booking/payment
func (h *BookingHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.SubmitPayment(r.Context(), usernameFrom(r), &req)
	if err != nil {
		h.handleServiceError(w, err, "submit payment")
		return
	}

	utils.ResponseSuccess(w, "Payment details validated", session)
}

// EnterContact handles POST /api/booking/contact
func (h *BookingHandler) EnterContact(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.service.EnterContact(r.Context(), usernameFrom(r), &req)
	if err != nil {
		h.handleServiceError(w, err, "enter contact")
		return
	}

	utils.ResponseSuccess(w, "Contact details recorded", session)
}

// GetSession handles GET /api/booking
func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(r.Context(), usernameFrom(r))
	if err != nil {
		h.handleServiceError(w, err, "get booking session")
		return
	}

	utils.ResponseSuccess(w, "Booking session retrieved", session)
}

// Confirm handles POST /api/booking/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	confirmation, err := h.service.Confirm(r.Context(), usernameFrom(r))
	if err != nil {
		h.handleServiceError(w, err, "confirm booking")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", confirmation)
}

// NotificationStatus handles GET /api/booking/notification
func (h *BookingHandler) NotificationStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.NotificationStatus(r.Context(), usernameFrom(r))
	if err != nil {
		h.handleServiceError(w, err, "get notification status")
		return
	}

	utils.ResponseSuccess(w, "Notification status retrieved", status)
}

// UserBookings handles GET /api/user/bookings
func (h *BookingHandler) UserBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.UserBookings(r.Context(), usernameFrom(r))
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved", bookings)
}

// handleServiceError maps the workflow's typed errors onto status codes.
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var validationErr *apperrors.ValidationError
	var stepErr *apperrors.StepOrderError

	switch {
	case errors.As(err, &validationErr):
		h.log.Warn(operation+" failed - invalid input",
			zap.String("field", validationErr.Field),
			zap.String("code", string(validationErr.Code)))
		utils.ResponseBadRequest(w, validationErr.Message, map[string]string{
			"field": validationErr.Field,
			"code":  string(validationErr.Code),
		})

	case errors.As(err, &stepErr):
		h.log.Warn(operation+" failed - out of order", zap.Error(err))
		utils.ResponseConflict(w, stepErr.Error())

	case errors.Is(err, apperrors.ErrNoFlightsFound),
		errors.Is(err, apperrors.ErrNoActiveSession):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, apperrors.ErrStoreCorrupt):
		h.log.Error(operation+" failed - booking store corrupt", zap.Error(err))
		utils.ResponseInternalError(w, "Booking store is unavailable")

	case err.Error() == "no confirmation notification found":
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
